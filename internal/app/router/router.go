package router

import (
	accounthandler "chirusapo_backend/internal/feature/account/transport/handler"
	childhandler "chirusapo_backend/internal/feature/child/transport/handler"
	"chirusapo_backend/internal/platform/http/handler"
	"chirusapo_backend/internal/platform/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(account *accounthandler.AccountHandler, child *childhandler.ChildHandler,
	health *handler.HealthHandler, tokens middleware.TokenStore) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)
	// 新規アカウント登録
	r.POST("/signup", account.SignUp)
	// ログイン（トークン発行）
	r.POST("/signin", account.SignIn)
	// パスワード再設定（仮パスワードをメール送信）
	r.POST("/password/reset", account.PasswordReset)

	// 認証必須のルート
	// middleware.AuthRequired() が不透明トークンをストアに照会する
	auth := r.Group("/")
	auth.Use(middleware.AuthRequired(tokens))
	{
		auth.POST("/signout", account.SignOut)

		auth.GET("/children", child.List)
		auth.POST("/children", child.Add)
		auth.GET("/children/:child_id", child.Get)
		auth.DELETE("/children/:child_id", child.Delete)
		auth.POST("/children/:child_id/vaccinations", child.AddVaccination)
		auth.DELETE("/children/:child_id/vaccinations/:vaccination_id", child.DeleteVaccination)
		auth.POST("/children/:child_id/allergies", child.AddAllergy)
		auth.DELETE("/children/:child_id/allergies/:allergy_id", child.DeleteAllergy)
		auth.POST("/children/:child_id/growth", child.AddGrowthRecord)
	}

	return r
}
