// Package handler はaccountフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"chirusapo_backend/internal/feature/account/transport/http/dto"
	"chirusapo_backend/internal/feature/account/usecase"
	"chirusapo_backend/internal/platform/middleware"
	"chirusapo_backend/internal/shared/apperr"
	"chirusapo_backend/internal/shared/response"
)

// AccountUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AccountUsecase interface {
	// SignUp は新規アカウントを作成し、セッショントークンを返します。
	SignUp(ctx context.Context, in usecase.SignUpInput) (string, error)
	// SignIn はアカウントを認証し、セッショントークンを返します。
	SignIn(ctx context.Context, in usecase.SignInInput) (string, error)
	// PasswordReset は仮パスワードを再発行してメールで通知します。
	PasswordReset(ctx context.Context, identifier string) error
	// SignOut は提示されたトークンを失効させます。
	SignOut(ctx context.Context, tokenID string) error
}

// AccountHandler は認証操作のHTTPリクエストを処理します。
type AccountHandler struct {
	accounts AccountUsecase
}

// NewAccountHandler はAccountHandlerの新しいインスタンスを生成します。
func NewAccountHandler(accounts AccountUsecase) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// bindJSONStrict はリクエストボディをdstにデコードします。
// 未知のキーは境界で拒否します（暗黙に無視しない）。
func bindJSONStrict(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// flowError はユースケースのエラーをレスポンスに変換します。
// ドメインエラーコードは400、それ以外の障害は500として返します。
func flowError(c *gin.Context, op string, err error) {
	var flowErr *apperr.Errors
	if errors.As(err, &flowErr) {
		response.BadRequest(c, flowErr.Codes...)
		return
	}
	slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
	response.InternalError(c)
}

// SignUp は新規登録APIエンドポイントを処理します。
// - キーが1つでも欠落していればREQUIRED_PARAMのみを返却（400）
// - 書式・一意性エラーはコードを集約して返却（400）
// - 成功時はトークン付きで200を返却
func (h *AccountHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := bindJSONStrict(c, &req); err != nil {
		slog.Warn("signup bind failed", "error", err, "remote_addr", c.ClientIP())
		response.BadRequest(c, apperr.RequiredParam)
		return
	}

	// 必須ゲート: キー欠落（nil）のみが対象。空文字列は書式ゲートで判定する
	if req.UserID == nil || req.UserName == nil || req.Email == nil ||
		req.Password == nil || req.Gender == nil || req.Birthday == nil {
		response.BadRequest(c, apperr.RequiredParam)
		return
	}

	token, err := h.accounts.SignUp(c.Request.Context(), usecase.SignUpInput{
		UserID:   *req.UserID,
		UserName: *req.UserName,
		Email:    *req.Email,
		Password: *req.Password,
		Gender:   *req.Gender,
		Birthday: *req.Birthday,
	})
	if err != nil {
		flowError(c, "signup", err)
		return
	}

	slog.Info("account signup successful", "user_id", *req.UserID, "remote_addr", c.ClientIP())
	response.OK(c, gin.H{"token": token})
}

// SignIn はログインAPIエンドポイントを処理します。
// 認証失敗の理由（ID誤り・パスワード誤り）は公開しません。
func (h *AccountHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := bindJSONStrict(c, &req); err != nil {
		slog.Warn("signin bind failed", "error", err, "remote_addr", c.ClientIP())
		response.BadRequest(c, apperr.RequiredParam)
		return
	}

	if req.UserID == nil || req.Password == nil {
		response.BadRequest(c, apperr.RequiredParam)
		return
	}

	token, err := h.accounts.SignIn(c.Request.Context(), usecase.SignInInput{
		UserID:   *req.UserID,
		Password: *req.Password,
	})
	if err != nil {
		flowError(c, "signin", err)
		return
	}

	slog.Info("account signin successful", "remote_addr", c.ClientIP())
	response.OK(c, gin.H{"token": token})
}

// PasswordReset はパスワード再設定APIエンドポイントを処理します。
// 成功時はdataなしの200を返却します。
func (h *AccountHandler) PasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if err := bindJSONStrict(c, &req); err != nil {
		slog.Warn("password reset bind failed", "error", err, "remote_addr", c.ClientIP())
		response.BadRequest(c, apperr.RequiredParam)
		return
	}

	if req.UserID == nil {
		response.BadRequest(c, apperr.RequiredParam)
		return
	}

	if err := h.accounts.PasswordReset(c.Request.Context(), *req.UserID); err != nil {
		flowError(c, "password reset", err)
		return
	}

	slog.Info("password reset mail sent", "remote_addr", c.ClientIP())
	response.OK(c, nil)
}

// SignOut はログアウトAPIエンドポイントを処理します。
// 認証ミドルウェアが検証済みのトークンを失効させます。
func (h *AccountHandler) SignOut(c *gin.Context) {
	tokenID := c.GetString(middleware.ContextTokenID)
	if err := h.accounts.SignOut(c.Request.Context(), tokenID); err != nil {
		flowError(c, "signout", err)
		return
	}
	response.OK(c, nil)
}
