package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"chirusapo_backend/internal/app/di"
	"chirusapo_backend/internal/app/router"
	accountadapters "chirusapo_backend/internal/feature/account/adapters"
	accounthandler "chirusapo_backend/internal/feature/account/transport/handler"
	accountusecase "chirusapo_backend/internal/feature/account/usecase"
	childadapters "chirusapo_backend/internal/feature/child/adapters"
	childhandler "chirusapo_backend/internal/feature/child/transport/handler"
	childusecase "chirusapo_backend/internal/feature/child/usecase"
	infradb "chirusapo_backend/internal/platform/db"
	platformhandler "chirusapo_backend/internal/platform/http/handler"
	"chirusapo_backend/internal/platform/mail"
	infraredis "chirusapo_backend/internal/platform/redis"
)

func main() {
	// .envがあれば読み込む（本番環境では環境変数で直接指定）
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to MySQL token store.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	accountRepo := accountadapters.NewAccountMySQL(db)
	tokenRepo := di.NewTokenRepository(rdb, db)
	childRepo := childadapters.NewChildMySQL(db)

	// Mailer
	mailer := mail.NewSMTPMailer(
		os.Getenv("SMTP_HOST"),
		os.Getenv("SMTP_PORT"),
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASSWORD"),
		os.Getenv("MAIL_FROM"),
	)
	if os.Getenv("SMTP_HOST") == "" {
		log.Println("[WARN] SMTP_HOST is not set. Password reset mail will fail.")
	}

	// Usecase
	tokenTTL := 30 * 24 * time.Hour
	accountUC := accountusecase.NewAccountUsecase(accountRepo, tokenRepo, mailer, tokenTTL)
	childUC := childusecase.NewChildUsecase(childRepo)

	// Handler
	accountH := accounthandler.NewAccountHandler(accountUC)
	childH := childhandler.NewChildHandler(childUC)

	// ヘルスチェック対象のバックエンドを登録
	healthH := platformhandler.NewHealthHandler()
	if sqlDB, err := db.DB(); err == nil {
		healthH.Register("db", sqlDB.PingContext)
	}
	if rdb != nil {
		healthH.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	// ルータ生成
	router := router.NewRouter(accountH, childH, healthH, tokenRepo)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
