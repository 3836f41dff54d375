package di

import (
	accountadapters "chirusapo_backend/internal/feature/account/adapters"
	"chirusapo_backend/internal/feature/account/usecase"
	"chirusapo_backend/internal/platform/token"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewTokenRepository creates a TokenRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to MySQL.
func NewTokenRepository(rdb *redis.Client, db *gorm.DB) usecase.TokenRepository {
	if rdb != nil {
		return token.NewTokenRedis(rdb, "token")
	}
	return accountadapters.NewTokenMySQL(db)
}
