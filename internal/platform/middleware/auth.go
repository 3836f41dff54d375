// Package middleware はGin用の横断的ミドルウェアを提供します。
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"chirusapo_backend/internal/feature/account/domain/entity"
	"chirusapo_backend/internal/shared/response"
)

// ハンドラーから参照するコンテキストキー。
const (
	ContextAccountID = "accountID"
	ContextTokenID   = "tokenID"
)

// TokenStore はトークン検証に必要な最小限のストア操作を定義します。
// Goの慣例に従い、インターフェースはコンシューマー（middleware）が定義します。
type TokenStore interface {
	FindByID(ctx context.Context, id string) (*entity.Token, error)
}

// AuthRequired は不透明トークンを検証するGinミドルウェアを返します。
// AuthorizationヘッダーのBearerトークンをストアに照会し、
// 有効であれば紐づくアカウントIDをコンテキストに設定します。
func AuthRequired(tokens TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		token, err := tokens.FindByID(c.Request.Context(), tokenStr)
		if err != nil || token.IsExpired() {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(ContextAccountID, token.AccountID)
		c.Set(ContextTokenID, token.ID)
		c.Next()
	}
}

// AccountID は認証ミドルウェアが設定したアカウントIDを取得します。
func AccountID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextAccountID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
