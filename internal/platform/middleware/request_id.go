package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID はリクエストID伝播用のヘッダー名です。
const HeaderRequestID = "X-Request-Id"

// RequestID はリクエストごとに一意なIDを付与するGinミドルウェアを返します。
// クライアントが指定したIDがあればそれを尊重し、なければUUIDを採番します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Set("requestID", id)
		c.Next()
	}
}
