// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// checkTimeout は1回のヘルスチェックに許容する時間です。
const checkTimeout = 2 * time.Second

// Pinger はバックエンドサービスへの到達性を報告します。
type Pinger func(ctx context.Context) error

type check struct {
	name string
	ping Pinger
}

// HealthHandler は /healthz エンドポイントを処理します。
// 登録されたバックエンド（DB・Redisなど）への到達性を確認し、
// 1つでも到達できない場合は503を返します。
type HealthHandler struct {
	checks []check
}

// NewHealthHandler はHealthHandlerの新しいインスタンスを生成します。
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Register はヘルスチェック対象のバックエンドを登録します。
// レスポンスには登録順で掲載されます。
func (h *HealthHandler) Register(name string, ping Pinger) {
	h.checks = append(h.checks, check{name: name, ping: ping})
}

// Health はサービスヘルスチェックを処理します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	status := http.StatusOK
	components := gin.H{}
	for _, chk := range h.checks {
		if err := chk.ping(ctx); err != nil {
			components[chk.name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		components[chk.name] = "ok"
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}

	body := gin.H{"status": "ok"}
	if status != http.StatusOK {
		body["status"] = "unavailable"
	}
	if len(components) > 0 {
		body["components"] = components
	}
	c.JSON(status, body)
}
