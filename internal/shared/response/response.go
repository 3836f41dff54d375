// Package response はAPI共通のレスポンスエンベロープを定義します。
// すべてのエンドポイントは {status, message, data} の形式でJSONを返します。
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chirusapo_backend/internal/shared/apperr"
)

// Envelope はAPIレスポンスの共通形式です。
// 成功時はmessageがnull、失敗時はdataがnullになります。
type Envelope struct {
	Status  int           `json:"status"`
	Message []apperr.Code `json:"message"`
	Data    any           `json:"data"`
}

// OK は成功レスポンス（200）を返します。dataが不要な場合はnilを渡します。
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Status: http.StatusOK, Message: nil, Data: data})
}

// BadRequest はエラーコードのリストを含む400レスポンスを返します。
func BadRequest(c *gin.Context, codes ...apperr.Code) {
	c.JSON(http.StatusBadRequest, Envelope{Status: http.StatusBadRequest, Message: codes, Data: nil})
}

// Unauthorized はトークン認証失敗の401レスポンスを返します。
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Envelope{
		Status:  http.StatusUnauthorized,
		Message: []apperr.Code{apperr.Unauthorized},
		Data:    nil,
	})
}

// InternalError は永続化層などの内部障害を示す500レスポンスを返します。
// ドメインエラーコードは含めません。
func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Envelope{
		Status:  http.StatusInternalServerError,
		Message: []apperr.Code{apperr.InternalServerError},
		Data:    nil,
	})
}
