// Package dto はaccountフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
// 必須チェックを「キーの欠落」と「空文字列」で区別するため、
// フィールドはポインタ型で宣言します（キー欠落 → nil）。
package dto

// SignUpRequest は/signupエンドポイントのリクエストボディを表します。
type SignUpRequest struct {
	UserID   *string `json:"user_id"`
	UserName *string `json:"user_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Gender   *string `json:"gender"`
	Birthday *string `json:"birthday"`
}
