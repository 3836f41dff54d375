package dto

// SignInRequest は/signinエンドポイントのリクエストボディを表します。
// UserIDにはアカウントIDまたはメールアドレスのいずれかを指定できます。
type SignInRequest struct {
	UserID   *string `json:"user_id"`
	Password *string `json:"password"`
}

// PasswordResetRequest は/password/resetエンドポイントのリクエストボディを表します。
type PasswordResetRequest struct {
	UserID *string `json:"user_id"`
}
