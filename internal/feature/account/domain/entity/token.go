package entity

import "time"

// Token はアカウントに紐づく不透明なセッショントークンを表します。
// トークン値そのものがIDであり、クライアントから提示された値を
// ストアに照会して検証します。
type Token struct {
	ID        string    // トークン値（64文字の16進文字列）
	AccountID uint      // 紐づくアカウントID
	CreatedAt time.Time // 発行日時
	ExpiresAt time.Time // 有効期限
}

// IsExpired はトークンが有効期限切れかどうか返します。
func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
