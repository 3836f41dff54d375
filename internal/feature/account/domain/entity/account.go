// Package entity はaccountフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Account は保護者アカウントを表します。
// UserIDとEmailはそれぞれグローバルに一意で、ユニークインデックスにより
// 存在チェックと挿入の間の競合もデータベース側で防止されます。
type Account struct {
	// ID はサロゲートキーです。
	ID uint `gorm:"primaryKey"`

	// UserID はユーザーが選択するアカウントIDです。作成後は変更されません。
	UserID string `gorm:"uniqueIndex;size:30;not null"`

	// UserName は表示名です。
	UserName string `gorm:"size:50;not null"`

	// Email はログインに使用するメールアドレスです。
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash はbcryptでハッシュ化されたパスワードです。
	// 平文パスワードは保存しません。
	PasswordHash string `gorm:"size:255;not null"`

	// Gender は性別コード（0/1/2）です。
	Gender string `gorm:"size:1;not null"`

	// Birthday は生年月日（YYYY-MM-DD）です。
	Birthday string `gorm:"size:10;not null"`

	// DeleteFlg は論理削除フラグです。削除済みアカウントは
	// 存在チェックや認証の対象になりません。
	DeleteFlg bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
