package usecase

import (
	"context"

	"chirusapo_backend/internal/feature/account/domain/entity"
)

// AccountRepository はアカウントエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AccountRepository interface {
	// ExistsByUserID は指定されたuser_idの未削除アカウントが存在するか返します。
	ExistsByUserID(ctx context.Context, userID string) (bool, error)

	// ExistsByEmail は指定されたemailの未削除アカウントが存在するか返します。
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create は新しいアカウントをストレージに永続化します。
	// ユニーク制約に抵触した場合、ErrUserIDTakenまたはErrEmailTakenを返します。
	Create(ctx context.Context, account *entity.Account) error

	// FindByIdentifier はuser_idまたはemailに一致する未削除アカウントを取得します。
	// 見つからない場合、ErrAccountNotFoundを返します。
	FindByIdentifier(ctx context.Context, identifier string) (*entity.Account, error)

	// UpdatePassword は指定アカウントのパスワードハッシュを置き換えます。
	UpdatePassword(ctx context.Context, accountID uint, passwordHash string) error
}

// TokenRepository はセッショントークンの永続化層を抽象化します。
type TokenRepository interface {
	// Create は新しいトークンをストレージに永続化します。
	Create(ctx context.Context, token *entity.Token) error

	// FindByID はトークン値でトークンを取得します。
	// 見つからない場合、ErrTokenNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Token, error)

	// DeleteByID はトークンを削除します。存在しない場合もエラーにしません。
	DeleteByID(ctx context.Context, id string) error
}

// Mailer はパスワード再設定通知の送信を抽象化します。
type Mailer interface {
	// SendPasswordReset は再発行した仮パスワードをアカウントのメールアドレスへ送信します。
	SendPasswordReset(ctx context.Context, account *entity.Account, tempPassword string) error
}
