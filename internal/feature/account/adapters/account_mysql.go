// Package adapters はaccountフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"chirusapo_backend/internal/feature/account/domain/entity"
	"chirusapo_backend/internal/feature/account/usecase"
)

// accountMySQL はAccountRepositoryインターフェースのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type accountMySQL struct {
	db *gorm.DB
}

// accountMySQLがAccountRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.AccountRepository = (*accountMySQL)(nil)

// NewAccountMySQL は指定されたgorm.DB接続でaccountMySQLの新しいインスタンスを生成します。
func NewAccountMySQL(db *gorm.DB) *accountMySQL {
	return &accountMySQL{db: db}
}

// ExistsByUserID は指定されたuser_idの未削除アカウントが存在するか返します。
func (r *accountMySQL) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Account{}).
		Where("user_id = ? AND delete_flg = ?", userID, false).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmail は指定されたemailの未削除アカウントが存在するか返します。
func (r *accountMySQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Account{}).
		Where("email = ? AND delete_flg = ?", email, false).
		Count(&count).Error
	return count > 0, err
}

// Create はアカウントをデータベースに追加します。
// 事前の存在チェックと挿入の間に同時登録が割り込んだ場合でも、
// ユニーク制約違反をErrUserIDTaken / ErrEmailTakenにマッピングして返します。
func (r *accountMySQL) Create(ctx context.Context, account *entity.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		// MySQLエラー1062: ユニークキーの重複エントリ
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return conflictTarget(mysqlErr.Message)
		}
		return err
	}
	return nil
}

// conflictTarget は1062メッセージの `for key '<index>'` 部分から、どちらの
// ユニークインデックスに抵触したか判定します。メッセージには重複した値自体も
// 含まれるため（例: Duplicate entry 'my_email_7' for key '...'）、
// キー名のみを検査します。
func conflictTarget(message string) error {
	_, key, found := strings.Cut(message, "for key ")
	if found && strings.Contains(key, "email") {
		return usecase.ErrEmailTaken
	}
	return usecase.ErrUserIDTaken
}

// FindByIdentifier はuser_idまたはemailに一致する未削除アカウントを取得します。
// 見つからない場合、usecase.ErrAccountNotFoundを返します。
func (r *accountMySQL) FindByIdentifier(ctx context.Context, identifier string) (*entity.Account, error) {
	var account entity.Account
	err := r.db.WithContext(ctx).
		Where("(user_id = ? OR email = ?) AND delete_flg = ?", identifier, identifier, false).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// UpdatePassword は指定アカウントのパスワードハッシュを置き換えます。
func (r *accountMySQL) UpdatePassword(ctx context.Context, accountID uint, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Account{}).
		Where("id = ?", accountID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrAccountNotFound
	}
	return nil
}
