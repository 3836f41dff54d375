// Package usecase はaccountフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"chirusapo_backend/internal/feature/account/domain/entity"
	"chirusapo_backend/internal/shared/apperr"
	"chirusapo_backend/internal/shared/validation"
)

const (
	// tokenBytes はトークン値の乱数長です。16進エンコード後は64文字になります。
	tokenBytes = 32

	// tempPasswordLength は再設定時に発行する仮パスワードの長さです。
	tempPasswordLength = 16

	// defaultTokenTTL はTTL未指定時のトークン有効期間です。
	defaultTokenTTL = 30 * 24 * time.Hour
)

// dummyPasswordHash はアカウント未検出時のタイミング攻撃緩和用ダミーハッシュです。
// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証します。
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AccountUsecase は認証ビジネスロジックを実装します。
type AccountUsecase struct {
	accounts AccountRepository
	tokens   TokenRepository
	mailer   Mailer
	tokenTTL time.Duration
}

// NewAccountUsecase はAccountUsecaseの新しいインスタンスを生成します。
func NewAccountUsecase(accounts AccountRepository, tokens TokenRepository, mailer Mailer, tokenTTL time.Duration) *AccountUsecase {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AccountUsecase{
		accounts: accounts,
		tokens:   tokens,
		mailer:   mailer,
		tokenTTL: tokenTTL,
	}
}

// SignUpInput は新規登録の入力値です。必須チェック済みの値を受け取ります。
type SignUpInput struct {
	UserID   string
	UserName string
	Email    string
	Password string
	Gender   string
	Birthday string
}

// SignInInput はログインの入力値です。UserIDにはアカウントIDまたは
// メールアドレスのいずれかを指定できます。
type SignInInput struct {
	UserID   string
	Password string
}

// SignUp は新規アカウントを作成し、セッショントークンを発行します。
// ゲートは書式→一意性→作成の順に実行され、各ゲート内のチェックは
// すべて評価してから失敗コードを集約します。副作用は成功パスでのみ発生します。
func (u *AccountUsecase) SignUp(ctx context.Context, in SignUpInput) (string, error) {
	// 書式ゲート: 6フィールドすべてを評価し、フィールド順でコードを集約
	checks := []struct {
		ok   bool
		code apperr.Code
	}{
		{validation.Fire(in.UserID, validation.RuleUserID), apperr.ValidationUserID},
		{validation.Fire(in.UserName, validation.RuleUserName), apperr.ValidationUserName},
		{validation.Fire(in.Email, validation.RuleEmail), apperr.ValidationEmail},
		{validation.Fire(in.Password, validation.RulePassword), apperr.ValidationPassword},
		{validation.Fire(in.Gender, validation.RuleGender), apperr.ValidationGender},
		{validation.Fire(in.Birthday, validation.RuleBirthday), apperr.ValidationBirthday},
	}
	var codes []apperr.Code
	for _, c := range checks {
		if !c.ok {
			codes = append(codes, c.code)
		}
	}
	if len(codes) > 0 {
		return "", apperr.New(codes...)
	}

	// 一意性ゲート: user_idとemailの両方を常にチェック
	userIDTaken, err := u.accounts.ExistsByUserID(ctx, in.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to check user_id existence: %w", err)
	}
	emailTaken, err := u.accounts.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return "", fmt.Errorf("failed to check email existence: %w", err)
	}
	if userIDTaken {
		codes = append(codes, apperr.AlreadyUserID)
	}
	if emailTaken {
		codes = append(codes, apperr.AlreadyEmail)
	}
	if len(codes) > 0 {
		return "", apperr.New(codes...)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	account := &entity.Account{
		UserID:       in.UserID,
		UserName:     in.UserName,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Gender:       in.Gender,
		Birthday:     in.Birthday,
	}
	if err := u.accounts.Create(ctx, account); err != nil {
		// 事前チェック後に同時登録が割り込んだ場合、ユニーク制約違反を
		// 事前チェックと同じエラーコードにマッピングする
		var conflict []apperr.Code
		if errors.Is(err, ErrUserIDTaken) {
			conflict = append(conflict, apperr.AlreadyUserID)
		}
		if errors.Is(err, ErrEmailTaken) {
			conflict = append(conflict, apperr.AlreadyEmail)
		}
		if len(conflict) > 0 {
			return "", apperr.New(conflict...)
		}
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	return u.issueToken(ctx, account.ID)
}

// SignIn はアカウントを認証し、成功時にセッショントークンを返します。
// タイミング攻撃を防止するため、アカウントが存在しない場合でもbcrypt比較を実行します。
// IDの誤りとパスワードの誤りはどちらもUNKNOWN_USERになり、区別されません。
func (u *AccountUsecase) SignIn(ctx context.Context, in SignInInput) (string, error) {
	checks := []struct {
		ok   bool
		code apperr.Code
	}{
		{validation.Fire(in.UserID, validation.RuleUserIDOrEmail), apperr.ValidationUserID},
		{validation.Fire(in.Password, validation.RulePassword), apperr.ValidationPassword},
	}
	var codes []apperr.Code
	for _, c := range checks {
		if !c.ok {
			codes = append(codes, c.code)
		}
	}
	if len(codes) > 0 {
		return "", apperr.New(codes...)
	}

	account, findErr := u.accounts.FindByIdentifier(ctx, in.UserID)
	if findErr != nil && !errors.Is(findErr, ErrAccountNotFound) {
		return "", fmt.Errorf("failed to resolve account: %w", findErr)
	}

	passwordHash := dummyPasswordHash
	if findErr == nil {
		passwordHash = account.PasswordHash
	}

	// 常にパスワード比較を実行する
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(in.Password))

	if findErr != nil || compareErr != nil {
		return "", apperr.New(apperr.UnknownUser)
	}

	return u.issueToken(ctx, account.ID)
}

// PasswordReset は識別子からアカウントを解決し、仮パスワードを再発行して
// メールで通知します。メール送信失敗はMAIL_SEND_FAILEDとして呼び出し側に
// 返され、再送は行いません。
func (u *AccountUsecase) PasswordReset(ctx context.Context, identifier string) error {
	if !validation.Fire(identifier, validation.RuleUserIDOrEmail) {
		return apperr.New(apperr.ValidationUserID)
	}

	account, err := u.accounts.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return apperr.New(apperr.UnknownUser)
		}
		return fmt.Errorf("failed to resolve account: %w", err)
	}

	tempPassword := newTempPassword()
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash temporary password: %w", err)
	}
	if err := u.accounts.UpdatePassword(ctx, account.ID, string(hashed)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := u.mailer.SendPasswordReset(ctx, account, tempPassword); err != nil {
		return apperr.New(apperr.MailSendFailed)
	}
	return nil
}

// SignOut は提示されたトークンを失効させます。
// 既に存在しないトークンはエラーにしません。
func (u *AccountUsecase) SignOut(ctx context.Context, tokenID string) error {
	if err := u.tokens.DeleteByID(ctx, tokenID); err != nil && !errors.Is(err, ErrTokenNotFound) {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// issueToken は指定アカウントに紐づく不透明トークンを発行して永続化します。
func (u *AccountUsecase) issueToken(ctx context.Context, accountID uint) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	token := &entity.Token{
		ID:        hex.EncodeToString(buf),
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(u.tokenTTL),
	}
	if err := u.tokens.Create(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token.ID, nil
}

// newTempPassword はPASSWORDルールを満たす仮パスワードを生成します。
func newTempPassword() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:tempPasswordLength]
}
