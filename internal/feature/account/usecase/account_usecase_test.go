package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"chirusapo_backend/internal/feature/account/domain/entity"
	"chirusapo_backend/internal/shared/apperr"
	"chirusapo_backend/internal/shared/validation"
)

// mockAccountRepository is a mock implementation of the AccountRepository interface.
// It simulates database operations during testing.
type mockAccountRepository struct {
	ExistsByUserIDFunc   func(userID string) (bool, error)
	ExistsByEmailFunc    func(email string) (bool, error)
	CreateFunc           func(account *entity.Account) error
	FindByIdentifierFunc func(identifier string) (*entity.Account, error)
	UpdatePasswordFunc   func(accountID uint, passwordHash string) error
}

func (m *mockAccountRepository) ExistsByUserID(_ context.Context, userID string) (bool, error) {
	if m.ExistsByUserIDFunc != nil {
		return m.ExistsByUserIDFunc(userID)
	}
	return false, nil // Default: not taken
}

func (m *mockAccountRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(email)
	}
	return false, nil // Default: not taken
}

func (m *mockAccountRepository) Create(_ context.Context, account *entity.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(account)
	}
	account.ID = 1 // Default: success
	return nil
}

func (m *mockAccountRepository) FindByIdentifier(_ context.Context, identifier string) (*entity.Account, error) {
	if m.FindByIdentifierFunc != nil {
		return m.FindByIdentifierFunc(identifier)
	}
	return nil, ErrAccountNotFound // Default: not found
}

func (m *mockAccountRepository) UpdatePassword(_ context.Context, accountID uint, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(accountID, passwordHash)
	}
	return nil // Default: success
}

// mockTokenRepository is a mock implementation of the TokenRepository interface.
type mockTokenRepository struct {
	CreateFunc   func(token *entity.Token) error
	FindByIDFunc func(id string) (*entity.Token, error)
	DeleteFunc   func(id string) error
}

func (m *mockTokenRepository) Create(_ context.Context, token *entity.Token) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(token)
	}
	return nil // Default: success
}

func (m *mockTokenRepository) FindByID(_ context.Context, id string) (*entity.Token, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, ErrTokenNotFound
}

func (m *mockTokenRepository) DeleteByID(_ context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

// mockMailer is a mock implementation of the Mailer interface.
type mockMailer struct {
	SendPasswordResetFunc func(account *entity.Account, tempPassword string) error
}

func (m *mockMailer) SendPasswordReset(_ context.Context, account *entity.Account, tempPassword string) error {
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(account, tempPassword)
	}
	return nil // Default: success
}

func newUsecase(accounts *mockAccountRepository, tokens *mockTokenRepository, mailer *mockMailer) *AccountUsecase {
	return NewAccountUsecase(accounts, tokens, mailer, time.Hour)
}

// flowCodes extracts the aggregated error codes from a flow error.
func flowCodes(t *testing.T, err error) []apperr.Code {
	t.Helper()
	var flowErr *apperr.Errors
	if !errors.As(err, &flowErr) {
		t.Fatalf("expected *apperr.Errors, got %T: %v", err, err)
	}
	return flowErr.Codes
}

func assertCodes(t *testing.T, got, want []apperr.Code) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected codes %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected codes %v, got %v", want, got)
		}
	}
}

func validSignUpInput() SignUpInput {
	return SignUpInput{
		UserID:   "taro_2020",
		UserName: "たろう",
		Email:    "taro@example.com",
		Password: "password123",
		Gender:   "0",
		Birthday: "1990-04-01",
	}
}

func TestAccountUsecase_SignUp(t *testing.T) {
	t.Run("successful signup issues a token", func(t *testing.T) {
		var created *entity.Account
		var issued *entity.Token

		mockRepo := &mockAccountRepository{
			CreateFunc: func(account *entity.Account) error {
				// パスワードがハッシュ化されていることを検証
				if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				account.ID = 42
				created = account
				return nil
			},
		}
		mockTokens := &mockTokenRepository{
			CreateFunc: func(token *entity.Token) error {
				issued = token
				return nil
			},
		}

		uc := newUsecase(mockRepo, mockTokens, &mockMailer{})
		token, err := uc.SignUp(context.Background(), validSignUpInput())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created == nil {
			t.Fatal("account was not created")
		}
		if len(token) != 64 {
			t.Errorf("expected 64-character token, got %d characters", len(token))
		}
		if issued == nil || issued.AccountID != 42 {
			t.Errorf("token is not bound to the created account: %+v", issued)
		}
		if issued.ID != token {
			t.Error("returned token does not match the stored token")
		}
	})

	t.Run("multiple malformed fields are aggregated in field order", func(t *testing.T) {
		in := validSignUpInput()
		in.UserID = "ab"           // 短すぎる
		in.Email = "not-an-email"  // 書式不正
		in.Gender = "9"            // 未定義コード

		repoCalled := false
		mockRepo := &mockAccountRepository{
			ExistsByUserIDFunc: func(string) (bool, error) {
				repoCalled = true
				return false, nil
			},
		}

		uc := newUsecase(mockRepo, &mockTokenRepository{}, &mockMailer{})
		_, err := uc.SignUp(context.Background(), in)

		assertCodes(t, flowCodes(t, err), []apperr.Code{
			apperr.ValidationUserID,
			apperr.ValidationEmail,
			apperr.ValidationGender,
		})
		if repoCalled {
			t.Error("uniqueness check must not run when the format gate fails")
		}
	})

	t.Run("both user_id and email taken are reported together", func(t *testing.T) {
		createCalled := false
		mockRepo := &mockAccountRepository{
			ExistsByUserIDFunc: func(string) (bool, error) { return true, nil },
			ExistsByEmailFunc:  func(string) (bool, error) { return true, nil },
			CreateFunc: func(*entity.Account) error {
				createCalled = true
				return nil
			},
		}

		uc := newUsecase(mockRepo, &mockTokenRepository{}, &mockMailer{})
		_, err := uc.SignUp(context.Background(), validSignUpInput())

		assertCodes(t, flowCodes(t, err), []apperr.Code{apperr.AlreadyUserID, apperr.AlreadyEmail})
		if createCalled {
			t.Error("account must not be created when the uniqueness gate fails")
		}
	})

	t.Run("lost race maps constraint violation to ALREADY code", func(t *testing.T) {
		// 事前チェックは通過するが、挿入時にユニーク制約に抵触するケース
		mockRepo := &mockAccountRepository{
			CreateFunc: func(*entity.Account) error { return ErrUserIDTaken },
		}

		uc := newUsecase(mockRepo, &mockTokenRepository{}, &mockMailer{})
		_, err := uc.SignUp(context.Background(), validSignUpInput())

		assertCodes(t, flowCodes(t, err), []apperr.Code{apperr.AlreadyUserID})
	})

	t.Run("repository failure is not a flow error", func(t *testing.T) {
		dbErr := errors.New("connection lost")
		mockRepo := &mockAccountRepository{
			ExistsByUserIDFunc: func(string) (bool, error) { return false, dbErr },
		}

		uc := newUsecase(mockRepo, &mockTokenRepository{}, &mockMailer{})
		_, err := uc.SignUp(context.Background(), validSignUpInput())

		if !errors.Is(err, dbErr) {
			t.Fatalf("expected wrapped repository error, got %v", err)
		}
		var flowErr *apperr.Errors
		if errors.As(err, &flowErr) {
			t.Error("infrastructure failure must not be reported as a domain error code")
		}
	})
}

func TestAccountUsecase_SignIn(t *testing.T) {
	password := "password123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testAccount := &entity.Account{
		ID:           1,
		UserID:       "taro_2020",
		Email:        "taro@example.com",
		PasswordHash: string(hashed),
	}

	t.Run("successful signin", func(t *testing.T) {
		mockRepo := &mockAccountRepository{
			FindByIdentifierFunc: func(identifier string) (*entity.Account, error) {
				if identifier == testAccount.UserID {
					return testAccount, nil
				}
				return nil, ErrAccountNotFound
			},
		}
		var issued *entity.Token
		mockTokens := &mockTokenRepository{
			CreateFunc: func(token *entity.Token) error {
				issued = token
				return nil
			},
		}

		uc := newUsecase(mockRepo, mockTokens, &mockMailer{})
		token, err := uc.SignIn(context.Background(), SignInInput{UserID: "taro_2020", Password: password})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token == "" || issued == nil || issued.AccountID != testAccount.ID {
			t.Errorf("token is not bound to the resolved account")
		}
	})

	t.Run("unknown identifier and wrong password are indistinguishable", func(t *testing.T) {
		mockRepo := &mockAccountRepository{
			FindByIdentifierFunc: func(identifier string) (*entity.Account, error) {
				if identifier == testAccount.UserID {
					return testAccount, nil
				}
				return nil, ErrAccountNotFound
			},
		}
		uc := newUsecase(mockRepo, &mockTokenRepository{}, &mockMailer{})

		// 存在しないID
		_, err := uc.SignIn(context.Background(), SignInInput{UserID: "nobody_2020", Password: password})
		assertCodes(t, flowCodes(t, err), []apperr.Code{apperr.UnknownUser})

		// 正しいID・誤ったパスワード
		_, err = uc.SignIn(context.Background(), SignInInput{UserID: "taro_2020", Password: "wrongpass123"})
		assertCodes(t, flowCodes(t, err), []apperr.Code{apperr.UnknownUser})
	})

	t.Run("both fields malformed are aggregated", func(t *testing.T) {
		uc := newUsecase(&mockAccountRepository{}, &mockTokenRepository{}, &mockMailer{})

		_, err := uc.SignIn(context.Background(), SignInInput{UserID: "ab", Password: "short"})

		assertCodes(t, flowCodes(t, err), []apperr.Code{apperr.ValidationUserID, apperr.ValidationPassword})
	})

	t.Run("email works as identifier", func(t *testing.T) {
		mockRepo := &mockAccountRepository{
			FindByIdentifierFunc: func(identifier string) (*entity.Account, error) {
				if identifier == testAccount.Email {
					return testAccount, nil
				}
				return nil, ErrAccountNotFound
			},
		}
		uc := newUsecase(mockRepo, &mockTokenRepository{}, &mockMailer{})

		token, err := uc.SignIn(context.Background(), SignInInput{UserID: "taro@example.com", Password: password})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token == "" {
			t.Error("expected a token")
		}
	})
}

func TestAccountUsecase_PasswordReset(t *testing.T) {
	testAccount := &entity.Account{
		ID:       1,
		UserID:   "taro_2020",
		UserName: "たろう",
		Email:    "taro@example.com",
	}

	t.Run("malformed identifier always yields the single validation code", func(t *testing.T) {
		uc := newUsecase(&mockAccountRepository{}, &mockTokenRepository{}, &mockMailer{})

		err := uc.PasswordReset(context.Background(), "ab")

		assertCodes(t, flowCodes(t, err), []apperr.Code{apperr.ValidationUserID})
	})

	t.Run("unresolved identifier yields UNKNOWN_USER", func(t *testing.T) {
		// 論理削除済みアカウントはFindByIdentifierの対象外のため、
		// 削除済みの識別子もこの経路でUNKNOWN_USERになる
		uc := newUsecase(&mockAccountRepository{}, &mockTokenRepository{}, &mockMailer{})

		err := uc.PasswordReset(context.Background(), "deleted_user")

		assertCodes(t, flowCodes(t, err), []apperr.Code{apperr.UnknownUser})
	})

	t.Run("successful reset rotates the password and mails it", func(t *testing.T) {
		var storedHash string
		var mailedPassword string

		mockRepo := &mockAccountRepository{
			FindByIdentifierFunc: func(string) (*entity.Account, error) { return testAccount, nil },
			UpdatePasswordFunc: func(accountID uint, passwordHash string) error {
				if accountID != testAccount.ID {
					t.Errorf("unexpected account id: %d", accountID)
				}
				storedHash = passwordHash
				return nil
			},
		}
		mailer := &mockMailer{
			SendPasswordResetFunc: func(account *entity.Account, tempPassword string) error {
				mailedPassword = tempPassword
				return nil
			},
		}

		uc := newUsecase(mockRepo, &mockTokenRepository{}, mailer)
		if err := uc.PasswordReset(context.Background(), "taro_2020"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if mailedPassword == "" {
			t.Fatal("temporary password was not mailed")
		}
		// 仮パスワードはPASSWORDルールを満たし、保存済みハッシュと一致する
		if !validation.Fire(mailedPassword, validation.RulePassword) {
			t.Errorf("temporary password %q does not satisfy the password rule", mailedPassword)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(mailedPassword)); err != nil {
			t.Errorf("stored hash does not match the mailed password: %v", err)
		}
	})

	t.Run("mail delivery failure yields MAIL_SEND_FAILED", func(t *testing.T) {
		mockRepo := &mockAccountRepository{
			FindByIdentifierFunc: func(string) (*entity.Account, error) { return testAccount, nil },
		}
		mailer := &mockMailer{
			SendPasswordResetFunc: func(*entity.Account, string) error {
				return errors.New("smtp: connection refused")
			},
		}

		uc := newUsecase(mockRepo, &mockTokenRepository{}, mailer)
		err := uc.PasswordReset(context.Background(), "taro_2020")

		assertCodes(t, flowCodes(t, err), []apperr.Code{apperr.MailSendFailed})
	})
}

func TestAccountUsecase_SignOut(t *testing.T) {
	t.Run("deletes the presented token", func(t *testing.T) {
		var deleted string
		mockTokens := &mockTokenRepository{
			DeleteFunc: func(id string) error {
				deleted = id
				return nil
			},
		}

		uc := newUsecase(&mockAccountRepository{}, mockTokens, &mockMailer{})
		if err := uc.SignOut(context.Background(), "token-value"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted != "token-value" {
			t.Errorf("expected token-value to be deleted, got %q", deleted)
		}
	})

	t.Run("missing token is not an error", func(t *testing.T) {
		mockTokens := &mockTokenRepository{
			DeleteFunc: func(string) error { return ErrTokenNotFound },
		}

		uc := newUsecase(&mockAccountRepository{}, mockTokens, &mockMailer{})
		if err := uc.SignOut(context.Background(), "gone"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
