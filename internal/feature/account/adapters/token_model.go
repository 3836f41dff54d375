package adapters

import (
	"time"

	"chirusapo_backend/internal/feature/account/domain/entity"
)

// TokenModel is the GORM model for the tokens table.
type TokenModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	AccountID uint      `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (TokenModel) TableName() string {
	return "tokens"
}

// ToEntity converts the GORM model to a domain entity.
func (m *TokenModel) ToEntity() *entity.Token {
	return &entity.Token{
		ID:        m.ID,
		AccountID: m.AccountID,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

// TokenModelFromEntity converts a domain entity to a GORM model.
func TokenModelFromEntity(t *entity.Token) *TokenModel {
	return &TokenModel{
		ID:        t.ID,
		AccountID: t.AccountID,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}
