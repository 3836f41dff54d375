package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"chirusapo_backend/internal/feature/account/domain/entity"
	"chirusapo_backend/internal/feature/account/usecase"
)

// tokenMySQL is a MySQL implementation of the TokenRepository interface.
// It serves as a fallback when Redis is unavailable.
type tokenMySQL struct {
	db *gorm.DB
}

// Compile-time check to ensure tokenMySQL implements TokenRepository.
var _ usecase.TokenRepository = (*tokenMySQL)(nil)

// NewTokenMySQL creates a new instance of tokenMySQL.
func NewTokenMySQL(db *gorm.DB) *tokenMySQL {
	return &tokenMySQL{db: db}
}

// Create persists a new token to the database.
func (r *tokenMySQL) Create(ctx context.Context, token *entity.Token) error {
	model := TokenModelFromEntity(token)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID retrieves a token by its value.
func (r *tokenMySQL) FindByID(ctx context.Context, id string) (*entity.Token, error) {
	var model TokenModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTokenNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// DeleteByID removes a token from the database.
// Deleting a token that does not exist is not an error.
func (r *tokenMySQL) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TokenModel{}, "id = ?", id).Error
}
