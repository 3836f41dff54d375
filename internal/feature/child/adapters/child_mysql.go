// Package adapters はchildフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"chirusapo_backend/internal/feature/child/domain/entity"
	"chirusapo_backend/internal/feature/child/usecase"
)

// childMySQL はChildRepositoryインターフェースのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type childMySQL struct {
	db *gorm.DB
}

// childMySQLがChildRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ChildRepository = (*childMySQL)(nil)

// NewChildMySQL は指定されたgorm.DB接続でchildMySQLの新しいインスタンスを生成します。
func NewChildMySQL(db *gorm.DB) *childMySQL {
	return &childMySQL{db: db}
}

// Create は子どもをデータベースに追加します。
// 子どもIDのユニーク制約に抵触した場合、usecase.ErrChildIDTakenを返します。
func (r *childMySQL) Create(ctx context.Context, child *entity.Child) error {
	if err := r.db.WithContext(ctx).Create(child).Error; err != nil {
		// MySQLエラー1062: ユニークキーの重複エントリ
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return usecase.ErrChildIDTaken
		}
		return err
	}
	return nil
}

// ExistsByChildID は指定された子どもIDの未削除レコードが存在するか返します。
func (r *childMySQL) ExistsByChildID(ctx context.Context, childID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Child{}).
		Where("user_id = ? AND delete_flg = ?", childID, false).
		Count(&count).Error
	return count > 0, err
}

// FindByChildID はグループ内の未削除の子どもを取得します。
// 見つからない場合、usecase.ErrChildNotFoundを返します。
func (r *childMySQL) FindByChildID(ctx context.Context, groupID uint, childID string) (*entity.Child, error) {
	var child entity.Child
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ? AND delete_flg = ?", groupID, childID, false).
		First(&child).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrChildNotFound
		}
		return nil, err
	}
	return &child, nil
}

// ListByGroup はグループ内の未削除の子ども一覧を取得します。
func (r *childMySQL) ListByGroup(ctx context.Context, groupID uint) ([]*entity.Child, error) {
	var children []*entity.Child
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND delete_flg = ?", groupID, false).
		Order("id ASC").
		Find(&children).Error
	return children, err
}

// SoftDelete は子どもを論理削除します。
func (r *childMySQL) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Child{}).
		Where("id = ?", id).
		Update("delete_flg", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrChildNotFound
	}
	return nil
}

// AddVaccination は予防接種記録を追加します。
func (r *childMySQL) AddVaccination(ctx context.Context, v *entity.Vaccination) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// DeleteVaccination は予防接種記録を削除します。
func (r *childMySQL) DeleteVaccination(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Vaccination{}, "id = ?", id).Error
}

// VaccinationBelongsToChild は予防接種記録が指定の子どものものか返します。
func (r *childMySQL) VaccinationBelongsToChild(ctx context.Context, childID, vaccinationID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Vaccination{}).
		Where("id = ? AND child_id = ?", vaccinationID, childID).
		Count(&count).Error
	return count > 0, err
}

// ListVaccinations は子どもの予防接種記録一覧を取得します。
func (r *childMySQL) ListVaccinations(ctx context.Context, childID uint) ([]*entity.Vaccination, error) {
	var items []*entity.Vaccination
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// AddAllergy はアレルギー記録を追加します。
func (r *childMySQL) AddAllergy(ctx context.Context, a *entity.Allergy) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// DeleteAllergy はアレルギー記録を削除します。
func (r *childMySQL) DeleteAllergy(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Allergy{}, "id = ?", id).Error
}

// AllergyBelongsToChild はアレルギー記録が指定の子どものものか返します。
func (r *childMySQL) AllergyBelongsToChild(ctx context.Context, childID, allergyID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Allergy{}).
		Where("id = ? AND child_id = ?", allergyID, childID).
		Count(&count).Error
	return count > 0, err
}

// ListAllergies は子どものアレルギー記録一覧を取得します。
func (r *childMySQL) ListAllergies(ctx context.Context, childID uint) ([]*entity.Allergy, error) {
	var items []*entity.Allergy
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// AddGrowthRecord は成長記録を追加します。
func (r *childMySQL) AddGrowthRecord(ctx context.Context, g *entity.GrowthRecord) error {
	return r.db.WithContext(ctx).Create(g).Error
}

// LatestGrowth は記録日が最新の成長記録を取得します。
// 記録がない場合は(nil, nil)を返します。
func (r *childMySQL) LatestGrowth(ctx context.Context, childID uint) (*entity.GrowthRecord, error) {
	var g entity.GrowthRecord
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("add_date DESC, id DESC").
		First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}
