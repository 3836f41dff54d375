package usecase

import (
	"context"

	"chirusapo_backend/internal/feature/child/domain/entity"
)

// ChildRepository は子ども関連エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ChildRepository interface {
	// Create は新しい子どもをストレージに永続化します。
	// 子どもIDのユニーク制約に抵触した場合、ErrChildIDTakenを返します。
	Create(ctx context.Context, child *entity.Child) error

	// ExistsByChildID は指定された子どもIDの未削除レコードが存在するか返します。
	ExistsByChildID(ctx context.Context, childID string) (bool, error)

	// FindByChildID はグループ内の未削除の子どもを取得します。
	// 見つからない場合、ErrChildNotFoundを返します。
	FindByChildID(ctx context.Context, groupID uint, childID string) (*entity.Child, error)

	// ListByGroup はグループ内の未削除の子ども一覧を取得します。
	ListByGroup(ctx context.Context, groupID uint) ([]*entity.Child, error)

	// SoftDelete は子どもを論理削除します。
	SoftDelete(ctx context.Context, id uint) error

	// AddVaccination は予防接種記録を追加します。
	AddVaccination(ctx context.Context, v *entity.Vaccination) error

	// DeleteVaccination は予防接種記録を削除します。
	DeleteVaccination(ctx context.Context, id uint) error

	// VaccinationBelongsToChild は予防接種記録が指定の子どものものか返します。
	VaccinationBelongsToChild(ctx context.Context, childID, vaccinationID uint) (bool, error)

	// ListVaccinations は子どもの予防接種記録一覧を取得します。
	ListVaccinations(ctx context.Context, childID uint) ([]*entity.Vaccination, error)

	// AddAllergy はアレルギー記録を追加します。
	AddAllergy(ctx context.Context, a *entity.Allergy) error

	// DeleteAllergy はアレルギー記録を削除します。
	DeleteAllergy(ctx context.Context, id uint) error

	// AllergyBelongsToChild はアレルギー記録が指定の子どものものか返します。
	AllergyBelongsToChild(ctx context.Context, childID, allergyID uint) (bool, error)

	// ListAllergies は子どものアレルギー記録一覧を取得します。
	ListAllergies(ctx context.Context, childID uint) ([]*entity.Allergy, error)

	// AddGrowthRecord は成長記録を追加します。
	AddGrowthRecord(ctx context.Context, g *entity.GrowthRecord) error

	// LatestGrowth は記録日が最新の成長記録を取得します。記録がない場合は(nil, nil)を返します。
	LatestGrowth(ctx context.Context, childID uint) (*entity.GrowthRecord, error)
}
