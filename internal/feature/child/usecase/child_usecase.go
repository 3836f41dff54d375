// Package usecase はchildフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chirusapo_backend/internal/feature/child/domain/entity"
	"chirusapo_backend/internal/shared/apperr"
	"chirusapo_backend/internal/shared/validation"
)

// iconBaseURL は子どもアイコンの公開URLのベースです。
// ストレージにはファイル名のみを保存し、レスポンス生成時にURLへ展開します。
const iconBaseURL = "https://storage.googleapis.com/chirusapo/child-user-icon/"

// ChildUsecase は子ども情報のビジネスロジックを実装します。
type ChildUsecase struct {
	children ChildRepository
}

// NewChildUsecase はChildUsecaseの新しいインスタンスを生成します。
func NewChildUsecase(children ChildRepository) *ChildUsecase {
	return &ChildUsecase{children: children}
}

// AddChildInput は子ども追加の入力値です。
type AddChildInput struct {
	ChildID   string
	Name      string
	Birthday  string
	Gender    string
	BloodType string
	Icon      string // 任意。アイコン画像のファイル名
}

// AddVaccinationInput は予防接種追加の入力値です。
type AddVaccinationInput struct {
	VaccineName string
	VisitDate   string
}

// AddGrowthRecordInput は成長記録追加の入力値です。
type AddGrowthRecordInput struct {
	BodyHeight  float64
	BodyWeight  float64
	ClothesSize string
	ShoesSize   string
	AddDate     string
}

// VaccinationItem は予防接種記録のレスポンス表現です。
type VaccinationItem struct {
	ID          uint
	VaccineName string
	VisitDate   string
}

// AllergyItem はアレルギー記録のレスポンス表現です。
type AllergyItem struct {
	ID          uint
	AllergyName string
}

// ChildDetail は子ども1人分の詳細（最新の成長記録・予防接種・アレルギーを含む）です。
type ChildDetail struct {
	ChildID      string
	Name         string
	Birthday     string
	Gender       string
	BloodType    string
	IconURL      string
	BodyHeight   *float64
	BodyWeight   *float64
	ClothesSize  string
	ShoesSize    string
	Vaccinations []VaccinationItem
	Allergies    []AllergyItem
}

// AddChild は子どもを追加します。ゲートは書式→一意性→作成の順に実行されます。
func (u *ChildUsecase) AddChild(ctx context.Context, groupID uint, in AddChildInput) error {
	checks := []struct {
		ok   bool
		code apperr.Code
	}{
		{validation.Fire(in.ChildID, validation.RuleUserID), apperr.ValidationUserID},
		{validation.Fire(in.Name, validation.RuleUserName), apperr.ValidationUserName},
		{validation.Fire(in.Birthday, validation.RuleBirthday), apperr.ValidationBirthday},
		{validation.Fire(in.Gender, validation.RuleGender), apperr.ValidationGender},
		{validation.Fire(in.BloodType, validation.RuleBloodType), apperr.ValidationBloodType},
	}
	var codes []apperr.Code
	for _, c := range checks {
		if !c.ok {
			codes = append(codes, c.code)
		}
	}
	if len(codes) > 0 {
		return apperr.New(codes...)
	}

	taken, err := u.children.ExistsByChildID(ctx, in.ChildID)
	if err != nil {
		return fmt.Errorf("failed to check child id existence: %w", err)
	}
	if taken {
		return apperr.New(apperr.AlreadyUserID)
	}

	child := &entity.Child{
		GroupID:   groupID,
		ChildID:   in.ChildID,
		Name:      in.Name,
		Birthday:  in.Birthday,
		Gender:    in.Gender,
		BloodType: in.BloodType,
		Icon:      in.Icon,
	}
	if err := u.children.Create(ctx, child); err != nil {
		if errors.Is(err, ErrChildIDTaken) {
			return apperr.New(apperr.AlreadyUserID)
		}
		return fmt.Errorf("failed to create child: %w", err)
	}
	return nil
}

// ListChildren はグループ内の子ども一覧を詳細付きで返します。
func (u *ChildUsecase) ListChildren(ctx context.Context, groupID uint) ([]ChildDetail, error) {
	children, err := u.children.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}

	details := make([]ChildDetail, 0, len(children))
	for _, child := range children {
		detail, err := u.buildDetail(ctx, child)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// GetChild はグループ内の子ども1人分の詳細を返します。
func (u *ChildUsecase) GetChild(ctx context.Context, groupID uint, childID string) (*ChildDetail, error) {
	child, err := u.resolveChild(ctx, groupID, childID)
	if err != nil {
		return nil, err
	}
	return u.buildDetail(ctx, child)
}

// DeleteChild は子どもを論理削除します。記録は物理削除しません。
func (u *ChildUsecase) DeleteChild(ctx context.Context, groupID uint, childID string) error {
	child, err := u.resolveChild(ctx, groupID, childID)
	if err != nil {
		return err
	}
	if err := u.children.SoftDelete(ctx, child.ID); err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

// AddVaccination は予防接種記録を追加します。記録日は当日になります。
func (u *ChildUsecase) AddVaccination(ctx context.Context, groupID uint, childID string, in AddVaccinationInput) error {
	checks := []struct {
		ok   bool
		code apperr.Code
	}{
		{validation.Fire(in.VaccineName, validation.RuleUserName), apperr.ValidationVaccineName},
		{validation.Fire(in.VisitDate, validation.RuleBirthday), apperr.ValidationVisitDate},
	}
	var codes []apperr.Code
	for _, c := range checks {
		if !c.ok {
			codes = append(codes, c.code)
		}
	}
	if len(codes) > 0 {
		return apperr.New(codes...)
	}

	child, err := u.resolveChild(ctx, groupID, childID)
	if err != nil {
		return err
	}

	v := &entity.Vaccination{
		ChildID:     child.ID,
		VaccineName: in.VaccineName,
		VisitDate:   in.VisitDate,
		AddDate:     today(),
	}
	if err := u.children.AddVaccination(ctx, v); err != nil {
		return fmt.Errorf("failed to add vaccination: %w", err)
	}
	return nil
}

// DeleteVaccination は予防接種記録を削除します。
// 記録が指定の子どものものでない場合はUNKNOWN_VACCINATIONを返します。
func (u *ChildUsecase) DeleteVaccination(ctx context.Context, groupID uint, childID string, vaccinationID uint) error {
	child, err := u.resolveChild(ctx, groupID, childID)
	if err != nil {
		return err
	}

	owned, err := u.children.VaccinationBelongsToChild(ctx, child.ID, vaccinationID)
	if err != nil {
		return fmt.Errorf("failed to check vaccination ownership: %w", err)
	}
	if !owned {
		return apperr.New(apperr.UnknownVaccination)
	}

	if err := u.children.DeleteVaccination(ctx, vaccinationID); err != nil {
		return fmt.Errorf("failed to delete vaccination: %w", err)
	}
	return nil
}

// AddAllergy はアレルギー記録を追加します。記録日は当日になります。
func (u *ChildUsecase) AddAllergy(ctx context.Context, groupID uint, childID string, allergyName string) error {
	if !validation.Fire(allergyName, validation.RuleUserName) {
		return apperr.New(apperr.ValidationAllergyName)
	}

	child, err := u.resolveChild(ctx, groupID, childID)
	if err != nil {
		return err
	}

	a := &entity.Allergy{
		ChildID:     child.ID,
		AllergyName: allergyName,
		AddDate:     today(),
	}
	if err := u.children.AddAllergy(ctx, a); err != nil {
		return fmt.Errorf("failed to add allergy: %w", err)
	}
	return nil
}

// DeleteAllergy はアレルギー記録を削除します。
// 記録が指定の子どものものでない場合はUNKNOWN_ALLERGYを返します。
func (u *ChildUsecase) DeleteAllergy(ctx context.Context, groupID uint, childID string, allergyID uint) error {
	child, err := u.resolveChild(ctx, groupID, childID)
	if err != nil {
		return err
	}

	owned, err := u.children.AllergyBelongsToChild(ctx, child.ID, allergyID)
	if err != nil {
		return fmt.Errorf("failed to check allergy ownership: %w", err)
	}
	if !owned {
		return apperr.New(apperr.UnknownAllergy)
	}

	if err := u.children.DeleteAllergy(ctx, allergyID); err != nil {
		return fmt.Errorf("failed to delete allergy: %w", err)
	}
	return nil
}

// AddGrowthRecord は成長記録を追加します。
func (u *ChildUsecase) AddGrowthRecord(ctx context.Context, groupID uint, childID string, in AddGrowthRecordInput) error {
	checks := []struct {
		ok   bool
		code apperr.Code
	}{
		{in.BodyHeight > 0, apperr.ValidationBodyHeight},
		{in.BodyWeight > 0, apperr.ValidationBodyWeight},
		{len(in.ClothesSize) <= 10, apperr.ValidationClothesSize},
		{len(in.ShoesSize) <= 10, apperr.ValidationShoesSize},
		{validation.Fire(in.AddDate, validation.RuleBirthday), apperr.ValidationAddDate},
	}
	var codes []apperr.Code
	for _, c := range checks {
		if !c.ok {
			codes = append(codes, c.code)
		}
	}
	if len(codes) > 0 {
		return apperr.New(codes...)
	}

	child, err := u.resolveChild(ctx, groupID, childID)
	if err != nil {
		return err
	}

	g := &entity.GrowthRecord{
		ChildID:     child.ID,
		BodyHeight:  in.BodyHeight,
		BodyWeight:  in.BodyWeight,
		ClothesSize: in.ClothesSize,
		ShoesSize:   in.ShoesSize,
		AddDate:     in.AddDate,
	}
	if err := u.children.AddGrowthRecord(ctx, g); err != nil {
		return fmt.Errorf("failed to add growth record: %w", err)
	}
	return nil
}

// resolveChild はグループ内の子どもを解決します。
// 見つからない場合や他グループの子どもの場合はUNKNOWN_CHILDを返します。
func (u *ChildUsecase) resolveChild(ctx context.Context, groupID uint, childID string) (*entity.Child, error) {
	child, err := u.children.FindByChildID(ctx, groupID, childID)
	if err != nil {
		if errors.Is(err, ErrChildNotFound) {
			return nil, apperr.New(apperr.UnknownChild)
		}
		return nil, fmt.Errorf("failed to resolve child: %w", err)
	}
	return child, nil
}

// buildDetail は子どもの詳細レスポンスを組み立てます。
func (u *ChildUsecase) buildDetail(ctx context.Context, child *entity.Child) (*ChildDetail, error) {
	detail := &ChildDetail{
		ChildID:      child.ChildID,
		Name:         child.Name,
		Birthday:     child.Birthday,
		Gender:       child.Gender,
		BloodType:    child.BloodType,
		IconURL:      iconBaseURL + child.Icon,
		Vaccinations: []VaccinationItem{},
		Allergies:    []AllergyItem{},
	}

	growth, err := u.children.LatestGrowth(ctx, child.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load growth record: %w", err)
	}
	if growth != nil {
		detail.BodyHeight = &growth.BodyHeight
		detail.BodyWeight = &growth.BodyWeight
		detail.ClothesSize = growth.ClothesSize
		detail.ShoesSize = growth.ShoesSize
	}

	vaccinations, err := u.children.ListVaccinations(ctx, child.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vaccinations: %w", err)
	}
	for _, v := range vaccinations {
		detail.Vaccinations = append(detail.Vaccinations, VaccinationItem{
			ID:          v.ID,
			VaccineName: v.VaccineName,
			VisitDate:   v.VisitDate,
		})
	}

	allergies, err := u.children.ListAllergies(ctx, child.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load allergies: %w", err)
	}
	for _, a := range allergies {
		detail.Allergies = append(detail.Allergies, AllergyItem{
			ID:          a.ID,
			AllergyName: a.AllergyName,
		})
	}

	return detail, nil
}

// today は記録日として使用する当日の日付文字列を返します。
func today() string {
	return time.Now().Format("2006-01-02")
}
