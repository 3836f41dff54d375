// Package dto はchildフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
// 必須チェックを「キーの欠落」と「空文字列」で区別するため、
// フィールドはポインタ型で宣言します（キー欠落 → nil）。
package dto

// AddChildRequest は子ども追加エンドポイントのリクエストボディを表します。
// user_iconのみ任意です。
type AddChildRequest struct {
	UserID    *string `json:"user_id"`
	UserName  *string `json:"user_name"`
	Birthday  *string `json:"birthday"`
	Gender    *string `json:"gender"`
	BloodType *string `json:"blood_type"`
	UserIcon  *string `json:"user_icon"`
}

// AddVaccinationRequest は予防接種追加エンドポイントのリクエストボディを表します。
type AddVaccinationRequest struct {
	VaccineName *string `json:"vaccine_name"`
	VisitDate   *string `json:"visit_date"`
}

// AddAllergyRequest はアレルギー追加エンドポイントのリクエストボディを表します。
type AddAllergyRequest struct {
	AllergyName *string `json:"allergy_name"`
}

// AddGrowthRecordRequest は成長記録追加エンドポイントのリクエストボディを表します。
type AddGrowthRecordRequest struct {
	BodyHeight  *float64 `json:"body_height"`
	BodyWeight  *float64 `json:"body_weight"`
	ClothesSize *string  `json:"clothes_size"`
	ShoesSize   *string  `json:"shoes_size"`
	AddDate     *string  `json:"add_date"`
}
