// Package entity はchildフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Child は子どもプロフィールを表します。
// GroupIDは所属する家族グループ（＝保護者アカウント）を示します。
type Child struct {
	// ID はサロゲートキーです。
	ID uint `gorm:"primaryKey"`

	// GroupID は所属グループのIDです。
	GroupID uint `gorm:"index;not null;column:group_id"`

	// ChildID はユーザーが選択する子どもIDです。
	ChildID string `gorm:"uniqueIndex;size:30;not null;column:user_id"`

	// Name は表示名です。
	Name string `gorm:"size:50;not null;column:user_name"`

	// Birthday は生年月日（YYYY-MM-DD）です。
	Birthday string `gorm:"size:10;not null"`

	// Gender は性別コード（0/1/2）です。
	Gender string `gorm:"size:1;not null"`

	// BloodType は血液型（A/B/O/AB）です。
	BloodType string `gorm:"size:2;not null"`

	// Icon はアイコン画像のファイル名です。URLはレスポンス生成時に組み立てます。
	Icon string `gorm:"size:255"`

	// DeleteFlg は論理削除フラグです。
	DeleteFlg bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (Child) TableName() string {
	return "account_child"
}

// Vaccination は予防接種記録を表します。
type Vaccination struct {
	ID          uint   `gorm:"primaryKey"`
	ChildID     uint   `gorm:"index;not null"`
	VaccineName string `gorm:"size:50;not null"`
	VisitDate   string `gorm:"size:10;not null"`
	AddDate     string `gorm:"size:10;not null"`
}

// TableName returns the table name for GORM.
func (Vaccination) TableName() string {
	return "child_vaccination"
}

// Allergy はアレルギー記録を表します。
type Allergy struct {
	ID          uint   `gorm:"primaryKey"`
	ChildID     uint   `gorm:"index;not null"`
	AllergyName string `gorm:"size:50;not null"`
	AddDate     string `gorm:"size:10;not null"`
}

// TableName returns the table name for GORM.
func (Allergy) TableName() string {
	return "child_allergy"
}

// GrowthRecord は成長記録を表します。
// 子ども一覧では記録日が最新の1件のみを返します。
type GrowthRecord struct {
	ID          uint    `gorm:"primaryKey"`
	ChildID     uint    `gorm:"index;not null"`
	BodyHeight  float64 `gorm:"not null"`
	BodyWeight  float64 `gorm:"not null"`
	ClothesSize string  `gorm:"size:10"`
	ShoesSize   string  `gorm:"size:10"`
	AddDate     string  `gorm:"size:10;not null"`
}

// TableName returns the table name for GORM.
func (GrowthRecord) TableName() string {
	return "child_growth_history"
}
