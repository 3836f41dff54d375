package dto

import "chirusapo_backend/internal/feature/child/usecase"

// VaccinationItem は予防接種記録のレスポンス表現です。
type VaccinationItem struct {
	ID          uint   `json:"id"`
	VaccineName string `json:"vaccine_name"`
	VisitDate   string `json:"visit_date"`
}

// AllergyItem はアレルギー記録のレスポンス表現です。
type AllergyItem struct {
	ID          uint   `json:"id"`
	AllergyName string `json:"allergy_name"`
}

// ChildDetail は子ども1人分のレスポンス表現です。
// 成長記録は記録日が最新の1件のみ含まれます（記録がない場合はnull）。
type ChildDetail struct {
	UserID      string            `json:"user_id"`
	UserName    string            `json:"user_name"`
	Birthday    string            `json:"birthday"`
	Gender      string            `json:"gender"`
	BloodType   string            `json:"blood_type"`
	UserIcon    string            `json:"user_icon"`
	BodyHeight  *float64          `json:"body_height"`
	BodyWeight  *float64          `json:"body_weight"`
	ClothesSize string            `json:"clothes_size"`
	ShoesSize   string            `json:"shoes_size"`
	Vaccination []VaccinationItem `json:"vaccination"`
	Allergy     []AllergyItem     `json:"allergy"`
}

// ChildDetailFromUsecase はユースケースの詳細ビューをレスポンス表現に変換します。
func ChildDetailFromUsecase(d *usecase.ChildDetail) ChildDetail {
	out := ChildDetail{
		UserID:      d.ChildID,
		UserName:    d.Name,
		Birthday:    d.Birthday,
		Gender:      d.Gender,
		BloodType:   d.BloodType,
		UserIcon:    d.IconURL,
		BodyHeight:  d.BodyHeight,
		BodyWeight:  d.BodyWeight,
		ClothesSize: d.ClothesSize,
		ShoesSize:   d.ShoesSize,
		Vaccination: make([]VaccinationItem, 0, len(d.Vaccinations)),
		Allergy:     make([]AllergyItem, 0, len(d.Allergies)),
	}
	for _, v := range d.Vaccinations {
		out.Vaccination = append(out.Vaccination, VaccinationItem{
			ID:          v.ID,
			VaccineName: v.VaccineName,
			VisitDate:   v.VisitDate,
		})
	}
	for _, a := range d.Allergies {
		out.Allergy = append(out.Allergy, AllergyItem{
			ID:          a.ID,
			AllergyName: a.AllergyName,
		})
	}
	return out
}
