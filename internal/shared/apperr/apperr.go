// Package apperr はAPIレスポンスで返却するエラーコードの閉じた集合を定義します。
// エラーコードは自由記述メッセージではなく安定した識別子であり、
// クライアント側でのハンドリングに利用されます。
package apperr

import "strings"

// Code はAPIエラーコードを表します。
type Code string

// アカウント関連フローのエラーコード。
const (
	// RequiredParam は必須パラメータが欠落している場合のエラーです。
	RequiredParam Code = "REQUIRED_PARAM"

	// バリデーション失敗時のフィールド別エラー。
	// 集約時のフィールド順は user_id, user_name, email, password, gender, birthday 固定です。
	ValidationUserID   Code = "VALIDATION_USER_ID"
	ValidationUserName Code = "VALIDATION_USER_NAME"
	ValidationEmail    Code = "VALIDATION_EMAIL"
	ValidationPassword Code = "VALIDATION_PASSWORD"
	ValidationGender   Code = "VALIDATION_GENDER"
	ValidationBirthday Code = "VALIDATION_BIRTHDAY"

	// AlreadyUserID / AlreadyEmail は一意性チェックに失敗した場合のエラーです。
	AlreadyUserID Code = "ALREADY_USER_ID"
	AlreadyEmail  Code = "ALREADY_EMAIL"

	// UnknownUser はアカウントの解決または認証に失敗した場合のエラーです。
	// IDの誤りとパスワードの誤りは呼び出し側から区別できません。
	UnknownUser Code = "UNKNOWN_USER"

	// MailSendFailed はパスワード再設定メールの送信に失敗した場合のエラーです。
	MailSendFailed Code = "MAIL_SEND_FAILED"
)

// 子ども関連フローのエラーコード。
const (
	ValidationBloodType   Code = "VALIDATION_BLOOD_TYPE"
	ValidationVaccineName Code = "VALIDATION_VACCINE_NAME"
	ValidationVisitDate   Code = "VALIDATION_VISIT_DATE"
	ValidationAllergyName Code = "VALIDATION_ALLERGY_NAME"
	ValidationBodyHeight  Code = "VALIDATION_BODY_HEIGHT"
	ValidationBodyWeight  Code = "VALIDATION_BODY_WEIGHT"
	ValidationClothesSize Code = "VALIDATION_CLOTHES_SIZE"
	ValidationShoesSize   Code = "VALIDATION_SHOES_SIZE"
	ValidationAddDate     Code = "VALIDATION_ADD_DATE"

	UnknownChild       Code = "UNKNOWN_CHILD"
	UnknownVaccination Code = "UNKNOWN_VACCINATION"
	UnknownAllergy     Code = "UNKNOWN_ALLERGY"
)

// 横断的なエラーコード。
const (
	// Unauthorized はトークン認証に失敗した場合のエラーです。
	Unauthorized Code = "UNAUTHORIZED"

	// InternalServerError は永続化層などの内部障害を示す汎用コードです。
	// ドメインエラーコードとは区別されます。
	InternalServerError Code = "INTERNAL_SERVER_ERROR"
)

// Errors は1回のリクエストで検出されたエラーコードの順序付きリストです。
// ゲート内のすべてのチェックを評価してから失敗コードを集約するため、
// 複数フィールドの失敗を1レスポンスでまとめて返却できます。
type Errors struct {
	Codes []Code
}

// New は指定されたコード列からErrorsを生成します。
func New(codes ...Code) *Errors {
	return &Errors{Codes: codes}
}

// Error はerrorインターフェースを実装します。
func (e *Errors) Error() string {
	parts := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
