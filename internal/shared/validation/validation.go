// Package validation は入力文字列に対する書式チェックエンジンを提供します。
// ルールは閉じた集合として定義され、各ルールはgo-playground/validatorの
// タグ式にマッピングされます。
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Rule は名前付きバリデーションルールを表します。
type Rule int

const (
	// RuleUserID はアカウントIDの書式（英数字とアンダースコア、5〜30文字）を検証します。
	RuleUserID Rule = iota
	// RuleUserName は表示名（1〜50文字）を検証します。
	RuleUserName
	// RuleEmail はメールアドレスの書式を検証します。
	RuleEmail
	// RulePassword はパスワード強度（英数字、8〜30文字）を検証します。
	RulePassword
	// RuleGender は性別コード（0/1/2）を検証します。
	RuleGender
	// RuleBirthday は暦日（YYYY-MM-DD）を検証します。
	RuleBirthday
	// RuleUserIDOrEmail はアカウントIDまたはメールアドレスのいずれかに合致するか検証します。
	RuleUserIDOrEmail
	// RuleBloodType は血液型（A/B/O/AB）を検証します。
	RuleBloodType
)

// userIDPattern はアカウントIDの書式です。gin bindingのalphanumは
// アンダースコアを許容しないため、独自タグとして登録します。
var userIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_]{5,30}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// バリデーション関数の登録失敗はタグ名が空の場合のみ発生するため無視します。
	_ = v.RegisterValidation("account_id", func(fl validator.FieldLevel) bool {
		return userIDPattern.MatchString(fl.Field().String())
	})
	return v
}

// ruleTags はルールとvalidatorタグ式の対応表です。
// ここに載っていないルールは常に不合格として扱われます。
var ruleTags = map[Rule]string{
	RuleUserID:        "account_id",
	RuleUserName:      "min=1,max=50",
	RuleEmail:         "email",
	RulePassword:      "alphanum,min=8,max=30",
	RuleGender:        "oneof=0 1 2",
	RuleBirthday:      "datetime=2006-01-02",
	RuleUserIDOrEmail: "account_id|email",
	RuleBloodType:     "oneof=A B O AB",
}

// Fire はvalueが指定ルールを満たすか返します。
// 純粋関数であり、入力の有無の判定（必須チェック）は呼び出し側の責務です。
func Fire(value string, rule Rule) bool {
	tag, ok := ruleTags[rule]
	if !ok {
		return false
	}
	return validate.Var(value, tag) == nil
}
