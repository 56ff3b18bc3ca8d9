package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "active"). Placeholders are written as {name}.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "type_mismatch":
			tmpl = "フィールド {field} の型が不正です ({expected} を期待, 実際は {got})"
		case "wrong_active_field":
			tmpl = "フィールド {field} は取得できません。現在の設定は {active} です"
		case "unknown_field":
			tmpl = "{struct} に未知のフィールドです: {id}"
		case "no_active_field":
			tmpl = "{struct} に設定済みのフィールドがありません"
		case "protocol_error":
			tmpl = "プロトコルエラー"
		case "comparison_unsupported":
			tmpl = "フィールド {field} は比較できません"
		case "invalid_descriptor":
			tmpl = "フィールド定義が不正です"
		}
	default: // "en"
		switch code {
		case "type_mismatch":
			tmpl = "invalid value for field '{field}': expected {expected}, got {got}"
		case "wrong_active_field":
			tmpl = "cannot get field '{field}' because union is currently set to {active}"
		case "unknown_field":
			tmpl = "field {id} doesn't exist in {struct}"
		case "no_active_field":
			tmpl = "cannot write a {struct} with no set value"
		case "protocol_error":
			tmpl = "malformed stream"
		case "comparison_unsupported":
			tmpl = "field '{field}' has no natural order"
		case "invalid_descriptor":
			tmpl = "invalid field descriptor"
		}
	}
	if tmpl == "" {
		return code
	}
	return expand(tmpl, data)
}

func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
