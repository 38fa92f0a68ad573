package i18n

import "strings"

// Translator retrieves localized operator messages for message codes.
// data fills the {name} placeholders of the message (for example "key" or
// "total").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var messages = map[string]map[string]string{
	"en": {
		"no_such_field":   "no such field: {key}",
		"not_modifiable":  "field is not modifiable: {key}",
		"not_assignable":  "{detail}",
		"first_page":      "already at first page",
		"last_page":       "already at last page",
		"eval_failed":     "evaluation failed: {detail}",
		"no_evaluator":    "no evaluator configured; cannot evaluate {input}",
		"bad_input":       "cannot read input: {detail}",
		"bad_argument":    "bad argument: {detail}",
		"set_failed":      "setting {key} failed: {detail}",
		"set_ok":          "{key} set to {value}",
		"no_values":       "; no values",
		"footer":          "Showing fields {start}-{end} out of {total}",
		"page_length":     "page length is {n}",
		"page_length_set": "page length set to {n}",
		"help_header":     "Commands (any unique prefix works; other input is a field key or an expression):",
		"usage":           "usage: {usage}",
	},
	"ja": {
		"no_such_field":   "フィールドがありません: {key}",
		"not_modifiable":  "変更できないフィールドです: {key}",
		"not_assignable":  "代入できません: {detail}",
		"first_page":      "すでに最初のページです",
		"last_page":       "すでに最後のページです",
		"eval_failed":     "評価に失敗しました: {detail}",
		"no_evaluator":    "評価器が設定されていません: {input}",
		"bad_input":       "入力を読み取れません: {detail}",
		"bad_argument":    "引数が不正です: {detail}",
		"set_failed":      "{key} の設定に失敗しました: {detail}",
		"set_ok":          "{key} を {value} に設定しました",
		"no_values":       "; 値なし",
		"footer":          "フィールド {start}-{end} / 全 {total} 件",
		"page_length":     "ページ長は {n} です",
		"page_length_set": "ページ長を {n} に設定しました",
		"help_header":     "コマンド一覧 (一意な前置で指定可。その他の入力はフィールドキーまたは式):",
		"usage":           "使い方: {usage}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := messages[t.lang][code]
	if !ok {
		if msg, ok = messages["en"][code]; !ok {
			return code
		}
	}
	return Expand(msg, data)
}

// Expand replaces each {name} in msg with data[name]. Unknown placeholders are
// left as written.
func Expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// New returns the built-in Translator for lang ("en"/"ja"; anything else is en).
func New(lang string) Translator {
	if _, ok := messages[lang]; !ok {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) { currentTranslator = New(lang) }

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// Current returns the Translator used by T.
func Current() Translator { return currentTranslator }

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
