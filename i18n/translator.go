package i18n

import "sync/atomic"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			if exp := data["expected"]; exp != "" {
				return "型が不正です (期待: " + exp + ")"
			}
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "invalid_literal":
			return "リテラル値が一致しません"
		case "invalid_union":
			return "どの候補にも一致しません"
		case "invalid_format":
			return "形式が不正です"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if exp := data["expected"]; exp != "" {
				return "invalid type: expected " + exp
			}
			return "invalid type"
		case "required":
			return "required property missing"
		case "unknown_key":
			return "unknown key"
		case "invalid_literal":
			if exp := data["expected"]; exp != "" {
				return "invalid literal: expected " + exp
			}
			return "invalid literal"
		case "invalid_union":
			return "no union option matched"
		case "invalid_format":
			if f := data["format"]; f != "" {
				return "invalid format: expected " + f
			}
			return "invalid format"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var currentTranslator atomic.Value

func init() { currentTranslator.Store(Translator(dictTranslator{lang: "en"})) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator.Store(Translator(dictTranslator{lang: lang}))
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	currentTranslator.Store(tr)
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Load().(Translator).Message(code, data)
}
