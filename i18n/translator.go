// Package i18n provides localized titles for problem responses.
package i18n

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// New returns the built-in dictionary Translator for lang ("en"/"ja").
// Unknown languages fall back to English.
func New(lang string) Translator {
	if lang != "ja" {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_input":
			return "パッチドキュメントが不正です"
		case "malformed_field":
			return "フィールドの値が不正です"
		case "validation_failed":
			return "1 つ以上の検証エラーが発生しました"
		case "not_supported":
			if f := data["field"]; f != "" {
				return f + " の更新はまだサポートされていません"
			}
			return "未実装です"
		case "not_found":
			return "見つかりません"
		case "unsupported_media_type":
			return "サポートされていないメディアタイプです"
		case "bad_request":
			return "リクエストが不正です"
		case "service_unavailable":
			return "リクエストは中断されました"
		case "internal":
			return "リクエストの処理中にエラーが発生しました"
		}
	default: // "en"
		switch code {
		case "invalid_input":
			return "Invalid patch document"
		case "malformed_field":
			return "Malformed field value"
		case "validation_failed":
			return "One or more validation errors occurred."
		case "not_supported":
			if f := data["field"]; f != "" {
				return "Updating " + f + " is not yet supported"
			}
			return "Not Implemented"
		case "not_found":
			return "Not Found"
		case "unsupported_media_type":
			return "Unsupported Media Type"
		case "bad_request":
			return "Bad Request"
		case "service_unavailable":
			return "The request was aborted"
		case "internal":
			return "An error occurred while processing your request"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the package-level Translator language ("en"/"ja").
func SetLanguage(lang string) { currentTranslator = New(lang) }

// SetTranslator replaces the package-level Translator implementation.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the package-level Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
