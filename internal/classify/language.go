package classify

import "strings"

// LanguageCode is an ISO 639-1 style language code.
type LanguageCode = string

// FallbackLanguage is returned when no stopword list matches.
const FallbackLanguage LanguageCode = "en"

// languageOrder fixes the evaluation order of stopword lists. Detection is
// first-wins on ties, so the order is part of the contract.
var languageOrder = []LanguageCode{"tr", "en", "de", "fr", "es", "it", "pt", "ru", "ar", "zh"}

// stopwords maps each supported language to a small fixed list of its most
// common words. Matching is plain substring containment over the lowercased
// input, which is crude but adequate for routing documents to the right
// keyword tables.
var stopwords = map[LanguageCode][]string{
	"tr": {"ve", "bir", "bu", "ile", "için", "olan", "çok", "daha", "şu", "kadar"},
	"en": {"the", "and", "a", "to", "of", "in", "is", "it", "you", "that"},
	"de": {"der", "die", "und", "in", "den", "von", "zu", "das", "mit", "sich"},
	"fr": {"le", "de", "et", "à", "un", "il", "être", "ne", "en", "avoir"},
	"es": {"el", "la", "de", "que", "y", "a", "en", "un", "ser", "se"},
	"it": {"il", "di", "e", "la", "a", "che", "per", "un", "in", "con"},
	"pt": {"o", "de", "e", "a", "do", "que", "em", "um", "para", "com"},
	"ru": {"и", "в", "не", "на", "я", "быть", "с", "а", "как", "его"},
	"ar": {"في", "من", "إلى", "عن", "مع", "هذا", "هذه", "التي", "كان", "على"},
	"zh": {"的", "是", "在", "我", "有", "和", "就", "不", "人", "都"},
}

// languageNames maps language codes to display names for the languages
// endpoint.
var languageNames = map[LanguageCode]string{
	"tr": "Türkçe",
	"en": "English",
	"de": "Deutsch",
	"fr": "Français",
	"es": "Español",
	"it": "Italiano",
	"pt": "Português",
	"ru": "Русский",
	"ar": "العربية",
	"zh": "中文",
}

// DetectLanguage guesses the language of text by counting stopword hits per
// language and returning the highest scorer. Always returns a language code;
// ties and zero hits fall back to FallbackLanguage.
func DetectLanguage(text string) LanguageCode {
	lower := strings.ToLower(text)

	detected := FallbackLanguage
	maxScore := 0
	for _, lang := range languageOrder {
		score := 0
		for _, word := range stopwords[lang] {
			if strings.Contains(lower, word) {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			detected = lang
		}
	}
	return detected
}

// Languages returns the supported language code → display name mapping.
// The returned map is a copy.
func Languages() map[LanguageCode]string {
	out := make(map[LanguageCode]string, len(languageNames))
	for code, name := range languageNames {
		out[code] = name
	}
	return out
}

// SupportedLanguage reports whether code is a known language code.
func SupportedLanguage(code LanguageCode) bool {
	_, ok := languageNames[code]
	return ok
}
