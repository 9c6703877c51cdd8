package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want LanguageCode
	}{
		{"turkish", "Bu bir fatura belgesidir ve çok önemli bilgiler için saklanmalıdır", "tr"},
		{"english", "The quick brown fox and the lazy dog said that it is you", "en"},
		{"german", "Der Hund und die Katze sind in den Garten mit sich gelaufen", "de"},
		{"empty", "", "en"},
		{"no stopwords", "xyzzy qwerty", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.text))
		})
	}
}

func TestDetectLanguage_TieKeepsEarlierLanguage(t *testing.T) {
	// One Turkish stopword and one English stopword: Turkish is evaluated
	// first and a later equal score must not displace it.
	assert.Equal(t, "tr", DetectLanguage("bir the"))
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	assert.Len(t, langs, 10)
	assert.Equal(t, "Türkçe", langs["tr"])
	assert.Equal(t, "English", langs["en"])

	// Mutating the copy must not affect later calls.
	langs["tr"] = "changed"
	assert.Equal(t, "Türkçe", Languages()["tr"])
}

func TestSupportedLanguage(t *testing.T) {
	assert.True(t, SupportedLanguage("tr"))
	assert.True(t, SupportedLanguage("zh"))
	assert.False(t, SupportedLanguage("xx"))
}
