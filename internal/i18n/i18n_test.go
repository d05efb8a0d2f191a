package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestNormalizeLanguageCode(t *testing.T) {
	cases := map[string]string{
		"hi":        "hi-IN",
		"hi-IN":     "hi-IN",
		"hi-Latn":   "hi-IN",
		"en":        "en-US",
		"en-GB":     "en-US",
		"fr":        "en-US",
		"":          "en-US",
		" EN-us ":   "en-US",
	}
	for input, want := range cases {
		assert.Equal(t, want, normalizeLanguageCode(input), "input %q", input)
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	assert.Nil(t, parseAcceptLanguage(""))
	assert.Equal(t, []string{"hi-IN"}, parseAcceptLanguage("hi-IN,hi;q=0.9,en;q=0.8"))
	assert.Equal(t, []string{"en-US"}, parseAcceptLanguage("en-GB;q=0.9"))
}

func TestTranslation(t *testing.T) {
	en := GetLocalizer("en-US")
	hi := GetLocalizer("hi")

	enMsg := T(en, "common.success")
	hiMsg := T(hi, "common.success")
	require.NotEmpty(t, enMsg)
	require.NotEmpty(t, hiMsg)
	assert.NotEqual(t, enMsg, hiMsg)
}

func TestTranslationFallsBackToMessageID(t *testing.T) {
	localizer := GetLocalizer("en-US")
	assert.Equal(t, "no.such.key", T(localizer, "no.such.key"))
}
