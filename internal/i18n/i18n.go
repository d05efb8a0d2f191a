package i18n

import (
	"encoding/json"
	"fmt"
	"strings"

	"satta-board/internal/i18n/locales"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var bundle *i18n.Bundle

// Init initializes the i18n bundle.
func Init() error {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	languages := []string{"en-US", "hi-IN"}
	for _, lang := range languages {
		if err := loadMessageFile(lang); err != nil {
			return fmt.Errorf("failed to load language file %s: %w", lang, err)
		}
	}
	return nil
}

// loadMessageFile registers one language's messages.
func loadMessageFile(lang string) error {
	messages := getMessages(lang)
	for id, msg := range messages {
		bundle.AddMessages(language.MustParse(lang), &i18n.Message{
			ID:    id,
			Other: msg,
		})
	}
	return nil
}

// GetLocalizer gets a localizer for an Accept-Language header value.
func GetLocalizer(acceptLang string) *i18n.Localizer {
	langs := parseAcceptLanguage(acceptLang)
	if len(langs) == 0 {
		langs = []string{"en-US"}
	}
	return i18n.NewLocalizer(bundle, langs...)
}

// parseAcceptLanguage takes the first language of an Accept-Language header.
func parseAcceptLanguage(acceptLang string) []string {
	if acceptLang == "" {
		return nil
	}
	parts := strings.Split(acceptLang, ",")
	if len(parts) == 0 {
		return nil
	}
	lang := strings.TrimSpace(parts[0])
	if idx := strings.Index(lang, ";"); idx > 0 {
		lang = lang[:idx]
	}
	return []string{normalizeLanguageCode(lang)}
}

// normalizeLanguageCode maps common language codes onto supported locales.
func normalizeLanguageCode(lang string) string {
	switch l := strings.ToLower(strings.TrimSpace(lang)); {
	case l == "hi" || l == "hi-in" || strings.HasPrefix(l, "hi"):
		return "hi-IN"
	case l == "en" || l == "en-us" || strings.HasPrefix(l, "en"):
		return "en-US"
	default:
		return "en-US"
	}
}

// T translates a message.
func T(localizer *i18n.Localizer, msgID string, data ...map[string]any) string {
	config := &i18n.LocalizeConfig{MessageID: msgID}
	if len(data) > 0 {
		config.TemplateData = data[0]
	}

	msg, err := localizer.Localize(config)
	if err != nil {
		return msgID
	}
	return msg
}

// getMessages returns the message table for a locale.
func getMessages(lang string) map[string]string {
	switch lang {
	case "hi-IN":
		return locales.MessagesHiIN
	default:
		return locales.MessagesEnUS
	}
}
