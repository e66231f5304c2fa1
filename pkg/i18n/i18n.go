package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

type Translator struct {
	bundle *goi18n.Bundle
}

// NewTranslator returns a translator preloaded with the embedded locales.
func NewTranslator() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		name := path.Join("locales", e.Name())
		data, err := locales.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}

	return &Translator{bundle: bundle}, nil
}

// Load adds or overrides messages from a file on disk, e.g. active.es.json.
func (t *Translator) Load(file string) error {
	_, err := t.bundle.LoadMessageFile(file)
	return err
}

// Localize renders messageID for the first supported language in langs.
// Unknown IDs fall back to the ID itself.
func (t *Translator) Localize(messageID string, data map[string]string, langs ...string) string {
	localizer := goi18n.NewLocalizer(t.bundle, langs...)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}
