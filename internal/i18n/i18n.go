// Package i18n loads the embedded message catalogs.
package i18n

import (
	"embed"
	"fmt"
	"path"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/watchfire-io/resmon/internal/models"
)

//go:embed locales/*.yaml
var locales embed.FS

// Fallback is used when a language has no catalog or a key is missing from it.
const Fallback = models.English

var matcher = language.NewMatcher([]language.Tag{
	models.English.Tag(), // first entry is the matcher's default
	models.Polish.Tag(),
})

// Catalog maps message keys to translated text for one language.
type Catalog struct {
	lang     models.Language
	messages map[string]string
	fallback *Catalog
}

// Load returns the catalog for lang. Languages without a catalog resolve to
// the closest supported one, and en-US fills in any missing keys.
func Load(lang models.Language) (*Catalog, error) {
	resolved := resolve(lang)
	c, err := parse(resolved)
	if err != nil {
		return nil, err
	}
	if resolved != Fallback {
		fb, err := parse(Fallback)
		if err != nil {
			return nil, err
		}
		c.fallback = fb
	}
	return c, nil
}

// MustLoad is like Load but panics on error. The catalogs are embedded, so a
// failure here means the binary was built with broken locale files.
func MustLoad(lang models.Language) *Catalog {
	c, err := Load(lang)
	if err != nil {
		panic(err)
	}
	return c
}

func resolve(lang models.Language) models.Language {
	tag, err := language.Parse(string(lang))
	if err != nil {
		return Fallback
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Fallback
	}
	switch idx {
	case 1:
		return models.Polish
	default:
		return models.English
	}
}

func parse(lang models.Language) (*Catalog, error) {
	data, err := locales.ReadFile(path.Join("locales", string(lang)+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("no catalog for %s: %w", lang, err)
	}
	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", lang, err)
	}
	return &Catalog{lang: lang, messages: messages}, nil
}

// Language returns the language the catalog was loaded for.
func (c *Catalog) Language() models.Language {
	return c.lang
}

// Message returns the text for key. Unknown keys are returned as-is.
func (c *Catalog) Message(key string) string {
	if c == nil {
		return key
	}
	if msg, ok := c.messages[key]; ok {
		return msg
	}
	if c.fallback != nil {
		return c.fallback.Message(key)
	}
	return key
}

// Format formats the message for key with fmt.Sprintf.
func (c *Catalog) Format(key string, args ...any) string {
	return fmt.Sprintf(c.Message(key), args...)
}
