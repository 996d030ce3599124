package models

import "golang.org/x/text/language"

// Language is a supported UI language, stored as its BCP 47 tag.
type Language string

// Supported languages.
const (
	English Language = "en-US"
	Polish  Language = "pl"
)

// SupportedLanguages returns the languages offered in the settings panel.
func SupportedLanguages() []Language {
	return []Language{Polish, English}
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == English || l == Polish
}

// Tag returns the BCP 47 tag of the language.
func (l Language) Tag() language.Tag {
	switch l {
	case Polish:
		return language.Polish
	default:
		return language.AmericanEnglish
	}
}

// Name returns the language's own name for display.
func (l Language) Name() string {
	switch l {
	case Polish:
		return "Polski"
	case English:
		return "English"
	default:
		return string(l)
	}
}
