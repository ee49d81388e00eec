package content

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Locale is a supported display language.
type Locale string

const (
	ES Locale = "es"
	EN Locale = "en"
)

// Default is the primary locale of the site.
const Default = ES

// Locales lists the supported locales, primary first.
var Locales = []Locale{ES, EN}

// ParseLocale accepts a language code or tag such as "en" or "es-MX".
func ParseLocale(s string) (Locale, bool) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	l := Locale(base.String())
	return l, l.Valid()
}

func (l Locale) Valid() bool { return l == ES || l == EN }

func (l Locale) String() string { return string(l) }

func (l Locale) Tag() language.Tag { return language.Make(string(l)) }

// Other returns the opposite locale. Unknown values map to the default.
func (l Locale) Other() Locale {
	switch l {
	case ES:
		return EN
	case EN:
		return ES
	default:
		return Default
	}
}

// Label is the short upper case code shown on the language toggle.
func (l Locale) Label() string { return strings.ToUpper(string(l)) }

// Name is the language name in the language itself, e.g. "español".
func (l Locale) Name() string {
	return display.Self.Name(l.Tag())
}
