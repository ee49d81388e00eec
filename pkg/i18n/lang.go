package i18n

import (
	"golang.org/x/text/language"
)

// maxAcceptLanguageLength prevents oversized Accept-Language headers from being parsed.
const maxAcceptLanguageLength = 4096

// Matcher negotiates a supported language for a request.
// The first supported tag is the fallback.
type Matcher struct {
	supported []language.Tag
	matcher   language.Matcher
}

// NewMatcher builds a Matcher over supported languages given as BCP 47 codes.
// Codes that do not parse are skipped; at least one must parse.
func NewMatcher(supported ...string) (*Matcher, error) {
	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil, ErrNoSupportedLanguages
	}

	return &Matcher{
		supported: tags,
		matcher:   language.NewMatcher(tags),
	}, nil
}

// MustMatcher is like NewMatcher but panics on error.
func MustMatcher(supported ...string) *Matcher {
	m, err := NewMatcher(supported...)
	if err != nil {
		panic(err)
	}
	return m
}

// Default returns the fallback language code.
func (m *Matcher) Default() string {
	return baseCode(m.supported[0])
}

// Supported returns the supported language codes in configuration order.
func (m *Matcher) Supported() []string {
	codes := make([]string, len(m.supported))
	for i, tag := range m.supported {
		codes[i] = baseCode(tag)
	}
	return codes
}

// Lookup validates a single language code such as "en-GB" and returns the
// supported base code ("en"). ok is false for unsupported or malformed codes.
func (m *Matcher) Lookup(code string) (string, bool) {
	if code == "" || len(code) > maxLangCodeLength {
		return "", false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	_, idx, conf := m.matcher.Match(tag)
	if conf < language.High {
		return "", false
	}
	return baseCode(m.supported[idx]), true
}

// ParseAcceptLanguage picks the best supported language for an Accept-Language
// header, honoring quality values. It returns the default for empty or
// unmatched headers.
func (m *Matcher) ParseAcceptLanguage(header string) string {
	if lang, ok := m.MatchAcceptLanguage(header); ok {
		return lang
	}
	return m.Default()
}

// MatchAcceptLanguage is like ParseAcceptLanguage but reports whether any
// supported language matched instead of falling back to the default.
func (m *Matcher) MatchAcceptLanguage(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}

	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return baseCode(m.supported[idx]), true
}

func baseCode(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
