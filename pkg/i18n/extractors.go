package i18n

import (
	"net/http"
	"strings"
)

// maxLangCodeLength is the maximum allowed length for a language code (RFC 5646).
const maxLangCodeLength = 35

// LangExtractor extracts a supported language code from a request.
// It returns an empty string when the request carries no usable preference.
type LangExtractor func(r *http.Request) string

// ExtractorConfig holds configuration for the language extractor
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
}

// ExtractorOption configures the language extractor
type ExtractorOption func(*ExtractorConfig)

// WithCookieName sets the cookie name to check for language preference
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// WithQueryParamName sets the query parameter name to check for language
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// DefaultLangExtractor checks sources in priority order:
//  1. Query parameter (default "lang")
//  2. Cookie (default "lang")
//  3. Accept-Language header
//
// Values are validated against m. An Accept-Language header that matches
// nothing yields an empty string so the middleware applies its fallback.
func DefaultLangExtractor(m *Matcher, opts ...ExtractorOption) LangExtractor {
	config := &ExtractorConfig{
		CookieName:     DefaultCookieName,
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(config)
	}

	return func(r *http.Request) string {
		if config.QueryParamName != "" {
			if lang, ok := m.Lookup(strings.TrimSpace(r.URL.Query().Get(config.QueryParamName))); ok {
				return lang
			}
		}

		if config.CookieName != "" {
			if cookie, err := r.Cookie(config.CookieName); err == nil {
				if lang, ok := m.Lookup(strings.TrimSpace(cookie.Value)); ok {
					return lang
				}
			}
		}

		if header := r.Header.Get("Accept-Language"); header != "" {
			if lang, ok := m.MatchAcceptLanguage(header); ok {
				return lang
			}
		}

		return ""
	}
}
