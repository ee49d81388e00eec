package i18n

import (
	"net/http"
	"time"
)

// DefaultCookieName is the cookie that remembers an explicit language choice.
const DefaultCookieName = "lang"

// Middleware resolves the request language with extr and stores it in the
// request context. When extr finds nothing, the matcher default is used.
func Middleware(m *Matcher, extr LangExtractor) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor(m)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extr(r)
			if lang == "" {
				lang = m.Default()
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}

// SetLanguageCookie persists an explicit language choice for a year.
func SetLanguageCookie(w http.ResponseWriter, r *http.Request, lang string) {
	http.SetCookie(w, &http.Cookie{
		Name:     DefaultCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
