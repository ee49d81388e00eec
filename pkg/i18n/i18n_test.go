package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velveproduce/site/pkg/i18n"
)

func TestMatcher(t *testing.T) {
	t.Parallel()

	m := i18n.MustMatcher("es", "en")
	assert.Equal(t, "es", m.Default())
	assert.Equal(t, []string{"es", "en"}, m.Supported())

	t.Run("lookup", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			code string
			want string
			ok   bool
		}{
			{"en", "en", true},
			{"EN-gb", "en", true},
			{"es-MX", "es", true},
			{"fr", "", false},
			{"", "", false},
			{"not a tag!", "", false},
		}
		for _, tt := range tests {
			got, ok := m.Lookup(tt.code)
			assert.Equal(t, tt.ok, ok, tt.code)
			assert.Equal(t, tt.want, got, tt.code)
		}
	})

	t.Run("accept-language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "en", m.ParseAcceptLanguage("en-US,en;q=0.9"))
		assert.Equal(t, "en", m.ParseAcceptLanguage("fr-FR,fr;q=0.9,en;q=0.5"))
		assert.Equal(t, "es", m.ParseAcceptLanguage("fr"))
		assert.Equal(t, "es", m.ParseAcceptLanguage(""))

		_, ok := m.MatchAcceptLanguage("de")
		assert.False(t, ok)
	})

	t.Run("no supported languages", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewMatcher("!!")
		require.ErrorIs(t, err, i18n.ErrNoSupportedLanguages)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	m := i18n.MustMatcher("es", "en")
	var got string
	h := i18n.Middleware(m, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.GetLocale(r.Context())
	}))

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		target string
		want   string
	}{
		{name: "fallback", target: "/", want: "es"},
		{name: "header", target: "/", want: "en", setup: func(r *http.Request) {
			r.Header.Set("Accept-Language", "en-US")
		}},
		{name: "cookie beats header", target: "/", want: "es", setup: func(r *http.Request) {
			r.Header.Set("Accept-Language", "en-US")
			r.AddCookie(&http.Cookie{Name: i18n.DefaultCookieName, Value: "es"})
		}},
		{name: "query beats cookie", target: "/?lang=en", want: "en", setup: func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: i18n.DefaultCookieName, Value: "es"})
		}},
		{name: "invalid query ignored", target: "/?lang=xx", want: "es"},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, tt.target, nil)
		if tt.setup != nil {
			tt.setup(r)
		}
		h.ServeHTTP(httptest.NewRecorder(), r)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestSetLanguageCookie(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	i18n.SetLanguageCookie(w, httptest.NewRequest(http.MethodPost, "/locale", nil), "en")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, i18n.DefaultCookieName, cookies[0].Name)
	assert.Equal(t, "en", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestTranslator(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/active.es.toml": {Data: []byte(`
[contact]
sending = "ENVIANDO..."
template_missing = "Falta la plantilla {{.TemplateID}}"

[footer]
rights = "Todos los derechos reservados"
`)},
		"locales/active.en.toml": {Data: []byte(`
[contact]
sending = "SENDING..."
template_missing = "Missing template {{.TemplateID}}"
`)},
	}

	tr, err := i18n.NewTranslator(fsys, "locales/*.toml", i18n.WithDefaultLanguage("es"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"es", "en"}, tr.Languages())
	assert.Equal(t, "SENDING...", tr.T("en", "contact.sending", nil))
	assert.Equal(t, "ENVIANDO...", tr.T("es", "contact.sending", nil))
	assert.Equal(t, "Missing template template_x",
		tr.T("en", "contact.template_missing", map[string]any{"TemplateID": "template_x"}))

	// falls back to the default language, then to the key
	assert.Equal(t, "Todos los derechos reservados", tr.T("en", "footer.rights", nil))
	assert.Equal(t, "nope.missing", tr.T("en", "nope.missing", nil))

	assert.True(t, tr.Has("en", "contact.sending"))
	assert.False(t, tr.Has("en", "footer.rights"))

	ctx := i18n.SetLocale(context.Background(), "en")
	assert.Equal(t, "SENDING...", tr.Tc(ctx, "contact.sending", nil))
	assert.Equal(t, "ENVIANDO...", tr.Tc(context.Background(), "contact.sending", nil))
}

func TestNewTranslator_NoFiles(t *testing.T) {
	t.Parallel()

	_, err := i18n.NewTranslator(fstest.MapFS{}, "locales/*.toml")
	require.ErrorIs(t, err, i18n.ErrNoMessageFiles)
}
