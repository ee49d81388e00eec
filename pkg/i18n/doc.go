// Package i18n resolves the visitor language and renders translated messages.
//
// Language negotiation is built on golang.org/x/text/language. A Matcher
// knows the supported languages, with the first one acting as the fallback.
// DefaultLangExtractor looks at the "lang" query parameter, then the "lang"
// cookie, then Accept-Language. Middleware stores the result in the request
// context, where GetLocale reads it.
//
// Translator wraps a go-i18n bundle loaded from TOML catalogs:
//
//	//go:embed locales/*.toml
//	var catalogs embed.FS
//
//	tr, err := i18n.NewTranslator(catalogs, "locales/*.toml", i18n.WithDefaultLanguage("es"))
//	tr.T("en", "contact.sending", nil)                                   // "SENDING..."
//	tr.T("es", "contact.error.template_not_found", map[string]any{"TemplateID": id})
//
// Unknown message ids render as the id itself.
package i18n
