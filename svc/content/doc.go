// Package content holds the compiled-in copy of the site in every supported
// locale.
//
// Each locale has a YAML file under locales/ that decodes into a Bundle:
// navigation labels, hero, history, services, products, FAQ, contact and
// footer strings. The files are embedded and decoded once:
//
//	catalog := content.MustLoad()
//	b := catalog.Bundle(content.EN)
//	b.Hero.Title // "From Spanish Fields to the Heart of the World"
//
// Locale wraps golang.org/x/text/language so codes from cookies, query
// parameters and Accept-Language headers map onto ES or EN.
package content
