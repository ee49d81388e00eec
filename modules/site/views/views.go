// Package views renders the site pages.
//
// Templates are html/template sources embedded in the binary and exposed as
// templ components, so handlers deal with templ.Component only.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/velveproduce/site/handler"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("views").ParseFS(templateFS, "templates/*.html"))

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return templates.ExecuteTemplate(w, name, data)
	})
}

// Page is the full HTML document.
func Page(p PageParams) templ.Component { return component("page", p) }

// App is the #app container: header, current page and footer.
func App(p PageParams) templ.Component { return component("app", p) }

// Header is #site-header with the nav and the language toggle.
func Header(p PageParams) templ.Component { return component("header", p) }

// Main is #page, the body of the current page.
func Main(p PageParams) templ.Component { return component("main", p) }

// ContactForm is #contact-form in its current submission state.
func ContactForm(p PageParams) templ.Component { return component("contact_form", p) }

func ErrorPage(p handler.ErrorPageParams) templ.Component { return component("error_page", p) }

func Toast(p handler.ErrorToastParams) templ.Component { return component("toast", p) }
