package views_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velveproduce/site/handler"
	"github.com/velveproduce/site/modules/site/views"
	"github.com/velveproduce/site/pkg/validator"
	"github.com/velveproduce/site/svc/contact"
	"github.com/velveproduce/site/svc/content"
	"github.com/velveproduce/site/svc/navigation"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func params(state navigation.State, form views.ContactParams) views.PageParams {
	bundle := content.MustLoad().Bundle(state.Locale)
	return views.NewPageParams(state, bundle, form, views.DefaultSite(), func(key string, data map[string]any) string {
		if id, ok := data["TemplateID"]; ok {
			return key + ":" + id.(string)
		}
		return key
	})
}

func TestContactFormStates(t *testing.T) {
	t.Parallel()

	state := navigation.State{Locale: content.EN, Page: navigation.Contact}
	fields := contact.Fields{Name: "Ana", Email: "ana@example.com", Message: "<b>hola</b>"}

	t.Run("sending", func(t *testing.T) {
		t.Parallel()
		doc := render(t, views.ContactForm(params(state, views.ContactParams{
			Snapshot: contact.Snapshot{Status: contact.StatusSending, Fields: fields},
		})))

		btn := doc.Find(`#contact-form button[type="submit"]`)
		_, disabled := btn.Attr("disabled")
		assert.True(t, disabled)
		assert.Equal(t, "contact.sending", strings.TrimSpace(btn.Text()))
		doc.Find("#contact-form input, #contact-form textarea").Each(func(_ int, s *goquery.Selection) {
			_, disabled := s.Attr("disabled")
			assert.True(t, disabled, s.AttrOr("name", ""))
		})
		assert.Equal(t, "<b>hola</b>", doc.Find("textarea").Text())
	})

	t.Run("idle", func(t *testing.T) {
		t.Parallel()
		doc := render(t, views.ContactForm(params(state, views.ContactParams{})))

		btn := doc.Find(`#contact-form button[type="submit"]`)
		_, disabled := btn.Attr("disabled")
		assert.False(t, disabled)
		assert.Equal(t, content.MustLoad().Bundle(content.EN).ContactPage.Form.Submit, strings.TrimSpace(btn.Text()))
		assert.Equal(t, 0, doc.Find(".error").Length())
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		doc := render(t, views.ContactForm(params(state, views.ContactParams{
			Snapshot:   contact.Snapshot{Status: contact.StatusError, Detail: "template ID not found", Fields: fields},
			TemplateID: "template_x",
		})))

		panel := doc.Find("#contact-form .error")
		require.Equal(t, 1, panel.Length())
		assert.Contains(t, panel.Text(), "contact.error.title")
		assert.Contains(t, panel.Text(), "contact.error.template_not_found:template_x")
		assert.Equal(t, "Ana", doc.Find(`input[name="user_name"]`).AttrOr("value", ""))
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		doc := render(t, views.ContactForm(params(state, views.ContactParams{
			Snapshot: contact.Snapshot{Status: contact.StatusSuccess},
		})))

		assert.Equal(t, 0, doc.Find(`input[name="user_name"]`).Length())
		assert.Contains(t, doc.Find(".success").Text(), content.MustLoad().Bundle(content.EN).Contact.Success)
	})

	t.Run("field errors", func(t *testing.T) {
		t.Parallel()
		errs := validator.ExtractValidationErrors(contact.Fields{Email: "x"}.Validate())
		doc := render(t, views.ContactForm(params(state, views.ContactParams{Errors: errs})))

		assert.Equal(t, "validation.required", doc.Find(`.field-error[data-field="user_name"]`).Text())
		assert.Equal(t, "validation.email", doc.Find(`.field-error[data-field="user_email"]`).Text())
		assert.Equal(t, 0, doc.Find(`.field-error[data-field="user_phone"]`).Length())
	})
}

func TestHeader(t *testing.T) {
	t.Parallel()

	doc := render(t, views.Header(params(navigation.State{
		Locale:        content.ES,
		Page:          navigation.Landing,
		ActiveSection: "products",
	}, views.ContactParams{})))

	links := doc.Find(".nav-link")
	require.Equal(t, 5, links.Length())
	active := doc.Find(".nav-link.active")
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "/?page=landing&section=products#products", active.AttrOr("href", ""))
	assert.Equal(t, "/?page=contact", links.Last().AttrOr("href", ""))
	assert.Equal(t, "@post('/navigate?page=contact')", links.Last().AttrOr("data-on:click__prevent", ""))

	// logo and home go to the top of the landing page
	home := links.First()
	assert.Equal(t, "/?page=landing", home.AttrOr("href", ""))
	assert.Equal(t, "@post('/navigate?page=landing')", home.AttrOr("data-on:click__prevent", ""))
	assert.Equal(t, "@post('/navigate?page=landing')", doc.Find("a.logo").AttrOr("data-on:click__prevent", ""))

	toggle := doc.Find("form[action='/locale'] button")
	assert.Equal(t, "ES", strings.TrimSpace(toggle.Text()))
	assert.Equal(t, "English", toggle.AttrOr("title", ""))
}

func TestMainMountHook(t *testing.T) {
	t.Parallel()

	doc := render(t, views.Main(params(navigation.State{Locale: content.ES, Page: navigation.History, Seq: 7}, views.ContactParams{})))
	assert.Equal(t, "@post('/mounted?page=history&seq=7')", doc.Find("#page").AttrOr("data-init", ""))
	assert.Equal(t, 1, doc.Find("#history").Length())
}

func TestErrorViews(t *testing.T) {
	t.Parallel()

	doc := render(t, views.ErrorPage(handler.ErrorPageParams{Message: "Página no encontrada", StatusCode: 404, RequestID: "req-1", RetryURL: "/"}))
	assert.Contains(t, doc.Find("#error").Text(), "404")
	assert.Contains(t, doc.Find("#error").Text(), "req-1")

	doc = render(t, views.Toast(handler.ErrorToastParams{Message: "Demasiados envíos", Type: "warning"}))
	assert.Equal(t, 1, doc.Find(".toast.warning").Length())
}
