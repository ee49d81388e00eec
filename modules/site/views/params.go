package views

import (
	"github.com/velveproduce/site/pkg/validator"
	"github.com/velveproduce/site/svc/contact"
	"github.com/velveproduce/site/svc/content"
	"github.com/velveproduce/site/svc/navigation"
)

// TranslateFunc renders a chrome message in the page locale.
type TranslateFunc func(key string, data map[string]any) string

// Site is the fixed company contact data.
type Site struct {
	Email        string
	WhatsAppURL  string
	PhoneDisplay string
	AddressLines []string
	MapURL       string
	QRPath       string
	DatastarURL  string
}

// DefaultSite is Velve Produce's public contact data.
func DefaultSite() Site {
	return Site{
		Email:        "exports@velveproduce.com",
		WhatsAppURL:  "https://api.whatsapp.com/send?phone=34618077568",
		PhoneDisplay: "+34 618 07 75 68",
		AddressLines: []string{"VELVE PRODUCE, SL", "Calle Rioja 13, 1ºC.", "41001, Sevilla"},
		MapURL:       "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3169.9551662658846!2d-5.9982733593065225!3d37.390892534296064!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0xd126c1027b32a89%3A0x347242ea763ee5ab!2sC.%20Rioja%2C%2013%2C%201%C2%BAC%2C%20Casco%20Antiguo%2C%2041001%20Sevilla!5e0!3m2!1ses!2ses!4v1768118138125!5m2!1ses!2ses",
		QRPath:       "/qr/whatsapp.png",
		DatastarURL:  "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js",
	}
}

// PageParams feeds every page template.
type PageParams struct {
	State   navigation.State
	Bundle  content.Bundle
	Contact ContactParams
	Site    Site
	tr      TranslateFunc
}

func NewPageParams(state navigation.State, bundle content.Bundle, form ContactParams, site Site, tr TranslateFunc) PageParams {
	if tr == nil {
		tr = func(key string, _ map[string]any) string { return key }
	}
	form.tr = tr
	return PageParams{State: state, Bundle: bundle, Contact: form, Site: site, tr: tr}
}

// T renders a chrome message.
func (p PageParams) T(key string) string { return p.tr(key, nil) }

func (p PageParams) Lang() string { return p.State.Locale.String() }

// LocaleLabel is the upper case code of the current locale.
func (p PageParams) LocaleLabel() string { return p.State.Locale.Label() }

// OtherLocaleName names the locale the toggle switches to.
func (p PageParams) OtherLocaleName() string { return p.State.Locale.Other().Name() }

func (p PageParams) IsLanding() bool { return p.State.Page == navigation.Landing }
func (p PageParams) IsHistory() bool { return p.State.Page == navigation.History }
func (p PageParams) IsContact() bool { return p.State.Page == navigation.Contact }

// NavItem is one header entry.
type NavItem struct {
	Label   string
	Page    string
	Section string
	Active  bool
}

// NavItems lists the header entries: four landing sections and the contact
// page. Home carries no section so it scrolls to the top.
func (p PageParams) NavItems() []NavItem {
	items := make([]NavItem, 0, 5)
	for _, id := range []string{"home", "history-roots", "services", "products"} {
		section := id
		if id == "home" {
			section = ""
		}
		items = append(items, NavItem{
			Label:   p.Bundle.NavLabel(id),
			Page:    string(navigation.Landing),
			Section: section,
			Active:  p.State.SectionActive(id),
		})
	}
	return append(items, NavItem{
		Label:  p.Bundle.Nav.Contact,
		Page:   string(navigation.Contact),
		Active: p.State.Page == navigation.Contact,
	})
}

// ContactParams feeds the contact form.
type ContactParams struct {
	Snapshot   contact.Snapshot
	Errors     validator.ValidationErrors
	TemplateID string
	tr         TranslateFunc
}

func (c ContactParams) Sending() bool { return c.Snapshot.Status == contact.StatusSending }
func (c ContactParams) Success() bool { return c.Snapshot.Status == contact.StatusSuccess }
func (c ContactParams) Failed() bool  { return c.Snapshot.Status == contact.StatusError }

// ErrorMessage is the localized text of the error panel.
func (c ContactParams) ErrorMessage() string {
	return c.tr(c.Snapshot.ErrorKey(), map[string]any{"TemplateID": c.TemplateID})
}

// FieldError is the localized validation message for a form field, or "".
func (c ContactParams) FieldError(field string) string {
	e, ok := c.Errors.First(field)
	if !ok {
		return ""
	}
	return c.tr(e.TranslationKey, e.TranslationValues)
}
