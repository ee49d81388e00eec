package content

import "slices"

// Sections are the landing page section ids in page order.
var Sections = []string{"home", "history-roots", "services", "products", "faq", "contact-info"}

// Bundle holds every user-visible string and catalog entry for one locale.
// Bundles returned by a Catalog are copies and may be modified freely.
type Bundle struct {
	Nav         Nav         `yaml:"nav"`
	Hero        Hero        `yaml:"hero"`
	History     History     `yaml:"history"`
	Services    Services    `yaml:"services"`
	Products    Products    `yaml:"products"`
	FAQ         FAQ         `yaml:"faq"`
	Contact     Contact     `yaml:"contact"`
	HistoryPage HistoryPage `yaml:"history_page"`
	ContactPage ContactPage `yaml:"contact_page"`
	Footer      Footer      `yaml:"footer"`
}

type Nav struct {
	Home     string `yaml:"home"`
	History  string `yaml:"history"`
	Services string `yaml:"services"`
	Products string `yaml:"products"`
	FAQ      string `yaml:"faq"`
	Contact  string `yaml:"contact"`
}

type Hero struct {
	Badge    string `yaml:"badge"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	CTA      string `yaml:"cta"`
}

type History struct {
	Title     string `yaml:"title"`
	Text      string `yaml:"text"`
	Highlight string `yaml:"highlight"`
}

type Services struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Items       []Service `yaml:"items"`
}

type Service struct {
	Title string `yaml:"title"`
	Desc  string `yaml:"desc"`
}

type Products struct {
	Title string    `yaml:"title"`
	Specs string    `yaml:"specs"`
	Items []Product `yaml:"items"`
}

type Product struct {
	Name  string `yaml:"name"`
	Desc  string `yaml:"desc"`
	Image string `yaml:"img"`
}

type FAQ struct {
	Title string     `yaml:"title"`
	Items []Question `yaml:"items"`
}

type Question struct {
	Q string `yaml:"q"`
	A string `yaml:"a"`
}

type Contact struct {
	Title   string `yaml:"title"`
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Msg     string `yaml:"msg"`
	Send    string `yaml:"send"`
	Success string `yaml:"success"`
}

type HistoryPage struct {
	Title        string   `yaml:"title"`
	Subtitle     string   `yaml:"subtitle"`
	Image        string   `yaml:"img"`
	Paragraphs   []string `yaml:"content"`
	QualityTitle string   `yaml:"quality_title"`
	QualityText  string   `yaml:"quality_text"`
	CTA          string   `yaml:"cta"`
	CTAButton    string   `yaml:"cta_button"`
}

type ContactPage struct {
	Title       string      `yaml:"title"`
	Subtitle    string      `yaml:"subtitle"`
	Description string      `yaml:"description"`
	EmailLabel  string      `yaml:"email_label"`
	CallLabel   string      `yaml:"call_label"`
	VisitLabel  string      `yaml:"visit_label"`
	Form        ContactForm `yaml:"form"`
}

type ContactForm struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Message string `yaml:"message"`
	Submit  string `yaml:"submit"`
}

type Footer struct {
	Rights string `yaml:"rights"`
}

func (b Bundle) clone() Bundle {
	b.Services.Items = slices.Clone(b.Services.Items)
	b.Products.Items = slices.Clone(b.Products.Items)
	b.FAQ.Items = slices.Clone(b.FAQ.Items)
	b.HistoryPage.Paragraphs = slices.Clone(b.HistoryPage.Paragraphs)
	return b
}

// NavLabel returns the nav entry text for a landing section id, or "" when
// the section has no nav entry.
func (b Bundle) NavLabel(section string) string {
	switch section {
	case "home":
		return b.Nav.Home
	case "history-roots":
		return b.Nav.History
	case "services":
		return b.Nav.Services
	case "products":
		return b.Nav.Products
	case "faq":
		return b.Nav.FAQ
	case "contact-info":
		return b.Nav.Contact
	default:
		return ""
	}
}
