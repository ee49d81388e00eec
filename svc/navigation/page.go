package navigation

import "github.com/velveproduce/site/svc/content"

// Page is a top-level view. Exactly one is active at a time.
type Page string

const (
	Landing Page = "landing"
	History Page = "history"
	Contact Page = "contact"
)

// Pages lists every page.
var Pages = []Page{Landing, History, Contact}

// ParsePage maps a query value onto a Page. The empty string is Landing.
func ParsePage(s string) (Page, bool) {
	if s == "" {
		return Landing, true
	}
	p := Page(s)
	return p, p.Valid()
}

func (p Page) Valid() bool {
	switch p {
	case Landing, History, Contact:
		return true
	default:
		return false
	}
}

func (p Page) String() string { return string(p) }

// State is a snapshot of the controller.
type State struct {
	Locale        content.Locale
	Page          Page
	ActiveSection string
	// Seq counts navigations so each rendered page can be told apart.
	Seq uint64
}

// SectionActive reports whether the nav entry for section should be
// highlighted. Sections only highlight on the landing page.
func (s State) SectionActive(section string) bool {
	return s.Page == Landing && s.ActiveSection == section
}
