package controller

import (
	"strings"

	"github.com/nao1215/flashdeck/internal/dom"
	"github.com/nao1215/flashdeck/internal/model"
)

// Region is one toggled area of the page.
type Region struct {
	ID      string `json:"id"`
	Visible bool   `json:"visible"`
}

// Regions lists the toggled areas in page order.
var Regions = []string{
	dom.IDSignupForm,
	dom.IDLoginForm,
	dom.IDLogoutButton,
	dom.IDFlashcardForm,
	dom.IDSavedContainer,
}

// Snapshot is a read-only view of the page, taken from the DOM.
type Snapshot struct {
	Session model.SessionState `json:"session"`
	Regions []Region           `json:"regions"`

	CardsState ViewState `json:"flashcards_state"`
	Topic      string    `json:"topic,omitempty"`
	Flashcards []string  `json:"flashcards"`
	CanSave    bool      `json:"can_save"`
	CardsText  string    `json:"flashcards_text,omitempty"`

	SavedState ViewState           `json:"saved_state"`
	Saved      []model.SavedRecord `json:"saved"`
	SavedText  string              `json:"saved_text,omitempty"`

	Invalid []string `json:"invalid,omitempty"`

	// HTML is the serialised page.
	HTML string `json:"-"`
}

// Visible reports whether the region with id is visible.
func (s Snapshot) Visible(id string) bool {
	for _, r := range s.Regions {
		if r.ID == id {
			return r.Visible
		}
	}
	return false
}

// TakeSnapshot reads the page. The model supplies the container states and
// the topic; everything displayed comes from doc.
func TakeSnapshot(m Model, doc *dom.Document) Snapshot {
	s := Snapshot{
		Session:    m.Session,
		CardsState: m.Cards.State,
		SavedState: m.Saved.State,
		Flashcards: []string{},
		Saved:      []model.SavedRecord{},
		Invalid:    m.Invalid.Fields,
	}

	for _, id := range Regions {
		s.Regions = append(s.Regions, Region{ID: id, Visible: doc.IsVisible(id)})
	}

	if set := m.PendingSet(); set != nil {
		s.Topic = set.Topic
	}
	for _, n := range doc.ByClass(dom.IDCardsContainer, dom.ClassFlashcard) {
		s.Flashcards = append(s.Flashcards, dom.TextContent(n))
	}
	s.CanSave = len(doc.ByClass(dom.IDCardsContainer, dom.ClassSaveButton)) > 0
	if m.Cards.State == ViewLoading || m.Cards.State == ViewError {
		s.CardsText = doc.Text(dom.IDCardsContainer)
	}

	for _, n := range doc.ByClass(dom.IDSavedContainer, dom.ClassSavedFlashcard) {
		var r model.SavedRecord
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch dom.Tag(c) {
			case "h3":
				r.Topic = dom.TextContent(c)
			case "p":
				r.Flashcards = dom.TextContent(c)
			}
		}
		s.Saved = append(s.Saved, r)
	}
	if m.Saved.State == ViewLoading || m.Saved.State == ViewError {
		s.SavedText = doc.Text(dom.IDSavedContainer)
	}

	var b strings.Builder
	if err := doc.Render(&b); err == nil {
		s.HTML = b.String()
	}

	return s
}
