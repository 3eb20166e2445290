package controller

import (
	"github.com/nao1215/flashdeck/internal/model"
)

// ViewState is the state of a result container.
type ViewState int

const (
	// ViewEmpty means the container has no content.
	ViewEmpty ViewState = iota
	// ViewLoading means a request is in flight and the placeholder is shown.
	ViewLoading
	// ViewReady means the last request succeeded and its result is shown.
	ViewReady
	// ViewError means the last request failed and its error is shown.
	ViewError
)

// String returns the lower-case name of the state.
func (s ViewState) String() string {
	switch s {
	case ViewEmpty:
		return "empty"
	case ViewLoading:
		return "loading"
	case ViewReady:
		return "ready"
	case ViewError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s ViewState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CardsView is the content of the generation container.
type CardsView struct {
	State ViewState
	// Set is the generated flashcard set while State is ViewReady. It is the
	// set a save click sends.
	Set *model.FlashcardSet
	// Error is the text shown while State is ViewError.
	Error string
}

// SavedView is the content of the saved flashcards container.
type SavedView struct {
	State   ViewState
	Records []model.SavedRecord
	Error   string
}

// Invalid names the empty required fields of the last blocked form.
type Invalid struct {
	Form   string
	Fields []string
}

// Model is everything the page shows, apart from input values.
type Model struct {
	Session model.SessionState
	Cards   CardsView
	Saved   SavedView
	Invalid Invalid
}

// NewModel returns the model of a freshly loaded page: logged out, with
// both containers empty.
func NewModel() Model {
	return Model{Session: model.LoggedOut}
}

// PendingSet returns the flashcard set a save click would send, or nil.
func (m Model) PendingSet() *model.FlashcardSet {
	if m.Cards.State != ViewReady {
		return nil
	}
	return m.Cards.Set
}
