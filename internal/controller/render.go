package controller

import (
	"errors"

	"golang.org/x/net/html"

	"github.com/nao1215/flashdeck/internal/dom"
)

// Render projects m onto doc. It is idempotent: rendering the same model
// twice leaves the same page.
func Render(m Model, doc *dom.Document) error {
	loggedIn := m.Session.IsLoggedIn()

	visibility := []struct {
		id      string
		visible bool
	}{
		{dom.IDSignupForm, !loggedIn},
		{dom.IDLoginForm, !loggedIn},
		{dom.IDLogoutButton, loggedIn},
		{dom.IDFlashcardForm, loggedIn},
		{dom.IDSavedContainer, loggedIn},
	}

	var errs []error
	for _, v := range visibility {
		errs = append(errs, doc.SetVisible(v.id, v.visible))
	}

	for _, form := range []string{dom.IDSignupForm, dom.IDLoginForm, dom.IDFlashcardForm} {
		var fields []string
		if m.Invalid.Form == form {
			fields = m.Invalid.Fields
		}
		errs = append(errs, doc.MarkInvalid(form, fields))
	}

	errs = append(errs,
		doc.ReplaceChildren(dom.IDCardsContainer, cardsNodes(m.Cards)...),
		doc.ReplaceChildren(dom.IDSavedContainer, savedNodes(m.Saved)...),
	)

	return errors.Join(errs...)
}

// cardsNodes builds the generation container content: one card per line
// followed by the save control, a placeholder, or an error.
func cardsNodes(v CardsView) []*html.Node {
	switch v.State {
	case ViewLoading:
		return []*html.Node{dom.Element("p", "", GeneratingText)}
	case ViewError:
		return []*html.Node{dom.Element("p", dom.ClassError, v.Error)}
	case ViewReady:
		nodes := make([]*html.Node, 0, v.Set.Len()+1)
		if v.Set != nil {
			for _, line := range v.Set.Lines {
				nodes = append(nodes, dom.Element("div", dom.ClassFlashcard, line))
			}
		}
		return append(nodes, dom.Element("button", dom.ClassSaveButton, SaveButtonText))
	default:
		return nil
	}
}

// savedNodes builds the saved container content.
func savedNodes(v SavedView) []*html.Node {
	switch v.State {
	case ViewLoading:
		return []*html.Node{dom.Element("p", "", LoadingSavedText)}
	case ViewError:
		return []*html.Node{dom.Element("p", dom.ClassError, v.Error)}
	case ViewReady:
		nodes := make([]*html.Node, 0, len(v.Records))
		for _, r := range v.Records {
			nodes = append(nodes, dom.Wrap("div", dom.ClassSavedFlashcard,
				dom.Element("h3", "", r.Topic),
				dom.Element("p", "", r.Flashcards),
			))
		}
		return nodes
	default:
		return nil
	}
}
