package dom

import (
	"errors"
	"strings"
	"testing"
)

func TestNewPage(t *testing.T) {
	t.Parallel()

	d := NewPage()

	ids := []string{
		IDSignupForm, IDLoginForm, IDLogoutButton, IDFlashcardForm,
		IDCardsContainer, IDSavedContainer,
		IDSignupUsername, IDSignupPassword, IDLoginUsername, IDLoginPassword, IDTopic,
	}
	for _, id := range ids {
		if d.ByID(id) == nil {
			t.Errorf("page has no #%s", id)
		}
	}

	if len(d.Children(IDCardsContainer)) != 0 {
		t.Error("cards container should start empty")
	}
	if len(d.Children(IDSavedContainer)) != 0 {
		t.Error("saved container should start empty")
	}
}

func TestNewPageReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	a := NewPage()
	b := NewPage()

	if err := a.ReplaceChildren(IDCardsContainer, Element("p", "", "hello")); err != nil {
		t.Fatal(err)
	}
	if b.Text(IDCardsContainer) != "" {
		t.Error("pages share state")
	}
}

func TestVisibility(t *testing.T) {
	t.Parallel()

	t.Run("visible by default", func(t *testing.T) {
		t.Parallel()
		d := NewPage()
		if !d.IsVisible(IDLogoutButton) {
			t.Error("expected visible")
		}
	})

	t.Run("hide and show", func(t *testing.T) {
		t.Parallel()
		d := NewPage()

		if err := d.SetVisible(IDLogoutButton, false); err != nil {
			t.Fatal(err)
		}
		if d.IsVisible(IDLogoutButton) {
			t.Error("expected hidden")
		}

		if err := d.SetVisible(IDLogoutButton, true); err != nil {
			t.Fatal(err)
		}
		if !d.IsVisible(IDLogoutButton) {
			t.Error("expected visible")
		}
	})

	t.Run("hidden ancestor hides descendants", func(t *testing.T) {
		t.Parallel()
		d := NewPage()
		if err := d.SetVisible(IDFlashcardForm, false); err != nil {
			t.Fatal(err)
		}
		if d.IsVisible(IDTopic) {
			t.Error("input inside a hidden form should not be visible")
		}
	})

	t.Run("keeps other style declarations", func(t *testing.T) {
		t.Parallel()
		d, err := Parse(strings.NewReader(`<div id="x" style="color: red; DISPLAY: block"></div>`))
		if err != nil {
			t.Fatal(err)
		}
		if err := d.SetVisible("x", false); err != nil {
			t.Fatal(err)
		}
		got, err := d.RenderElement("x")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(got, `style="color: red; display: none"`) {
			t.Errorf("unexpected markup %s", got)
		}
	})

	t.Run("missing element", func(t *testing.T) {
		t.Parallel()
		d := NewPage()
		if err := d.SetVisible("nope", true); !errors.Is(err, ErrElementNotFound) {
			t.Errorf("expected ErrElementNotFound, got %v", err)
		}
		if d.IsVisible("nope") {
			t.Error("missing element should not be visible")
		}
	})
}

func TestReplaceChildren(t *testing.T) {
	t.Parallel()

	d := NewPage()

	if err := d.ReplaceChildren(IDCardsContainer,
		Element("div", ClassFlashcard, "Q1"),
		Element("div", ClassFlashcard, "Q2"),
		Element("button", ClassSaveButton, "Save Flashcards"),
	); err != nil {
		t.Fatal(err)
	}

	children := d.Children(IDCardsContainer)
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	cards := d.ByClass(IDCardsContainer, ClassFlashcard)
	if len(cards) != 2 || TextContent(cards[0]) != "Q1" || TextContent(cards[1]) != "Q2" {
		t.Errorf("unexpected cards")
	}
	if Tag(children[2]) != "button" || !HasClass(children[2], ClassSaveButton) {
		t.Errorf("last child should be the save button")
	}

	if err := d.ReplaceChildren(IDCardsContainer, Element("p", ClassError, "Error: boom")); err != nil {
		t.Fatal(err)
	}
	if got := d.Text(IDCardsContainer); got != "Error: boom" {
		t.Errorf("Text() = %q", got)
	}

	if err := d.ReplaceChildren(IDCardsContainer); err != nil {
		t.Fatal(err)
	}
	if d.ByID(IDCardsContainer).FirstChild != nil {
		t.Error("expected container to be empty")
	}

	if err := d.ReplaceChildren("nope"); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("expected ErrElementNotFound, got %v", err)
	}
}

func TestElementEscapesText(t *testing.T) {
	t.Parallel()

	d := NewPage()
	if err := d.ReplaceChildren(IDSavedContainer,
		Wrap("div", ClassSavedFlashcard,
			Element("h3", "", "<script>alert(1)</script>"),
			Element("p", "", "a & b"),
		),
	); err != nil {
		t.Fatal(err)
	}

	got, err := d.RenderElement(IDSavedContainer)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("text was not escaped: %s", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") || !strings.Contains(got, "a &amp; b") {
		t.Errorf("unexpected markup: %s", got)
	}
}

func TestFormValues(t *testing.T) {
	t.Parallel()

	d := NewPage()

	if err := d.SetValue(IDLoginUsername, "alice"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetValue(IDLoginPassword, "s3cret"); err != nil {
		t.Fatal(err)
	}

	values, err := d.FormValues(IDLoginForm)
	if err != nil {
		t.Fatal(err)
	}
	if values["username"] != "alice" || values["password"] != "s3cret" {
		t.Errorf("unexpected values %v", values)
	}

	signup, err := d.FormValues(IDSignupForm)
	if err != nil {
		t.Fatal(err)
	}
	if signup["username"] != "" || signup["password"] != "" {
		t.Errorf("signup form should be empty, got %v", signup)
	}

	if _, err := d.FormValues(IDCardsContainer); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("expected ErrElementNotFound for a non-form, got %v", err)
	}
	if err := d.SetValue(IDCardsContainer, "x"); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("expected ErrElementNotFound for a non-input, got %v", err)
	}
}

func TestValuesAreNotRendered(t *testing.T) {
	t.Parallel()

	d := NewPage()
	if err := d.SetValue(IDSignupPassword, "hunter2"); err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := d.Render(&b); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(b.String(), "hunter2") {
		t.Error("input value leaked into rendered markup")
	}
	if d.Value(IDSignupPassword) != "hunter2" {
		t.Errorf("Value() = %q", d.Value(IDSignupPassword))
	}
}

func TestParseInitialValues(t *testing.T) {
	t.Parallel()

	d, err := Parse(strings.NewReader(`<form id="f"><input id="q" name="q" value="preset"></form>`))
	if err != nil {
		t.Fatal(err)
	}
	values, err := d.FormValues("f")
	if err != nil {
		t.Fatal(err)
	}
	if values["q"] != "preset" {
		t.Errorf("expected preset value, got %q", values["q"])
	}
}

func TestMarkInvalid(t *testing.T) {
	t.Parallel()

	d := NewPage()

	if err := d.MarkInvalid(IDLoginForm, []string{"password"}); err != nil {
		t.Fatal(err)
	}
	if got := d.Invalid(IDLoginForm); len(got) != 1 || got[0] != "password" {
		t.Errorf("Invalid() = %v", got)
	}

	if err := d.MarkInvalid(IDLoginForm, nil); err != nil {
		t.Fatal(err)
	}
	if got := d.Invalid(IDLoginForm); len(got) != 0 {
		t.Errorf("expected no invalid inputs, got %v", got)
	}

	if err := d.MarkInvalid(IDLogoutButton, nil); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("expected ErrElementNotFound, got %v", err)
	}
}
