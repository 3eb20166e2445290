package controller

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nao1215/flashdeck/internal/backend"
	"github.com/nao1215/flashdeck/internal/dom"
	"github.com/nao1215/flashdeck/internal/model"
)

// Alert prefixes for requests that fail without a server response.
const (
	alertSignupFailed = "Error signing up"
	alertLoginFailed  = "Error logging in"
	alertLogoutFailed = "Error logging out"
	alertSaveFailed   = "Error saving flashcards"
)

// Container placeholders.
const (
	GeneratingText   = "Generating flashcards..."
	LoadingSavedText = "Loading saved flashcards..."
	SaveButtonText   = "Save Flashcards"
)

// validate checks required form fields. It reports fields by their JSON
// name, which is also the input name on the page.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// emptyFields returns the names of the required fields of form that are
// empty, or nil if the form may be submitted.
func emptyFields(form any) []string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

// Update applies ev to m and returns the next model and the effects to
// perform, in order. It does no I/O.
func Update(m Model, ev Event) (Model, []Effect) {
	switch e := ev.(type) {
	case PageLoaded:
		if !m.Session.IsLoggedIn() {
			return m, nil
		}
		return loadSaved(m)

	case SignupSubmitted:
		if fields := emptyFields(e.Credentials); fields != nil {
			m.Invalid = Invalid{Form: dom.IDSignupForm, Fields: fields}
			return m, nil
		}
		m.Invalid = Invalid{}
		return m, []Effect{RequestEffect{Kind: RequestSignup, Credentials: e.Credentials}}

	case SignupDone:
		return m, []Effect{alertFor(alertSignupFailed, e.Response, e.Err)}

	case LoginSubmitted:
		if fields := emptyFields(e.Credentials); fields != nil {
			m.Invalid = Invalid{Form: dom.IDLoginForm, Fields: fields}
			return m, nil
		}
		m.Invalid = Invalid{}
		return m, []Effect{RequestEffect{Kind: RequestLogin, Credentials: e.Credentials}}

	case LoginDone:
		alert := alertFor(alertLoginFailed, e.Response, e.Err)
		if e.Err != nil {
			return m, []Effect{alert}
		}
		m.Session = m.Session.Login()
		m, effects := loadSaved(m)
		return m, append(effects, alert)

	case LogoutClicked:
		return m, []Effect{RequestEffect{Kind: RequestLogout}}

	case LogoutDone:
		alert := alertFor(alertLogoutFailed, e.Response, e.Err)
		if e.Err != nil {
			return m, []Effect{alert}
		}
		m.Session = m.Session.Logout()
		m.Saved = SavedView{}
		return m, []Effect{alert}

	case GenerateSubmitted:
		req := model.GenerateRequest{Topic: e.Topic}
		if fields := emptyFields(req); fields != nil {
			m.Invalid = Invalid{Form: dom.IDFlashcardForm, Fields: fields}
			return m, nil
		}
		m.Invalid = Invalid{}
		m.Cards = CardsView{State: ViewLoading}
		return m, []Effect{RequestEffect{Kind: RequestGenerate, Topic: e.Topic}}

	case GenerateDone:
		if e.Err != nil {
			m.Cards = CardsView{State: ViewError, Error: containerError(e.Err)}
			return m, nil
		}
		m.Cards = CardsView{State: ViewReady, Set: model.NewFlashcardSet(e.Topic, e.Flashcards)}
		return m, nil

	case SaveClicked:
		set := m.PendingSet()
		if set == nil {
			return m, nil
		}
		return m, []Effect{RequestEffect{
			Kind: RequestSave,
			Save: model.SaveRequest{Topic: set.Topic, Flashcards: set.Text},
		}}

	case SaveDone:
		return m, []Effect{alertFor(alertSaveFailed, e.Response, e.Err)}

	case SavedLoaded:
		// A listing that finishes after logout must not refill the list.
		if !m.Session.IsLoggedIn() {
			return m, nil
		}
		if e.Err != nil {
			m.Saved = SavedView{State: ViewError, Error: containerError(e.Err)}
			return m, nil
		}
		m.Saved = SavedView{State: ViewReady, Records: e.Records}
		return m, nil
	}

	return m, nil
}

// loadSaved shows the saved list placeholder and requests the listing.
func loadSaved(m Model) (Model, []Effect) {
	m.Saved = SavedView{State: ViewLoading}
	return m, []Effect{RequestEffect{Kind: RequestListFlashcards}}
}

// alertFor returns the alert for a message-style response: the server's
// message or error text, or the failure prefix and cause when the request
// itself failed.
func alertFor(prefix string, resp model.MessageResponse, err error) AlertEffect {
	if err == nil {
		return AlertEffect{Message: resp.Text()}
	}
	var appErr *backend.AppError
	if errors.As(err, &appErr) {
		return AlertEffect{Message: appErr.AlertText()}
	}
	return AlertEffect{Message: prefix + ": " + err.Error()}
}

// containerError returns the inline error text for a failed request: the
// server's error field, or "Error: " and the cause when the request itself
// failed.
func containerError(err error) string {
	var appErr *backend.AppError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return "Error: " + err.Error()
}
