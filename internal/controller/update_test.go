package controller

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nao1215/flashdeck/internal/backend"
	"github.com/nao1215/flashdeck/internal/dom"
	"github.com/nao1215/flashdeck/internal/model"
)

var errNetwork = errors.New("connection refused")

func transportErr(op string) error {
	return &backend.TransportError{Op: op, Err: errNetwork}
}

func loggedIn() Model {
	m := NewModel()
	m.Session = model.LoggedIn
	return m
}

func TestUpdateSignup(t *testing.T) {
	t.Parallel()

	creds := model.Credentials{Username: "alice", Password: "pw"}

	tests := []struct {
		name    string
		ev      Event
		want    []Effect
		invalid Invalid
	}{
		{
			name: "submit sends request",
			ev:   SignupSubmitted{Credentials: creds},
			want: []Effect{RequestEffect{Kind: RequestSignup, Credentials: creds}},
		},
		{
			name:    "empty password blocks submit",
			ev:      SignupSubmitted{Credentials: model.Credentials{Username: "alice"}},
			invalid: Invalid{Form: dom.IDSignupForm, Fields: []string{"password"}},
		},
		{
			name:    "empty form blocks submit",
			ev:      SignupSubmitted{},
			invalid: Invalid{Form: dom.IDSignupForm, Fields: []string{"username", "password"}},
		},
		{
			name: "success alerts message",
			ev:   SignupDone{Response: model.MessageResponse{Message: "Signup successful!"}},
			want: []Effect{AlertEffect{Message: "Signup successful!"}},
		},
		{
			name: "application error alerts error field",
			ev:   SignupDone{Err: &backend.AppError{Status: 400, Reason: "Username already exists"}},
			want: []Effect{AlertEffect{Message: "Username already exists"}},
		},
		{
			name: "network failure alerts with prefix",
			ev:   SignupDone{Err: transportErr(backend.OpSignup)},
			want: []Effect{AlertEffect{Message: "Error signing up: connection refused"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, effects := Update(NewModel(), tt.ev)
			if !reflect.DeepEqual(effects, tt.want) {
				t.Errorf("effects = %#v, want %#v", effects, tt.want)
			}
			if !reflect.DeepEqual(m.Invalid, tt.invalid) {
				t.Errorf("invalid = %#v, want %#v", m.Invalid, tt.invalid)
			}
			if m.Session != model.LoggedOut {
				t.Errorf("signup must not change the session, got %v", m.Session)
			}
		})
	}
}

func TestUpdateLogin(t *testing.T) {
	t.Parallel()

	t.Run("success logs in and loads saved flashcards once", func(t *testing.T) {
		t.Parallel()

		m, effects := Update(NewModel(), LoginDone{Response: model.MessageResponse{Message: "Login successful!"}})
		if m.Session != model.LoggedIn {
			t.Fatalf("session = %v, want logged in", m.Session)
		}
		want := []Effect{
			RequestEffect{Kind: RequestListFlashcards},
			AlertEffect{Message: "Login successful!"},
		}
		if !reflect.DeepEqual(effects, want) {
			t.Errorf("effects = %#v, want %#v", effects, want)
		}
		if m.Saved.State != ViewLoading {
			t.Errorf("saved state = %v, want loading", m.Saved.State)
		}
	})

	t.Run("application error keeps session", func(t *testing.T) {
		t.Parallel()

		m, effects := Update(NewModel(), LoginDone{Err: &backend.AppError{Status: 400, Reason: "Invalid credentials"}})
		if m.Session != model.LoggedOut {
			t.Errorf("session = %v, want logged out", m.Session)
		}
		want := []Effect{AlertEffect{Message: "Invalid credentials"}}
		if !reflect.DeepEqual(effects, want) {
			t.Errorf("effects = %#v, want %#v", effects, want)
		}
	})

	t.Run("network failure keeps session", func(t *testing.T) {
		t.Parallel()

		m, effects := Update(NewModel(), LoginDone{Err: transportErr(backend.OpLogin)})
		if m.Session != model.LoggedOut {
			t.Errorf("session = %v, want logged out", m.Session)
		}
		want := []Effect{AlertEffect{Message: "Error logging in: connection refused"}}
		if !reflect.DeepEqual(effects, want) {
			t.Errorf("effects = %#v, want %#v", effects, want)
		}
	})

	t.Run("empty username blocks submit", func(t *testing.T) {
		t.Parallel()

		m, effects := Update(NewModel(), LoginSubmitted{Credentials: model.Credentials{Password: "pw"}})
		if len(effects) != 0 {
			t.Errorf("expected no effects, got %#v", effects)
		}
		if m.Invalid.Form != dom.IDLoginForm || !reflect.DeepEqual(m.Invalid.Fields, []string{"username"}) {
			t.Errorf("invalid = %#v", m.Invalid)
		}
	})

	t.Run("valid submit clears previous invalid fields", func(t *testing.T) {
		t.Parallel()

		m := NewModel()
		m.Invalid = Invalid{Form: dom.IDLoginForm, Fields: []string{"username"}}
		creds := model.Credentials{Username: "a", Password: "b"}
		m, effects := Update(m, LoginSubmitted{Credentials: creds})
		if len(m.Invalid.Fields) != 0 {
			t.Errorf("invalid not cleared: %#v", m.Invalid)
		}
		want := []Effect{RequestEffect{Kind: RequestLogin, Credentials: creds}}
		if !reflect.DeepEqual(effects, want) {
			t.Errorf("effects = %#v, want %#v", effects, want)
		}
	})
}

func TestUpdateLogout(t *testing.T) {
	t.Parallel()

	withRecords := func() Model {
		m := loggedIn()
		m.Saved = SavedView{State: ViewReady, Records: []model.SavedRecord{{Topic: "Go", Flashcards: "Q1"}}}
		return m
	}

	t.Run("click sends request", func(t *testing.T) {
		t.Parallel()

		_, effects := Update(loggedIn(), LogoutClicked{})
		want := []Effect{RequestEffect{Kind: RequestLogout}}
		if !reflect.DeepEqual(effects, want) {
			t.Errorf("effects = %#v, want %#v", effects, want)
		}
	})

	t.Run("success logs out and empties saved list", func(t *testing.T) {
		t.Parallel()

		m, effects := Update(withRecords(), LogoutDone{Response: model.MessageResponse{Message: "Logged out successfully!"}})
		if m.Session != model.LoggedOut {
			t.Errorf("session = %v, want logged out", m.Session)
		}
		if m.Saved.State != ViewEmpty || len(m.Saved.Records) != 0 {
			t.Errorf("saved not emptied: %#v", m.Saved)
		}
		want := []Effect{AlertEffect{Message: "Logged out successfully!"}}
		if !reflect.DeepEqual(effects, want) {
			t.Errorf("effects = %#v, want %#v", effects, want)
		}
	})

	t.Run("failure keeps session and list", func(t *testing.T) {
		t.Parallel()

		m, effects := Update(withRecords(), LogoutDone{Err: transportErr(backend.OpLogout)})
		if m.Session != model.LoggedIn {
			t.Errorf("session = %v, want logged in", m.Session)
		}
		if len(m.Saved.Records) != 1 {
			t.Errorf("saved list changed: %#v", m.Saved)
		}
		want := []Effect{AlertEffect{Message: "Error logging out: connection refused"}}
		if !reflect.DeepEqual(effects, want) {
			t.Errorf("effects = %#v, want %#v", effects, want)
		}
	})
}

func TestUpdateGenerate(t *testing.T) {
	t.Parallel()

	t.Run("submit shows placeholder and drops previous set", func(t *testing.T) {
		t.Parallel()

		m := loggedIn()
		m.Cards = CardsView{State: ViewReady, Set: model.NewFlashcardSet("Old", "A")}

		m, effects := Update(m, GenerateSubmitted{Topic: "Go"})
		if m.Cards.State != ViewLoading {
			t.Errorf("cards state = %v, want loading", m.Cards.State)
		}
		if m.PendingSet() != nil {
			t.Error("previous set should no longer be saveable")
		}
		want := []Effect{RequestEffect{Kind: RequestGenerate, Topic: "Go"}}
		if !reflect.DeepEqual(effects, want) {
			t.Errorf("effects = %#v, want %#v", effects, want)
		}
	})

	t.Run("empty topic blocks submit", func(t *testing.T) {
		t.Parallel()

		m, effects := Update(loggedIn(), GenerateSubmitted{})
		if len(effects) != 0 {
			t.Errorf("expected no effects, got %#v", effects)
		}
		if m.Cards.State != ViewEmpty {
			t.Errorf("cards state = %v, want empty", m.Cards.State)
		}
		if m.Invalid.Form != dom.IDFlashcardForm || !reflect.DeepEqual(m.Invalid.Fields, []string{"topic"}) {
			t.Errorf("invalid = %#v", m.Invalid)
		}
	})

	t.Run("success stores set", func(t *testing.T) {
		t.Parallel()

		m, effects := Update(loggedIn(), GenerateDone{Topic: "Go", Flashcards: "Q1\nQ2\nQ3"})
		if len(effects) != 0 {
			t.Errorf("expected no effects, got %#v", effects)
		}
		set := m.PendingSet()
		if set == nil {
			t.Fatal("expected a pending set")
		}
		if set.Topic != "Go" || !reflect.DeepEqual(set.Lines, []string{"Q1", "Q2", "Q3"}) {
			t.Errorf("unexpected set %#v", set)
		}
	})

	t.Run("application error shows error field", func(t *testing.T) {
		t.Parallel()

		m, _ := Update(loggedIn(), GenerateDone{Topic: "Go", Err: &backend.AppError{Status: 400, Reason: "Invalid topic"}})
		if m.Cards.State != ViewError || m.Cards.Error != "Invalid topic" {
			t.Errorf("cards = %#v", m.Cards)
		}
		if m.PendingSet() != nil {
			t.Error("failed generate must not leave a saveable set")
		}
	})

	t.Run("network failure shows prefixed cause", func(t *testing.T) {
		t.Parallel()

		m, _ := Update(loggedIn(), GenerateDone{Topic: "Go", Err: transportErr(backend.OpGenerate)})
		if m.Cards.Error != "Error: connection refused" {
			t.Errorf("error = %q", m.Cards.Error)
		}
	})
}

func TestUpdateSave(t *testing.T) {
	t.Parallel()

	t.Run("click posts topic and joined text", func(t *testing.T) {
		t.Parallel()

		m, _ := Update(loggedIn(), GenerateDone{Topic: "Go", Flashcards: "Q1\n  Q2  \n\nQ3"})
		_, effects := Update(m, SaveClicked{})

		want := []Effect{RequestEffect{
			Kind: RequestSave,
			Save: model.SaveRequest{Topic: "Go", Flashcards: "Q1\n  Q2  \n\nQ3"},
		}}
		if !reflect.DeepEqual(effects, want) {
			t.Errorf("effects = %#v, want %#v", effects, want)
		}
	})

	t.Run("click without a generated set is ignored", func(t *testing.T) {
		t.Parallel()

		for _, cards := range []CardsView{
			{},
			{State: ViewLoading},
			{State: ViewError, Error: "Invalid topic"},
		} {
			m := loggedIn()
			m.Cards = cards
			if _, effects := Update(m, SaveClicked{}); len(effects) != 0 {
				t.Errorf("state %v: expected no effects, got %#v", cards.State, effects)
			}
		}
	})

	t.Run("results alert", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			ev   SaveDone
			want string
		}{
			{SaveDone{Response: model.MessageResponse{Message: "Flashcards saved successfully!"}}, "Flashcards saved successfully!"},
			{SaveDone{Err: &backend.AppError{Status: 500, Reason: "disk full"}}, "disk full"},
			{SaveDone{Err: transportErr(backend.OpSave)}, "Error saving flashcards: connection refused"},
		}
		for _, tt := range tests {
			_, effects := Update(loggedIn(), tt.ev)
			want := []Effect{AlertEffect{Message: tt.want}}
			if !reflect.DeepEqual(effects, want) {
				t.Errorf("effects = %#v, want %#v", effects, want)
			}
		}
	})
}

func TestUpdateSavedLoaded(t *testing.T) {
	t.Parallel()

	records := []model.SavedRecord{{Topic: "Go", Flashcards: "Q1\nQ2"}, {Topic: "Rust", Flashcards: "R1"}}

	t.Run("page load while logged out does nothing", func(t *testing.T) {
		t.Parallel()

		m, effects := Update(NewModel(), PageLoaded{})
		if len(effects) != 0 || m.Saved.State != ViewEmpty {
			t.Errorf("unexpected effects %#v or state %v", effects, m.Saved.State)
		}
	})

	t.Run("page load while logged in requests listing", func(t *testing.T) {
		t.Parallel()

		m, effects := Update(loggedIn(), PageLoaded{})
		want := []Effect{RequestEffect{Kind: RequestListFlashcards}}
		if !reflect.DeepEqual(effects, want) {
			t.Errorf("effects = %#v, want %#v", effects, want)
		}
		if m.Saved.State != ViewLoading {
			t.Errorf("saved state = %v", m.Saved.State)
		}
	})

	t.Run("records are stored", func(t *testing.T) {
		t.Parallel()

		m, _ := Update(loggedIn(), SavedLoaded{Records: records})
		if m.Saved.State != ViewReady || !reflect.DeepEqual(m.Saved.Records, records) {
			t.Errorf("saved = %#v", m.Saved)
		}
	})

	t.Run("error is stored", func(t *testing.T) {
		t.Parallel()

		m, _ := Update(loggedIn(), SavedLoaded{Err: &backend.AppError{Status: 401, Reason: "Unauthorized"}})
		if m.Saved.State != ViewError || m.Saved.Error != "Unauthorized" {
			t.Errorf("saved = %#v", m.Saved)
		}
	})

	t.Run("late listing after logout is dropped", func(t *testing.T) {
		t.Parallel()

		m, _ := Update(NewModel(), SavedLoaded{Records: records})
		if m.Saved.State != ViewEmpty || len(m.Saved.Records) != 0 {
			t.Errorf("saved = %#v", m.Saved)
		}
	})
}
