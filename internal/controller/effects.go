package controller

import (
	"context"

	"github.com/nao1215/flashdeck/internal/model"
)

// Effect is a side effect requested by Update.
type Effect interface {
	isEffect()
}

// RequestKind selects the backend call of a RequestEffect.
type RequestKind int

// Backend calls.
const (
	RequestSignup RequestKind = iota
	RequestLogin
	RequestLogout
	RequestGenerate
	RequestSave
	RequestListFlashcards
)

// String returns the endpoint name of the request.
func (k RequestKind) String() string {
	switch k {
	case RequestSignup:
		return "signup"
	case RequestLogin:
		return "login"
	case RequestLogout:
		return "logout"
	case RequestGenerate:
		return "generate"
	case RequestSave:
		return "save"
	case RequestListFlashcards:
		return "flashcards"
	default:
		return "unknown"
	}
}

// RequestEffect is one backend call. Only the fields its Kind uses are set.
type RequestEffect struct {
	Kind        RequestKind
	Credentials model.Credentials
	Topic       string
	Save        model.SaveRequest
}

// AlertEffect shows a modal message.
type AlertEffect struct {
	Message string
}

func (RequestEffect) isEffect() {}
func (AlertEffect) isEffect()   {}

// Backend is the server the controller talks to.
// *backend.Client implements it.
type Backend interface {
	Signup(ctx context.Context, creds model.Credentials) (model.MessageResponse, error)
	Login(ctx context.Context, creds model.Credentials) (model.MessageResponse, error)
	Logout(ctx context.Context) (model.MessageResponse, error)
	Generate(ctx context.Context, req model.GenerateRequest) (string, error)
	Save(ctx context.Context, req model.SaveRequest) (model.MessageResponse, error)
	ListFlashcards(ctx context.Context, page, limit int) ([]model.SavedRecord, error)
}

// perform runs a request against b and returns the result event.
// pageSize is the number of saved records to request; zero leaves it to the
// server.
func perform(ctx context.Context, b Backend, pageSize int, r RequestEffect) Event {
	switch r.Kind {
	case RequestSignup:
		resp, err := b.Signup(ctx, r.Credentials)
		return SignupDone{Response: resp, Err: err}
	case RequestLogin:
		resp, err := b.Login(ctx, r.Credentials)
		return LoginDone{Response: resp, Err: err}
	case RequestLogout:
		resp, err := b.Logout(ctx)
		return LogoutDone{Response: resp, Err: err}
	case RequestGenerate:
		text, err := b.Generate(ctx, model.GenerateRequest{Topic: r.Topic})
		return GenerateDone{Topic: r.Topic, Flashcards: text, Err: err}
	case RequestSave:
		resp, err := b.Save(ctx, r.Save)
		return SaveDone{Response: resp, Err: err}
	case RequestListFlashcards:
		page := 0
		if pageSize > 0 {
			page = 1
		}
		records, err := b.ListFlashcards(ctx, page, pageSize)
		return SavedLoaded{Records: records, Err: err}
	default:
		return nil
	}
}
