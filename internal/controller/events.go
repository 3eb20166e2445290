package controller

import "github.com/nao1215/flashdeck/internal/model"

// Event is an input to Update: a user action or the result of a request.
type Event interface {
	isEvent()
}

// PageLoaded is the page-load action. It loads saved flashcards when the
// session is logged in.
type PageLoaded struct{}

// SignupSubmitted is a submit of the signup form.
type SignupSubmitted struct {
	Credentials model.Credentials
}

// LoginSubmitted is a submit of the login form.
type LoginSubmitted struct {
	Credentials model.Credentials
}

// LogoutClicked is a click on the logout control.
type LogoutClicked struct{}

// GenerateSubmitted is a submit of the flashcard form.
type GenerateSubmitted struct {
	Topic string
}

// SaveClicked is a click on the save control of the generated set.
type SaveClicked struct{}

// SignupDone carries the result of a signup request.
type SignupDone struct {
	Response model.MessageResponse
	Err      error
}

// LoginDone carries the result of a login request.
type LoginDone struct {
	Response model.MessageResponse
	Err      error
}

// LogoutDone carries the result of a logout request.
type LogoutDone struct {
	Response model.MessageResponse
	Err      error
}

// GenerateDone carries the result of a generate request.
type GenerateDone struct {
	Topic      string
	Flashcards string
	Err        error
}

// SaveDone carries the result of a save request.
type SaveDone struct {
	Response model.MessageResponse
	Err      error
}

// SavedLoaded carries the result of loading saved flashcards.
type SavedLoaded struct {
	Records []model.SavedRecord
	Err     error
}

func (PageLoaded) isEvent()        {}
func (SignupSubmitted) isEvent()   {}
func (LoginSubmitted) isEvent()    {}
func (LogoutClicked) isEvent()     {}
func (GenerateSubmitted) isEvent() {}
func (SaveClicked) isEvent()       {}
func (SignupDone) isEvent()        {}
func (LoginDone) isEvent()         {}
func (LogoutDone) isEvent()        {}
func (GenerateDone) isEvent()      {}
func (SaveDone) isEvent()          {}
func (SavedLoaded) isEvent()       {}
