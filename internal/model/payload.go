package model

// Credentials is the body of the signup and login requests.
// Both fields are required; an empty field blocks form submission.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// GenerateRequest is the body of the generate request.
type GenerateRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// SaveRequest is the body of the save request.
type SaveRequest struct {
	Topic      string `json:"topic"`
	Flashcards string `json:"flashcards"`
}

// MessageResponse is the response shape shared by signup, login, logout and
// save. Exactly one of Message or Error is normally set.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Text returns Message if present, otherwise Error.
// This is the text shown to the user for any message-style response.
func (r MessageResponse) Text() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Error
}

// GenerateResponse is the response of the generate endpoint.
type GenerateResponse struct {
	Flashcards string `json:"flashcards"`
	Error      string `json:"error,omitempty"`
}

// ErrorResponse is the error shape used by every endpoint on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
