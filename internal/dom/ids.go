package dom

// Element ids of the flashdeck page.
const (
	IDSignupForm     = "signup-form"
	IDLoginForm      = "login-form"
	IDLogoutButton   = "logout-button"
	IDFlashcardForm  = "flashcard-form"
	IDCardsContainer = "flashcards-container"
	IDSavedContainer = "saved-flashcards-container"
	IDSignupUsername = "signup-username"
	IDSignupPassword = "signup-password"
	IDLoginUsername  = "login-username"
	IDLoginPassword  = "login-password"
	IDTopic          = "topic"
)

// Class names of rendered elements.
const (
	ClassFlashcard      = "flashcard"
	ClassSaveButton     = "save-button"
	ClassError          = "error"
	ClassSavedFlashcard = "saved-flashcard"
)
