// Package model defines the core data structures used throughout flashdeck.
//
// This package contains the following main types:
//   - SessionState: The two-valued login state of a page session
//   - FlashcardSet: A generated set of flashcards awaiting save
//   - SavedRecord: A flashcard record stored on the server
//   - Credentials, GenerateRequest, SaveRequest: Request payloads
//   - MessageResponse, GenerateResponse: Response payloads
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The backend, controller and render packages all need these
// types, so centralizing them prevents import cycles.
//
// All payload types carry JSON tags matching the server's wire format.
package model
