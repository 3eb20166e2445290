package model

import "strings"

// FlashcardSet is the transient result of a successful generate request.
// It exists from the generate response until the next generate or the end
// of the page session, and is the source of the save payload.
type FlashcardSet struct {
	// Topic is the topic that was submitted with the generate form.
	Topic string `json:"topic"`

	// Text is the save payload: the response split on "\n" and joined back
	// with "\n". Lines are not trimmed here.
	Text string `json:"flashcards"`

	// Lines holds the non-empty trimmed lines of the response, in order.
	// Each entry is rendered as one flashcard element.
	Lines []string `json:"lines"`
}

// NewFlashcardSet builds a FlashcardSet from the raw "flashcards" string
// returned by the generate endpoint.
//
// Each line produced by splitting on "\n" becomes one card after trimming
// surrounding whitespace; lines that trim to nothing are dropped. The save
// text is the untrimmed lines re-joined, so a server that trims differently
// may store text that differs from what was displayed.
func NewFlashcardSet(topic, raw string) *FlashcardSet {
	parts := strings.Split(raw, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if line := strings.TrimSpace(p); line != "" {
			lines = append(lines, line)
		}
	}

	return &FlashcardSet{
		Topic: topic,
		Text:  strings.Join(parts, "\n"),
		Lines: lines,
	}
}

// Len returns the number of flashcards in the set.
func (s *FlashcardSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Lines)
}

// SavedRecord is a flashcard record as returned by the listing endpoint.
// It is read-only from the client's point of view and rendered verbatim.
type SavedRecord struct {
	Topic      string `json:"topic"`
	Flashcards string `json:"flashcards"`
}
