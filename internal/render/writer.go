package render

import (
	"fmt"
	"io"

	"github.com/nao1215/flashdeck/internal/config"
	"github.com/nao1215/flashdeck/internal/controller"
	"github.com/nao1215/flashdeck/internal/dom"
)

// Writer outputs page snapshots and alerts.
type Writer interface {
	// Write outputs the snapshot. It returns the number of bytes written.
	Write(s controller.Snapshot) (int, error)

	// WriteAlert outputs one alert message.
	WriteAlert(message string) (int, error)
}

// New returns the Writer for format.
func New(format config.Format, output io.Writer) (Writer, error) {
	switch format {
	case config.FormatText, "":
		return NewSimpleWriter(output), nil
	case config.FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case config.FormatHTML:
		return NewHTMLWriter(output), nil
	case config.FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownFormat, format)
	}
}

// MultiWriter writes to several Writers in order, stopping at the first
// error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the snapshot to all configured Writers.
func (m *MultiWriter) Write(s controller.Snapshot) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(s)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteAlert outputs the alert to all configured Writers.
func (m *MultiWriter) WriteAlert(message string) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteAlert(message)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// regionLabels names the toggled regions for people.
var regionLabels = map[string]string{
	dom.IDSignupForm:     "signup form",
	dom.IDLoginForm:      "login form",
	dom.IDLogoutButton:   "logout",
	dom.IDFlashcardForm:  "flashcard form",
	dom.IDSavedContainer: "saved flashcards",
}

// regionLabel returns the label of a region id, or the id itself.
func regionLabel(id string) string {
	if l, ok := regionLabels[id]; ok {
		return l
	}
	return id
}

// visibleLabels returns the labels of the visible regions in page order.
func visibleLabels(s controller.Snapshot) []string {
	var labels []string
	for _, r := range s.Regions {
		if r.Visible {
			labels = append(labels, regionLabel(r.ID))
		}
	}
	return labels
}
