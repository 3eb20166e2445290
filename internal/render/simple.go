package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/flashdeck/internal/controller"
)

// rulerWidth is the width of section rulers.
const rulerWidth = 60

// SimpleWriter outputs the page as plain text for a terminal.
type SimpleWriter struct {
	baseWriter

	// showHidden lists hidden regions as well as visible ones.
	showHidden bool

	title cases.Caser
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowHidden lists hidden regions in the header.
func WithShowHidden(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showHidden = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		title:      cases.Title(language.English),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the snapshot.
func (w *SimpleWriter) Write(s controller.Snapshot) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, s)
	w.writeCards(&sb, s)
	w.writeSaved(&sb, s)

	return io.WriteString(w.output, sb.String())
}

// WriteAlert outputs an alert line.
func (w *SimpleWriter) WriteAlert(message string) (int, error) {
	return fmt.Fprintf(w.output, "[alert] %s\n", message)
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, s controller.Snapshot) {
	fmt.Fprintf(sb, "Session: %s\n", s.Session)

	if w.showHidden {
		for _, r := range s.Regions {
			state := "hidden"
			if r.Visible {
				state = "shown"
			}
			fmt.Fprintf(sb, "  %-18s %s\n", regionLabel(r.ID), state)
		}
	} else {
		fmt.Fprintf(sb, "Showing: %s\n", strings.Join(visibleLabels(s), ", "))
	}

	if len(s.Invalid) > 0 {
		fmt.Fprintf(sb, "Please fill out: %s\n", strings.Join(s.Invalid, ", "))
	}
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, name string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", rulerWidth))
	sb.WriteString("\n")
	sb.WriteString(w.title.String(name))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", rulerWidth))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeCards(sb *strings.Builder, s controller.Snapshot) {
	switch s.CardsState {
	case controller.ViewEmpty:
		return
	case controller.ViewReady:
		w.writeSection(sb, "flashcards")
		if s.Topic != "" {
			fmt.Fprintf(sb, "  Topic: %s\n", s.Topic)
		}
		for i, card := range s.Flashcards {
			fmt.Fprintf(sb, "  %2d. %s\n", i+1, card)
		}
		if s.CanSave {
			sb.WriteString("  [save]\n")
		}
	default:
		w.writeSection(sb, "flashcards")
		fmt.Fprintf(sb, "  %s\n", s.CardsText)
	}
}

func (w *SimpleWriter) writeSaved(sb *strings.Builder, s controller.Snapshot) {
	switch s.SavedState {
	case controller.ViewEmpty:
		return
	case controller.ViewReady:
		w.writeSection(sb, "saved flashcards")
		if len(s.Saved) == 0 {
			sb.WriteString("  No saved flashcards\n")
			return
		}
		for _, r := range s.Saved {
			fmt.Fprintf(sb, "  [+] %s\n", r.Topic)
			for _, line := range strings.Split(r.Flashcards, "\n") {
				fmt.Fprintf(sb, "      %s\n", line)
			}
		}
	default:
		w.writeSection(sb, "saved flashcards")
		fmt.Fprintf(sb, "  %s\n", s.SavedText)
	}
}
