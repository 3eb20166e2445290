package render

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/nao1215/flashdeck/internal/controller"
)

// MarkdownWriter outputs the page as Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the snapshot in Markdown format.
func (w *MarkdownWriter) Write(s controller.Snapshot) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, s)
	w.writeCards(md, s)
	w.writeSaved(md, s)

	return len(md.String()), md.Build()
}

// WriteAlert outputs the alert as a GitHub note.
func (w *MarkdownWriter) WriteAlert(message string) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.Note(message)
	md.PlainText("")
	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s controller.Snapshot) {
	md.H1("Flashcard Generator")
	md.PlainText("")

	rows := make([][]string, 0, len(s.Regions))
	for _, r := range s.Regions {
		state := "hidden"
		if r.Visible {
			state = "shown"
		}
		rows = append(rows, []string{regionLabel(r.ID), state})
	}
	md.PlainTextf("Session: **%s**", s.Session)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Region", "State"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(s.Invalid) > 0 {
		md.Importantf("Please fill out: %s", strings.Join(s.Invalid, ", "))
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeCards(md *markdown.Markdown, s controller.Snapshot) {
	switch s.CardsState {
	case controller.ViewEmpty:
		return
	case controller.ViewLoading:
		md.H2("Flashcards")
		md.PlainText("")
		md.PlainTextf("*%s*", s.CardsText)
	case controller.ViewError:
		md.H2("Flashcards")
		md.PlainText("")
		md.Warningf("%s", s.CardsText)
	case controller.ViewReady:
		if s.Topic != "" {
			md.H2f("Flashcards: %s", s.Topic)
		} else {
			md.H2("Flashcards")
		}
		md.PlainText("")
		if len(s.Flashcards) > 0 {
			md.OrderedList(s.Flashcards...)
		}
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeSaved(md *markdown.Markdown, s controller.Snapshot) {
	switch s.SavedState {
	case controller.ViewEmpty:
		return
	case controller.ViewLoading:
		md.H2("Saved Flashcards")
		md.PlainText("")
		md.PlainTextf("*%s*", s.SavedText)
		md.PlainText("")
	case controller.ViewError:
		md.H2("Saved Flashcards")
		md.PlainText("")
		md.Warningf("%s", s.SavedText)
		md.PlainText("")
	case controller.ViewReady:
		md.H2("Saved Flashcards")
		md.PlainText("")
		if len(s.Saved) == 0 {
			md.PlainText("No saved flashcards.")
			md.PlainText("")
			return
		}
		for _, r := range s.Saved {
			md.H3(r.Topic)
			md.PlainText("")
			md.BulletList(strings.Split(r.Flashcards, "\n")...)
			md.PlainText("")
		}
	}
}
