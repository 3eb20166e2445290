package render

import (
	"fmt"
	"html"
	"io"

	"github.com/nao1215/flashdeck/internal/controller"
)

// HTMLWriter outputs the live page markup.
type HTMLWriter struct {
	baseWriter
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer) *HTMLWriter {
	return &HTMLWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the serialised page followed by a newline.
func (w *HTMLWriter) Write(s controller.Snapshot) (int, error) {
	return io.WriteString(w.output, s.HTML+"\n")
}

// WriteAlert outputs the alert as an open dialog element.
func (w *HTMLWriter) WriteAlert(message string) (int, error) {
	return fmt.Fprintf(w.output, "<dialog open>%s</dialog>\n", html.EscapeString(message))
}
