// Package render writes page snapshots for the terminal: as plain text,
// Markdown, the page's own HTML, or JSON.
package render
