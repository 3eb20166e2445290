// Package controller wires page interactions to backend requests and
// projects the results onto the page.
//
// The design is a reducer: Update takes the current Model and an Event and
// returns the next Model plus the Effects to perform (backend requests and
// alerts). Render projects a Model onto a dom.Document and is the only code
// that changes the page. Controller runs both on a single goroutine and
// performs each request on its own goroutine, feeding the result back as an
// Event.
package controller
