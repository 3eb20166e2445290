// Package backend is the HTTP transport between flashdeck and the flashcard
// server.
//
// Client exposes one method per endpoint (signup, login, logout, generate,
// save, and the saved flashcard listing). Every method returns either a
// typed result, a *TransportError when the request could not be completed
// or the response could not be read, or an *AppError when the server
// answered with a non-2xx status.
//
// Requests can be routed through a SOCKS5 proxy or an embedded Tor daemon,
// which is required when the server is an onion service.
package backend
