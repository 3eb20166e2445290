// Package main provides the entry point for the flashdeck CLI.
//
// flashdeck is a terminal client for a flashcard generator server. It keeps
// the page state in memory (session, generated flashcards, saved list) and
// turns commands into the same requests the web page makes.
//
// Usage:
//
//	flashdeck shell
//	flashdeck login <username>
//	flashdeck generate -u <username> <topic>
//
// See --help for all available options.
package main

func main() {
	Execute()
}
