// Package shell is the line-oriented front end of flashdeck.
//
// Each typed command is turned into the page interaction a user would
// perform: filling inputs, submitting a form, or clicking a control. After
// every command the shell waits until the controller is idle, prints the
// alerts raised meanwhile, and prints the page again if it changed.
//
// Commands:
//
//	signup <username> [password]
//	login <username> [password]
//	logout
//	generate <topic...>
//	save
//	show
//	status
//	help
//	quit | exit
//
// Command names are case-insensitive. A password left off the line is read
// from the terminal without echo.
package shell
