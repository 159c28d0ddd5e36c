// Package cli provides the interactive technai command-line client.
//
// App holds the session, the account service and the state controllers
// for each screen of the product: the emerging-tech catalog, bookmarks
// with trash and history, and the chatbot. runREPL reads one command per
// line and dispatches it through App's command table.
//
// Bookmark and chat commands are guarded: they wait until the persisted
// session has been read, and when nobody is signed in they print a
// redirect notice and start the sign-in prompt instead.
//
// Notifications raised by the controllers are printed after every
// command.
package cli
