package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/client/config"
	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/client/services"
	"github.com/dmitrijs2005/technai/internal/client/session"
	"github.com/dmitrijs2005/technai/internal/client/state"
	"github.com/dmitrijs2005/technai/internal/logging"
)

const redirectNotice = "Sign-in required: redirecting to /signin"

// Session is the read side of session.Store the REPL needs.
type Session interface {
	Ready() <-chan struct{}
	State() session.State
	User() *models.AuthUser
}

// API is the backend surface behind the screens. client.HTTPClient
// satisfies it.
type API interface {
	client.EmergingTechAPI
	client.BookmarkAPI
	client.ChatbotAPI
}

type App struct {
	config  *config.Config
	session Session
	auth    services.AuthService
	api     API
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	toasts     *state.Toasts
	catalog    *state.Catalog
	toggle     *state.BookmarkToggle
	bookmarks  *state.Bookmarks
	trash      *state.Trash
	history    *state.History
	sessions   *state.ChatSessions
	transcript *state.Transcript
	viewport   *lineViewport

	commands map[string]command
}

// NewApp builds the controllers for every screen on top of api and links
// the chat sidebar with the transcript.
func NewApp(c *config.Config, s Session, auth services.AuthService, api API, log logging.Logger, in io.Reader, out io.Writer) *App {
	toasts := state.NewToasts(c.ToastTTL)
	a := &App{
		config:     c,
		session:    s,
		auth:       auth,
		api:        api,
		log:        log,
		reader:     bufio.NewReader(in),
		out:        out,
		toasts:     toasts,
		catalog:    state.NewCatalog(api, c.CatalogPageSize, log),
		toggle:     state.NewBookmarkToggle(api, toasts, log),
		bookmarks:  state.NewBookmarks(api, toasts, c.BookmarkPageSize, log),
		trash:      state.NewTrash(api, toasts, c.BookmarkPageSize, c.TrashDays, log),
		sessions:   state.NewChatSessions(api, toasts, c.SessionPageSize, log),
		transcript: state.NewTranscript(api, toasts, c.ChatPageSize, log),
	}

	a.transcript.OnSessionCreated(func(ctx context.Context, _ string) {
		a.sessions.Load(ctx)
	})
	a.sessions.OnRemoved(a.transcript.SessionRemoved)
	a.viewport = newLineViewport(func() []string {
		return renderMessages(a.transcript.View().Messages)
	}, transcriptRows)
	a.transcript.SetViewport(a.viewport)

	a.commands = a.commandTable()
	return a
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to technai CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

// SessionExpired is hooked to the gateway; it runs after a failed token
// refresh has cleared the session.
func (a *App) SessionExpired() {
	a.transcript.NewChat()
	fmt.Fprintln(a.out, redirectNotice)
}

func (a *App) commandTable() map[string]command {
	return map[string]command{
		// account
		"signup":         {usage: "signup", run: a.signup},
		"signin":         {usage: "signin", run: a.signin},
		"oauth":          {usage: "oauth <provider> <code> [state]", minArgs: 2, run: a.oauth},
		"verify":         {usage: "verify <token>", minArgs: 1, run: a.verify},
		"reset":          {usage: "reset", run: a.reset},
		"reset-confirm":  {usage: "reset-confirm <token>", minArgs: 1, run: a.resetConfirm},
		"signout":        {usage: "signout", run: a.signout},
		"delete-account": {usage: "delete-account", guarded: true, run: a.deleteAccount},
		"whoami":         {usage: "whoami", run: a.whoami},

		// catalog
		"list":   {usage: "list", run: a.list},
		"search": {usage: "search <query>", minArgs: 1, run: a.search},
		"clear":  {usage: "clear", run: a.clearSearch},
		"filter": {usage: "filter <provider|type|source|from|to> <value|->", minArgs: 2, run: a.filter},
		"page":   {usage: "page <n>", minArgs: 1, run: a.page},
		"show":   {usage: "show <id>", minArgs: 1, run: a.show},
		"bm":     {usage: "bm <emergingTechId>", minArgs: 1, guarded: true, run: a.toggleBookmark},

		// bookmarks
		"bookmarks": {usage: "bookmarks", guarded: true, run: a.listBookmarks},
		"bsearch":   {usage: "bsearch <all|title|memo|tags> <query>", minArgs: 2, guarded: true, run: a.searchBookmarks},
		"bclear":    {usage: "bclear", guarded: true, run: a.clearBookmarkSearch},
		"bsort":     {usage: "bsort <" + strings.Join(models.BookmarkSorts, "|") + ">", minArgs: 1, guarded: true, run: a.sortBookmarks},
		"bprovider": {usage: "bprovider <provider|->", minArgs: 1, guarded: true, run: a.bookmarkProvider},
		"bpage":     {usage: "bpage <n>", minArgs: 1, guarded: true, run: a.bookmarkPage},
		"bedit":     {usage: "bedit <bookmarkId>", minArgs: 1, guarded: true, run: a.editBookmark},
		"bdelete":   {usage: "bdelete <bookmarkId>", minArgs: 1, guarded: true, run: a.deleteBookmark},
		"trash":     {usage: "trash [7|14|30|60|90]", guarded: true, run: a.listTrash},
		"trestore":  {usage: "trestore <bookmarkId>", minArgs: 1, guarded: true, run: a.restoreBookmark},
		"history":   {usage: "history <bookmarkId> [CREATE|UPDATE|DELETE]", minArgs: 1, guarded: true, run: a.showHistory},
		"hat":       {usage: "hat <bookmarkId> <timestamp>", minArgs: 2, guarded: true, run: a.historyAt},
		"hrestore":  {usage: "hrestore <bookmarkId> <historyId>", minArgs: 2, guarded: true, run: a.restoreVersion},

		// chat
		"sessions":  {usage: "sessions", guarded: true, run: a.listSessions},
		"more":      {usage: "more", guarded: true, run: a.moreSessions},
		"open":      {usage: "open <sessionId>", minArgs: 1, guarded: true, run: a.openSession},
		"new":       {usage: "new", guarded: true, run: a.newChat},
		"say":       {usage: "say <text>", minArgs: 1, guarded: true, run: a.say},
		"retry":     {usage: "retry <messageId>", minArgs: 1, guarded: true, run: a.retry},
		"older":     {usage: "older", guarded: true, run: a.older},
		"rmsession": {usage: "rmsession <sessionId>", minArgs: 1, guarded: true, run: a.removeSession},
	}
}

func (a *App) lookup(name string) (command, bool) {
	cmd, ok := a.commands[name]
	return cmd, ok
}

func (a *App) help() string {
	usages := make([]string, 0, len(a.commands)+2)
	for _, cmd := range a.commands {
		usages = append(usages, cmd.usage)
	}
	sort.Strings(usages)
	usages = append(usages, "help", "exit")
	return "Available commands:\n  " + strings.Join(usages, "\n  ")
}

// status is the prompt decoration: the signed-in username, or the
// session state when nobody is signed in.
func (a *App) status() string {
	st := a.session.State()
	if st == session.StateAuthenticated {
		if u := a.session.User(); u != nil && u.Username != "" {
			return "(" + u.Username + ")"
		}
	}
	return "(" + st.String() + ")"
}

// requireAuth is the route guard. It waits for the persisted session to
// be read, then lets authenticated users through; anyone else is sent to
// the sign-in prompt.
func (a *App) requireAuth(ctx context.Context) bool {
	select {
	case <-a.session.Ready():
	case <-ctx.Done():
		return false
	}

	if a.session.State() == session.StateAuthenticated {
		return true
	}

	fmt.Fprintln(a.out, redirectNotice)
	if err := a.signin(ctx, nil); err != nil {
		a.report(err)
		return false
	}
	return a.session.State() == session.StateAuthenticated
}

// report prints a failed command's error in user terms.
func (a *App) report(err error) {
	switch {
	case errors.Is(err, state.ErrFiltersSuspended),
		errors.Is(err, state.ErrPageOutOfRange),
		errors.Is(err, state.ErrInvalidOption),
		errors.Is(err, errUsage),
		errors.Is(err, errCancelled):
		fmt.Fprintln(a.out, "Error:", err)
	default:
		fmt.Fprintln(a.out, "Error:", services.DisplayMessage(err, services.MsgGeneric))
	}
}

func (a *App) flush() {
	for _, t := range a.toasts.Drain() {
		fmt.Fprintf(a.out, "[%s] %s\n", t.Kind, t.Message)
	}
}
