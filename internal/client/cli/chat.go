package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/client/state"
)

func (a *App) listSessions(ctx context.Context, _ []string) error {
	a.sessions.Load(ctx)
	a.printSessions()
	return nil
}

func (a *App) moreSessions(ctx context.Context, _ []string) error {
	if !a.sessions.LoadMore(ctx) {
		fmt.Fprintln(a.out, "No more conversations.")
		return nil
	}
	a.printSessions()
	return nil
}

func (a *App) openSession(ctx context.Context, args []string) error {
	a.transcript.Select(ctx, args[0])
	if title := a.sessionTitle(ctx, args[0]); title != "" {
		fmt.Fprintf(a.out, "== %s ==\n", title)
	}
	a.printTranscript()
	return nil
}

// sessionTitle prefers the loaded sidebar and asks the backend otherwise.
func (a *App) sessionTitle(ctx context.Context, id string) string {
	for _, s := range a.sessions.Sessions() {
		if s.SessionID == id {
			return s.Title
		}
	}
	s, err := a.api.GetChatSession(ctx, id)
	if err != nil {
		a.log.Debug(ctx, "get chat session failed", "sessionId", id, "error", err)
		return ""
	}
	return s.Title
}

func (a *App) newChat(_ context.Context, _ []string) error {
	a.transcript.NewChat()
	fmt.Fprintln(a.out, "New conversation. Type 'say <text>' to start.")
	return nil
}

func (a *App) say(ctx context.Context, args []string) error {
	before := len(a.transcript.View().Messages)
	if err := a.transcript.Send(ctx, strings.Join(args, " ")); err != nil {
		fmt.Fprintln(a.out, "Message not sent. Use 'retry <id>' to send it again.")
		a.printFailed()
		return nil
	}
	msgs := a.transcript.View().Messages
	a.printMessages(msgs[min(before, len(msgs)):])
	a.viewport.scrollToBottom()
	return nil
}

func (a *App) retry(ctx context.Context, args []string) error {
	if err := a.transcript.Retry(ctx, args[0]); err != nil {
		a.printFailed()
		return nil
	}
	a.printTranscript()
	return nil
}

// older scrolls the transcript up by one screen. Reaching the top loads the
// previous page; the viewport keeps the former first line anchored and the
// window then moves up over the prepended lines.
func (a *App) older(ctx context.Context, _ []string) error {
	view := a.transcript.View()
	if view.Empty() {
		fmt.Fprintln(a.out, "No conversation selected.")
		return nil
	}
	if a.viewport.ScrollTop() == 0 {
		if !view.HasOlder {
			fmt.Fprintln(a.out, "This is the beginning of the conversation.")
			return nil
		}
		a.transcript.OnScroll(ctx)
	}
	a.viewport.scrollBy(-a.viewport.rows)
	a.printWindow(a.transcript.View())
	return nil
}

func (a *App) removeSession(ctx context.Context, args []string) error {
	if !Confirm(a.reader, "Delete this conversation?", a.out) {
		return errCancelled
	}
	if err := a.sessions.Remove(ctx, args[0]); err != nil {
		// already queued as an error toast
		return nil
	}
	a.printSessions()
	return nil
}

func (a *App) printSessions() {
	sessions := a.sessions.Sessions()
	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No conversations yet.")
		return
	}

	active := a.transcript.View().ActiveSession
	tw := newTable(a.out)
	fmt.Fprintln(tw, "\tSESSION ID\tLAST MESSAGE\tTITLE")
	for _, s := range sessions {
		mark := ""
		if s.SessionID == active {
			mark = ">"
		}
		title := s.Title
		if title == "" {
			title = "New conversation"
		}
		last := s.LastMessageAt
		if last == "" {
			last = s.CreatedAt
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, s.SessionID, day(last), truncate(title, 50))
	}
	tw.Flush()
	if a.sessions.HasMore() {
		fmt.Fprintln(a.out, "Type 'more' for older conversations.")
	}
}

func (a *App) printTranscript() {
	view := a.transcript.View()
	if view.Empty() {
		fmt.Fprintln(a.out, "No conversation selected.")
		return
	}
	if len(view.Messages) == 0 {
		fmt.Fprintln(a.out, "No messages.")
		return
	}
	a.viewport.scrollToBottom()
	a.printWindow(view)
}

// printWindow prints the transcript lines visible in the viewport.
func (a *App) printWindow(view state.TranscriptView) {
	lines, below := a.viewport.window()
	if a.viewport.ScrollTop() > 0 || view.HasOlder {
		fmt.Fprintln(a.out, "(type 'older' for earlier messages)")
	}
	for _, l := range lines {
		fmt.Fprintln(a.out, l)
	}
	if below > 0 {
		fmt.Fprintf(a.out, "(%d newer lines below)\n", below)
	}
}

func (a *App) printMessages(msgs []state.DisplayMessage) {
	for _, l := range renderMessages(msgs) {
		fmt.Fprintln(a.out, l)
	}
}

// renderMessages turns messages into terminal lines, sources indented
// under their answer.
func renderMessages(msgs []state.DisplayMessage) []string {
	var lines []string
	for _, m := range msgs {
		who := "you"
		if m.Role == models.RoleAssistant {
			who = "assistant"
		}
		prefix := who + ":"
		if m.Failed {
			prefix = fmt.Sprintf("%s [failed, id %s]:", who, m.ID)
		}
		for i, l := range strings.Split(m.Content, "\n") {
			if i == 0 {
				l = prefix + " " + l
			}
			lines = append(lines, l)
		}
		for _, src := range m.Sources {
			title := src.Title
			if title == "" {
				title = src.DocumentID
			}
			lines = append(lines, fmt.Sprintf("    - %s %s", title, src.URL))
		}
	}
	return lines
}

func (a *App) printFailed() {
	for _, id := range a.transcript.FailedIDs() {
		fmt.Fprintln(a.out, "  failed:", id)
	}
}
