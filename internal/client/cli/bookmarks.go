package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/client/state"
)

func (a *App) listBookmarks(ctx context.Context, _ []string) error {
	a.bookmarks.Load(ctx)
	a.toggle.Seed(a.bookmarks.KnownIDs())
	a.printBookmarks()
	return nil
}

// searchBookmarks: bsearch <field> <query...>.
func (a *App) searchBookmarks(ctx context.Context, args []string) error {
	if err := a.bookmarks.Search(ctx, strings.Join(args[1:], " "), args[0]); err != nil {
		return err
	}
	a.printBookmarks()
	return nil
}

func (a *App) clearBookmarkSearch(ctx context.Context, _ []string) error {
	a.bookmarks.ClearSearch(ctx)
	a.printBookmarks()
	return nil
}

func (a *App) sortBookmarks(ctx context.Context, args []string) error {
	if err := a.bookmarks.SetSort(ctx, args[0]); err != nil {
		return err
	}
	a.printBookmarks()
	return nil
}

func (a *App) bookmarkProvider(ctx context.Context, args []string) error {
	if err := a.bookmarks.SetProvider(ctx, strings.ToUpper(optional(args[0]))); err != nil {
		return err
	}
	a.printBookmarks()
	return nil
}

func (a *App) bookmarkPage(ctx context.Context, args []string) error {
	n, err := parsePage(args[0])
	if err != nil {
		return err
	}
	if err := a.bookmarks.SetPage(ctx, n); err != nil {
		return err
	}
	a.printBookmarks()
	return nil
}

// editBookmark prompts for new tags and memo, showing the current ones.
// An empty answer keeps the current value. Controller failures are already
// toasted, so they are not reported again.
func (a *App) editBookmark(ctx context.Context, args []string) error {
	bm, err := a.bookmarks.Get(ctx, args[0])
	if err != nil {
		return nil
	}

	fmt.Fprintln(a.out, bm.Title)
	fmt.Fprintln(a.out, "  Tags:", strings.Join(bm.Tags, ", "))
	fmt.Fprintln(a.out, "  Memo:", bm.Memo)

	tags, err := GetList(a.reader, "New tags", a.out)
	if err != nil {
		return err
	}
	if tags == nil {
		tags = bm.Tags
	}
	memo, err := GetMultiline(a.reader, "New memo", a.out)
	if err != nil {
		return err
	}
	if memo == "" {
		memo = bm.Memo
	}

	if err := a.bookmarks.Update(ctx, bm.BookmarkTsid, tags, memo); err != nil {
		return nil
	}
	a.printBookmarks()
	return nil
}

func (a *App) deleteBookmark(ctx context.Context, args []string) error {
	if !Confirm(a.reader, "Move this bookmark to the trash?", a.out) {
		return errCancelled
	}
	if err := a.bookmarks.Delete(ctx, args[0]); err != nil {
		return nil
	}
	a.printBookmarks()
	return nil
}

// listTrash shows bookmarks deleted within the last N days.
func (a *App) listTrash(ctx context.Context, args []string) error {
	if len(args) > 0 {
		days, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: days must be one of %v", errUsage, models.TrashDayOptions)
		}
		if err := a.trash.SetDays(ctx, days); err != nil {
			return err
		}
	} else {
		a.trash.Load(ctx)
	}
	a.printTrash()
	return nil
}

func (a *App) restoreBookmark(ctx context.Context, args []string) error {
	if err := a.trash.Restore(ctx, args[0]); err != nil {
		return nil
	}
	a.printTrash()
	return nil
}

// showHistory opens the change log of a bookmark, optionally filtered by
// operation.
func (a *App) showHistory(ctx context.Context, args []string) error {
	h := a.historyFor(args[0])
	var f state.HistoryFilters
	if len(args) > 1 {
		f.OperationType = models.OperationType(strings.ToUpper(args[1]))
	}
	h.SetFilters(ctx, f)

	view := h.View()
	if len(view.Items) == 0 {
		fmt.Fprintln(a.out, "No history.")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "HISTORY ID\tOPERATION\tCHANGED AT\tBY")
	for _, e := range view.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.HistoryID, e.OperationType, e.ChangedAt, e.ChangedBy)
	}
	tw.Flush()
	fmt.Fprintln(a.out, pager(view.Page, view.TotalPages, view.Total))
	return nil
}

// historyAt prints the bookmark as it was at a timestamp.
func (a *App) historyAt(ctx context.Context, args []string) error {
	entry, err := a.historyFor(args[0]).At(ctx, strings.Join(args[1:], " "))
	if err != nil || entry == nil {
		return nil
	}

	fmt.Fprintf(a.out, "%s at %s (%s)\n", entry.EntityID, entry.ChangedAt, entry.OperationType)
	data := entry.AfterData
	if data == nil {
		data = entry.BeforeData
	}
	for _, key := range []string{"title", "tags", "memo"} {
		if v, ok := data[key]; ok {
			fmt.Fprintf(a.out, "  %s: %v\n", key, v)
		}
	}
	return nil
}

func (a *App) restoreVersion(ctx context.Context, args []string) error {
	_ = a.historyFor(args[0]).RestoreVersion(ctx, args[1])
	return nil
}

// historyFor returns the history controller for id, replacing the one
// kept for a different bookmark.
func (a *App) historyFor(id string) *state.History {
	if a.history == nil || a.history.BookmarkID() != id {
		a.history = state.NewHistory(a.api, a.toasts, id, a.config.HistoryPageSize, a.log)
		a.history.OnRestored(func() {
			a.bookmarks.Load(context.Background())
		})
	}
	return a.history
}

func (a *App) printBookmarks() {
	view := a.bookmarks.View()
	if q, field := a.bookmarks.Query(); q != "" {
		fmt.Fprintf(a.out, "Search %s: %q (sort and provider off, 'bclear' to browse)\n", field, q)
	}
	if len(view.Items) == 0 {
		fmt.Fprintln(a.out, "No bookmarks.")
		return
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "BOOKMARK ID\tPROVIDER\tTAGS\tTITLE")
	for _, bm := range view.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", bm.BookmarkTsid, bm.Provider, strings.Join(bm.Tags, ","), truncate(bm.Title, 60))
	}
	tw.Flush()
	fmt.Fprintln(a.out, pager(view.Page, view.TotalPages, view.Total))
}

func (a *App) printTrash() {
	view := a.trash.View()
	fmt.Fprintf(a.out, "Deleted in the last %d days:\n", a.trash.Days())
	if len(view.Items) == 0 {
		fmt.Fprintln(a.out, "Trash is empty.")
		return
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "BOOKMARK ID\tDELETED\tTITLE")
	for _, bm := range view.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", bm.BookmarkTsid, day(bm.UpdatedAt), truncate(bm.Title, 60))
	}
	tw.Flush()
	fmt.Fprintln(a.out, pager(view.Page, view.TotalPages, view.Total))
}
