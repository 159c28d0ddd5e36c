package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/technai/internal/client/state"
)

var (
	errUsage     = errors.New("invalid argument")
	errCancelled = errors.New("cancelled")
)

// noValue clears a filter argument.
const noValue = "-"

func parsePage(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: page must be a positive number", errUsage)
	}
	return n, nil
}

func optional(arg string) string {
	if arg == noValue {
		return ""
	}
	return arg
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// pager renders "Page 2/9 (173 total)  1 [2] 3 ... 9".
func pager(page, pages int, total int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Page %d/%d (%d total)", page, max(pages, 1), total)

	window := state.PageWindow(page, pages)
	if len(window) > 0 {
		b.WriteString(" ")
	}
	for _, item := range window {
		b.WriteString(" ")
		switch {
		case item == state.Ellipsis:
			b.WriteString("...")
		case int(item) == page:
			fmt.Fprintf(&b, "[%d]", item)
		default:
			fmt.Fprintf(&b, "%d", item)
		}
	}
	return b.String()
}

// day trims an ISO timestamp to its date.
func day(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
