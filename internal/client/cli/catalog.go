package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/samber/lo"
)

func (a *App) list(ctx context.Context, _ []string) error {
	a.catalog.Load(ctx)
	a.printCatalog()
	return nil
}

func (a *App) search(ctx context.Context, args []string) error {
	a.catalog.Search(ctx, strings.Join(args, " "))
	a.printCatalog()
	return nil
}

func (a *App) clearSearch(ctx context.Context, _ []string) error {
	a.catalog.ClearSearch(ctx)
	a.printCatalog()
	return nil
}

// filter sets one browse filter; "-" clears it.
func (a *App) filter(ctx context.Context, args []string) error {
	key, value := args[0], optional(args[1])
	f := a.catalog.Filters()

	switch key {
	case "provider":
		p := models.Provider(strings.ToUpper(value))
		if value != "" && !lo.Contains(models.Providers, p) {
			return fmt.Errorf("%w: provider must be one of %v", errUsage, models.Providers)
		}
		f.Provider = p
	case "type":
		t := models.UpdateType(strings.ToUpper(value))
		if value != "" && !lo.Contains(models.UpdateTypes, t) {
			return fmt.Errorf("%w: type must be one of %v", errUsage, models.UpdateTypes)
		}
		f.UpdateType = t
	case "source":
		s := models.SourceType(strings.ToUpper(value))
		if value != "" && !lo.Contains(models.SourceTypes, s) {
			return fmt.Errorf("%w: source must be one of %v", errUsage, models.SourceTypes)
		}
		f.SourceType = s
	case "from":
		f.StartDate = value
	case "to":
		f.EndDate = value
	default:
		return fmt.Errorf("%w: unknown filter %q", errUsage, key)
	}

	if err := a.catalog.SetFilters(ctx, f); err != nil {
		return err
	}
	a.printCatalog()
	return nil
}

func (a *App) page(ctx context.Context, args []string) error {
	n, err := parsePage(args[0])
	if err != nil {
		return err
	}
	if err := a.catalog.SetPage(ctx, n); err != nil {
		return err
	}
	a.printCatalog()
	return nil
}

func (a *App) show(ctx context.Context, args []string) error {
	item, err := a.catalog.Detail(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, item.Title)
	fmt.Fprintf(a.out, "  %s · %s · %s\n", label(models.ProviderLabels, item.Provider),
		label(models.UpdateTypeLabels, item.UpdateType), label(models.SourceTypeLabels, item.SourceType))
	if item.PublishedAt != "" {
		fmt.Fprintln(a.out, "  Published:", day(item.PublishedAt))
	}
	fmt.Fprintln(a.out, "  URL:", item.URL)
	if item.Metadata != nil && item.Metadata.Version != "" {
		fmt.Fprintln(a.out, "  Version:", item.Metadata.Version)
	}
	if item.Summary != "" {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, item.Summary)
	}
	return nil
}

// toggleBookmark flips the bookmark on a catalog item optimistically.
func (a *App) toggleBookmark(ctx context.Context, args []string) error {
	a.toggle.Toggle(ctx, args[0])
	return nil
}

func (a *App) printCatalog() {
	view := a.catalog.View()
	if q := a.catalog.Query(); q != "" {
		fmt.Fprintf(a.out, "Search: %q (filters off, 'clear' to browse)\n", q)
	}
	if len(view.Items) == 0 {
		fmt.Fprintln(a.out, "No results.")
		return
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "\tID\tPROVIDER\tTYPE\tPUBLISHED\tTITLE")
	for _, item := range view.Items {
		mark := ""
		if a.toggle.IsBookmarked(item.ID) {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", mark, item.ID, label(models.ProviderLabels, item.Provider),
			label(models.UpdateTypeLabels, item.UpdateType), day(item.PublishedAt), truncate(item.Title, 60))
	}
	tw.Flush()
	fmt.Fprintln(a.out, pager(view.Page, view.TotalPages, view.Total))
}

func label[K ~string](labels map[K]string, k K) string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}
