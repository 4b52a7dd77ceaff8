package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/deepbrief/deepbrief/internal/common"
)

// History refreshes the report log from the server and prints it newest
// first. When the service is unreachable the cached snapshot is shown
// instead, marked as such. The printed listing is what show indexes into.
func (a *App) History(ctx context.Context) error {
	records, err := a.history.Refresh(ctx, a.identity.UserID)
	if err != nil {
		if !errors.Is(err, common.ErrUnavailable) {
			printError(err)
			return err
		}
		records, err = a.history.Cached(ctx)
		if err != nil {
			printError(err)
			return err
		}
		printlnFn(notice.Sprint("Service unavailable; showing cached history."))
	}

	a.listing = records

	if len(records) == 0 {
		printlnFn("No reports yet. Type 'generate' to create one.")
		return nil
	}
	for i, rec := range records {
		printlnFn(fmt.Sprintf("%3d. %s (%s, %d sources)",
			i+1, rec.Topic, rec.CreatedAt.Format("2006-01-02 15:04"), len(rec.Sources)))
	}
	return nil
}

// Show opens entry n from the last printed listing, replacing the current
// report view.
func (a *App) Show(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.listing) {
		printlnFn(fmt.Sprintf("No such entry: %q. Run 'history' and pick a number from the list.", arg))
		return common.ErrNotFound
	}

	result := a.listing[n-1].Result()
	a.current = &result
	printReport(a.current)
	return nil
}
