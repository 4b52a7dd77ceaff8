package cli

import (
	"context"
	"fmt"
	"os"
)

// GenerateReport prompts for a topic and runs it through the research
// service. The rendered report becomes the current view. A history write
// failure is reported as a notice; the report itself already succeeded.
func (a *App) GenerateReport(ctx context.Context) error {
	topic, err := getSimpleText(a.reader, "Enter a research topic", os.Stdout)
	if err != nil {
		return err
	}

	printlnFn("Generating report, this may take a while...")

	outcome, err := a.research.Generate(ctx, a.identity.UserID, topic)
	if err != nil {
		printError(err)
		return err
	}

	a.current = &outcome.Result
	printReport(a.current)

	if outcome.CreditsLeft != nil {
		printlnFn(fmt.Sprintf("Credits left: %d", *outcome.CreditsLeft))
	}
	if !outcome.HistorySaved {
		printlnFn(notice.Sprint("The report could not be saved to your history. It is shown above; copy it if you need to keep it."))
	}
	return nil
}
