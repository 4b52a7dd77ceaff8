package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/deepbrief/deepbrief/internal/client/api"
	"github.com/deepbrief/deepbrief/internal/client/models"
	"github.com/deepbrief/deepbrief/internal/common"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen)
	notice  = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
)

// userMessage translates a service error into a message a user can act on.
// Server-supplied detail strings win when present; everything else maps to a
// fixed text per sentinel.
func userMessage(err error) string {
	var se *api.ServerError
	if errors.As(err, &se) {
		return se.Message()
	}

	switch {
	case errors.Is(err, common.ErrInsufficientCredits):
		return "Insufficient credits! Please upgrade."
	case errors.Is(err, common.ErrTopicTooShort):
		return "Topic must be at least 5 characters long."
	case errors.Is(err, common.ErrTopicTooLong):
		return "Topic must be at most 200 characters long."
	case errors.Is(err, common.ErrNotLoggedIn):
		return "Please log in first (type 'login')."
	case errors.Is(err, common.ErrRequestInFlight):
		return "A report is already being generated. Please wait for it to finish."
	case errors.Is(err, common.ErrUnavailable):
		return "The service is unavailable. Please try again later."
	case errors.Is(err, common.ErrMissingSessionID):
		return "No session id provided. Usage: verify <session_id>"
	case errors.Is(err, common.ErrVerificationFailed):
		return "Payment verification failed. If you completed the payment, try again in a moment."
	case errors.Is(err, common.ErrCheckoutFailed):
		return "Could not start a checkout session. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

func printError(err error) {
	printlnFn(failure.Sprint(userMessage(err)))
}

// printReport renders a full report: topic heading, body, numbered sources.
func printReport(r *models.ReportResult) {
	printlnFn(heading.Sprint(r.Topic))
	printlnFn(r.Report)
	if len(r.Sources) > 0 {
		printlnFn(heading.Sprint("Sources:"))
		for i, src := range r.Sources {
			printlnFn(fmt.Sprintf("  [%d] %s", i+1, src))
		}
	}
}
