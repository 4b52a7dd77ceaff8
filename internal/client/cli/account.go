package cli

import (
	"context"
)

// Balance refreshes the credit balance from the server and prints the result.
// A failed refresh falls back to the last known value rather than erroring;
// the prompt shows the same number either way.
func (a *App) Balance(ctx context.Context) error {
	_ = a.ledger.Load(ctx, a.identity.UserID)

	b := a.ledger.Snapshot()
	if !b.Known() {
		printlnFn("Balance unknown. Log in and try again once the service is reachable.")
		return nil
	}
	printlnFn("Balance: " + b.String())
	return nil
}

// Upgrade starts a checkout session and hands the user its URL. Payment
// happens on the provider's site; nothing changes locally until the user
// comes back and runs verify.
func (a *App) Upgrade(ctx context.Context) error {
	url, err := a.checkout.Start(ctx, a.identity.UserID)
	if err != nil {
		printError(err)
		return err
	}

	printlnFn(heading.Sprint("Open this link in your browser to complete the upgrade:"))
	printlnFn("  " + url)
	printlnFn("When the payment is done, run: verify <session_id>")
	return nil
}

// Verify resolves a checkout session after the user returns from the payment
// provider. On success the balance is reloaded so the credited amount shows
// up immediately.
func (a *App) Verify(ctx context.Context, sessionID string) error {
	result, err := a.payments.Verify(ctx, sessionID)
	if err != nil {
		printError(err)
		return err
	}

	printlnFn(success.Sprintf("Payment verified (session %s). Welcome to Pro!", result.SessionID))
	_ = a.ledger.Load(ctx, a.identity.UserID)
	return nil
}
