package cli

import (
	"context"
	"os"

	"github.com/deepbrief/deepbrief/internal/client/repositories/history"
	"github.com/deepbrief/deepbrief/internal/client/repositories/metadata"
	"github.com/deepbrief/deepbrief/internal/client/session"
)

// getSimpleText and getToken are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getToken = GetToken

// Login reads a session token (without echo), derives the user identity from
// it, and persists both so the next start resumes the session. The balance
// and history are refreshed best-effort; a dead network still logs in.
//
// A token the identity cannot be derived from falls back to the anonymous
// identity. The token is kept in that case so a later client version that
// understands the format can retry.
func (a *App) Login(ctx context.Context) error {
	token, err := getToken(os.Stdout)
	if err != nil {
		return err
	}

	id := session.FromToken(token)
	if id.Anonymous() {
		printlnFn(notice.Sprint("Could not read a user id from that token; continuing as guest."))
	}
	a.identity = id

	if err := a.meta.Set(ctx, metadata.KeySessionToken, []byte(id.Token)); err != nil {
		a.log.Warn(ctx, "failed to cache session token", "error", err)
	}
	if err := a.meta.Set(ctx, metadata.KeyUserID, []byte(id.UserID)); err != nil {
		a.log.Warn(ctx, "failed to cache user id", "error", err)
	}

	if !id.Anonymous() {
		_ = a.ledger.Load(ctx, id.UserID)
		if records, err := a.history.Refresh(ctx, id.UserID); err == nil {
			a.listing = records
		}
		printlnFn(success.Sprintf("Logged in as %s", id.UserID))
	}
	return nil
}

// Logout drops the identity and wipes the local cache: metadata (token,
// user id, balance) and the history snapshot. The in-memory balance is reset
// so a response still in flight cannot restore the previous user's state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.meta.Clear(ctx); err != nil {
		a.log.Warn(ctx, "failed to clear cached metadata", "error", err)
	}
	if err := history.NewSQLiteRepository(a.db).DeleteAll(ctx); err != nil {
		a.log.Warn(ctx, "failed to clear cached history", "error", err)
	}

	a.identity = session.Identity{UserID: session.AnonymousUserID}
	a.ledger.Reset()
	a.listing = nil
	a.current = nil

	printlnFn("Logged out.")
	return nil
}
