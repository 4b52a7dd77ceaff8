// Package services contains the application services of the DeepBrief client:
// the credit ledger, the generation orchestrator, the history synchronizer,
// and the checkout/payment flows. Services talk to the backend only through
// api.Client and to the local cache through the repository interfaces, so all
// of them are testable against fakes.
package services

import (
	"context"
	"strconv"
	"sync"

	"github.com/deepbrief/deepbrief/internal/client/api"
	"github.com/deepbrief/deepbrief/internal/client/models"
	"github.com/deepbrief/deepbrief/internal/client/repositories/metadata"
	"github.com/deepbrief/deepbrief/internal/client/session"
	"github.com/deepbrief/deepbrief/internal/logging"
)

// Ledger is the single writer for the cached credit balance.
//
// Every async producer (profile loads, generation responses) reserves a
// sequence number with Begin before issuing its request and commits with that
// number when the response lands. A commit is applied only if its sequence is
// newer than the last applied one, so a slow early response can never
// overwrite a fresher balance. Amount and tier always change together.
type Ledger struct {
	client api.Client
	meta   metadata.Repository
	log    logging.Logger

	mu      sync.Mutex
	seq     uint64
	applied uint64
	balance models.Balance
}

func NewLedger(client api.Client, meta metadata.Repository, log logging.Logger) *Ledger {
	return &Ledger{client: client, meta: meta, log: log}
}

// Begin reserves a sequence number for an update that is about to be
// requested. The matching Commit* call must pass it back.
func (l *Ledger) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	return l.seq
}

// CommitBalance applies a full balance update (amount and tier atomically).
// It reports whether the write was applied or discarded as stale.
func (l *Ledger) CommitBalance(ctx context.Context, seq uint64, amount int, tier models.Tier) bool {
	return l.commit(ctx, seq, amount, tier, true)
}

// CommitAmount applies an amount-only update, preserving the current tier.
// Used for the authoritative credits_left field of a generation response.
func (l *Ledger) CommitAmount(ctx context.Context, seq uint64, amount int) bool {
	return l.commit(ctx, seq, amount, "", false)
}

func (l *Ledger) commit(ctx context.Context, seq uint64, amount int, tier models.Tier, withTier bool) bool {
	l.mu.Lock()
	if seq <= l.applied {
		l.mu.Unlock()
		l.log.Debug(ctx, "discarding stale balance update", "seq", seq, "applied", l.applied)
		return false
	}
	l.applied = seq
	a := amount
	l.balance.Amount = &a
	if withTier {
		l.balance.Tier = tier
	}
	snapshot := l.balance
	l.mu.Unlock()

	l.cache(ctx, snapshot)
	return true
}

// Reset clears the balance and invalidates any commit still in flight.
// Called on logout so a response racing the logout cannot resurrect the
// previous user's balance.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.applied = l.seq
	l.balance = models.Balance{}
}

// Snapshot returns the current balance. A zero-value Balance (nil Amount)
// means nothing has been loaded yet.
func (l *Ledger) Snapshot() models.Balance {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Load fetches the balance for userID and commits it under a fresh sequence.
// The call is skipped entirely for the anonymous identity. Failures keep the
// previous value and are logged, not surfaced: the UI degrades to "balance
// unknown" and the server stays the authority on gating.
func (l *Ledger) Load(ctx context.Context, userID string) error {
	if userID == "" || userID == session.AnonymousUserID {
		return nil
	}

	seq := l.Begin()
	profile, err := l.client.Profile(ctx, userID)
	if err != nil {
		l.log.Warn(ctx, "balance load failed", "error", err)
		return err
	}

	l.CommitBalance(ctx, seq, profile.Credits, models.ParseTier(profile.Tier))
	return nil
}

// RestoreCached seeds the balance from the local cache so the prompt can show
// the last known value before the first load completes (or while offline).
func (l *Ledger) RestoreCached(ctx context.Context) {
	credits, err := l.meta.Get(ctx, metadata.KeyCredits)
	if err != nil || credits == nil {
		return
	}
	amount, err := strconv.Atoi(string(credits))
	if err != nil {
		return
	}

	tier := models.TierFree
	if raw, err := l.meta.Get(ctx, metadata.KeyTier); err == nil && raw != nil {
		tier = models.ParseTier(string(raw))
	}

	l.CommitBalance(ctx, l.Begin(), amount, tier)
}

func (l *Ledger) cache(ctx context.Context, b models.Balance) {
	if !b.Known() {
		return
	}
	if err := l.meta.Set(ctx, metadata.KeyCredits, []byte(strconv.Itoa(*b.Amount))); err != nil {
		l.log.Warn(ctx, "failed to cache balance", "error", err)
		return
	}
	if err := l.meta.Set(ctx, metadata.KeyTier, []byte(b.Tier)); err != nil {
		l.log.Warn(ctx, "failed to cache tier", "error", err)
	}
}
