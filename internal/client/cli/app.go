// Package cli is the interactive terminal front end of DeepBrief. It wires
// the application services together, keeps the per-session view state (the
// open report, the last listed history), and maps service errors to messages
// a user can act on.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/deepbrief/deepbrief/internal/client/api"
	"github.com/deepbrief/deepbrief/internal/client/config"
	"github.com/deepbrief/deepbrief/internal/client/models"
	"github.com/deepbrief/deepbrief/internal/client/repositories/metadata"
	"github.com/deepbrief/deepbrief/internal/client/services"
	"github.com/deepbrief/deepbrief/internal/client/session"
	"github.com/deepbrief/deepbrief/internal/client/store"
	"github.com/deepbrief/deepbrief/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	meta   metadata.Repository

	ledger   *services.Ledger
	research services.Researcher
	history  services.Historian
	checkout services.Checkout
	payments services.PaymentVerifier

	identity session.Identity

	// View state. listing is whatever the last history command printed;
	// show indexes into it. current is the report on screen and is replaced
	// wholesale by the next generate or show.
	listing []models.HistoryRecord
	current *models.ReportResult

	reader *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := store.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		log.Error(ctx, "error initializing cache database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)
	meta := metadata.NewSQLiteRepository(db)

	ledger := services.NewLedger(apiClient, meta, log)
	historian := services.NewHistoryService(apiClient, db, log, c.HistoryRetryDelay)

	return &App{
		config:   c,
		log:      log,
		db:       db,
		meta:     meta,
		ledger:   ledger,
		research: services.NewResearchService(apiClient, ledger, historian, log),
		history:  historian,
		checkout: services.NewCheckoutService(apiClient, log),
		payments: services.NewPaymentService(apiClient, log, c.VerifyBackoff),
		identity: session.Identity{UserID: session.AnonymousUserID},
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the previous session from the cache, refreshes the balance
// when a user is known, and hands control to the REPL until EOF or exit.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	a.restoreSession(ctx)

	printlnFn(heading.Sprint("DeepBrief CLI (type 'help' for commands)"))
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// restoreSession rebuilds identity and balance from the local cache, then
// refreshes the balance from the server. Both steps degrade silently; a dead
// network at startup leaves the last cached values on screen.
func (a *App) restoreSession(ctx context.Context) {
	if token, err := a.meta.Get(ctx, metadata.KeySessionToken); err == nil && token != nil {
		a.identity = session.FromToken(string(token))
	}
	a.ledger.RestoreCached(ctx)

	if !a.identity.Anonymous() {
		_ = a.ledger.Load(ctx, a.identity.UserID)
	}
}

func (a *App) isLoggedIn() bool {
	return !a.identity.Anonymous()
}

// status renders the prompt suffix: the user and the last known balance.
func (a *App) status() string {
	if !a.isLoggedIn() {
		return "guest"
	}
	s := a.identity.UserID
	if b := a.ledger.Snapshot(); b.Known() {
		s += " " + b.String()
	}
	return s
}
