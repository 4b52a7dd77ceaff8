package services

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepbrief/deepbrief/internal/client/api"
	"github.com/deepbrief/deepbrief/internal/client/models"
	"github.com/deepbrief/deepbrief/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
CREATE TABLE history (
  position   INTEGER PRIMARY KEY,
  id         TEXT NOT NULL,
  user_id    TEXT NOT NULL,
  topic      TEXT NOT NULL,
  report     TEXT NOT NULL,
  sources    TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func intPtr(n int) *int { return &n }

// ---- fake api client ----

// fakeClient implements api.Client for unit tests. Call arguments are
// captured in Last* fields; sequenced returns (for retry tests) pop from the
// *Seq queues when non-empty.
type fakeClient struct {
	ProfileRet      *api.ProfileResponse
	ProfileErr      error
	ProfileCalls    int
	LastProfileUser string

	GenerateRet     *api.GenerateResponse
	GenerateErr     error
	GenerateCalls   int
	LastGenerateReq api.GenerateRequest
	// GenerateHook, when set, runs inside Generate before returning.
	GenerateHook func()

	AppendErrSeq []error
	AppendCalls  int
	LastAppend   api.HistoryAppend

	HistoryRet      []api.HistoryItem
	HistoryErr      error
	HistoryCalls    int
	LastHistoryUser string

	CheckoutRet string
	CheckoutErr error

	VerifyStatusSeq []string
	VerifyErrSeq    []error
	VerifyCalls     int
	LastVerifyID    string
}

func (f *fakeClient) Profile(ctx context.Context, userID string) (*api.ProfileResponse, error) {
	f.ProfileCalls++
	f.LastProfileUser = userID
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) Generate(ctx context.Context, req api.GenerateRequest) (*api.GenerateResponse, error) {
	f.GenerateCalls++
	f.LastGenerateReq = req
	if f.GenerateHook != nil {
		f.GenerateHook()
	}
	return f.GenerateRet, f.GenerateErr
}

func (f *fakeClient) AppendHistory(ctx context.Context, item api.HistoryAppend) error {
	f.AppendCalls++
	f.LastAppend = item
	if len(f.AppendErrSeq) > 0 {
		err := f.AppendErrSeq[0]
		f.AppendErrSeq = f.AppendErrSeq[1:]
		return err
	}
	return nil
}

func (f *fakeClient) History(ctx context.Context, userID string) ([]api.HistoryItem, error) {
	f.HistoryCalls++
	f.LastHistoryUser = userID
	return f.HistoryRet, f.HistoryErr
}

func (f *fakeClient) CreateCheckoutSession(ctx context.Context, userID string) (string, error) {
	return f.CheckoutRet, f.CheckoutErr
}

func (f *fakeClient) VerifyPayment(ctx context.Context, sessionID string) (string, error) {
	f.VerifyCalls++
	f.LastVerifyID = sessionID
	var status string
	if len(f.VerifyStatusSeq) > 0 {
		status = f.VerifyStatusSeq[0]
		f.VerifyStatusSeq = f.VerifyStatusSeq[1:]
	}
	var err error
	if len(f.VerifyErrSeq) > 0 {
		err = f.VerifyErrSeq[0]
		f.VerifyErrSeq = f.VerifyErrSeq[1:]
	}
	return status, err
}

var _ api.Client = (*fakeClient)(nil)

// ---- fake historian ----

type fakeHistorian struct {
	AppendErr   error
	AppendCalls int
	LastAppend  api.HistoryAppend
}

func (f *fakeHistorian) Append(ctx context.Context, item api.HistoryAppend) error {
	f.AppendCalls++
	f.LastAppend = item
	return f.AppendErr
}

func (f *fakeHistorian) Refresh(ctx context.Context, userID string) ([]models.HistoryRecord, error) {
	return nil, nil
}

func (f *fakeHistorian) Cached(ctx context.Context) ([]models.HistoryRecord, error) {
	return nil, nil
}
