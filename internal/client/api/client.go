// Package api implements the client for the research service's HTTP
// boundary. All remote calls the application makes go through the Client
// interface so services can be tested against fakes.
package api

import (
	"context"
	"encoding/json"
	"time"
)

// ProfileResponse is the body of GET /profile/{userId}.
type ProfileResponse struct {
	Credits int    `json:"credits"`
	Tier    string `json:"tier"`
}

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Topic  string `json:"topic"`
	UserID string `json:"user_id"`
}

// GenerateResponse is the success body of POST /generate. CreditsLeft is a
// pointer because the field is optional; when present it is authoritative.
type GenerateResponse struct {
	Report      string   `json:"report"`
	Sources     []string `json:"sources"`
	CreditsLeft *int     `json:"credits_left"`
}

// HistoryAppend is the body of POST /history.
type HistoryAppend struct {
	UserID  string   `json:"user_id"`
	Topic   string   `json:"topic"`
	Report  string   `json:"report"`
	Sources []string `json:"sources"`
}

// HistoryItem is one element of the GET /history/{userId} response. The id is
// store-assigned and opaque; json.Number keeps it intact whether the store
// hands out integers or strings.
type HistoryItem struct {
	ID        json.Number `json:"id"`
	Topic     string      `json:"topic"`
	Report    string      `json:"report"`
	Sources   []string    `json:"sources"`
	CreatedAt time.Time   `json:"created_at"`
}

// Client defines the remote operations used by the application services.
//
// Error contract:
//   - transport failures and timeouts map to common.ErrUnavailable,
//   - a 402 from Generate maps to common.ErrInsufficientCredits,
//   - other non-2xx responses map to *ServerError carrying the server's
//     detail string when one was supplied.
type Client interface {
	Profile(ctx context.Context, userID string) (*ProfileResponse, error)
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	AppendHistory(ctx context.Context, item HistoryAppend) error
	History(ctx context.Context, userID string) ([]HistoryItem, error)
	CreateCheckoutSession(ctx context.Context, userID string) (string, error)
	VerifyPayment(ctx context.Context, sessionID string) (string, error)
}
