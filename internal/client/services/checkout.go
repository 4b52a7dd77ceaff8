package services

import (
	"context"

	"github.com/deepbrief/deepbrief/internal/client/api"
	"github.com/deepbrief/deepbrief/internal/logging"
)

// Checkout starts an externally hosted payment session. The returned URL is
// a handoff: once the user follows it, nothing on this side matters until
// they come back with a session id to verify. The credit balance is never
// touched here.
type Checkout interface {
	Start(ctx context.Context, userID string) (string, error)
}

type checkoutService struct {
	client api.Client
	log    logging.Logger
}

func NewCheckoutService(client api.Client, log logging.Logger) Checkout {
	return &checkoutService{client: client, log: log}
}

func (s *checkoutService) Start(ctx context.Context, userID string) (string, error) {
	url, err := s.client.CreateCheckoutSession(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "checkout session failed", "error", err)
		return "", err
	}
	s.log.Info(ctx, "checkout session created")
	return url, nil
}
