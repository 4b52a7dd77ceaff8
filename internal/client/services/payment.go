package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/deepbrief/deepbrief/internal/client/api"
	"github.com/deepbrief/deepbrief/internal/client/models"
	"github.com/deepbrief/deepbrief/internal/common"
	"github.com/deepbrief/deepbrief/internal/logging"
)

// PaymentVerifier resolves a checkout session to a terminal state after the
// redirect back from the payment provider.
//
// Verification is a bounded poll, not a single check: the provider may not
// have settled the session at redirect time, so the status endpoint is asked
// up to verifyAttempts times with exponential backoff before the session is
// declared failed. The verifier never mutates the credit balance; the next
// balance load picks up whatever the payment credited.
type PaymentVerifier interface {
	Verify(ctx context.Context, sessionID string) (models.PaymentSession, error)
}

// verifyAttempts = 1 call + 2 retries.
const verifyAttempts = 2

// errPaymentPending drives the poll: it marks a not-yet-settled session as
// retryable without conflating it with a provider failure.
var errPaymentPending = errors.New("payment still pending")

type paymentService struct {
	client  api.Client
	log     logging.Logger
	backoff time.Duration
}

// NewPaymentService builds a PaymentVerifier. backoff is the initial delay
// between poll attempts.
func NewPaymentService(client api.Client, log logging.Logger, backoff time.Duration) PaymentVerifier {
	return &paymentService{client: client, log: log, backoff: backoff}
}

func (s *paymentService) Verify(ctx context.Context, sessionID string) (models.PaymentSession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		// Terminal error state, no network call.
		return models.PaymentSession{Status: models.PaymentFailed}, common.ErrMissingSessionID
	}

	result := models.PaymentSession{SessionID: sessionID, Status: models.PaymentPending}

	err := retry.Do(ctx, retry.WithMaxRetries(verifyAttempts, retry.NewExponential(s.backoff)), func(ctx context.Context) error {
		status, err := s.client.VerifyPayment(ctx, sessionID)
		if err != nil {
			if errors.Is(err, common.ErrUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}

		switch status {
		case "success":
			result.Status = models.PaymentVerified
			return nil
		case "pending":
			return retry.RetryableError(errPaymentPending)
		default:
			return common.ErrVerificationFailed
		}
	})

	if err != nil {
		result.Status = models.PaymentFailed
		s.log.Warn(ctx, "payment verification failed", "session_id", sessionID, "error", err)
		if errors.Is(err, errPaymentPending) || errors.Is(err, common.ErrUnavailable) {
			return result, common.ErrVerificationFailed
		}
		return result, err
	}

	s.log.Info(ctx, "payment verified", "session_id", sessionID)
	return result, nil
}
