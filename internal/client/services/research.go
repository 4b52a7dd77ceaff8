package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/deepbrief/deepbrief/internal/client/api"
	"github.com/deepbrief/deepbrief/internal/client/models"
	"github.com/deepbrief/deepbrief/internal/common"
	"github.com/deepbrief/deepbrief/internal/logging"
)

// GenerateOutcome is the result of one successful generation. HistorySaved is
// the explicit outcome of the secondary effect: false means the report was
// produced but could not be durably logged, which callers surface as a
// non-blocking notice, never as a failure of the generation itself.
type GenerateOutcome struct {
	Result       models.ReportResult
	CreditsLeft  *int
	HistorySaved bool
}

// Researcher orchestrates a generation request end to end: validation,
// credit gate, the remote call, balance reconciliation, and the history
// append.
type Researcher interface {
	Generate(ctx context.Context, userID, topic string) (*GenerateOutcome, error)
}

// generateInput carries the validation rules the service enforces before any
// network call. The bounds mirror the backend's own.
type generateInput struct {
	Topic  string `validate:"required,min=5,max=200"`
	UserID string `validate:"required"`
}

const (
	requestIdle int32 = iota
	requestInFlight
)

type researchService struct {
	client   api.Client
	ledger   *Ledger
	history  Historian
	log      logging.Logger
	validate *validator.Validate

	// state enforces single-flight at the orchestrator itself, independent
	// of whatever surface triggers it.
	state atomic.Int32
}

func NewResearchService(client api.Client, ledger *Ledger, history Historian, log logging.Logger) Researcher {
	return &researchService{
		client:   client,
		ledger:   ledger,
		history:  history,
		log:      log,
		validate: validator.New(),
	}
}

// Generate runs one submission through the state machine:
// validate → credit gate → request → reconcile → history append.
//
// Error taxonomy:
//   - common.ErrTopicTooShort / ErrTopicTooLong / ErrNotLoggedIn: local
//     validation, no network call was made;
//   - common.ErrInsufficientCredits: either the local gate (known balance
//     ≤ 0, no call made) or a 402 from the service;
//   - common.ErrRequestInFlight: a previous submission has not finished;
//   - anything else: transport or server failure, message via api.ServerError.
func (s *researchService) Generate(ctx context.Context, userID, topic string) (*GenerateOutcome, error) {
	if !s.state.CompareAndSwap(requestIdle, requestInFlight) {
		return nil, common.ErrRequestInFlight
	}
	defer s.state.Store(requestIdle)

	topic = strings.TrimSpace(topic)
	if err := s.validateInput(generateInput{Topic: topic, UserID: userID}); err != nil {
		return nil, err
	}

	// Optimistic gate: skip the call only when local state already knows the
	// answer. An unknown balance proceeds; the server is the authority.
	if s.ledger.Snapshot().Exhausted() {
		return nil, common.ErrInsufficientCredits
	}

	seq := s.ledger.Begin()
	resp, err := s.client.Generate(ctx, api.GenerateRequest{Topic: topic, UserID: userID})
	if err != nil {
		return nil, err
	}

	if resp.CreditsLeft != nil {
		s.ledger.CommitAmount(ctx, seq, *resp.CreditsLeft)
	}

	outcome := &GenerateOutcome{
		Result:      models.ReportResult{Topic: topic, Report: resp.Report, Sources: resp.Sources},
		CreditsLeft: resp.CreditsLeft,
	}

	// Secondary effect: the user keeps their report whether or not the log
	// write sticks.
	appendErr := s.history.Append(ctx, api.HistoryAppend{
		UserID:  userID,
		Topic:   topic,
		Report:  resp.Report,
		Sources: resp.Sources,
	})
	outcome.HistorySaved = appendErr == nil

	s.log.Info(ctx, "report generated",
		"topic", topic, "sources", len(resp.Sources), "history_saved", outcome.HistorySaved)
	return outcome, nil
}

func (s *researchService) validateInput(in generateInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch {
			case fe.Field() == "UserID":
				return common.ErrNotLoggedIn
			case fe.Tag() == "max":
				return common.ErrTopicTooLong
			default:
				return common.ErrTopicTooShort
			}
		}
	}
	return err
}
