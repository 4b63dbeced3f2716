package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/submission"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/jonboulle/clockwork"
)

// SubmissionService validates public forms and forwards them to the relay.
// Nothing is written to the tournament tables.
type SubmissionService struct {
	relay    submission.Relay
	clock    clockwork.Clock
	location *time.Location
	logger   *logging.Logger
}

func NewSubmissionService(relay submission.Relay, clock clockwork.Clock, location *time.Location, logger *logging.Logger) *SubmissionService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SubmissionService{relay: relay, clock: clock, location: location, logger: logger}
}

func (s *SubmissionService) SubmitTournament(ctx context.Context, in submission.TournamentSubmission) (submission.Kind, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.SubmitTournament")
	defer span.End()

	if err := in.Validate(s.clock.Now().In(s.location)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.send(ctx, in.Message())
}

func (s *SubmissionService) ApplyVerification(ctx context.Context, in submission.VerificationApplication) (submission.Kind, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.ApplyVerification")
	defer span.End()

	if err := in.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.send(ctx, in.Message())
}

func (s *SubmissionService) Contact(ctx context.Context, in submission.ContactMessage) (submission.Kind, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.Contact")
	defer span.End()

	if err := in.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.send(ctx, in.RelayMessage())
}

func (s *SubmissionService) Subscribe(ctx context.Context, in submission.NewsletterSignup) (submission.Kind, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.Subscribe")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.send(ctx, in.Message())
}

func (s *SubmissionService) send(ctx context.Context, msg submission.Message) (submission.Kind, error) {
	result, err := s.relay.Send(ctx, msg)
	if err != nil {
		s.logger.WarnContext(ctx, "form relay send failed", "kind", msg.Kind, "error", err)
		return "", fmt.Errorf("%w: send %s form: %v", ErrDependencyUnavailable, msg.Kind, err)
	}
	if !result.Success {
		message := strings.TrimSpace(result.Message)
		if message == "" {
			message = "an unknown error occurred"
		}
		s.logger.WarnContext(ctx, "form relay rejected message", "kind", msg.Kind, "relay_message", message)
		return "", fmt.Errorf("%w: %s", ErrRelayRejected, message)
	}

	s.logger.InfoContext(ctx, "form relayed", "kind", msg.Kind)
	return msg.Kind, nil
}
