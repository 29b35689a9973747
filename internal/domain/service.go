// Package domain defines the business logic for the roster service.
package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"example.com/roster/internal/events"
	"example.com/roster/internal/observability"
)

var (
	// ErrActivityNotFound is returned when no activity has the requested name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrParticipantNotFound is returned when removing an email that is not on the roster.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrAlreadySignedUp is returned when the email is already on the roster.
	ErrAlreadySignedUp = errors.New("student is already signed up")
)

// Registry captures the roster storage operations.
type Registry interface {
	Snapshot(ctx context.Context) map[string]Activity
	Enroll(ctx context.Context, activityName, email string) (Activity, error)
	Unenroll(ctx context.Context, activityName, email string) (Activity, error)
}

// EventPublisher delivers roster events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, partitionKey string, payload any) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, string, any) error { return nil }

// Option configures optional behaviour for the Service.
type Option func(*Service)

// WithPublisher sets the publisher notified after each roster change.
func WithPublisher(publisher EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithClock overrides the clock used to timestamp events.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithLogger overrides the logger used to report publishing failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service orchestrates roster workflows.
type Service struct {
	registry  Registry
	publisher EventPublisher
	clock     clockwork.Clock
	logger    *zap.Logger
}

// NewService constructs a Service.
func NewService(registry Registry, opts ...Option) *Service {
	s := &Service{
		registry:  registry,
		publisher: noopPublisher{},
		clock:     clockwork.NewRealClock(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListActivities returns every activity keyed by name. The result is a copy.
func (s *Service) ListActivities(ctx context.Context) map[string]Activity {
	return s.registry.Snapshot(ctx)
}

// Signup appends email to the activity roster and returns a confirmation message.
func (s *Service) Signup(ctx context.Context, activityName, email string) (string, error) {
	activity, err := s.registry.Enroll(ctx, activityName, email)
	if err != nil {
		observability.RecordRejected(observability.OperationSignup, rejectReason(err))
		return "", fmt.Errorf("signup %q for %q: %w", email, activityName, err)
	}

	observability.RecordSignup(activity.Name, len(activity.Participants))
	s.publish(ctx, events.TypeParticipantEnrolled, activity, email)

	return fmt.Sprintf("Signed up %s for %s", email, activity.Name), nil
}

// Unregister removes email from the activity roster and returns a confirmation message.
func (s *Service) Unregister(ctx context.Context, activityName, email string) (string, error) {
	activity, err := s.registry.Unenroll(ctx, activityName, email)
	if err != nil {
		observability.RecordRejected(observability.OperationRemove, rejectReason(err))
		return "", fmt.Errorf("remove %q from %q: %w", email, activityName, err)
	}

	observability.RecordRemoval(activity.Name, len(activity.Participants))
	s.publish(ctx, events.TypeParticipantUnenrolled, activity, email)

	return fmt.Sprintf("Unregistered %s from %s", email, activity.Name), nil
}

// SyncRosterGauges records the current roster size of every activity.
func (s *Service) SyncRosterGauges(ctx context.Context) {
	for name, activity := range s.registry.Snapshot(ctx) {
		observability.RecordRosterSize(name, len(activity.Participants))
	}
}

// publish never fails the caller; the roster change has already been applied.
func (s *Service) publish(ctx context.Context, eventType string, activity Activity, email string) {
	evt := events.ParticipantChanged{
		EventID:          uuid.NewString(),
		ActivityName:     activity.Name,
		Email:            email,
		ParticipantCount: len(activity.Participants),
		OccurredAt:       s.clock.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, eventType, activity.Name, evt); err != nil {
		s.logger.Warn("roster event not published",
			zap.String("event_type", eventType),
			zap.String("activity", activity.Name),
			zap.String("event_id", evt.EventID),
			zap.Error(err),
		)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		return "activity_not_found"
	case errors.Is(err, ErrParticipantNotFound):
		return "participant_not_found"
	case errors.Is(err, ErrAlreadySignedUp):
		return "already_signed_up"
	default:
		return "error"
	}
}
