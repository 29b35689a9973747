package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"example.com/roster/internal/events"
)

// AuditHandler writes one structured log entry per roster change.
type AuditHandler struct {
	logger *zap.Logger
}

// NewAuditHandler constructs an AuditHandler.
func NewAuditHandler(logger *zap.Logger) *AuditHandler {
	return &AuditHandler{logger: logger}
}

// Handle implements Handler. Unknown event types are skipped.
func (h *AuditHandler) Handle(_ context.Context, msg Message) error {
	var action string
	switch msg.EventType {
	case events.TypeParticipantEnrolled:
		action = "enrolled"
	case events.TypeParticipantUnenrolled:
		action = "unenrolled"
	default:
		h.logger.Debug("skipping unknown roster event", zap.String("event_type", msg.EventType))
		return nil
	}

	var evt events.ParticipantChanged
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode %s: %w", msg.EventType, err)
	}

	h.logger.Info("roster change",
		zap.String("action", action),
		zap.String("event_id", evt.EventID),
		zap.String("activity", evt.ActivityName),
		zap.String("email", evt.Email),
		zap.Int("participant_count", evt.ParticipantCount),
		zap.Time("occurred_at", evt.OccurredAt),
		zap.Int("schema_id", msg.SchemaID),
		zap.Int64("offset", msg.Offset),
	)
	return nil
}
