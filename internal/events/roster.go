// Package events defines the roster event payloads shared by the API and the
// audit consumer.
package events

import "time"

// Event types carried in the event_type Kafka header.
const (
	TypeParticipantEnrolled   = "roster.participant_enrolled"
	TypeParticipantUnenrolled = "roster.participant_unenrolled"
)

// ParticipantChanged is emitted after a student is added to or removed from an
// activity roster. ParticipantCount is the roster size after the change.
type ParticipantChanged struct {
	EventID          string    `json:"event_id"`
	ActivityName     string    `json:"activity_name"`
	Email            string    `json:"email"`
	ParticipantCount int       `json:"participant_count"`
	OccurredAt       time.Time `json:"occurred_at"`
}
