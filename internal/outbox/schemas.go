package outbox

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"example.com/roster/internal/events"
)

const participantChangedSchema = `{
  "type": "object",
  "title": "ParticipantChanged",
  "properties": {
    "event_id": {"type": "string", "minLength": 1},
    "activity_name": {"type": "string", "minLength": 1},
    "email": {"type": "string", "minLength": 1},
    "participant_count": {"type": "integer", "minimum": 0},
    "occurred_at": {"type": "string", "format": "date-time"}
  },
  "required": ["event_id", "activity_name", "email", "participant_count", "occurred_at"],
  "additionalProperties": false
}`

// schemaCatalog maps event type to its JSON schema.
var schemaCatalog = map[string]string{
	events.TypeParticipantEnrolled:   participantChangedSchema,
	events.TypeParticipantUnenrolled: participantChangedSchema,
}

var (
	compileOnce     sync.Once
	compiledSchemas map[string]*gojsonschema.Schema
	compileErr      error
)

func compileSchemas() {
	compiledSchemas = make(map[string]*gojsonschema.Schema, len(schemaCatalog))
	for eventType, raw := range schemaCatalog {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			compileErr = fmt.Errorf("compile schema for %s: %w", eventType, err)
			return
		}
		compiledSchemas[eventType] = schema
	}
}

// validatePayload checks payload against the schema registered for eventType.
func validatePayload(eventType string, payload []byte) error {
	compileOnce.Do(compileSchemas)
	if compileErr != nil {
		return compileErr
	}

	schema, ok := compiledSchemas[eventType]
	if !ok {
		return fmt.Errorf("no schema metadata for event_type=%s", eventType)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("validate %s: %w", eventType, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalidPayload, eventType, strings.Join(problems, "; "))
}

// schemaSubject follows the topic-record-name strategy.
func schemaSubject(topic, eventType string) string {
	return topic + "-" + eventType
}
