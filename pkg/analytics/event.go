package analytics

import (
	"time"

	"github.com/google/uuid"
)

// Event categories.
const (
	EventTypeUsage      = "usage"
	EventTypeLimit      = "limit"
	EventTypeConversion = "conversion"
)

// Well-known event names emitted by the core flows.
const (
	EventLimitHit      = "limit_hit"
	EventUpgradePrompt = "upgrade_prompt"
)

// Event is a single analytics record. Events are best-effort: losing one
// must never affect the operation that produced it.
type Event struct {
	OrganizationID uuid.UUID      `json:"organization_id"`
	UserID         *uuid.UUID     `json:"user_id,omitempty"`
	EventType      string         `json:"event_type"`
	EventName      string         `json:"event_name"`
	Properties     map[string]any `json:"properties,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewEvent creates an event stamped with the current UTC time.
func NewEvent(orgID uuid.UUID, userID *uuid.UUID, eventType, eventName string, props map[string]any) Event {
	return Event{
		OrganizationID: orgID,
		UserID:         userID,
		EventType:      eventType,
		EventName:      eventName,
		Properties:     props,
		CreatedAt:      time.Now().UTC(),
	}
}
