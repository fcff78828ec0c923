package rabbitmq

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	IncidentCreated       = "incident.created"
	IncidentUpdated       = "incident.updated"
	IncidentStatusChanged = "incident.status_changed"
	IncidentDeleted       = "incident.deleted"
	ServiceCreated        = "service.created"
	ServiceUpdated        = "service.updated"
	ServiceStatusChanged  = "service.status_changed"
	ServiceDeleted        = "service.deleted"
	SettingsUpdated       = "settings.updated"
	OrganizationCreated   = "organization.created"
)

// EventPayload is the envelope on the wire. Type doubles as the routing key.
type EventPayload struct {
	ID             uuid.UUID       `json:"id"`
	Type           string          `json:"type"`
	OrganizationID uuid.UUID       `json:"organization_id"`
	OccurredAt     time.Time       `json:"occurred_at"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

// Family returns the part of the type before the first dot ("incident").
func (e EventPayload) Family() string {
	family, _, _ := strings.Cut(e.Type, ".")
	return family
}

func NewEvent(eventType string, orgID uuid.UUID, payload any) (EventPayload, error) {
	ev := EventPayload{
		ID:             uuid.New(),
		Type:           eventType,
		OrganizationID: orgID,
		OccurredAt:     time.Now().UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return EventPayload{}, err
		}
		ev.Payload = raw
	}
	return ev, nil
}
