package realtime

import (
	"encoding/json"
	"time"
)

// Event types published by the API.
const (
	EventConnected    = "connected"
	EventUserLoggedIn = "user.logged_in"
	EventUserUpdated  = "user.updated"
	EventMessage      = "message"
)

// Event is one server-sent event.
type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType string, payload any) Event {
	return Event{Type: eventType, Payload: payload, At: time.Now().UTC()}
}

func (e Event) encode() ([]byte, error) {
	return json.Marshal(e)
}
