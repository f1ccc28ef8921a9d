package websocket

import (
	"encoding/json"

	"github.com/isdelr/course-api-be/internal/models"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// Actions sent to clients.
const (
	ActionEvent = "event"
	ActionPong  = "pong"
	ActionError = "error"
)

// NewMessage encodes a message with the given action and payload.
func NewMessage(action string, payload interface{}) []byte {
	data, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		return NewErrorMessage("failed to encode message")
	}
	return data
}

// NewEventMessage wraps an activity event.
func NewEventMessage(event models.Event) []byte {
	return NewMessage(ActionEvent, event)
}

// NewErrorMessage wraps an error description.
func NewErrorMessage(message string) []byte {
	data, _ := json.Marshal(Message{Action: ActionError, Payload: map[string]string{"message": message}})
	return data
}
