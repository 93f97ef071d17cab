package netplay

import (
	"encoding/json"

	"chosenoffset.com/packdelve/internal/game"
)

// MessageType defines the type of message being sent
type MessageType string

const (
	MessageTypeAction  MessageType = "action"   // client: apply one action
	MessageTypeNewGame MessageType = "new_game" // client: abandon the run and start over
	MessageTypeState   MessageType = "state"    // server: result plus snapshot
	MessageTypeError   MessageType = "error"    // server: request could not be handled
)

// Message is the envelope for every frame in both directions
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StatePayload answers every accepted request
type StatePayload struct {
	Result   *game.Result  `json:"result,omitempty"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// ErrorPayload describes a failed request
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	CodeBadMessage  = "BAD_MESSAGE"
	CodeBadAction   = "BAD_ACTION"
	CodeUnknownType = "UNKNOWN_MESSAGE_TYPE"
	CodeInternal    = "INTERNAL"
)

func encode(t MessageType, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: t, Payload: raw})
}
