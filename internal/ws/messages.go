package ws

import "encoding/json"

// MessageType identifies the kind of WebSocket message.
type MessageType string

const (
	// MsgGeneration carries a freshly generated code artifact.
	MsgGeneration MessageType = "generation"
	// MsgError carries a generation failure.
	MsgError MessageType = "error"
	// MsgSync is a client request for the last result.
	MsgSync MessageType = "sync"
	// MsgLastResult replies to sync and greets new connections.
	MsgLastResult MessageType = "last_result"
)

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage creates a new Message with the given type and payload.
func NewMessage(typ MessageType, payload any) ([]byte, error) {
	var p json.RawMessage
	if payload != nil {
		var err error
		p, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Message{Type: typ, Payload: p})
}

// GenerationEvent is the payload broadcast after each successful generate
// call, so preview clients can render the latest output live.
type GenerationEvent struct {
	Target    string `json:"target"`
	Structure string `json:"structure"`
	Name      string `json:"name,omitempty"`
	Code      string `json:"code"`
}
