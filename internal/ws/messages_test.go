package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
)

func TestNewMessageEnvelope(t *testing.T) {
	data, err := NewMessage(MsgGeneration, GenerationEvent{
		Target:    "mongodb",
		Structure: "nested",
		Name:      "users",
		Code:      "db.users.insertOne({});",
	})
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if msg.Type != MsgGeneration {
		t.Errorf("type = %q", msg.Type)
	}

	var ev GenerationEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if ev.Target != "mongodb" || ev.Code != "db.users.insertOne({});" {
		t.Errorf("event = %+v", ev)
	}
}

func TestNewMessageNilPayload(t *testing.T) {
	data, err := NewMessage(MsgSync, nil)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != MsgSync {
		t.Errorf("type = %q", msg.Type)
	}
	if len(msg.Payload) != 0 {
		t.Errorf("payload = %s, want empty", msg.Payload)
	}
}

func TestBroadcastGenerationRemembersLast(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))

	if hub.lastResult() != nil {
		t.Fatal("fresh hub should have no last result")
	}

	hub.BroadcastGeneration(GenerationEvent{Target: "couchdb", Code: "x"})

	data := hub.lastResult()
	if data == nil {
		t.Fatal("last result not stored")
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != MsgGeneration {
		t.Errorf("type = %q", msg.Type)
	}
}

func TestClientCountEmpty(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if n := hub.ClientCount(); n != 0 {
		t.Errorf("client count = %d, want 0", n)
	}
}
