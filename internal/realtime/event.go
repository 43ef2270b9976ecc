package realtime

import (
	"context"
	"encoding/json"
	"errors"
)

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
	// EventResync is raised locally after a feed reconnects; changes made
	// while it was down are unknown, so every subscribed table refetches.
	EventResync EventType = "resync"
)

// ChangeEvent is one row-level change on a table. Payload carries the row as
// written (or the delete filters); subscribers are free to ignore it.
type ChangeEvent struct {
	Type    EventType      `json:"eventType"`
	Table   string         `json:"table"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Subscription delivers events for the tables it was opened with until Close.
type Subscription interface {
	Events() <-chan ChangeEvent
	Close() error
}

// Feed is the transport behind gateway change notifications.
type Feed interface {
	Publish(ctx context.Context, ev ChangeEvent) error
	Subscribe(ctx context.Context, tables ...string) (Subscription, error)
	Close() error
}

var ErrNoTables = errors.New("realtime: subscribe needs at least one table")

// subscriber buffer; see hub.deliver for the overflow policy
const bufferSize = 64

func encode(ev ChangeEvent) ([]byte, error) {
	return json.Marshal(ev)
}

func decode(b []byte) (ChangeEvent, error) {
	var ev ChangeEvent
	err := json.Unmarshal(b, &ev)
	return ev, err
}
