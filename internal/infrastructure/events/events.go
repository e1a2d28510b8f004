package events

import (
	"context"
	"sync"
	"time"
)

// EventType identifies a catalog change
type EventType string

const (
	MineralCreated EventType = "created"
	MineralUpdated EventType = "updated"
	MineralDeleted EventType = "deleted"
)

// MineralEvent is published after a catalog change is committed
type MineralEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	MineralID uint      `json:"mineral_id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers catalog events to subscribers
type Publisher interface {
	Publish(ctx context.Context, event MineralEvent) error
	Close()
}

// Noop drops every event
type Noop struct{}

func (Noop) Publish(context.Context, MineralEvent) error { return nil }
func (Noop) Close() {}

// Recorder keeps published events in memory
type Recorder struct {
	mu     sync.Mutex
	events []MineralEvent
}

func (r *Recorder) Publish(_ context.Context, event MineralEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Close() {}

// Events returns a copy of everything published so far
func (r *Recorder) Events() []MineralEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]MineralEvent, len(r.events))
	copy(out, r.events)
	return out
}
