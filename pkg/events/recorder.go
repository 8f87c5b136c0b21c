package events

import (
	"context"
	"sync"
)

type Recorded struct {
	Topic string
	Key   string
	Event any
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Recorded
	Err    error
}

func (r *Recorder) PublishEvent(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, Recorded{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events(topic string) []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Recorded
	for _, e := range r.events {
		if topic == "" || e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}
