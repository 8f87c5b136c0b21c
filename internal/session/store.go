package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Store persists logs per visitor session id.
type Store interface {
	Load(ctx context.Context, sid, name string) (*Log, error)
	// Update loads the log, applies fn and saves the result atomically.
	// Returning an error from fn discards the change.
	Update(ctx context.Context, sid, name string, fn func(*Log) error) (*Log, error)
	Clear(ctx context.Context, sid string, names ...string) error
}

func checkName(name string) error {
	if Limit(name) == 0 {
		return fmt.Errorf("session: unknown log %q", name)
	}
	return nil
}

// sweepEvery is how many writes pass between full scans for expired sessions.
const sweepEvery = 1024

type memorySession struct {
	logs    map[string][]Entry
	touched time.Time
}

// MemoryStore keeps logs in process. A session expires ttl after its last
// write, like the keys of RedisStore.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	ttl      time.Duration
	writes   int
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{sessions: make(map[string]*memorySession), ttl: ttl, now: time.Now}
}

// Len reports how many sessions are held, expired ones included until the
// next sweep.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// live returns the session for sid, dropping it when it has expired.
func (s *MemoryStore) live(sid string, now time.Time) *memorySession {
	ms, ok := s.sessions[sid]
	if !ok {
		return nil
	}
	if now.Sub(ms.touched) >= s.ttl {
		delete(s.sessions, sid)
		return nil
	}
	return ms
}

func (s *MemoryStore) sweep(now time.Time) {
	for sid, ms := range s.sessions {
		if now.Sub(ms.touched) >= s.ttl {
			delete(s.sessions, sid)
		}
	}
}

func (s *MemoryStore) Load(_ context.Context, sid, name string) (*Log, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ms := s.live(sid, s.now()); ms != nil {
		return NewLog(Limit(name), ms.logs[name]...), nil
	}
	return NewLog(Limit(name)), nil
}

func (s *MemoryStore) Update(_ context.Context, sid, name string, fn func(*Log) error) (*Log, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ms := s.live(sid, now)
	l := NewLog(Limit(name))
	if ms != nil {
		l = NewLog(Limit(name), ms.logs[name]...)
	}
	if err := fn(l); err != nil {
		return nil, err
	}
	if ms == nil {
		ms = &memorySession{logs: make(map[string][]Entry)}
		s.sessions[sid] = ms
	}
	ms.logs[name] = l.Entries()
	ms.touched = now

	s.writes++
	if s.writes%sweepEvery == 0 {
		s.sweep(now)
	}
	return l, nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string, names ...string) error {
	if len(names) == 0 {
		names = Names
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ms, ok := s.sessions[sid]
	if !ok {
		return nil
	}
	for _, name := range names {
		delete(ms.logs, name)
	}
	if len(ms.logs) == 0 {
		delete(s.sessions, sid)
	}
	return nil
}
