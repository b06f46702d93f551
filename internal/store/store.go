package store

import "sync"

// Result reports the outcome of one dispatch. A rejected command leaves
// the snapshot untouched.
type Result struct {
	CorrelationID string
	Err           error
}

// Applied reports whether the command changed the snapshot.
func (r Result) Applied() bool { return r.Err == nil }

// Observer is notified after every dispatch, applied or rejected, outside
// the store lock. Observers receive the post-dispatch snapshot; this is
// where persistence and journaling happen, never inside the reducer.
type Observer func(cmd Command, res Result, snap Snapshot)

// Store serializes dispatches over a snapshot. All mutations are
// synchronous and run to completion before the next dispatch is applied.
type Store struct {
	mu        sync.RWMutex
	snap      Snapshot
	observers []Observer
}

func New() *Store {
	return &Store{snap: Snapshot{Theme: "light"}}
}

// Subscribe registers an observer. Not safe to call concurrently with
// Dispatch; register observers during wiring, before serving traffic.
func (s *Store) Subscribe(obs Observer) {
	s.observers = append(s.observers, obs)
}

// Snapshot returns the current state. The returned value shares collection
// backing arrays with the store; treat it as read-only.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Dispatch applies one command and returns its result. Observers run after
// the lock is released, in registration order.
func (s *Store) Dispatch(cmd Command) Result {
	s.mu.Lock()
	next, err := Apply(s.snap, cmd)
	if err == nil {
		s.snap = next
	}
	snap := s.snap
	s.mu.Unlock()

	res := Result{CorrelationID: cmd.CorrelationID, Err: err}
	for _, obs := range s.observers {
		obs(cmd, res, snap)
	}
	return res
}
