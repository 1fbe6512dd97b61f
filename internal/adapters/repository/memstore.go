package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/metrics"
)

// In-memory Store implementation.
//
// Locking: mu guards the name index and ordering; each record carries its
// own mutex for its participant list so signups on different activities
// don't contend.

// record is one activity plus the lock guarding its participants.
type record struct {
	mu       sync.Mutex
	activity model.Activity
}

// MemoryStore keeps the registry in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	byName map[string]*record
	order  []string

	enforceCapacity bool

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewMemoryStore constructs a store holding seed. It returns ErrInvalidSeed
// when seed violates the registry invariants.
//
// Gauges are refreshed every metrics.RefreshInterval() until Close. The
// refresher keeps ctx's values but not its cancellation.
func NewMemoryStore(ctx context.Context, seed []SeedActivity, opts ...Option) (*MemoryStore, error) {
	if err := ValidateSeed(seed); err != nil {
		return nil, err
	}

	s := &MemoryStore{
		byName: make(map[string]*record, len(seed)),
		order:  make([]string, 0, len(seed)),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, sa := range seed {
		s.byName[sa.Name] = &record{activity: sa.toActivity()}
		s.order = append(s.order, sa.Name)
	}

	metrics.UpdateSeedActivitiesLoaded(len(seed))
	s.updateMetrics()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.startMetricsUpdater(runCtx, metrics.RefreshInterval())

	return s, nil
}

// Close stops the background metrics updater.
func (s *MemoryStore) Close() error {
	s.cancel()
	s.wg.Wait()
	return nil
}

func (s *MemoryStore) lookup(name string) (*record, bool) {
	s.mu.RLock()
	rec, ok := s.byName[name]
	s.mu.RUnlock()
	return rec, ok
}

// List implements Store.List.
func (s *MemoryStore) List(_ context.Context) []Entry {
	start := time.Now()
	defer recordLatency("list", start)

	return s.snapshot()
}

// snapshot copies every activity in registry order without recording latency.
func (s *MemoryStore) snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.order))
	for _, name := range s.order {
		rec := s.byName[name]
		rec.mu.Lock()
		a := rec.activity.Clone()
		rec.mu.Unlock()
		out = append(out, Entry{Name: name, Activity: a})
	}
	return out
}

// Get implements Store.Get.
func (s *MemoryStore) Get(_ context.Context, name string) (model.Activity, error) {
	rec, ok := s.lookup(name)
	if !ok {
		return model.Activity{}, ErrNotFound
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.activity.Clone(), nil
}

// Signup implements Store.Signup.
func (s *MemoryStore) Signup(_ context.Context, name, email string) (model.Activity, error) {
	start := time.Now()
	defer recordLatency("signup", start)

	rec, ok := s.lookup(name)
	if !ok {
		return model.Activity{}, ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.activity.HasParticipant(email) {
		return model.Activity{}, ErrAlreadySignedUp
	}
	if s.enforceCapacity && rec.activity.IsFull() {
		return model.Activity{}, ErrActivityFull
	}
	rec.activity.Participants = append(rec.activity.Participants, email)
	metrics.UpdateActivityParticipants(name, len(rec.activity.Participants))

	return rec.activity.Clone(), nil
}

// Unregister implements Store.Unregister.
func (s *MemoryStore) Unregister(_ context.Context, name, email string) (model.Activity, error) {
	start := time.Now()
	defer recordLatency("unregister", start)

	rec, ok := s.lookup(name)
	if !ok {
		return model.Activity{}, ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	ps := rec.activity.Participants
	idx := -1
	for i, p := range ps {
		if p == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Activity{}, ErrNotSignedUp
	}
	rec.activity.Participants = append(ps[:idx:idx], ps[idx+1:]...)
	metrics.UpdateActivityParticipants(name, len(rec.activity.Participants))

	return rec.activity.Clone(), nil
}

// Count implements Store.Count.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}

// ParticipantCount implements Store.ParticipantCount.
func (s *MemoryStore) ParticipantCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, rec := range s.byName {
		rec.mu.Lock()
		total += len(rec.activity.Participants)
		rec.mu.Unlock()
	}
	return total
}

// startMetricsUpdater starts a background goroutine that refreshes registry gauges.
func (s *MemoryStore) startMetricsUpdater(ctx context.Context, interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

// updateMetrics publishes activity and participant gauges.
func (s *MemoryStore) updateMetrics() {
	entries := s.snapshot()
	total := 0
	for _, e := range entries {
		n := len(e.Activity.Participants)
		total += n
		metrics.UpdateActivityParticipants(e.Name, n)
	}
	metrics.UpdateActivityCount(len(entries))
	metrics.UpdateParticipantCount(total)
}

func recordLatency(op string, start time.Time) {
	metrics.RecordRegistryLatency(op, float64(time.Since(start).Microseconds())/1000)
}
