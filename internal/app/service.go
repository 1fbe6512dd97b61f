// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	repository "github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

// Rejection reasons used for metrics and logs.
const (
	reasonNotFound        = "not_found"
	reasonAlreadySignedUp = "already_signed_up"
	reasonNotSignedUp     = "not_signed_up"
	reasonActivityFull    = "activity_full"
	reasonInvalidEmail    = "invalid_email"
	reasonOther           = "other"
)

// Service owns the activity registry and implements the API dependencies.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	ownStore bool

	// Configuration
	seed            []repository.SeedActivity
	enforceCapacity bool

	// Counters
	signups         atomic.Int64
	unregistrations atomic.Int64
	rejections      atomic.Int64

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore injects an existing registry instead of building one on Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSeed replaces the built-in activity catalogue.
func WithSeed(seed []repository.SeedActivity) Option {
	return func(s *Service) {
		if seed != nil {
			s.seed = seed
		}
	}
}

// WithCapacityEnforcement rejects signups for full activities.
func WithCapacityEnforcement(enabled bool) Option {
	return func(s *Service) {
		s.enforceCapacity = enabled
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seed: repository.DefaultSeed(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the registry from the seed unless one was injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting activities service...")

	if s.store == nil {
		// The store's gauge refresher runs until Stop, not until ctx ends.
		store, err := repository.NewMemoryStore(ctx, s.seed,
			repository.WithCapacityEnforcement(s.enforceCapacity),
		)
		if err != nil {
			return fmt.Errorf("service start: %w", err)
		}
		s.store = store
		s.ownStore = true
	}

	s.started = true
	s.logger.Info(ctx, "activities service started",
		logger.Int("activities", s.store.Count(ctx)),
		logger.Int("participants", s.store.ParticipantCount(ctx)),
		logger.Bool("enforceCapacity", s.enforceCapacity),
	)

	return nil
}

// Stop releases the registry if the service built it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping activities service...")

	if s.ownStore {
		if closer, ok := s.store.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		s.store = nil
		s.ownStore = false
	}

	s.started = false
	s.logger.Info(context.Background(), "activities service stopped")
}

func (s *Service) registry() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// ListActivities returns every activity in registry order.
func (s *Service) ListActivities(ctx context.Context) ([]repository.Entry, error) {
	store, err := s.registry()
	if err != nil {
		return nil, err
	}
	return store.List(ctx), nil
}

// GetActivity returns one activity by exact name.
func (s *Service) GetActivity(ctx context.Context, name string) (model.Activity, error) {
	store, err := s.registry()
	if err != nil {
		return model.Activity{}, err
	}
	a, err := store.Get(ctx, name)
	if err != nil {
		return model.Activity{}, fmt.Errorf("get %q: %w", name, err)
	}
	return a, nil
}

// Signup registers email for the named activity and returns a confirmation.
func (s *Service) Signup(ctx context.Context, name, email string) (string, error) {
	const op = "signup"
	store, err := s.registry()
	if err != nil {
		return "", err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "", s.reject(ctx, op, name, email, ErrMissingEmail)
	}

	a, err := store.Signup(ctx, name, email)
	if err != nil {
		return "", s.reject(ctx, op, name, email, err)
	}

	s.signups.Add(1)
	metrics.RecordSignup(name)
	s.logger.Info(ctx, "student signed up",
		logger.String("activity", name),
		logger.String("email", email),
		logger.Int("participants", len(a.Participants)),
		logger.Int("spotsLeft", a.SpotsLeft()),
	)
	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Unregister removes email from the named activity and returns a confirmation.
func (s *Service) Unregister(ctx context.Context, name, email string) (string, error) {
	const op = "unregister"
	store, err := s.registry()
	if err != nil {
		return "", err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "", s.reject(ctx, op, name, email, ErrMissingEmail)
	}

	a, err := store.Unregister(ctx, name, email)
	if err != nil {
		return "", s.reject(ctx, op, name, email, err)
	}

	s.unregistrations.Add(1)
	metrics.RecordUnregistration(name)
	s.logger.Info(ctx, "student unregistered",
		logger.String("activity", name),
		logger.String("email", email),
		logger.Int("participants", len(a.Participants)),
	)
	return fmt.Sprintf("Unregistered %s from %s", email, name), nil
}

// reject logs and counts a refused mutation and wraps err with context.
func (s *Service) reject(ctx context.Context, op, name, email string, err error) error {
	reason := rejectionReason(err)
	s.rejections.Add(1)
	metrics.RecordRejection(op, reason)
	s.logger.Warn(ctx, op+" rejected",
		logger.String("activity", name),
		logger.String("email", email),
		logger.String("reason", reason),
	)
	return fmt.Errorf("%s %q: %w", op, name, err)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return reasonNotFound
	case errors.Is(err, repository.ErrAlreadySignedUp):
		return reasonAlreadySignedUp
	case errors.Is(err, repository.ErrNotSignedUp):
		return reasonNotSignedUp
	case errors.Is(err, repository.ErrActivityFull):
		return reasonActivityFull
	case errors.Is(err, ErrMissingEmail):
		return reasonInvalidEmail
	default:
		return reasonOther
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"enforceCapacity": s.enforceCapacity,
		"signups":         s.signups.Load(),
		"unregistrations": s.unregistrations.Load(),
		"rejections":      s.rejections.Load(),
	}

	if s.started {
		activities := s.store.Count(ctx)
		participants := s.store.ParticipantCount(ctx)
		stats["activities"] = activities
		stats["participants"] = participants

		metrics.UpdateActivityCount(activities)
		metrics.UpdateParticipantCount(participants)
	}

	return stats
}
