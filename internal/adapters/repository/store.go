// Package repository defines the activity registry interface and errors.
package repository

import (
	"context"

	"github.com/okian/mergington/internal/domain/model"
)

// Entry is one named activity as returned by List.
type Entry struct {
	Name     string
	Activity model.Activity
}

// Store provides read/write access to the activity registry.
type Store interface {
	// List returns every activity in seed order. Values are copies.
	List(ctx context.Context) []Entry

	// Get returns a copy of one activity.
	// Returns ErrNotFound if the name is unknown (exact, case-sensitive match).
	Get(ctx context.Context, name string) (model.Activity, error)

	// Signup adds email to the activity's participants and returns the
	// updated activity. Returns ErrNotFound, ErrAlreadySignedUp, or
	// ErrActivityFull when capacity is enforced.
	Signup(ctx context.Context, name, email string) (model.Activity, error)

	// Unregister removes email from the activity's participants and returns
	// the updated activity. Returns ErrNotFound or ErrNotSignedUp.
	Unregister(ctx context.Context, name, email string) (model.Activity, error)

	// Count returns the number of activities.
	Count(ctx context.Context) int

	// ParticipantCount returns the number of registrations across activities.
	ParticipantCount(ctx context.Context) int
}
