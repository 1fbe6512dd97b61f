// Package model contains domain models passed between layers.
package model

// Activity is the public view of an extracurricular activity.
// Fields mirror the OpenAPI schema for GET /activities.
type Activity struct {
	Description     string   `json:"description" koanf:"description"`
	Schedule        string   `json:"schedule" koanf:"schedule"`
	MaxParticipants int      `json:"max_participants" koanf:"max_participants"`
	Participants    []string `json:"participants" koanf:"participants"`
}

// Clone returns a deep copy so callers can't reach the registry's slice.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// HasParticipant reports whether email is registered (exact match).
func (a Activity) HasParticipant(email string) bool {
	return indexOf(a.Participants, email) >= 0
}

// IsFull reports whether the participant count has reached MaxParticipants.
func (a Activity) IsFull() bool {
	return a.MaxParticipants > 0 && len(a.Participants) >= a.MaxParticipants
}

// SpotsLeft returns the remaining capacity, never negative.
func (a Activity) SpotsLeft() int {
	left := a.MaxParticipants - len(a.Participants)
	if left < 0 {
		return 0
	}
	return left
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
