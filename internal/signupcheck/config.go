// Package signupcheck drives a running activities service through
// concurrent signup and unregister rounds and verifies the registry.
package signupcheck

import "time"

// Config holds configuration for a signup check run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumStudents int           // Number of students to generate
	Workers     int           // Number of concurrent workers
	Activity    string        // Target activity; empty spreads students round-robin
	Timeout     time.Duration // HTTP request timeout
	Verbose     bool          // Enable verbose logging
}

// Student pairs a generated email with the activity it signs up for.
type Student struct {
	Email    string
	Activity string
}

// Activity mirrors one entry of the GET /activities response.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MessageResponse is the success body of signup and unregister.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the failure body of signup and unregister.
type ErrorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// Stats holds run statistics.
type Stats struct {
	StudentsGenerated int
	SignedUp          int
	Full              int
	SignupFailed      int
	DuplicateRejected bool
	Unregistered      int
	UnregisterFailed  int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
