package signupcheck

import "errors"

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
	PercentageMultiplier    = 100
)

// Outcome of a single signup or unregister call.
type outcome int

const (
	outcomeOK outcome = iota
	outcomeFull
	outcomeFailed
)

// Error constants.
var (
	ErrUnhealthy       = errors.New("service is not healthy")
	ErrNoActivities    = errors.New("service lists no activities")
	ErrUnknownActivity = errors.New("activity not listed by service")
	ErrVerification    = errors.New("registry verification failed")
	ErrUnexpected      = errors.New("unexpected response")
)
