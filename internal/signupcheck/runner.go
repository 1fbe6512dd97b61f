package signupcheck

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/mergington/pkg/logger"
)

// Run executes the complete signup check against config.BaseURL.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(config.BaseURL, config.Timeout)
	log := logger.Named("signupcheck")

	log.Info(ctx, "starting signup check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("students", config.NumStudents),
		logger.Int("workers", config.Workers),
		logger.String("activity", config.Activity),
		logger.Duration("timeout", config.Timeout))

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Discover activities
	activities, err := client.Activities(ctx)
	if err != nil {
		return stats, fmt.Errorf("listing activities failed: %w", err)
	}
	if config.Activity != "" {
		if _, ok := activities[config.Activity]; !ok {
			return stats, fmt.Errorf("%w: %q", ErrUnknownActivity, config.Activity)
		}
	}
	names := make([]string, 0, len(activities))
	for name := range activities {
		names = append(names, name)
	}

	// Step 3: Generate students
	students, err := generateStudents(ctx, config, names, stats)
	if err != nil {
		return stats, fmt.Errorf("student generation failed: %w", err)
	}

	// Step 4: Concurrent signup
	signedUp := make([]Student, 0, len(students))
	for i, o := range runConcurrently(ctx, config, students, client.Signup, "signup") {
		switch o {
		case outcomeOK:
			signedUp = append(signedUp, students[i])
		case outcomeFull:
			stats.Full++
		default:
			stats.SignupFailed++
		}
	}
	stats.SignedUp = len(signedUp)
	log.Info(ctx, "signup round completed",
		logger.Int("signedUp", stats.SignedUp),
		logger.Int("full", stats.Full),
		logger.Int("failed", stats.SignupFailed))

	// Step 5: Duplicate probe
	if len(signedUp) > 0 {
		if err := probeDuplicate(ctx, client, signedUp[0]); err != nil {
			return stats, err
		}
		stats.DuplicateRejected = true
	}

	// Step 6: Verify signups landed exactly once
	if activities, err = client.Activities(ctx); err != nil {
		return stats, fmt.Errorf("listing activities failed: %w", err)
	}
	if err := verifyPresent(ctx, activities, signedUp); err != nil {
		return stats, err
	}

	// Step 7: Concurrent unregister
	for _, o := range runConcurrently(ctx, config, signedUp, client.Unregister, "unregister") {
		if o == outcomeOK {
			stats.Unregistered++
		} else {
			stats.UnregisterFailed++
		}
	}
	log.Info(ctx, "unregister round completed",
		logger.Int("unregistered", stats.Unregistered),
		logger.Int("failed", stats.UnregisterFailed))

	// Step 8: Verify nobody is left
	if activities, err = client.Activities(ctx); err != nil {
		return stats, fmt.Errorf("listing activities failed: %w", err)
	}
	if err := verifyAbsent(ctx, activities, students); err != nil {
		return stats, err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.SignupFailed > 0 || stats.UnregisterFailed > 0 {
		return stats, fmt.Errorf("%w: %d signups and %d unregisters failed",
			ErrVerification, stats.SignupFailed, stats.UnregisterFailed)
	}
	return stats, nil
}

// probeDuplicate re-submits an existing signup and expects a 400.
func probeDuplicate(ctx context.Context, client *HTTPClient, s Student) error {
	status, body, err := client.Signup(ctx, s)
	if err != nil {
		return fmt.Errorf("duplicate probe failed: %w", err)
	}
	if status != http.StatusBadRequest {
		return fmt.Errorf("%w: duplicate signup returned %d: %s", ErrVerification, status, body)
	}
	logger.Get().Info(ctx, "duplicate signup rejected", logger.String("activity", s.Activity))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, perSecond float64
	if stats.StudentsGenerated > 0 {
		successRate = float64(stats.SignedUp) / float64(stats.StudentsGenerated) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.SignedUp+stats.Unregistered) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("studentsGenerated", stats.StudentsGenerated),
		logger.Int("signedUp", stats.SignedUp),
		logger.Int("full", stats.Full),
		logger.Int("signupFailed", stats.SignupFailed),
		logger.Bool("duplicateRejected", stats.DuplicateRejected),
		logger.Int("unregistered", stats.Unregistered),
		logger.Int("unregisterFailed", stats.UnregisterFailed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", perSecond))
}
