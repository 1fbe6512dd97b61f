package signupcheck

import (
	"context"
	"fmt"

	"github.com/okian/mergington/pkg/logger"
)

// verifyPresent checks every expected student appears exactly once in
// their activity's participant list.
func verifyPresent(ctx context.Context, activities map[string]Activity, expected []Student) error {
	var missing, duplicated int
	for _, s := range expected {
		switch n := countOf(activities[s.Activity].Participants, s.Email); {
		case n == 0:
			missing++
		case n > 1:
			duplicated++
		}
	}
	if missing > 0 || duplicated > 0 {
		return fmt.Errorf("%w: %d missing, %d duplicated", ErrVerification, missing, duplicated)
	}
	logger.Get().Info(ctx, "all signed-up students present", logger.Int("students", len(expected)))
	return nil
}

// verifyAbsent checks no generated student remains anywhere.
func verifyAbsent(ctx context.Context, activities map[string]Activity, students []Student) error {
	emails := make(map[string]struct{}, len(students))
	for _, s := range students {
		emails[s.Email] = struct{}{}
	}

	var leftover int
	for name, a := range activities {
		for _, p := range a.Participants {
			if _, ok := emails[p]; ok {
				leftover++
				logger.Get().Debug(ctx, "student still registered", logger.String("activity", name), logger.String("email", p))
			}
		}
	}
	if leftover > 0 {
		return fmt.Errorf("%w: %d students still registered", ErrVerification, leftover)
	}
	logger.Get().Info(ctx, "registry clean after unregister")
	return nil
}

func countOf(list []string, v string) int {
	n := 0
	for _, x := range list {
		if x == v {
			n++
		}
	}
	return n
}
