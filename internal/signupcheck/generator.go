package signupcheck

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/okian/mergington/pkg/logger"
)

// emailDomain is the school domain used for generated students.
const emailDomain = "mergington.edu"

// generateStudents creates config.NumStudents students with unique emails,
// spread round-robin over names unless config.Activity pins one.
func generateStudents(ctx context.Context, config *Config, names []string, stats *Stats) ([]Student, error) {
	if config.Activity != "" {
		names = []string{config.Activity}
	}
	if len(names) == 0 {
		return nil, ErrNoActivities
	}

	students := make([]Student, config.NumStudents)
	for i := range students {
		students[i] = Student{
			Email:    fmt.Sprintf("check-%s@%s", uuid.New().String(), emailDomain),
			Activity: names[i%len(names)],
		}
	}

	stats.StudentsGenerated = len(students)
	logger.Get().Info(ctx, "generated students",
		logger.Int("count", len(students)),
		logger.Int("activities", len(names)))
	return students, nil
}
