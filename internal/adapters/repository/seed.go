package repository

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/mergington/internal/domain/model"
)

// SeedActivity is one activity of the startup catalogue.
type SeedActivity struct {
	Name            string   `koanf:"name"`
	Description     string   `koanf:"description"`
	Schedule        string   `koanf:"schedule"`
	MaxParticipants int      `koanf:"max_participants"`
	Participants    []string `koanf:"participants"`
}

func (sa SeedActivity) toActivity() model.Activity {
	return model.Activity{
		Description:     sa.Description,
		Schedule:        sa.Schedule,
		MaxParticipants: sa.MaxParticipants,
		Participants:    append([]string{}, sa.Participants...),
	}
}

// DefaultSeed returns the built-in Mergington High School catalogue.
func DefaultSeed() []SeedActivity {
	return []SeedActivity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball",
			Description:     "Practice and compete in basketball games",
			Schedule:        "Wednesdays and Saturdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"james@mergington.edu"},
		},
		{
			Name:            "Tennis Club",
			Description:     "Learn tennis techniques and participate in matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:00 PM",
			MaxParticipants: 10,
			Participants:    []string{"lucas@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore painting, drawing and other visual arts",
			Schedule:        "Mondays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"ava@mergington.edu"},
		},
		{
			Name:            "Music Ensemble",
			Description:     "Play instruments and perform in school concerts",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 25,
			Participants:    []string{"mia@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 16,
			Participants:    []string{"noah@mergington.edu"},
		},
		{
			Name:            "Science Olympiad",
			Description:     "Compete in science and engineering challenges",
			Schedule:        "Fridays, 3:00 PM - 4:30 PM",
			MaxParticipants: 14,
			Participants:    []string{"liam@mergington.edu"},
		},
	}
}

// LoadSeedFile reads a YAML catalogue of the form
//
//	activities:
//	  - name: Chess Club
//	    description: ...
//	    schedule: ...
//	    max_participants: 12
//	    participants: [michael@mergington.edu]
//
// List order becomes the registry order.
func LoadSeedFile(path string) ([]SeedActivity, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}

	var seed []SeedActivity
	if err := k.UnmarshalWithConf("activities", &seed, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	if err := ValidateSeed(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// ValidateSeed checks names are present and unique, capacities positive,
// and no participant appears twice in one activity.
func ValidateSeed(seed []SeedActivity) error {
	names := make(map[string]struct{}, len(seed))
	for i, sa := range seed {
		if strings.TrimSpace(sa.Name) == "" {
			return fmt.Errorf("%w: activity %d has no name", ErrInvalidSeed, i)
		}
		if _, dup := names[sa.Name]; dup {
			return fmt.Errorf("%w: duplicate activity %q", ErrInvalidSeed, sa.Name)
		}
		names[sa.Name] = struct{}{}

		if sa.MaxParticipants <= 0 {
			return fmt.Errorf("%w: %q: max_participants must be positive", ErrInvalidSeed, sa.Name)
		}
		seen := make(map[string]struct{}, len(sa.Participants))
		for _, p := range sa.Participants {
			if _, dup := seen[p]; dup {
				return fmt.Errorf("%w: %q: participant %q listed twice", ErrInvalidSeed, sa.Name, p)
			}
			seen[p] = struct{}{}
		}
	}
	return nil
}
