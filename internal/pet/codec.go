package pet

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"
)

// ErrInvalidState is returned by Unmarshal when a blob decodes but cannot be a pet.
var ErrInvalidState = errors.New("invalid pet state")

// Marshal encodes the pet as a flat JSON object. Timestamps are RFC 3339 in UTC.
func (s *PetState) Marshal() ([]byte, error) {
	out := *s
	out.BirthTime = s.BirthTime.UTC()
	out.LastUpdate = s.LastUpdate.UTC()
	if out.Achievements == nil {
		out.Achievements = []string{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a blob written by Marshal. Keys missing from the blob keep
// their starting values. Timestamps without a zone are read as local time.
func Unmarshal(data []byte) (*PetState, error) {
	state := PetState{
		Hunger:       startHunger,
		Happiness:    startHappiness,
		Energy:       startEnergy,
		Health:       startHealth,
		Hygiene:      startHygiene,
		Stage:        StageEgg,
		Mood:         MoodHappy,
		Achievements: []string{},
	}
	type plain PetState
	blob := struct {
		*plain
		BirthTime  stamp `json:"birth_time"`
		LastUpdate stamp `json:"last_update"`
	}{plain: (*plain)(&state)}
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	state.BirthTime = blob.BirthTime.Time
	state.LastUpdate = blob.LastUpdate.Time

	if err := state.validate(); err != nil {
		return nil, err
	}
	if state.Achievements == nil {
		state.Achievements = []string{}
	}
	state.BirthTime = state.BirthTime.UTC()
	state.LastUpdate = state.LastUpdate.UTC()
	return &state, nil
}

func (s *PetState) validate() error {
	switch {
	case s.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidState)
	case s.BirthTime.IsZero():
		return fmt.Errorf("%w: missing birth_time", ErrInvalidState)
	case s.LastUpdate.IsZero():
		return fmt.Errorf("%w: missing last_update", ErrInvalidState)
	case !slices.Contains(Stages, s.Stage):
		return fmt.Errorf("%w: unknown stage %q", ErrInvalidState, s.Stage)
	case !slices.Contains(Personalities, s.Personality):
		return fmt.Errorf("%w: unknown personality %q", ErrInvalidState, s.Personality)
	case !slices.Contains(Moods, s.Mood):
		return fmt.Errorf("%w: unknown mood %q", ErrInvalidState, s.Mood)
	case s.CareScore < 0:
		return fmt.Errorf("%w: negative care_score", ErrInvalidState)
	}

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"hunger", s.Hunger},
		{"happiness", s.Happiness},
		{"energy", s.Energy},
		{"health", s.Health},
		{"hygiene", s.Hygiene},
		{"age_hours", s.AgeHours},
		{"evolution_progress", s.EvolutionProgress},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w: bad %s %v", ErrInvalidState, f.name, f.v)
		}
	}
	return nil
}

// localLayout is an ISO 8601 timestamp with no zone, optional fraction.
const localLayout = "2006-01-02T15:04:05.999999999"

// stamp decodes RFC 3339 timestamps and zone-less ones from older saves.
type stamp struct{ time.Time }

func (t *stamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		parsed, err = time.ParseInLocation(localLayout, raw, time.Local)
		if err != nil {
			return fmt.Errorf("timestamp %q: %w", raw, err)
		}
	}
	t.Time = parsed
	return nil
}
