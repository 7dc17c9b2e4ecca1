package pet

import (
	"math"
	"math/rand"
	"time"
)

// Stage is a life phase. Stages only move forward.
type Stage string

const (
	StageEgg   Stage = "egg"
	StageBaby  Stage = "baby"
	StageChild Stage = "child"
	StageTeen  Stage = "teen"
	StageAdult Stage = "adult"
)

// Stages lists every stage in life order.
var Stages = []Stage{StageEgg, StageBaby, StageChild, StageTeen, StageAdult}

// evolution holds the progress a stage needs before it hatches into the next one.
var evolution = []struct {
	from      Stage
	to        Stage
	threshold float64
}{
	{StageEgg, StageBaby, 10},
	{StageBaby, StageChild, 20},
	{StageChild, StageTeen, 40},
	{StageTeen, StageAdult, 60},
}

// Personality is picked once at creation and never changes.
type Personality string

const (
	Playful   Personality = "playful"
	Lazy      Personality = "lazy"
	Hungry    Personality = "hungry"
	Clean     Personality = "clean"
	Energetic Personality = "energetic"
)

// Personalities lists every personality a pet can be born with.
var Personalities = []Personality{Playful, Lazy, Hungry, Clean, Energetic}

// Starting stats for a freshly created pet.
const (
	DefaultName = "Tamagotchi"

	startHunger    = 50
	startHappiness = 80
	startEnergy    = 100
	startHealth    = 100
	startHygiene   = 80
)

// PetState holds every attribute of the pet. The json tags are the persisted mapping.
type PetState struct {
	// Identity (set at creation, never change)
	Name      string    `json:"name"`
	BirthTime time.Time `json:"birth_time"`

	// Vitals (0–100)
	Hunger    float64 `json:"hunger"`
	Happiness float64 `json:"happiness"`
	Energy    float64 `json:"energy"`
	Health    float64 `json:"health"`
	Hygiene   float64 `json:"hygiene"`

	// Lifecycle
	AgeHours          float64 `json:"age_hours"`
	Stage             Stage   `json:"stage"`
	EvolutionProgress float64 `json:"evolution_progress"`

	Personality  Personality `json:"personality"`
	IsSick       bool        `json:"is_sick"`
	IsSleeping   bool        `json:"is_sleeping"`
	Mood         Mood        `json:"mood"`
	CareScore    int         `json:"care_score"`
	Achievements []string    `json:"achievements"`

	LastUpdate time.Time `json:"last_update"`
}

// Snapshot is a read-only copy of PetState handed to display and chat layers.
type Snapshot struct {
	Name      string
	BirthTime time.Time

	Hunger    float64
	Happiness float64
	Energy    float64
	Health    float64
	Hygiene   float64

	AgeHours          float64
	Stage             Stage
	EvolutionProgress float64

	Personality  Personality
	IsSick       bool
	IsSleeping   bool
	Mood         Mood
	CareScore    int
	Achievements []string

	LastUpdate time.Time

	AgeDays float64
}

// New creates a pet with starting stats. The personality is drawn from rng,
// or from the global source when rng is nil.
func New(name string, now time.Time, rng *rand.Rand) *PetState {
	if name == "" {
		name = DefaultName
	}
	pick := rand.Intn
	if rng != nil {
		pick = rng.Intn
	}
	now = now.UTC()
	return &PetState{
		Name:         name,
		BirthTime:    now,
		Hunger:       startHunger,
		Happiness:    startHappiness,
		Energy:       startEnergy,
		Health:       startHealth,
		Hygiene:      startHygiene,
		Stage:        StageEgg,
		Personality:  Personalities[pick(len(Personalities))],
		Mood:         MoodHappy,
		Achievements: []string{},
		LastUpdate:   now,
	}
}

// Snapshot copies the state and computes derived values.
func (s *PetState) Snapshot() Snapshot {
	achievements := make([]string, len(s.Achievements))
	copy(achievements, s.Achievements)

	return Snapshot{
		Name:              s.Name,
		BirthTime:         s.BirthTime,
		Hunger:            s.Hunger,
		Happiness:         s.Happiness,
		Energy:            s.Energy,
		Health:            s.Health,
		Hygiene:           s.Hygiene,
		AgeHours:          s.AgeHours,
		Stage:             s.Stage,
		EvolutionProgress: s.EvolutionProgress,
		Personality:       s.Personality,
		IsSick:            s.IsSick,
		IsSleeping:        s.IsSleeping,
		Mood:              s.Mood,
		CareScore:         s.CareScore,
		Achievements:      achievements,
		LastUpdate:        s.LastUpdate,
		AgeDays:           s.AgeHours / 24,
	}
}

// ApplyElapsedTime advances the pet by the given number of hours.
// Negative and NaN inputs count as zero.
func (s *PetState) ApplyElapsedTime(hours float64) {
	if hours < 0 || math.IsNaN(hours) {
		hours = 0
	}

	if s.IsSleeping {
		s.Hunger = floor(s.Hunger - hours*2)
		s.Energy = ceil(s.Energy + hours*5)
	} else {
		s.Hunger = ceil(s.Hunger + hours*3)
		s.Happiness = floor(s.Happiness - hours*1.5)
		s.Energy = floor(s.Energy - hours*2)
		s.Hygiene = floor(s.Hygiene - hours*1)
	}

	if s.Hunger > 80 || s.Happiness < 20 || s.Hygiene < 20 {
		s.Health = floor(s.Health - hours*2)
	} else {
		s.Health = ceil(s.Health + hours*0.5)
	}

	s.AgeHours += hours
	s.EvolutionProgress += hours * 0.1
	s.evolve()

	s.recomputeMood()

	if s.Health < 30 && !s.IsSick {
		s.IsSick = true
	}
	if s.Energy < 20 && !s.IsSleeping {
		s.IsSleeping = true
	}
}

// evolve performs at most one stage transition.
func (s *PetState) evolve() {
	for _, e := range evolution {
		if s.Stage == e.from && s.EvolutionProgress >= e.threshold {
			s.Stage = e.to
			s.EvolutionProgress = 0
			return
		}
	}
}

func (s *PetState) recomputeMood() {
	s.Mood = DetermineMood(s.Snapshot())
}

func floor(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func ceil(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}

func clamp(v float64) float64 {
	return floor(ceil(v))
}
