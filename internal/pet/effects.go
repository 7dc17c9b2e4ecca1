package pet

// Stat identifies an attribute an effect table can touch.
type Stat int

const (
	StatHunger Stat = iota
	StatHappiness
	StatEnergy
	StatHealth
	StatHygiene
	StatCareScore
)

func (s Stat) String() string {
	switch s {
	case StatHunger:
		return "hunger"
	case StatHappiness:
		return "happiness"
	case StatEnergy:
		return "energy"
	case StatHealth:
		return "health"
	case StatHygiene:
		return "hygiene"
	case StatCareScore:
		return "care_score"
	default:
		return "unknown"
	}
}

type accessor struct {
	get   func(*PetState) float64
	set   func(*PetState, float64)
	vital bool
}

var accessors = map[Stat]accessor{
	StatHunger: {
		get:   func(s *PetState) float64 { return s.Hunger },
		set:   func(s *PetState, v float64) { s.Hunger = v },
		vital: true,
	},
	StatHappiness: {
		get:   func(s *PetState) float64 { return s.Happiness },
		set:   func(s *PetState, v float64) { s.Happiness = v },
		vital: true,
	},
	StatEnergy: {
		get:   func(s *PetState) float64 { return s.Energy },
		set:   func(s *PetState, v float64) { s.Energy = v },
		vital: true,
	},
	StatHealth: {
		get:   func(s *PetState) float64 { return s.Health },
		set:   func(s *PetState, v float64) { s.Health = v },
		vital: true,
	},
	StatHygiene: {
		get:   func(s *PetState) float64 { return s.Hygiene },
		set:   func(s *PetState, v float64) { s.Hygiene = v },
		vital: true,
	},
	StatCareScore: {
		get: func(s *PetState) float64 { return float64(s.CareScore) },
		set: func(s *PetState, v float64) { s.CareScore = int(v) },
	},
}

// Effect is a single attribute delta from a food or game table.
type Effect struct {
	Stat  Stat
	Delta float64
}

// Food and game kinds. Unknown kinds use the normal entry.
const (
	KindNormal   = "normal"
	KindTreat    = "treat"
	KindHealthy  = "healthy"
	KindSpecial  = "special"
	KindActive   = "active"
	KindGentle   = "gentle"
	KindTraining = "training"
)

// FoodKinds and GameKinds list the kinds in menu order.
var (
	FoodKinds = []string{KindNormal, KindTreat, KindHealthy, KindSpecial}
	GameKinds = []string{KindNormal, KindActive, KindGentle, KindTraining}
)

var foodEffects = map[string][]Effect{
	KindNormal:  {{StatHunger, 30}, {StatHappiness, 5}},
	KindTreat:   {{StatHunger, 20}, {StatHappiness, 15}, {StatEnergy, 10}},
	KindHealthy: {{StatHunger, 25}, {StatHealth, 10}, {StatHappiness, 5}},
	KindSpecial: {{StatHunger, 40}, {StatHappiness, 20}, {StatEnergy, 15}, {StatHealth, 15}},
}

var gameEffects = map[string][]Effect{
	KindNormal:   {{StatHappiness, 20}, {StatEnergy, -10}},
	KindActive:   {{StatHappiness, 30}, {StatEnergy, -20}, {StatHunger, 10}},
	KindGentle:   {{StatHappiness, 15}, {StatEnergy, -5}},
	KindTraining: {{StatHappiness, 25}, {StatEnergy, -15}, {StatCareScore, 10}},
}

// FoodEffects returns the table entry for kind, falling back to normal.
func FoodEffects(kind string) []Effect {
	return lookup(foodEffects, kind)
}

// GameEffects returns the table entry for kind, falling back to normal.
func GameEffects(kind string) []Effect {
	return lookup(gameEffects, kind)
}

func lookup(table map[string][]Effect, kind string) []Effect {
	if effects, ok := table[kind]; ok {
		return effects
	}
	return table[KindNormal]
}

// applyEffects adds each delta and passes vitals through limit. Care score is never limited.
func (s *PetState) applyEffects(effects []Effect, limit func(Stat, float64) float64) {
	for _, e := range effects {
		a, ok := accessors[e.Stat]
		if !ok {
			continue
		}
		v := a.get(s) + e.Delta
		if a.vital {
			v = limit(e.Stat, v)
		}
		a.set(s, v)
	}
}

func feedLimit(_ Stat, v float64) float64 {
	return ceil(v)
}

func playLimit(stat Stat, v float64) float64 {
	if stat == StatEnergy || stat == StatHunger {
		return clamp(v)
	}
	return ceil(v)
}
