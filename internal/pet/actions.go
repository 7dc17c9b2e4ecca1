package pet

import "fmt"

// Outcome is the result of a pet action. Rejected outcomes leave the pet untouched.
type Outcome struct {
	Message  string
	Rejected bool
}

func (o Outcome) String() string {
	return o.Message
}

const sleepingMessage = "Your pet is sleeping! Let it rest."

// Care score rewards per successful action.
const (
	feedCare  = 5
	playCare  = 8
	cleanCare = 3
	healCare  = 15
)

func rejected(msg string) Outcome {
	return Outcome{Message: msg, Rejected: true}
}

// Feed applies the food table for kind.
func (s *PetState) Feed(kind string) Outcome {
	if s.IsSleeping {
		return rejected(sleepingMessage)
	}
	if kind == "" {
		kind = KindNormal
	}

	s.applyEffects(FoodEffects(kind), feedLimit)
	s.CareScore += feedCare
	s.recomputeMood()
	return Outcome{Message: fmt.Sprintf("Yum! %s enjoyed the %s food!", s.Name, kind)}
}

// Play applies the game table for kind. A pet below 20 energy refuses.
func (s *PetState) Play(kind string) Outcome {
	if s.IsSleeping {
		return rejected(sleepingMessage)
	}
	if s.TooTired() {
		return rejected(fmt.Sprintf("%s is too tired to play!", s.Name))
	}
	if kind == "" {
		kind = KindNormal
	}

	s.applyEffects(GameEffects(kind), playLimit)
	s.CareScore += playCare
	s.recomputeMood()
	return Outcome{Message: fmt.Sprintf("Fun! %s loved playing %s!", s.Name, kind)}
}

// TooTired reports whether the pet has too little energy to play.
func (s *PetState) TooTired() bool {
	return s.Energy < 20
}

// Sleep puts the pet to bed, or wakes it if it is already asleep.
func (s *PetState) Sleep() Outcome {
	if s.IsSleeping {
		s.IsSleeping = false
		return Outcome{Message: fmt.Sprintf("%s woke up feeling refreshed!", s.Name)}
	}
	s.IsSleeping = true
	return Outcome{Message: fmt.Sprintf("%s went to sleep. Sweet dreams!", s.Name)}
}

// Clean resets hygiene to 100. Happiness gains 10 without the usual ceiling.
func (s *PetState) Clean() Outcome {
	if s.IsSleeping {
		return rejected(sleepingMessage)
	}

	s.Hygiene = 100
	s.Happiness += 10
	s.CareScore += cleanCare
	s.recomputeMood()
	return Outcome{Message: fmt.Sprintf("%s is now clean and happy!", s.Name)}
}

// Heal cures a sick pet. Mood is left as it was.
func (s *PetState) Heal() Outcome {
	if !s.IsSick {
		return rejected(fmt.Sprintf("%s is not sick!", s.Name))
	}

	s.IsSick = false
	s.Health = ceil(s.Health + 30)
	s.CareScore += healCare
	return Outcome{Message: fmt.Sprintf("%s is feeling better!", s.Name)}
}
