package pet

import (
	"math/rand"
	"strings"
	"testing"
)

func TestFeedSpecialFromDefaults(t *testing.T) {
	p := newTestPet()
	out := p.Feed(KindSpecial)

	if out.Rejected {
		t.Fatalf("feed rejected: %s", out.Message)
	}
	if p.Hunger != 90 || p.Happiness != 100 || p.Energy != 100 || p.Health != 100 {
		t.Fatalf("vitals = hunger %v happiness %v energy %v health %v, want 90/100/100/100",
			p.Hunger, p.Happiness, p.Energy, p.Health)
	}
	if p.CareScore != 5 {
		t.Fatalf("care score = %d, want 5", p.CareScore)
	}
	if p.Mood != MoodEcstatic {
		t.Fatalf("mood = %s, want ecstatic", p.Mood)
	}
	if out.Message != "Yum! Rex enjoyed the special food!" {
		t.Fatalf("message = %q", out.Message)
	}
}

func TestFeedTables(t *testing.T) {
	tests := []struct {
		kind                                   string
		hunger, happiness, energy, health, hyg float64
	}{
		{KindNormal, 30, 5, 0, 0, 0},
		{KindTreat, 20, 15, 10, 0, 0},
		{KindHealthy, 25, 5, 0, 10, 0},
		{KindSpecial, 40, 20, 15, 15, 0},
		{"pizza", 30, 5, 0, 0, 0},
		{"", 30, 5, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			p := newTestPet()
			p.Hunger, p.Happiness, p.Energy, p.Health, p.Hygiene = 10, 10, 10, 10, 10

			p.Feed(tt.kind)

			got := []float64{p.Hunger, p.Happiness, p.Energy, p.Health, p.Hygiene}
			want := []float64{10 + tt.hunger, 10 + tt.happiness, 10 + tt.energy, 10 + tt.health, 10 + tt.hyg}
			for i := range got {
				if got[i] != want[i] {
					t.Fatalf("%s vitals = %v, want %v", tt.kind, got, want)
				}
			}
		})
	}
}

func TestFeedUnknownKindKeepsRequestedName(t *testing.T) {
	p := newTestPet()
	out := p.Feed("pizza")
	if !strings.Contains(out.Message, "pizza") {
		t.Fatalf("message = %q, want it to mention pizza", out.Message)
	}
}

func TestActionsRejectedWhileSleeping(t *testing.T) {
	actions := map[string]func(*PetState) Outcome{
		"feed":  func(p *PetState) Outcome { return p.Feed(KindNormal) },
		"play":  func(p *PetState) Outcome { return p.Play(KindNormal) },
		"clean": func(p *PetState) Outcome { return p.Clean() },
	}
	for name, act := range actions {
		t.Run(name, func(t *testing.T) {
			p := newTestPet()
			p.IsSleeping = true
			before := p.Snapshot()

			out := act(p)
			if !out.Rejected {
				t.Fatalf("%s accepted while sleeping", name)
			}
			if out.Message != "Your pet is sleeping! Let it rest." {
				t.Fatalf("message = %q", out.Message)
			}
			if !snapshotsEqual(before, p.Snapshot()) {
				t.Fatalf("%s mutated a sleeping pet", name)
			}
		})
	}
}

func TestPlayTooTired(t *testing.T) {
	p := newTestPet()
	p.Energy = 15
	before := p.Snapshot()

	out := p.Play(KindNormal)
	if !out.Rejected {
		t.Fatal("tired pet played")
	}
	if out.Message != "Rex is too tired to play!" {
		t.Fatalf("message = %q", out.Message)
	}
	if !snapshotsEqual(before, p.Snapshot()) {
		t.Fatal("rejected play changed the pet")
	}
}

func TestPlayTables(t *testing.T) {
	tests := []struct {
		kind                      string
		happiness, energy, hunger float64
		care                      int
	}{
		{KindNormal, 70, 40, 50, 8},
		{KindActive, 80, 30, 60, 8},
		{KindGentle, 65, 45, 50, 8},
		{KindTraining, 75, 35, 50, 18},
		{"chess", 70, 40, 50, 8},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			p := newTestPet()
			p.Happiness = 50
			p.Energy = 50

			out := p.Play(tt.kind)
			if out.Rejected {
				t.Fatalf("rejected: %s", out.Message)
			}
			if p.Happiness != tt.happiness || p.Energy != tt.energy || p.Hunger != tt.hunger {
				t.Fatalf("happiness/energy/hunger = %v/%v/%v, want %v/%v/%v",
					p.Happiness, p.Energy, p.Hunger, tt.happiness, tt.energy, tt.hunger)
			}
			if p.CareScore != tt.care {
				t.Fatalf("care = %d, want %d", p.CareScore, tt.care)
			}
		})
	}
}

func TestPlayClamps(t *testing.T) {
	p := newTestPet()
	p.Happiness = 95
	p.Energy = 21
	p.Hunger = 95

	p.Play(KindActive)

	if p.Happiness != 100 {
		t.Errorf("happiness = %v, want 100", p.Happiness)
	}
	if p.Energy != 1 {
		t.Errorf("energy = %v, want 1", p.Energy)
	}
	if p.Hunger != 100 {
		t.Errorf("hunger = %v, want 100", p.Hunger)
	}
}

func TestPlayEnergyFloor(t *testing.T) {
	p := newTestPet()
	p.Energy = 20
	p.Play(KindActive)
	if p.Energy != 0 {
		t.Fatalf("energy = %v, want 0", p.Energy)
	}
}

func TestSleepToggles(t *testing.T) {
	p := newTestPet()

	out := p.Sleep()
	if !p.IsSleeping || out.Message != "Rex went to sleep. Sweet dreams!" {
		t.Fatalf("sleep: sleeping=%v message=%q", p.IsSleeping, out.Message)
	}
	out = p.Sleep()
	if p.IsSleeping || out.Message != "Rex woke up feeling refreshed!" {
		t.Fatalf("wake: sleeping=%v message=%q", p.IsSleeping, out.Message)
	}
}

func TestCleanSetsHygieneAndSkipsHappinessCeiling(t *testing.T) {
	p := newTestPet()
	p.Hygiene = 12
	p.Happiness = 95

	out := p.Clean()
	if out.Rejected {
		t.Fatal("clean rejected")
	}
	if p.Hygiene != 100 {
		t.Fatalf("hygiene = %v, want 100", p.Hygiene)
	}
	if p.Happiness != 105 {
		t.Fatalf("happiness = %v, want 105", p.Happiness)
	}
	if p.CareScore != 3 {
		t.Fatalf("care = %d, want 3", p.CareScore)
	}
	if out.Message != "Rex is now clean and happy!" {
		t.Fatalf("message = %q", out.Message)
	}
}

func TestHealScenario(t *testing.T) {
	p := newTestPet()
	p.Health = 25
	p.ApplyElapsedTime(0)
	if !p.IsSick {
		t.Fatal("expected pet to be sick")
	}
	moodBefore := p.Mood
	care := p.CareScore

	out := p.Heal()
	if out.Rejected {
		t.Fatalf("heal rejected: %s", out.Message)
	}
	if p.IsSick {
		t.Fatal("still sick after heal")
	}
	if p.Health != 55 {
		t.Fatalf("health = %v, want 55", p.Health)
	}
	if p.CareScore != care+15 {
		t.Fatalf("care = %d, want %d", p.CareScore, care+15)
	}
	if p.Mood != moodBefore {
		t.Fatalf("heal recomputed mood: %s -> %s", moodBefore, p.Mood)
	}
}

func TestHealCapsHealth(t *testing.T) {
	p := newTestPet()
	p.IsSick = true
	p.Health = 90
	p.Heal()
	if p.Health != 100 {
		t.Fatalf("health = %v, want 100", p.Health)
	}
}

func TestHealWhenHealthy(t *testing.T) {
	p := newTestPet()
	before := p.Snapshot()

	out := p.Heal()
	if !out.Rejected || out.Message != "Rex is not sick!" {
		t.Fatalf("outcome = %+v", out)
	}
	if !snapshotsEqual(before, p.Snapshot()) {
		t.Fatal("heal changed a healthy pet")
	}
}

func TestHealAllowedWhileSleeping(t *testing.T) {
	p := newTestPet()
	p.IsSleeping = true
	p.IsSick = true
	p.Health = 10

	if out := p.Heal(); out.Rejected {
		t.Fatalf("heal rejected while sleeping: %s", out.Message)
	}
}

func TestCareScoreNeverDecreases(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := newTestPet()
	last := p.CareScore

	for i := 0; i < 1000; i++ {
		switch rng.Intn(6) {
		case 0:
			p.Feed(FoodKinds[rng.Intn(len(FoodKinds))])
		case 1:
			p.Play(GameKinds[rng.Intn(len(GameKinds))])
		case 2:
			p.Sleep()
		case 3:
			p.Clean()
		case 4:
			p.Heal()
		case 5:
			p.ApplyElapsedTime(rng.Float64() * 30)
		}
		if p.CareScore < last {
			t.Fatalf("step %d: care score fell from %d to %d", i, last, p.CareScore)
		}
		last = p.CareScore
	}
}

func TestMoodConsistentAfterRecomputingActions(t *testing.T) {
	p := newTestPet()
	p.Happiness = 10
	p.Energy = 60

	for _, act := range []func() Outcome{
		func() Outcome { return p.Feed(KindTreat) },
		func() Outcome { return p.Play(KindGentle) },
		func() Outcome { return p.Clean() },
	} {
		act()
		if p.Mood != DetermineMood(p.Snapshot()) {
			t.Fatalf("mood %s does not match vitals %+v", p.Mood, p.Snapshot())
		}
	}
}
