package notice

import (
	"testing"

	"github.com/moorebrett0/tamagotchi/internal/pet"
)

func base() pet.Snapshot {
	return pet.Snapshot{
		Name:      "Rex",
		Hunger:    50,
		Happiness: 80,
		Energy:    100,
		Health:    100,
		Hygiene:   80,
		Stage:     pet.StageEgg,
	}
}

func kinds(ns []Notice) map[Kind]int {
	out := map[Kind]int{}
	for _, n := range ns {
		out[n.Kind]++
	}
	return out
}

func TestDiffNothingChanged(t *testing.T) {
	if got := Diff(base(), base()); len(got) != 0 {
		t.Fatalf("notices = %+v, want none", got)
	}
}

func TestDiffReportsTransitions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*pet.Snapshot)
		want   Kind
	}{
		{"evolved", func(s *pet.Snapshot) { s.Stage = pet.StageBaby }, Evolved},
		{"sick", func(s *pet.Snapshot) { s.IsSick = true }, FellSick},
		{"asleep", func(s *pet.Snapshot) { s.IsSleeping = true }, FellAsleep},
		{"overfed", func(s *pet.Snapshot) { s.Hunger = 90 }, Distress},
		{"lonely", func(s *pet.Snapshot) { s.Happiness = 5 }, Distress},
		{"dirty", func(s *pet.Snapshot) { s.Hygiene = 5 }, Distress},
		{"one day", func(s *pet.Snapshot) { s.AgeDays = 1.2 }, Milestone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after := base()
			tt.mutate(&after)
			got := kinds(Diff(base(), after))
			if got[tt.want] != 1 || len(got) != 1 {
				t.Fatalf("kinds = %v, want exactly one %s", got, tt.want)
			}
		})
	}
}

func TestDiffDistressOnlyOnChange(t *testing.T) {
	before := base()
	before.Hunger = 90
	after := base()
	after.Hunger = 95
	if got := Diff(before, after); len(got) != 0 {
		t.Fatalf("repeated distress reported: %+v", got)
	}
}

func TestDiffMilestonesAcrossLongGap(t *testing.T) {
	after := base()
	after.AgeDays = 40
	got := kinds(Diff(base(), after))
	if got[Milestone] != 3 {
		t.Fatalf("milestones = %d, want 3 (1, 7, 30 days)", got[Milestone])
	}
}

func TestDiffIgnoresMissingPet(t *testing.T) {
	after := base()
	after.IsSick = true
	if got := Diff(pet.Snapshot{}, after); got != nil {
		t.Fatalf("notices = %+v, want nil without a previous pet", got)
	}
}
