package flavor

import (
	"testing"

	"github.com/moorebrett0/tamagotchi/internal/pet"
)

func TestRegistryCoversEveryPersonality(t *testing.T) {
	for _, p := range pet.Personalities {
		tr, ok := Registry[p]
		if !ok {
			t.Fatalf("no trait for %s", p)
		}
		if tr.Personality != p {
			t.Errorf("trait for %s claims %s", p, tr.Personality)
		}
		if tr.Prompt == "" || len(tr.IdleBehaviors) == 0 || tr.Verbs.Greet == "" {
			t.Errorf("trait for %s is incomplete", p)
		}
	}
}

func TestForFallsBack(t *testing.T) {
	if got := For("grumpy"); got != playful {
		t.Fatalf("For(grumpy) = %v, want playful", got.Personality)
	}
}

func TestStatusEmojiPriority(t *testing.T) {
	tests := []struct {
		name string
		snap pet.Snapshot
		want string
	}{
		{"sleeping beats sick", pet.Snapshot{IsSleeping: true, IsSick: true, Mood: pet.MoodHappy}, "\U0001F634"},
		{"sick beats mood", pet.Snapshot{IsSick: true, Mood: pet.MoodEcstatic}, "\U0001F912"},
		{"ecstatic", pet.Snapshot{Mood: pet.MoodEcstatic}, "\U0001F929"},
		{"miserable", pet.Snapshot{Mood: pet.MoodMiserable}, "\U0001F62D"},
	}
	for _, tt := range tests {
		if got := StatusEmoji(tt.snap); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestStageEmojiKnowsEveryStage(t *testing.T) {
	for _, s := range pet.Stages {
		if StageEmoji(s) == "\U0001F43E" {
			t.Errorf("stage %s uses the fallback icon", s)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel(pet.Snapshot{IsSleeping: true, IsSick: true}); got != "Sleeping" {
		t.Errorf("got %q, want Sleeping", got)
	}
	if got := StatusLabel(pet.Snapshot{IsSick: true}); got != "Sick" {
		t.Errorf("got %q, want Sick", got)
	}
	if got := StatusLabel(pet.Snapshot{}); got != "Active" {
		t.Errorf("got %q, want Active", got)
	}
}
