// Package notice turns the change between two pet snapshots into messages
// worth telling the player about. It never advances the pet on its own.
package notice

import (
	"fmt"
	"math"

	"github.com/moorebrett0/tamagotchi/internal/pet"
)

// Kind classifies a notice.
type Kind string

const (
	Evolved    Kind = "evolved"
	FellSick   Kind = "fell_sick"
	FellAsleep Kind = "fell_asleep"
	Distress   Kind = "distress"
	Milestone  Kind = "milestone"
)

// Notice is one thing that happened while time passed.
type Notice struct {
	Kind Kind
	Text string
}

// milestones are age thresholds in days.
var milestones = []int{1, 7, 30, 100, 365}

// Diff compares the pet before and after a tick and reports what changed.
func Diff(before, after pet.Snapshot) []Notice {
	if before.Name == "" || after.Name == "" {
		return nil
	}

	var out []Notice

	if after.Stage != before.Stage {
		out = append(out, Notice{
			Kind: Evolved,
			Text: fmt.Sprintf("%s evolved into a %s!", after.Name, after.Stage),
		})
	}

	if after.IsSick && !before.IsSick {
		out = append(out, Notice{
			Kind: FellSick,
			Text: fmt.Sprintf("%s is sick! Heal them soon.", after.Name),
		})
	}

	if after.IsSleeping && !before.IsSleeping {
		out = append(out, Notice{
			Kind: FellAsleep,
			Text: fmt.Sprintf("%s was so tired they fell asleep.", after.Name),
		})
	}

	if reason := checkDistress(after); reason != "" && checkDistress(before) != reason {
		out = append(out, Notice{Kind: Distress, Text: reason})
	}

	beforeDays := int(math.Floor(before.AgeDays))
	afterDays := int(math.Floor(after.AgeDays))
	for _, m := range milestones {
		if beforeDays < m && afterDays >= m {
			out = append(out, Notice{
				Kind: Milestone,
				Text: fmt.Sprintf("%s is %d days old today!", after.Name, m),
			})
		}
	}

	return out
}

// checkDistress names the first condition that is draining the pet's health.
func checkDistress(snap pet.Snapshot) string {
	if snap.Hunger > 80 {
		return fmt.Sprintf("%s's hunger is through the roof and it is making them unwell...", snap.Name)
	}
	if snap.Happiness < 20 {
		return fmt.Sprintf("%s is lonely and wants to play...", snap.Name)
	}
	if snap.Hygiene < 20 {
		return fmt.Sprintf("%s is filthy and needs a bath...", snap.Name)
	}
	return ""
}
