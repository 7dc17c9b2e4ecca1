package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/moorebrett0/tamagotchi/internal/flavor"
	"github.com/moorebrett0/tamagotchi/internal/pet"
)

var title = cases.Title(language.English)

// bar renders ten cells, one per ten points, like ██████░░░░
func bar(value float64) string {
	filled := int(value / 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// formatAge renders hours as "N days, M hours".
func formatAge(hours float64) string {
	days := int(hours / 24)
	rest := int(hours) % 24
	return fmt.Sprintf("%d days, %d hours", days, rest)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderStatus writes the status panel for snap.
func RenderStatus(w io.Writer, snap pet.Snapshot) {
	fmt.Fprintln(w, "── Tamagotchi Status ──")
	fmt.Fprintf(w, "   %s %s %s\n\n", flavor.StatusEmoji(snap), snap.Name, flavor.StageEmoji(snap.Stage))

	fmt.Fprintln(w, "Stats")
	vitals := []struct {
		emoji, label string
		value        float64
	}{
		{"\U0001F37D️", "Hunger", snap.Hunger},
		{"\U0001F60A", "Happiness", snap.Happiness},
		{"⚡", "Energy", snap.Energy},
		{"❤️", "Health", snap.Health},
		{"\U0001F9FC", "Hygiene", snap.Hygiene},
	}
	for _, v := range vitals {
		fmt.Fprintf(w, "  %s %-10s %8s  %s\n", v.emoji, v.label, formatValue(v.value)+"/100", bar(v.value))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Info")
	trait := flavor.For(snap.Personality)
	info := [][2]string{
		{"Age", formatAge(snap.AgeHours)},
		{"Stage", title.String(string(snap.Stage))},
		{"Mood", title.String(string(snap.Mood))},
		{"Personality", trait.Emoji + " " + title.String(string(snap.Personality))},
		{"Care Score", strconv.Itoa(snap.CareScore)},
		{"Status", flavor.StatusLabel(snap)},
	}
	for _, row := range info {
		fmt.Fprintf(w, "  %-12s %s\n", row[0], row[1])
	}
	fmt.Fprintln(w)
}
