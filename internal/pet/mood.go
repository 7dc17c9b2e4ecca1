package pet

// Mood is derived from the average of the five vitals.
type Mood string

const (
	MoodEcstatic  Mood = "ecstatic"
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodMiserable Mood = "miserable"
)

// Moods lists every mood from best to worst.
var Moods = []Mood{MoodEcstatic, MoodHappy, MoodNeutral, MoodSad, MoodMiserable}

// moodFloors are checked high to low, first match wins.
var moodFloors = []struct {
	min  float64
	mood Mood
}{
	{80, MoodEcstatic},
	{60, MoodHappy},
	{40, MoodNeutral},
	{20, MoodSad},
}

// DetermineMood returns the mood for the snapshot's current vitals.
func DetermineMood(s Snapshot) Mood {
	avg := VitalAverage(s)
	for _, f := range moodFloors {
		if avg >= f.min {
			return f.mood
		}
	}
	return MoodMiserable
}

// VitalAverage is the mean of hunger, happiness, energy, health and hygiene.
func VitalAverage(s Snapshot) float64 {
	return (s.Hunger + s.Happiness + s.Energy + s.Health + s.Hygiene) / 5
}
