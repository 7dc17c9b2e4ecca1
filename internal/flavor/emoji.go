package flavor

import "github.com/moorebrett0/tamagotchi/internal/pet"

// StatusEmoji picks the face shown next to the pet's name.
// Sleeping beats sick, sick beats mood.
func StatusEmoji(snap pet.Snapshot) string {
	switch {
	case snap.IsSleeping:
		return "\U0001F634"
	case snap.IsSick:
		return "\U0001F912"
	}
	return MoodEmoji(snap.Mood)
}

// MoodEmoji returns the face for a mood.
func MoodEmoji(mood pet.Mood) string {
	switch mood {
	case pet.MoodEcstatic:
		return "\U0001F929"
	case pet.MoodHappy:
		return "\U0001F60A"
	case pet.MoodNeutral:
		return "\U0001F610"
	case pet.MoodSad:
		return "\U0001F622"
	default:
		return "\U0001F62D"
	}
}

// StageEmoji returns the icon for a life stage.
func StageEmoji(stage pet.Stage) string {
	switch stage {
	case pet.StageEgg:
		return "\U0001F95A"
	case pet.StageBaby:
		return "\U0001F476"
	case pet.StageChild:
		return "\U0001F9D2"
	case pet.StageTeen:
		return "\U0001F471"
	case pet.StageAdult:
		return "\U0001F468"
	default:
		return "\U0001F43E"
	}
}

// StatusLabel is the one-word state shown on the status screen.
func StatusLabel(snap pet.Snapshot) string {
	switch {
	case snap.IsSleeping:
		return "Sleeping"
	case snap.IsSick:
		return "Sick"
	default:
		return "Active"
	}
}
