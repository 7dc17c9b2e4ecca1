package discord

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/moorebrett0/tamagotchi/internal/flavor"
	"github.com/moorebrett0/tamagotchi/internal/notice"
	"github.com/moorebrett0/tamagotchi/internal/pet"
)

// progressBar renders a visual bar like ████████░░ 78%
func progressBar(value float64, width int) string {
	filled := int(value / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	empty := width - filled
	return fmt.Sprintf("%s%s %.0f%%", strings.Repeat("█", filled), strings.Repeat("░", empty), value)
}

// moodColor returns a Discord embed color for the mood.
func moodColor(mood pet.Mood) int {
	switch mood {
	case pet.MoodEcstatic:
		return 0x57F287 // green
	case pet.MoodHappy:
		return 0x5865F2 // blurple
	case pet.MoodNeutral:
		return 0xFEE75C // yellow
	case pet.MoodSad:
		return 0xEB459E // fuchsia
	case pet.MoodMiserable:
		return 0xED4245 // red
	default:
		return 0x5865F2
	}
}

// StatusEmbed builds a rich embed for /status.
func StatusEmbed(snap pet.Snapshot, now time.Time) *discordgo.MessageEmbed {
	trait := flavor.For(snap.Personality)

	stats := fmt.Sprintf(
		"hunger    %s\nhappiness %s\nenergy    %s\nhealth    %s\nhygiene   %s",
		progressBar(snap.Hunger, 10),
		progressBar(snap.Happiness, 10),
		progressBar(snap.Energy, 10),
		progressBar(snap.Health, 10),
		progressBar(snap.Hygiene, 10),
	)

	info := fmt.Sprintf("%s stage: %s\n%s personality: %s\n⭐ care score: %d",
		flavor.StageEmoji(snap.Stage), snap.Stage,
		trait.Emoji, snap.Personality,
		snap.CareScore)

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s", flavor.StatusEmoji(snap), snap.Name),
		Description: fmt.Sprintf("mood: %s %s | status: %s", flavor.MoodEmoji(snap.Mood), snap.Mood, strings.ToLower(flavor.StatusLabel(snap))),
		Color:       moodColor(snap.Mood),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Stats", Value: "```\n" + stats + "\n```", Inline: false},
			{Name: "Info", Value: info, Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("age: %.1f days", snap.AgeDays),
		},
		Timestamp: now.Format(time.RFC3339),
	}
}

func TemplateGreeting(snap pet.Snapshot) string {
	trait := flavor.For(snap.Personality)
	return fmt.Sprintf("%s %s %s!", trait.Emoji, snap.Name, trait.Verbs.Greet)
}

// TemplateAction decorates a session reply with the personality's verb.
func TemplateAction(snap pet.Snapshot, action, text string) string {
	trait := flavor.For(snap.Personality)
	verb := ""
	switch action {
	case "feed":
		verb = trait.Verbs.Eat
	case "play":
		verb = trait.Verbs.Play
	case "sleep":
		if snap.IsSleeping {
			verb = trait.Verbs.Sleep
		}
	case "clean", "heal":
		verb = trait.Verbs.Happy
	}
	if verb == "" {
		return fmt.Sprintf("%s %s", trait.Emoji, text)
	}
	return fmt.Sprintf("%s %s\n*%s %s.*", trait.Emoji, text, snap.Name, verb)
}

func TemplateIdleBehavior(snap pet.Snapshot) string {
	trait := flavor.For(snap.Personality)
	if len(trait.IdleBehaviors) == 0 {
		return ""
	}
	behavior := trait.IdleBehaviors[rand.Intn(len(trait.IdleBehaviors))]
	return fmt.Sprintf("%s %s %s.", trait.Emoji, snap.Name, behavior)
}

// TemplateNotice renders something that happened while time passed.
func TemplateNotice(snap pet.Snapshot, n notice.Notice) string {
	trait := flavor.For(snap.Personality)
	switch n.Kind {
	case notice.Evolved:
		return fmt.Sprintf("✨ %s %s", flavor.StageEmoji(snap.Stage), n.Text)
	case notice.Distress:
		return fmt.Sprintf("⚠️ %s %s %s!\n%s", trait.Emoji, snap.Name, trait.Verbs.Distress, n.Text)
	case notice.Milestone:
		return fmt.Sprintf("\U0001F389 %s %s %s", trait.Emoji, n.Text, trait.Verbs.Happy)
	default:
		return fmt.Sprintf("%s %s", flavor.StatusEmoji(snap), n.Text)
	}
}

func TemplateHelp(snap pet.Snapshot) string {
	name := snap.Name
	if name == "" {
		name = "your pet"
	}
	return fmt.Sprintf("**Tamagotchi Commands**\n\n"+
		"`/status` — See %s's stats and mood\n"+
		"`/feed kind` — Feed %s (normal, treat, healthy, special)\n"+
		"`/play kind` — Play with %s (normal, active, gentle, training)\n"+
		"`/sleep` — Put %s to bed, or wake them up\n"+
		"`/clean` — Give %s a bath\n"+
		"`/heal` — Give %s medicine when sick\n"+
		"`/save` — Save the game\n"+
		"`/talk message` — Say something to %s\n"+
		"`/help` — This message\n\n"+
		"Or just @mention %s in this channel!", name, name, name, name, name, name, name, name)
}

func moodToPresence(mood pet.Mood, sleeping bool) (status, activity string) {
	if sleeping {
		return "idle", "zzz"
	}
	switch mood {
	case pet.MoodEcstatic:
		return "online", "feeling amazing!"
	case pet.MoodHappy:
		return "online", "feeling great!"
	case pet.MoodNeutral:
		return "online", "just vibing"
	case pet.MoodSad:
		return "dnd", "could use some attention..."
	case pet.MoodMiserable:
		return "dnd", "needs help..."
	default:
		return "online", "just vibing"
	}
}
