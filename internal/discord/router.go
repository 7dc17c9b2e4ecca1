package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/moorebrett0/tamagotchi/internal/brain"
	"github.com/moorebrett0/tamagotchi/internal/flavor"
	"github.com/moorebrett0/tamagotchi/internal/game"
	"github.com/moorebrett0/tamagotchi/internal/notice"
	"github.com/moorebrett0/tamagotchi/internal/pet"
)

// Game is the shared session the bot acts on. *game.Session satisfies it.
type Game interface {
	Snapshot() (pet.Snapshot, bool)
	Do(ctx context.Context, action, kind string) (game.Reply, []notice.Notice, error)
}

// Talker answers free-form chat. nil disables /talk and mentions.
type Talker interface {
	Ask(ctx context.Context, message string) (string, error)
}

// Command is a slash command stripped of Discord plumbing.
type Command struct {
	Name    string
	UserID  string
	Options map[string]string
}

// Response is what the router wants sent back.
type Response struct {
	Content   string
	Embed     *discordgo.MessageEmbed
	Ephemeral bool
	// Notices are posted to the channel after the reply.
	Notices []string
}

// Router turns commands and channel messages into game actions.
type Router struct {
	game   Game
	talker Talker

	owners          map[string]bool
	allowSpectators bool
	now             func() time.Time
}

// NewRouter creates a router. talker may be nil.
func NewRouter(g Game, talker Talker, ownerIDs []string, allowSpectators bool) *Router {
	owners := make(map[string]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = true
	}
	return &Router{
		game:            g,
		talker:          talker,
		owners:          owners,
		allowSpectators: allowSpectators,
		now:             time.Now,
	}
}

// IsOwner checks if a user ID is in the owner list.
func (r *Router) IsOwner(userID string) bool {
	return r.owners[userID]
}

// actionCommands map slash commands onto session actions.
var actionCommands = map[string]string{
	"feed":  game.ActionFeed,
	"play":  game.ActionPlay,
	"sleep": game.ActionSleep,
	"clean": game.ActionClean,
	"heal":  game.ActionHeal,
	"save":  game.ActionSave,
}

// HandleCommand runs one slash command.
func (r *Router) HandleCommand(ctx context.Context, cmd Command) Response {
	snap, ok := r.game.Snapshot()
	if !ok {
		return Response{Content: "\U0001F95A There's no pet yet. Hatch one in the terminal first.", Ephemeral: true}
	}

	if action, ok := actionCommands[cmd.Name]; ok {
		if !r.IsOwner(cmd.UserID) && !r.allowSpectators {
			return r.denied(snap)
		}
		return r.act(ctx, action, cmd.Options["kind"])
	}

	switch cmd.Name {
	case "status":
		return Response{Embed: StatusEmbed(snap, r.now())}

	case "help":
		return Response{Content: TemplateHelp(snap)}

	case "talk":
		return r.talk(ctx, cmd.UserID, "", cmd.Options["message"])

	default:
		return Response{Content: "Unknown command.", Ephemeral: true}
	}
}

func (r *Router) act(ctx context.Context, action, kind string) Response {
	reply, notices, err := r.game.Do(ctx, action, kind)
	if err != nil {
		slog.Error("discord: action failed", "action", action, "err", err)
		if errors.Is(err, game.ErrNoStore) {
			return Response{Content: "Saving isn't available right now.", Ephemeral: true}
		}
		return Response{Content: "Something went wrong... try again in a moment.", Ephemeral: true}
	}

	snap, _ := r.game.Snapshot()
	resp := Response{Notices: r.renderNotices(snap, notices)}
	if reply.Rejected {
		resp.Content = fmt.Sprintf("%s %s", flavor.For(snap.Personality).Emoji, reply.Text)
		return resp
	}
	resp.Content = TemplateAction(snap, action, reply.Text)
	return resp
}

func (r *Router) talk(ctx context.Context, userID, username, text string) Response {
	snap, _ := r.game.Snapshot()
	text = strings.TrimSpace(text)
	if text == "" {
		return Response{Content: TemplateGreeting(snap)}
	}
	if r.talker == nil {
		behavior := TemplateIdleBehavior(snap)
		if behavior == "" {
			behavior = fmt.Sprintf("%s ...", flavor.For(snap.Personality).Emoji)
		}
		return Response{Content: behavior}
	}

	// Owners may ask for care, spectators only get conversation
	prompt := text
	if !r.IsOwner(userID) && !r.allowSpectators {
		who := username
		if who == "" {
			who = userID
		}
		prompt = fmt.Sprintf("[Message from spectator %s, not your owner. Do NOT use the care tool for them]: %s", who, text)
		ctx = brain.WithoutCare(ctx)
	}
	answer, err := r.talker.Ask(ctx, prompt)
	if err != nil {
		slog.Error("discord: brain error", "err", err)
		return Response{Content: "Something went wrong... I'll try again in a moment."}
	}
	return Response{Content: answer}
}

func (r *Router) denied(snap pet.Snapshot) Response {
	return Response{
		Content:   fmt.Sprintf("%s nice try. only my owner gets to look after me.", flavor.For(snap.Personality).Emoji),
		Ephemeral: true,
	}
}

func (r *Router) renderNotices(snap pet.Snapshot, notices []notice.Notice) []string {
	var out []string
	for _, n := range notices {
		out = append(out, TemplateNotice(snap, n))
	}
	return out
}

// Message is a channel message stripped of Discord plumbing.
type Message struct {
	AuthorID  string
	Username  string
	Content   string
	Mentioned bool
}

// HandleMessage answers a free-form channel message. Empty means stay quiet.
func (r *Router) HandleMessage(ctx context.Context, m Message) Response {
	text := strings.TrimSpace(m.Content)
	if text == "" {
		return Response{}
	}
	snap, ok := r.game.Snapshot()
	if !ok {
		return Response{}
	}

	// If directly @mentioned, treat as a direct message
	if m.Mentioned {
		return r.talk(ctx, m.AuthorID, m.Username, text)
	}

	// Not mentioned: only a few patterns get a reaction
	lower := strings.ToLower(text)
	if matchesFeeding(lower) && (r.IsOwner(m.AuthorID) || r.allowSpectators) {
		return r.act(ctx, game.ActionFeed, pet.KindNormal)
	}
	if matchesGreeting(lower) {
		return Response{Content: TemplateGreeting(snap)}
	}
	return Response{}
}

// --- Pattern matchers ---

func matchesGreeting(text string) bool {
	patterns := []string{
		"hello", "hey", "howdy", "hiya", "heya",
		"good morning", "good evening", "good night",
		"what's up", "whats up",
	}
	return containsAny(text, patterns)
}

func matchesFeeding(text string) bool {
	patterns := []string{
		"feed", "snack", "dinner", "lunch", "breakfast",
	}
	return containsAny(text, patterns)
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
