package brain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/moorebrett0/tamagotchi/internal/flavor"
	"github.com/moorebrett0/tamagotchi/internal/game"
	"github.com/moorebrett0/tamagotchi/internal/notice"
	"github.com/moorebrett0/tamagotchi/internal/pet"
)

// Host is the game the brain talks about and acts on. *game.Session satisfies it.
type Host interface {
	Snapshot() (pet.Snapshot, bool)
	Do(ctx context.Context, action, kind string) (game.Reply, []notice.Notice, error)
}

// Brain wraps an AI provider with system prompt building and tool-use loop.
type Brain struct {
	provider Provider
	maxTools int
	host     Host

	// Sliding-window rate limiter
	mu      sync.Mutex
	window  []time.Time
	rateMax int
	rateDur time.Duration
	now     func() time.Time
}

// Config for creating a Brain.
type Config struct {
	// Claude
	ClaudeAPIKey string
	ClaudeModel  string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Which provider to force ("claude", "gemini", or "" for auto-detect)
	Provider string

	MaxTokens  int64
	MaxTools   int
	RateLimit  int
	RateWindow time.Duration
}

const careToolName = "care"

const (
	careToolDescription   = "Look after your own body: eat, play, sleep or wake, wash, or take medicine. The result tells you what happened. Only use it when your owner asks you to or clearly wants you to."
	careActionDescription = "What to do: feed, play, sleep (toggles sleep and wake), clean, or heal"
	careKindDescription   = "Food kind for feed (normal, treat, healthy, special) or game kind for play (normal, active, gentle, training). Optional."
)

type careKey struct{}

// WithoutCare marks ctx so that Ask can talk but the care tool is refused.
// Front ends use it for people who are not the pet's owner.
func WithoutCare(ctx context.Context) context.Context {
	return context.WithValue(ctx, careKey{}, false)
}

func careAllowed(ctx context.Context) bool {
	allowed, ok := ctx.Value(careKey{}).(bool)
	return !ok || allowed
}

// careActions are the session actions the model may trigger. Save and exit stay with the player.
var careActions = []string{game.ActionFeed, game.ActionPlay, game.ActionSleep, game.ActionClean, game.ActionHeal}

// New creates a Brain. Returns nil if no API key is configured.
func New(ctx context.Context, cfg Config, host Host) *Brain {
	provider := newProvider(ctx, cfg)
	if provider == nil {
		slog.Info("brain: no API key configured, AI features disabled")
		return nil
	}
	return NewWithProvider(provider, cfg, host)
}

// NewWithProvider creates a Brain around an already built provider.
func NewWithProvider(provider Provider, cfg Config, host Host) *Brain {
	return &Brain{
		provider: provider,
		maxTools: cfg.MaxTools,
		host:     host,
		rateMax:  cfg.RateLimit,
		rateDur:  cfg.RateWindow,
		now:      time.Now,
	}
}

// newProvider auto-detects or forces the AI provider.
func newProvider(ctx context.Context, cfg Config) Provider {
	pick := cfg.Provider

	// Auto-detect if not forced
	if pick == "" {
		switch {
		case cfg.ClaudeAPIKey != "":
			pick = "claude"
		case cfg.GeminiAPIKey != "":
			pick = "gemini"
		}
	}

	switch pick {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			slog.Error("brain: AI_PROVIDER=claude but ANTHROPIC_API_KEY is not set")
			return nil
		}
		slog.Info("brain: using claude", "model", cfg.ClaudeModel)
		return newClaudeProvider(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.MaxTokens)
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			slog.Error("brain: AI_PROVIDER=gemini but GOOGLE_API_KEY is not set")
			return nil
		}
		slog.Info("brain: using gemini", "model", cfg.GeminiModel)
		p, err := newGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxTokens)
		if err != nil {
			slog.Error("brain: failed to create gemini provider", "err", err)
			return nil
		}
		return p
	default:
		return nil
	}
}

// Ask sends a user message to the AI with the pet's state and returns the text response.
// It handles the tool-use loop internally.
func (b *Brain) Ask(ctx context.Context, userMessage string) (string, error) {
	if !b.rateAllow() {
		return "I need a moment to catch my breath... too many messages! Try again shortly.", nil
	}

	snap, ok := b.host.Snapshot()
	if !ok {
		return "", game.ErrNoPet
	}
	systemPrompt := buildSystemPrompt(snap)

	history := []Message{
		{Role: RoleUser, Text: userMessage},
	}

	// Tool-use loop
	for i := 0; i <= b.maxTools; i++ {
		resp, err := b.provider.Send(ctx, systemPrompt, history)
		if err != nil {
			slog.Error("brain: AI API error", "err", err)
			return "", fmt.Errorf("AI API error: %w", err)
		}

		if resp.Done {
			return resp.Text, nil
		}

		slog.Debug("brain: tool round", "iteration", i, "tools", resp.toolNames())

		// Build assistant message with text + tool calls
		history = append(history, Message{
			Role:      RoleAssistant,
			Text:      resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		// Execute tools and collect results
		var results []ToolResult
		for _, tc := range resp.ToolCalls {
			content, isError := b.executeTool(ctx, tc.Name, tc.Input)
			results = append(results, ToolResult{
				ID:      tc.ID,
				Name:    tc.Name,
				Content: content,
				IsError: isError,
			})
		}

		history = append(history, Message{
			Role:        RoleUser,
			ToolResults: results,
		})
	}

	// Hit max tool iterations
	slog.Warn("brain: hit max tool iterations", "max", b.maxTools)
	return "I got a bit carried away... let's just sit together for a while.", nil
}

func (b *Brain) executeTool(ctx context.Context, name string, input json.RawMessage) (string, bool) {
	switch name {
	case careToolName:
		var params struct {
			Action string `json:"action"`
			Kind   string `json:"kind"`
		}
		if err := json.Unmarshal(input, &params); err != nil {
			return fmt.Sprintf("invalid input: %v", err), true
		}
		if !slices.Contains(careActions, params.Action) {
			return fmt.Sprintf("unsupported action %q", params.Action), true
		}
		if !careAllowed(ctx) {
			slog.Info("brain: care refused for non-owner", "action", params.Action)
			return "Refused: only your owner can ask you to do that", true
		}

		slog.Info("brain: care action", "action", params.Action, "kind", params.Kind)
		reply, notices, err := b.host.Do(ctx, params.Action, params.Kind)
		if err != nil {
			if errors.Is(err, game.ErrNoPet) {
				return "there is no pet yet", true
			}
			return fmt.Sprintf("Error: %v", err), true
		}

		out := reply.Text
		if reply.Rejected {
			out = "Refused: " + out
		}
		for _, n := range notices {
			out += "\n" + n.Text
		}
		return out, false

	default:
		return fmt.Sprintf("unknown tool: %s", name), true
	}
}

func buildSystemPrompt(snap pet.Snapshot) string {
	trait := flavor.For(snap.Personality)

	return fmt.Sprintf(`You are %s, a virtual pet %s with a %s personality.

## Your Personality
%s

## Current State
- Stage: %s
- Mood: %s
- Hunger: %.0f/100
- Happiness: %.0f/100
- Energy: %.0f/100
- Health: %.0f/100
- Hygiene: %.0f/100
- Age: %.1f days
- Sick: %v
- Sleeping: %v
- Care score: %d

## Guidelines
- Stay in character as %s at all times.
- Keep responses concise (1-3 sentences usually).
- You feel your stats physically: hunger makes you grumpy, low energy makes you sleepy, sickness makes you miserable.
- If you are sleeping, answer drowsily.
- You can use the care tool when your owner asks you to eat, play, sleep, wash or take medicine.
- Never pretend an action happened if the care tool refused it.`,
		snap.Name, trait.Emoji, snap.Personality, trait.Prompt,
		snap.Stage, snap.Mood,
		snap.Hunger, snap.Happiness, snap.Energy, snap.Health, snap.Hygiene,
		snap.AgeDays, snap.IsSick, snap.IsSleeping, snap.CareScore,
		snap.Name)
}

// --- Sliding-window rate limiter ---

func (b *Brain) rateAllow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	cutoff := now.Add(-b.rateDur)

	// Remove expired entries
	valid := b.window[:0]
	for _, t := range b.window {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	b.window = valid

	if len(b.window) >= b.rateMax {
		return false
	}

	b.window = append(b.window, now)
	return true
}
