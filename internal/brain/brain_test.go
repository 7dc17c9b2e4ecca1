package brain

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/moorebrett0/tamagotchi/internal/game"
)

// scriptedProvider replays canned responses and records what it was sent.
type scriptedProvider struct {
	responses []*Response
	err       error
	prompts   []string
	histories [][]Message
}

func (p *scriptedProvider) Send(ctx context.Context, systemPrompt string, history []Message) (*Response, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.prompts = append(p.prompts, systemPrompt)
	p.histories = append(p.histories, append([]Message(nil), history...))
	if len(p.responses) == 0 {
		return &Response{Text: "...", Done: true}, nil
	}
	r := p.responses[0]
	p.responses = p.responses[1:]
	return r, nil
}

var start = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

func newHost(t *testing.T) *game.Session {
	t.Helper()
	s := game.NewSession(game.Options{Now: func() time.Time { return start }})
	s.CreatePet("Rex", rand.New(rand.NewSource(1)))
	return s
}

func testConfig() Config {
	return Config{MaxTools: 2, RateLimit: 5, RateWindow: time.Minute}
}

func careCall(id, action, kind string) ToolCall {
	raw, _ := json.Marshal(map[string]string{"action": action, "kind": kind})
	return ToolCall{ID: id, Name: careToolName, Input: raw}
}

func TestAskPlainAnswer(t *testing.T) {
	p := &scriptedProvider{responses: []*Response{{Text: "woof", Done: true}}}
	b := NewWithProvider(p, testConfig(), newHost(t))

	got, err := b.Ask(context.Background(), "hello")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != "woof" {
		t.Fatalf("answer = %q", got)
	}
	prompt := p.prompts[0]
	for _, want := range []string{"You are Rex", "Hunger: 50/100", "Stage: egg"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestAskCareToolFeedsPet(t *testing.T) {
	host := newHost(t)
	p := &scriptedProvider{responses: []*Response{
		{ToolCalls: []ToolCall{careCall("t1", "feed", "treat")}},
		{Text: "that was tasty", Done: true},
	}}
	b := NewWithProvider(p, testConfig(), host)

	got, err := b.Ask(context.Background(), "have a snack")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != "that was tasty" {
		t.Fatalf("answer = %q", got)
	}

	snap, _ := host.Snapshot()
	if snap.Hunger != 70 || snap.CareScore != 5 {
		t.Fatalf("hunger/care = %v/%d, want 70/5", snap.Hunger, snap.CareScore)
	}

	last := p.histories[1]
	results := last[len(last)-1].ToolResults
	if len(results) != 1 || results[0].ID != "t1" || results[0].Name != careToolName || results[0].IsError {
		t.Fatalf("tool results = %+v", results)
	}
	if results[0].Content != "Yum! Rex enjoyed the treat food!" {
		t.Fatalf("tool content = %q", results[0].Content)
	}
}

func TestCareToolReportsRefusal(t *testing.T) {
	b := NewWithProvider(&scriptedProvider{}, testConfig(), newHost(t))

	out, isErr := b.executeTool(context.Background(), careToolName, careCall("x", "heal", "").Input)
	if isErr {
		t.Fatalf("refusal flagged as tool error: %q", out)
	}
	if out != "Refused: Rex is not sick!" {
		t.Fatalf("out = %q", out)
	}
}

func TestAskWithoutCareLeavesPetAlone(t *testing.T) {
	host := newHost(t)
	p := &scriptedProvider{responses: []*Response{
		{ToolCalls: []ToolCall{careCall("t1", "feed", "special")}},
		{Text: "you're not my owner", Done: true},
	}}
	b := NewWithProvider(p, testConfig(), host)

	got, err := b.Ask(WithoutCare(context.Background()), "eat this")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != "you're not my owner" {
		t.Fatalf("answer = %q", got)
	}

	snap, _ := host.Snapshot()
	if snap.Hunger != 50 || snap.CareScore != 0 {
		t.Fatalf("hunger/care = %v/%d, want untouched 50/0", snap.Hunger, snap.CareScore)
	}
	last := p.histories[1]
	results := last[len(last)-1].ToolResults
	if len(results) != 1 || !results[0].IsError || !strings.HasPrefix(results[0].Content, "Refused:") {
		t.Fatalf("tool results = %+v", results)
	}
}

func TestCareToolRejectsBadInput(t *testing.T) {
	b := NewWithProvider(&scriptedProvider{}, testConfig(), newHost(t))
	ctx := context.Background()

	tests := []struct {
		name  string
		tool  string
		input string
	}{
		{"save is off limits", careToolName, `{"action":"save"}`},
		{"exit is off limits", careToolName, `{"action":"exit"}`},
		{"malformed", careToolName, `{"action":`},
		{"unknown tool", "run_shell", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, isErr := b.executeTool(ctx, tt.tool, json.RawMessage(tt.input)); !isErr {
				t.Fatal("want tool error")
			}
		})
	}
}

func TestAskStopsAfterMaxTools(t *testing.T) {
	loop := &Response{ToolCalls: []ToolCall{careCall("t", "sleep", "")}}
	p := &scriptedProvider{responses: []*Response{loop, loop, loop, loop}}
	b := NewWithProvider(p, testConfig(), newHost(t))

	got, err := b.Ask(context.Background(), "sleep forever")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if len(p.prompts) != 3 {
		t.Fatalf("provider called %d times, want maxTools+1", len(p.prompts))
	}
	if got == "" {
		t.Fatal("want a fallback answer")
	}
}

func TestAskWrapsProviderError(t *testing.T) {
	boom := errors.New("overloaded")
	b := NewWithProvider(&scriptedProvider{err: boom}, testConfig(), newHost(t))

	if _, err := b.Ask(context.Background(), "hi"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped provider error", err)
	}
}

func TestAskWithoutPet(t *testing.T) {
	host := game.NewSession(game.Options{})
	b := NewWithProvider(&scriptedProvider{}, testConfig(), host)

	if _, err := b.Ask(context.Background(), "hi"); !errors.Is(err, game.ErrNoPet) {
		t.Fatalf("err = %v, want ErrNoPet", err)
	}
}

func TestRateLimiterSlidingWindow(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 2
	p := &scriptedProvider{}
	b := NewWithProvider(p, cfg, newHost(t))
	clock := start
	b.now = func() time.Time { return clock }

	ctx := context.Background()
	b.Ask(ctx, "one")
	b.Ask(ctx, "two")
	got, _ := b.Ask(ctx, "three")
	if !strings.Contains(got, "too many messages") {
		t.Fatalf("third ask = %q, want rate limit reply", got)
	}
	if len(p.prompts) != 2 {
		t.Fatalf("provider called %d times, want 2", len(p.prompts))
	}

	clock = clock.Add(2 * time.Minute)
	b.Ask(ctx, "four")
	if len(p.prompts) != 3 {
		t.Fatal("window did not slide")
	}
}

func TestNewWithoutKeysIsNil(t *testing.T) {
	if b := New(context.Background(), testConfig(), newHost(t)); b != nil {
		t.Fatal("want nil brain without API keys")
	}
	cfg := testConfig()
	cfg.Provider = "gemini"
	cfg.ClaudeAPIKey = "sk"
	if b := New(context.Background(), cfg, newHost(t)); b != nil {
		t.Fatal("forced gemini without GOOGLE_API_KEY should disable the brain")
	}
}
