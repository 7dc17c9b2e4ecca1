package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/moorebrett0/tamagotchi/internal/notice"
	"github.com/moorebrett0/tamagotchi/internal/pet"
	"github.com/moorebrett0/tamagotchi/internal/store"
)

var (
	ErrNoPet         = errors.New("no pet has been created")
	ErrUnknownAction = errors.New("unknown action")
	ErrNoStore       = errors.New("no store configured")
	ErrNoSave        = errors.New("no saved game")
	ErrCorruptSave   = errors.New("corrupt saved game")
)

// Actions understood by Dispatch.
const (
	ActionFeed  = "feed"
	ActionPlay  = "play"
	ActionSleep = "sleep"
	ActionClean = "clean"
	ActionHeal  = "heal"
	ActionSave  = "save"
	ActionExit  = "exit"
)

// Actions lists the dispatch surface in menu order.
var Actions = []string{ActionFeed, ActionPlay, ActionSleep, ActionClean, ActionHeal, ActionSave, ActionExit}

// Reply is what a dispatched action tells the player.
type Reply struct {
	Text     string
	Rejected bool
	Exit     bool
}

// Options configures a Session.
type Options struct {
	Store store.Store
	// Now defaults to time.Now.
	Now func() time.Time
	// OfflineDecay applies the time between the last save and a load.
	OfflineDecay bool
}

// Session owns the single pet and serializes access to it.
type Session struct {
	mu  sync.Mutex
	pet *pet.PetState

	store        store.Store
	now          func() time.Time
	offlineDecay bool
}

// NewSession creates a session with no pet.
func NewSession(opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		store:        opts.Store,
		now:          now,
		offlineDecay: opts.OfflineDecay,
	}
}

// HasPet reports whether a pet has been created or loaded.
func (s *Session) HasPet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pet != nil
}

// Snapshot returns a copy of the pet. ok is false before a pet exists.
func (s *Session) Snapshot() (snap pet.Snapshot, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pet == nil {
		return pet.Snapshot{}, false
	}
	return s.pet.Snapshot(), true
}

// CreatePet replaces any existing pet with a newborn one. rng may be nil.
func (s *Session) CreatePet(name string, rng *rand.Rand) pet.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pet = pet.New(strings.TrimSpace(name), s.now(), rng)
	slog.Info("game: pet created", "name", s.pet.Name, "personality", s.pet.Personality)
	return s.pet.Snapshot()
}

// Tick applies the time elapsed since the pet was last updated.
func (s *Session) Tick(now time.Time) []notice.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick(now)
}

// Refresh ticks the pet to the session clock.
func (s *Session) Refresh() []notice.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick(s.now())
}

func (s *Session) tick(now time.Time) []notice.Notice {
	if s.pet == nil {
		return nil
	}
	before := s.pet.Snapshot()

	hours := now.Sub(s.pet.LastUpdate).Seconds() / 3600
	if hours < 0 {
		hours = 0
	}
	s.pet.ApplyElapsedTime(hours)
	if now.After(s.pet.LastUpdate) {
		s.pet.LastUpdate = now.UTC()
	}

	notices := notice.Diff(before, s.pet.Snapshot())
	for _, n := range notices {
		slog.Info("game: notice", "kind", n.Kind, "text", n.Text)
	}
	return notices
}

// Dispatch routes one action to the pet. kind is only read by feed and play.
func (s *Session) Dispatch(ctx context.Context, action, kind string) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(ctx, action, kind)
}

func (s *Session) dispatch(ctx context.Context, action, kind string) (Reply, error) {
	action = strings.ToLower(strings.TrimSpace(action))
	kind = strings.ToLower(strings.TrimSpace(kind))

	if action == ActionExit {
		return Reply{Text: "Goodbye!", Exit: true}, nil
	}
	if s.pet == nil {
		return Reply{}, ErrNoPet
	}

	var out pet.Outcome
	switch action {
	case ActionFeed:
		out = s.pet.Feed(kind)
	case ActionPlay:
		out = s.pet.Play(kind)
	case ActionSleep:
		out = s.pet.Sleep()
	case ActionClean:
		out = s.pet.Clean()
	case ActionHeal:
		out = s.pet.Heal()
	case ActionSave:
		if err := s.save(ctx); err != nil {
			return Reply{}, err
		}
		return Reply{Text: "Game saved successfully!"}, nil
	default:
		return Reply{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	slog.Debug("game: action", "action", action, "kind", kind, "rejected", out.Rejected)
	return Reply{Text: out.Message, Rejected: out.Rejected}, nil
}

// Do ticks the pet to the current time and then dispatches the action.
func (s *Session) Do(ctx context.Context, action, kind string) (Reply, []notice.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notices := s.tick(s.now())
	reply, err := s.dispatch(ctx, action, kind)
	return reply, notices, err
}

// Serialize encodes the pet for persistence.
func (s *Session) Serialize() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pet == nil {
		return nil, ErrNoPet
	}
	return s.pet.Marshal()
}

// Deserialize replaces the pet with one decoded from data. It does not tick.
func (s *Session) Deserialize(data []byte) error {
	p, err := pet.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	s.mu.Lock()
	s.pet = p
	s.mu.Unlock()
	return nil
}

// Load reads the saved pet and catches it up to the current time.
// A missing save returns ErrNoSave and a damaged one ErrCorruptSave.
func (s *Session) Load(ctx context.Context) ([]notice.Notice, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	data, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("load game: %w", err)
	}
	if err := s.Deserialize(data); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// With offline decay the time since the save is applied on the first
	// tick. Without it lastUpdate moves to the load time first, so the pet
	// comes back exactly as it was saved.
	now := s.now()
	if !s.offlineDecay {
		s.pet.LastUpdate = now.UTC()
	}
	slog.Info("game: pet loaded", "name", s.pet.Name,
		"offline_hours", now.Sub(s.pet.LastUpdate).Hours())
	return s.tick(now), nil
}

// Save ticks the pet to the current time and writes it to the store.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

func (s *Session) save(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	if s.pet == nil {
		return ErrNoPet
	}
	s.tick(s.now())

	data, err := s.pet.Marshal()
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	slog.Info("game: saved", "name", s.pet.Name, "care_score", s.pet.CareScore)
	return nil
}
