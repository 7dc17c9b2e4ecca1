// Package terminal is the interactive text front end: hatching prompt,
// status panel, action menu and the main loop.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/moorebrett0/tamagotchi/internal/flavor"
	"github.com/moorebrett0/tamagotchi/internal/game"
	"github.com/moorebrett0/tamagotchi/internal/notice"
	"github.com/moorebrett0/tamagotchi/internal/pet"
)

// Goodbye is printed when the player leaves.
const Goodbye = "\U0001F44B Thanks for playing Tamagotchi!"

// Talker answers free-form chat. The AI brain satisfies it.
type Talker interface {
	Ask(ctx context.Context, message string) (string, error)
}

// Options configures a UI.
type Options struct {
	In  io.Reader
	Out io.Writer

	// Rand picks the personality of a new pet and idle behaviors.
	Rand *rand.Rand

	DefaultName string
	ClearScreen bool
	Pause       time.Duration

	// Talker enables the Talk menu entry when set.
	Talker Talker
}

// UI drives one game session from a terminal.
type UI struct {
	session *game.Session
	out     io.Writer
	in      *lineReader
	rng     *rand.Rand
	opts    Options
}

type menuEntry struct {
	label  string
	action string
}

const actionTalk = "talk"

var menu = []menuEntry{
	{"Feed", game.ActionFeed},
	{"Play", game.ActionPlay},
	{"Sleep/Wake", game.ActionSleep},
	{"Clean", game.ActionClean},
	{"Heal", game.ActionHeal},
	{"Save Game", game.ActionSave},
	{"Exit", game.ActionExit},
}

// New creates a UI over session.
func New(session *game.Session, opts Options) *UI {
	if opts.DefaultName == "" {
		opts.DefaultName = pet.DefaultName
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &UI{
		session: session,
		out:     opts.Out,
		in:      newLineReader(opts.In),
		rng:     rng,
		opts:    opts,
	}
}

// Run loads or hatches a pet and plays until the player exits, input
// ends or ctx is canceled. A panic inside the loop is returned as an error.
func (u *UI) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("terminal: panic in game loop", "panic", r)
			err = fmt.Errorf("terminal: unexpected failure: %v", r)
		}
	}()

	fmt.Fprintln(u.out, "\U0001F43E Welcome to Tamagotchi! \U0001F43E")
	fmt.Fprintln(u.out)

	if err := u.start(ctx); err != nil {
		return ignoreEOF(err)
	}
	return ignoreEOF(u.loop(ctx))
}

// start loads the saved pet, or hatches a new one when there is none.
func (u *UI) start(ctx context.Context) error {
	notices, err := u.session.Load(ctx)
	if err == nil {
		fmt.Fprintln(u.out, "\U0001F4C2 Loaded saved game!")
		u.printNotices(notices)
		return nil
	}
	if !errors.Is(err, game.ErrNoSave) {
		slog.Warn("terminal: load failed, starting over", "err", err)
		fmt.Fprintf(u.out, "Error loading save file: %v\n", err)
	}
	fmt.Fprintln(u.out, "\U0001F195 Starting new game...")
	return u.hatch(ctx)
}

func (u *UI) hatch(ctx context.Context) error {
	fmt.Fprintf(u.out, "What would you like to name your Tamagotchi? (%s): ", u.opts.DefaultName)
	name, err := u.in.next(ctx)
	if err != nil {
		return err
	}
	if name == "" {
		name = u.opts.DefaultName
	}

	snap := u.session.CreatePet(name, u.rng)
	if err := u.session.Save(ctx); err != nil && !errors.Is(err, game.ErrNoStore) {
		slog.Warn("terminal: initial save failed", "err", err)
		fmt.Fprintf(u.out, "⚠️ Could not save: %v\n", err)
	}

	trait := flavor.For(snap.Personality)
	fmt.Fprintf(u.out, "\U0001F389 Welcome %s! Your new Tamagotchi is ready!\n", snap.Name)
	fmt.Fprintf(u.out, "%s %s %s.\n", trait.Emoji, snap.Name, trait.Verbs.Greet)
	return nil
}

func (u *UI) loop(ctx context.Context) error {
	for {
		notices := u.session.Refresh()
		snap, ok := u.session.Snapshot()
		if !ok {
			return game.ErrNoPet
		}

		if u.opts.ClearScreen {
			fmt.Fprint(u.out, "\033[H\033[2J")
		}
		RenderStatus(u.out, snap)
		u.printIdle(snap)
		u.printNotices(notices)

		action, err := u.chooseAction(ctx)
		if err != nil {
			return err
		}

		done, err := u.handle(ctx, action, snap)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if err := u.pause(ctx); err != nil {
			return err
		}
	}
}

func (u *UI) entries() []menuEntry {
	if u.opts.Talker == nil {
		return menu
	}
	return append(menu[:len(menu):len(menu)], menuEntry{"Talk", actionTalk})
}

func (u *UI) printMenu() {
	entries := u.entries()
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%d-%s", i+1, e.label)
	}
	fmt.Fprintln(u.out, "Actions: "+strings.Join(parts, " "))
}

// chooseAction reads a menu number or an action name until one matches.
func (u *UI) chooseAction(ctx context.Context) (string, error) {
	entries := u.entries()
	for {
		u.printMenu()
		fmt.Fprint(u.out, "What would you like to do? ")
		input, err := u.in.next(ctx)
		if err != nil {
			return "", err
		}
		if action, ok := matchEntry(entries, input); ok {
			return action, nil
		}
		fmt.Fprintf(u.out, "Please pick a number from 1 to %d.\n", len(entries))
	}
}

func matchEntry(entries []menuEntry, input string) (string, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(entries) {
			return entries[n-1].action, true
		}
		return "", false
	}
	lower := strings.ToLower(input)
	for _, e := range entries {
		if lower == e.action || lower == strings.ToLower(e.label) {
			return e.action, true
		}
	}
	if lower == "wake" {
		return game.ActionSleep, true
	}
	return "", false
}

// chooseKind asks for a food or game kind. Empty input picks the first.
func (u *UI) chooseKind(ctx context.Context, question string, kinds []string) (string, error) {
	for {
		parts := make([]string, len(kinds))
		for i, k := range kinds {
			parts[i] = fmt.Sprintf("%d-%s", i+1, k)
		}
		fmt.Fprintf(u.out, "%s %s: ", question, strings.Join(parts, " "))
		input, err := u.in.next(ctx)
		if err != nil {
			return "", err
		}
		if input == "" {
			return kinds[0], nil
		}
		if n, err := strconv.Atoi(input); err == nil {
			if n >= 1 && n <= len(kinds) {
				return kinds[n-1], nil
			}
			continue
		}
		return strings.ToLower(input), nil
	}
}

// handle runs one menu choice. done is true when the player is leaving.
func (u *UI) handle(ctx context.Context, action string, snap pet.Snapshot) (done bool, err error) {
	var kind string
	switch action {
	case game.ActionFeed:
		if kind, err = u.chooseKind(ctx, "What type of food?", pet.FoodKinds); err != nil {
			return false, err
		}
	case game.ActionPlay:
		if snap.Energy < 20 {
			u.say(fmt.Sprintf("%s is too tired to play!", snap.Name))
			return false, nil
		}
		if kind, err = u.chooseKind(ctx, "What type of game?", pet.GameKinds); err != nil {
			return false, err
		}
	case game.ActionExit:
		return true, u.confirmExit(ctx)
	case actionTalk:
		return false, u.talk(ctx, snap)
	}

	reply, notices, err := u.session.Do(ctx, action, kind)
	if err != nil {
		slog.Error("terminal: action failed", "action", action, "err", err)
		fmt.Fprintf(u.out, "❌ Error: %v\n", err)
		return false, nil
	}
	u.printNotices(notices)
	u.say(reply.Text)
	return false, nil
}

func (u *UI) confirmExit(ctx context.Context) error {
	fmt.Fprint(u.out, "Save before exiting? [y/n]: ")
	answer, err := u.in.next(ctx)
	if err != nil {
		return err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		if err := u.session.Save(ctx); err != nil {
			slog.Error("terminal: save on exit failed", "err", err)
			fmt.Fprintf(u.out, "❌ Error: %v\n", err)
			return nil
		}
		u.say("Game saved successfully!")
	}
	fmt.Fprintln(u.out, Goodbye)
	return nil
}

func (u *UI) talk(ctx context.Context, snap pet.Snapshot) error {
	fmt.Fprintf(u.out, "Say something to %s: ", snap.Name)
	msg, err := u.in.next(ctx)
	if err != nil {
		return err
	}
	if msg == "" {
		return nil
	}
	answer, err := u.opts.Talker.Ask(ctx, msg)
	if err != nil {
		slog.Error("terminal: talk failed", "err", err)
		fmt.Fprintf(u.out, "❌ Error: %v\n", err)
		return nil
	}
	fmt.Fprintf(u.out, "%s %s: %s\n", flavor.For(snap.Personality).Emoji, snap.Name, answer)
	return nil
}

func (u *UI) say(text string) {
	fmt.Fprintf(u.out, "\U0001F4AC %s\n", text)
}

func (u *UI) printNotices(notices []notice.Notice) {
	for _, n := range notices {
		fmt.Fprintf(u.out, "\U0001F514 %s\n", n.Text)
	}
}

func (u *UI) printIdle(snap pet.Snapshot) {
	if snap.IsSleeping {
		return
	}
	trait := flavor.For(snap.Personality)
	if len(trait.IdleBehaviors) == 0 {
		return
	}
	behavior := trait.IdleBehaviors[u.rng.Intn(len(trait.IdleBehaviors))]
	fmt.Fprintf(u.out, "%s %s %s.\n\n", trait.Emoji, snap.Name, behavior)
}

func (u *UI) pause(ctx context.Context) error {
	if u.opts.Pause <= 0 {
		return nil
	}
	t := time.NewTimer(u.opts.Pause)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ignoreEOF treats closed input as the player walking away.
func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
