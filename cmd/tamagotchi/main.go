// Command tamagotchi runs the virtual pet in the terminal, with optional
// Discord and AI chat front ends sharing the same pet.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/moorebrett0/tamagotchi/internal/brain"
	"github.com/moorebrett0/tamagotchi/internal/config"
	"github.com/moorebrett0/tamagotchi/internal/discord"
	"github.com/moorebrett0/tamagotchi/internal/game"
	"github.com/moorebrett0/tamagotchi/internal/random"
	"github.com/moorebrett0/tamagotchi/internal/store"
	"github.com/moorebrett0/tamagotchi/internal/terminal"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "tamagotchi.yaml", "path to the YAML config file")
	flag.Parse()

	if err := run(configPath); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println()
			fmt.Println(terminal.Goodbye)
			return
		}
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.Pet.Store, cfg.Pet.StatePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("main: close store", "err", err)
		}
	}()

	rng, err := random.New(cfg.Pet.Seed)
	if err != nil {
		return err
	}

	session := game.NewSession(game.Options{
		Store:        st,
		OfflineDecay: cfg.Pet.OfflineDecay,
	})

	b := brain.New(ctx, brain.Config{
		ClaudeAPIKey: cfg.Claude.APIKey,
		ClaudeModel:  cfg.Claude.Model,
		GeminiAPIKey: cfg.Gemini.APIKey,
		GeminiModel:  cfg.Gemini.Model,
		Provider:     cfg.AI.Provider,
		MaxTokens:    cfg.Claude.MaxTokens,
		MaxTools:     cfg.Claude.MaxTools,
		RateLimit:    cfg.Claude.RateLimit,
		RateWindow:   cfg.Claude.RateWindow,
	}, session)

	// A nil *Brain must not become a non-nil interface.
	var talker terminal.Talker
	if b != nil {
		talker = b
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if cfg.Discord.Enabled() {
		router := discord.NewRouter(session, talker, cfg.Discord.OwnerIDs, cfg.Discord.AllowSpectators)
		bot, err := discord.NewBot(cfg.Discord.BotToken, cfg.Discord.ChannelID, router)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := bot.Start(ctx); err != nil {
				slog.Error("main: discord stopped", "err", err)
			}
		}()
	}

	ui := terminal.New(session, terminal.Options{
		In:          os.Stdin,
		Out:         os.Stdout,
		Rand:        rng,
		DefaultName: cfg.Pet.DefaultName,
		ClearScreen: cfg.Terminal.ClearScreen,
		Pause:       cfg.Terminal.Pause,
		Talker:      talker,
	})
	err = ui.Run(ctx)

	cancel()
	wg.Wait()
	return err
}

// setupLogging sends slog output to the log file so the terminal stays clean.
func setupLogging(cfg config.LogConfig) (io.Closer, error) {
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(f, opts)
	} else {
		handler = slog.NewTextHandler(f, opts)
	}
	slog.SetDefault(slog.New(handler))
	return f, nil
}
