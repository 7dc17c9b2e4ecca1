package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Pet      PetConfig      `yaml:"pet"`
	Log      LogConfig      `yaml:"log"`
	Terminal TerminalConfig `yaml:"terminal"`
	AI       AIConfig       `yaml:"ai"`
	Claude   ClaudeConfig   `yaml:"claude"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Discord  DiscordConfig  `yaml:"discord"`
}

type PetConfig struct {
	StatePath    string `yaml:"state_path" env:"TAMAGOTCHI_STATE_PATH"`
	Store        string `yaml:"store" env:"TAMAGOTCHI_STORE"` // "file" or "sqlite"
	Seed         int64  `yaml:"seed" env:"TAMAGOTCHI_SEED"`   // 0 = random
	OfflineDecay bool   `yaml:"offline_decay" env:"TAMAGOTCHI_OFFLINE_DECAY"`
	DefaultName  string `yaml:"default_name" env:"TAMAGOTCHI_DEFAULT_NAME"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"` // "text" or "json"
	Path   string `yaml:"path" env:"LOG_PATH"`
}

type TerminalConfig struct {
	ClearScreen bool          `yaml:"clear_screen" env:"TAMAGOTCHI_CLEAR_SCREEN"`
	Pause       time.Duration `yaml:"pause" env:"TAMAGOTCHI_PAUSE"`
}

type AIConfig struct {
	Provider string `yaml:"provider" env:"AI_PROVIDER"` // "claude", "gemini", or "" (auto-detect)
}

type ClaudeConfig struct {
	APIKey    string `yaml:"api_key" env:"ANTHROPIC_API_KEY"`
	Model     string `yaml:"model"`
	MaxTokens int64  `yaml:"max_tokens"`
	MaxTools  int    `yaml:"max_tool_iterations"`
	// Sliding window rate limiter
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GOOGLE_API_KEY"`
	Model  string `yaml:"model"`
}

type DiscordConfig struct {
	BotToken        string   `yaml:"bot_token" env:"DISCORD_BOT_TOKEN"`
	ChannelID       string   `yaml:"channel_id" env:"DISCORD_CHANNEL_ID"`
	OwnerIDs        []string `yaml:"owner_ids" env:"DISCORD_OWNER_IDS" envSeparator:","`
	AllowSpectators bool     `yaml:"allow_spectators"`
}

// Enabled reports whether a Discord front end should start.
func (d DiscordConfig) Enabled() bool {
	return d.BotToken != ""
}

func Load(path string) (*Config, error) {
	cfg := defaults()

	// Load .env file first (working dir)
	loadDotEnv(".env")

	// Load YAML config if it exists
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No file: defaults + env vars
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	// Env vars override config file (secrets live in .env or environment)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Discord.OwnerIDs = cleanIDs(cfg.Discord.OwnerIDs)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv reads a .env file and sets env vars that aren't already set.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return // no .env, that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		val = strings.TrimSpace(val)

		// Strip surrounding quotes
		if len(val) >= 2 {
			if (val[0] == '"' && val[len(val)-1] == '"') ||
				(val[0] == '\'' && val[len(val)-1] == '\'') {
				val = val[1 : len(val)-1]
			}
		}

		if os.Getenv(key) == "" && val != "" {
			os.Setenv(key, val)
		}
	}
}

func cleanIDs(ids []string) []string {
	var cleaned []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			cleaned = append(cleaned, id)
		}
	}
	return cleaned
}

func defaults() *Config {
	return &Config{
		Pet: PetConfig{
			StatePath:    "tamagotchi_save.json",
			Store:        "file",
			OfflineDecay: true,
			DefaultName:  "Tamagotchi",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Path:   "tamagotchi.log",
		},
		Terminal: TerminalConfig{
			ClearScreen: true,
			Pause:       time.Second,
		},
		Claude: ClaudeConfig{
			Model:      "claude-sonnet-4-5-20250929",
			MaxTokens:  512,
			MaxTools:   3,
			RateLimit:  10,
			RateWindow: time.Minute,
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

// SlogLevel maps the configured level name onto slog.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func validate(cfg *Config) error {
	switch cfg.Pet.Store {
	case "file", "sqlite":
	default:
		return fmt.Errorf("unknown pet.store %q (want file or sqlite)", cfg.Pet.Store)
	}
	if strings.TrimSpace(cfg.Pet.StatePath) == "" {
		return fmt.Errorf("missing pet.state_path")
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log.format %q (want text or json)", cfg.Log.Format)
	}
	switch cfg.AI.Provider {
	case "", "claude", "gemini":
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q (want claude or gemini)", cfg.AI.Provider)
	}
	if cfg.Discord.Enabled() {
		if cfg.Discord.ChannelID == "" {
			return fmt.Errorf("missing DISCORD_CHANNEL_ID (required when DISCORD_BOT_TOKEN is set)")
		}
		if len(cfg.Discord.OwnerIDs) == 0 {
			return fmt.Errorf("missing DISCORD_OWNER_IDS (required when DISCORD_BOT_TOKEN is set)")
		}
	}
	return nil
}
