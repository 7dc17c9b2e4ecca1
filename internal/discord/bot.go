package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/moorebrett0/tamagotchi/internal/pet"
)

// Bot wraps the Discord session and manages slash commands, messages, and presence.
type Bot struct {
	session   *discordgo.Session
	channelID string
	router    *Router

	mu  sync.Mutex
	ctx context.Context
}

// NewBot creates and configures a Discord bot (does not connect yet).
func NewBot(token, channelID string, router *Router) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("invalid bot token: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentsGuilds

	b := &Bot{
		session:   session,
		channelID: channelID,
		router:    router,
		ctx:       context.Background(),
	}
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onInteractionCreate)
	session.AddHandler(b.onReady)
	return b, nil
}

// Start opens the Discord connection and registers slash commands.
// Blocks until context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.mu.Lock()
	b.ctx = ctx
	b.mu.Unlock()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	slog.Info("discord: connected", "user", b.session.State.User.Username)

	// Register slash commands
	b.registerCommands()
	b.refreshPresence()

	// Wait for shutdown
	<-ctx.Done()
	slog.Info("discord: shutting down")
	return b.session.Close()
}

func (b *Bot) runCtx() context.Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctx
}

// SendMessage sends a text message to a channel.
func (b *Bot) SendMessage(channelID, text string) {
	if text == "" {
		return
	}
	if _, err := b.session.ChannelMessageSend(channelID, text); err != nil {
		slog.Error("discord: send message failed", "err", err)
	}
}

// UpdatePresence sets the bot's Discord status based on pet mood.
func (b *Bot) UpdatePresence(snap pet.Snapshot) {
	status, activity := moodToPresence(snap.Mood, snap.IsSleeping)
	err := b.session.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: status,
		Activities: []*discordgo.Activity{
			{
				Name:  activity,
				Type:  discordgo.ActivityTypeCustom,
				State: activity,
			},
		},
	})
	if err != nil {
		slog.Debug("discord: update presence failed", "err", err)
	}
}

func (b *Bot) refreshPresence() {
	if snap, ok := b.router.game.Snapshot(); ok {
		b.UpdatePresence(snap)
	}
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("discord: ready", "user", r.User.Username, "guilds", len(r.Guilds))
}

// BotUserID returns the bot's own user ID.
func (b *Bot) BotUserID() string {
	if b.session.State != nil && b.session.State.User != nil {
		return b.session.State.User.ID
	}
	return ""
}

// IsMentioned checks if the bot was @mentioned in the message.
func (b *Bot) IsMentioned(m *discordgo.MessageCreate) bool {
	for _, u := range m.Mentions {
		if u.ID == b.BotUserID() {
			return true
		}
	}
	return false
}

// StripMention removes the bot's @mention from message text.
func (b *Bot) StripMention(text string) string {
	return stripMention(text, b.BotUserID())
}

func stripMention(text, botID string) string {
	// Discord mentions look like <@123456> or <@!123456>
	text = strings.ReplaceAll(text, "<@"+botID+">", "")
	text = strings.ReplaceAll(text, "<@!"+botID+">", "")
	return strings.TrimSpace(text)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore bots, including ourselves
	if m.Author == nil || m.Author.Bot {
		return
	}

	// Only respond in the configured channel
	if m.ChannelID != b.channelID {
		return
	}

	mentioned := b.IsMentioned(m)
	content := m.Content
	if mentioned {
		content = b.StripMention(content)
		if content == "" {
			content = "hi!"
		}
	}

	resp := b.router.HandleMessage(b.runCtx(), Message{
		AuthorID:  m.Author.ID,
		Username:  m.Author.Username,
		Content:   content,
		Mentioned: mentioned,
	})
	b.SendMessage(m.ChannelID, resp.Content)
	b.postNotices(resp.Notices)
	if resp.Content != "" {
		b.refreshPresence()
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	cmd := commandFromInteraction(i)

	// The brain can take a while, so acknowledge first
	if cmd.Name == "talk" && b.router.talker != nil {
		b.respondDeferred(i)
		resp := b.router.HandleCommand(b.runCtx(), cmd)
		b.followup(i, resp.Content)
		return
	}

	resp := b.router.HandleCommand(b.runCtx(), cmd)
	b.respond(i, resp)
	b.postNotices(resp.Notices)
	b.refreshPresence()
}

func (b *Bot) postNotices(notices []string) {
	for _, n := range notices {
		b.SendMessage(b.channelID, n)
	}
}

func commandFromInteraction(i *discordgo.InteractionCreate) Command {
	data := i.ApplicationCommandData()
	cmd := Command{
		Name:    data.Name,
		UserID:  interactionUserID(i),
		Options: make(map[string]string, len(data.Options)),
	}
	for _, opt := range data.Options {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			cmd.Options[opt.Name] = opt.StringValue()
		}
	}
	return cmd
}

// --- Interaction response helpers ---

func (b *Bot) respond(i *discordgo.InteractionCreate, resp Response) {
	data := &discordgo.InteractionResponseData{Content: resp.Content}
	if resp.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{resp.Embed}
	}
	if resp.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		slog.Error("discord: respond failed", "err", err)
	}
}

func (b *Bot) respondDeferred(i *discordgo.InteractionCreate) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		slog.Error("discord: deferred respond failed", "err", err)
	}
}

func (b *Bot) followup(i *discordgo.InteractionCreate, content string) {
	_, err := b.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	})
	if err != nil {
		slog.Error("discord: followup failed", "err", err)
	}
}

func kindOption(description string, kinds []string) *discordgo.ApplicationCommandOption {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(kinds))
	for i, k := range kinds {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{Name: k, Value: k}
	}
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "kind",
		Description: description,
		Required:    false,
		Choices:     choices,
	}
}

func commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "status",
			Description: "Check your pet's stats and mood",
		},
		{
			Name:        "feed",
			Description: "Feed your pet",
			Options:     []*discordgo.ApplicationCommandOption{kindOption("What kind of food", pet.FoodKinds)},
		},
		{
			Name:        "play",
			Description: "Play a game with your pet",
			Options:     []*discordgo.ApplicationCommandOption{kindOption("What kind of game", pet.GameKinds)},
		},
		{
			Name:        "sleep",
			Description: "Put your pet to bed, or wake it up",
		},
		{
			Name:        "clean",
			Description: "Give your pet a bath",
		},
		{
			Name:        "heal",
			Description: "Give your pet medicine",
		},
		{
			Name:        "save",
			Description: "Save the game",
		},
		{
			Name:        "talk",
			Description: "Say something to your pet",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "What to say",
					Required:    true,
				},
			},
		},
		{
			Name:        "help",
			Description: "Show available commands",
		},
	}
}

func (b *Bot) registerCommands() {
	appID := b.session.State.User.ID
	for _, cmd := range commands() {
		if _, err := b.session.ApplicationCommandCreate(appID, "", cmd); err != nil {
			slog.Error("discord: failed to register command", "cmd", cmd.Name, "err", err)
		} else {
			slog.Info("discord: registered command", "cmd", cmd.Name)
		}
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
