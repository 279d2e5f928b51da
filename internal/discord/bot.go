package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/RecipeCraft_Go/internal/config"
)

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	Client   *APIClient
	AppID    string
	Registry *CommandRegistry
	Recipes  *RecipeCache

	started time.Time
}

// New creates a bot from its config. The session is not opened until Run.
func New(cfg *config.BotConfig) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	ttl := cfg.RecipeCacheTTL
	if ttl <= 0 {
		ttl = DefaultRecipeCacheTTL
	}

	return &Bot{
		Session:  s,
		Client:   NewAPIClient(cfg.APIURL, cfg.APIKey),
		AppID:    cfg.AppID,
		Registry: NewCommandRegistry(),
		Recipes:  NewRecipeCache(ttl),
		started:  time.Now(),
	}, nil
}

// Run opens the gateway connection and blocks until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}
	slog.Info("Discord bot connected")

	<-ctx.Done()

	if err := b.Session.Close(); err != nil {
		slog.Warn("Error closing Discord session", "error", err)
	}
	return nil
}

// Connected reports whether the gateway session has received its ready event
func (b *Bot) Connected() bool {
	return b.Session != nil && b.Session.DataReady
}

func (b *Bot) ready(_ *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.HandleAutocomplete(s, i)
	case discordgo.InteractionApplicationCommand:
		if b.Registry != nil && !b.Registry.Handle(s, i, b.Client) {
			slog.Warn("Unknown command", "command", i.ApplicationCommandData().Name)
		}
	}
}
