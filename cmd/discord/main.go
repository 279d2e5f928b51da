package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/RecipeCraft_Go/internal/config"
	"github.com/osse101/RecipeCraft_Go/internal/discord"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

const serviceName = "recipe-craft-discord"

type commandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	cfg, err := config.LoadBot()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, serviceName, cfg.Version, cfg.Environment))
	slog.Info("Starting Discord front-end", "api_url", cfg.APIURL)
	if cfg.APIKey == "" {
		slog.Warn("API_KEY not set, every API call will be rejected")
	}

	bot, err := discord.New(cfg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	health := discord.NewHealthServer(cfg.HealthPort, bot)
	health.Start()
	defer health.Stop()

	for _, factory := range commandFactories(bot) {
		bot.Registry.Register(factory())
	}
	if err := bot.RegisterCommands(cfg.ForceCommandUpdate); err != nil {
		// Commands registered by a previous run still work
		slog.Error("Failed to register commands", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Discord front-end stopped")
}

// commandFactories lists every slash command the bot serves. Use and
// discover share the recipe cache so autocomplete sees new recipes.
func commandFactories(bot *discord.Bot) []commandFactory {
	withCache := func(f func(*discord.RecipeCache) (*discordgo.ApplicationCommand, discord.CommandHandler)) commandFactory {
		return func() (*discordgo.ApplicationCommand, discord.CommandHandler) { return f(bot.Recipes) }
	}

	return []commandFactory{
		discord.RecipesCommand,
		discord.RecipeCommand,
		discord.CraftCommand,
		discord.CraftStatusCommand,

		discord.InventoryCommand,
		withCache(discord.UseItemCommand),
		discord.ProfessionsCommand,

		withCache(discord.DiscoverCommand),
		discord.SaveCommand,
	}
}
