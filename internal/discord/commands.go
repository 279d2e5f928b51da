package discord

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/handler"
)

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler

	handled     atomic.Int64
	lastHandled atomic.Int64 // unix nanos
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, h CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = h
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) bool {
	h, ok := r.Handlers[i.ApplicationCommandData().Name]
	if !ok {
		return false
	}
	r.handled.Add(1)
	r.lastHandled.Store(time.Now().UnixNano())
	h(s, i, client)
	return true
}

// Stats reports how many commands were dispatched and when the last one was.
// The time is zero until the first command.
func (r *CommandRegistry) Stats() (handled int64, last time.Time) {
	if nanos := r.lastHandled.Load(); nanos != 0 {
		last = time.Unix(0, nanos)
	}
	return r.handled.Load(), last
}

// RegisterCommands pushes the registry to Discord. The bulk overwrite is
// skipped when Discord already has the same command shapes, since it counts
// against a daily limit.
func (b *Bot) RegisterCommands(forceUpdate bool) error {
	desired := make([]*discordgo.ApplicationCommand, 0, len(b.Registry.Commands))
	for _, cmd := range b.Registry.Commands {
		desired = append(desired, cmd)
	}
	slices.SortFunc(desired, func(x, y *discordgo.ApplicationCommand) int { return strings.Compare(x.Name, y.Name) })

	if !forceUpdate {
		existing, err := b.Session.ApplicationCommands(b.AppID, "")
		if err != nil {
			return fmt.Errorf("failed to fetch existing commands: %w", err)
		}
		if commandsEqual(existing, desired) {
			slog.Info("Commands unchanged, skipping registration", "count", len(existing))
			return nil
		}
		slog.Info("Commands changed", "existing", len(existing), "desired", len(desired))
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desired); err != nil {
		return fmt.Errorf("failed to overwrite commands: %w", err)
	}
	slog.Info("Commands registered", "count", len(desired), "forced", forceUpdate)
	return nil
}

// commandShape is the part of a command users can see. Discord echoes back
// IDs, versions and defaults that never match a locally built command.
type commandShape struct {
	Description string
	Permissions *int64
	Options     []optionShape
}

type optionShape struct {
	Type         discordgo.ApplicationCommandOptionType
	Name         string
	Description  string
	Required     bool
	Autocomplete bool
	Choices      []string
	Options      []optionShape
}

func shapeOf(cmd *discordgo.ApplicationCommand) commandShape {
	return commandShape{
		Description: cmd.Description,
		Permissions: cmd.DefaultMemberPermissions,
		Options:     optionShapes(cmd.Options),
	}
}

func optionShapes(opts []*discordgo.ApplicationCommandOption) []optionShape {
	var out []optionShape
	for _, o := range opts {
		shape := optionShape{
			Type:         o.Type,
			Name:         o.Name,
			Description:  o.Description,
			Required:     o.Required,
			Autocomplete: o.Autocomplete,
			Options:      optionShapes(o.Options),
		}
		for _, c := range o.Choices {
			// Discord returns numeric choice values as float64
			shape.Choices = append(shape.Choices, fmt.Sprintf("%s=%v", c.Name, c.Value))
		}
		out = append(out, shape)
	}
	return out
}

// commandsEqual reports whether two command sets look the same to users,
// ignoring order
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	shapes := make(map[string]commandShape, len(existing))
	for _, cmd := range existing {
		shapes[cmd.Name] = shapeOf(cmd)
	}
	for _, cmd := range desired {
		have, ok := shapes[cmd.Name]
		if !ok || !reflect.DeepEqual(have, shapeOf(cmd)) {
			return false
		}
	}
	return true
}

// respondError replaces the deferred response with a plain message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// ResponseConfig defines the visual properties of a command response embed
type ResponseConfig struct {
	Title  string
	Color  int
	Footer string
}

// handleEmbedResponse defers the response, runs the action and sends its
// result as an embed, or a friendly error when it fails.
func handleEmbedResponse(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	action func() (string, error),
	config ResponseConfig,
) {
	if !deferResponse(s, i) {
		return
	}

	msg, err := action()
	if err != nil {
		slog.Error("Action failed", "title", config.Title, "error", err)
		respondFriendlyError(s, i, err)
		return
	}

	sendEmbed(s, i, createEmbed(config.Title, msg, config.Color, config.Footer))
}

// deferResponse acknowledges an interaction with a deferred message.
// Returns false if deferral failed.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// getOptions extracts command options from an interaction
func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// optionString returns the string value of the named option, or ""
func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

// optionInt returns the integer value of the named option, or def
func optionInt(options []*discordgo.ApplicationCommandInteractionDataOption, name string, def int) int {
	for _, opt := range options {
		if opt.Name == name {
			return int(opt.IntValue())
		}
	}
	return def
}

// respondFriendlyError turns an API error into a message players can act on
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	respondError(s, i, formatFriendlyError(err))
}

// formatFriendlyError cleans up technical error messages
func formatFriendlyError(err error) string {
	if err == nil {
		return MsgGenericError
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return MsgInvalidInput
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return MsgGenericError
	}

	msg := apiErr.Message
	switch {
	case strings.Contains(msg, handler.ErrMsgRecipeNotFoundError):
		return MsgRecipeNotFound
	case strings.Contains(msg, handler.ErrMsgRecipeLockedError):
		return MsgRecipeLocked
	case strings.Contains(msg, handler.ErrMsgNotEligibleError):
		return MsgNotEligible
	case strings.Contains(msg, handler.ErrMsgCraftInProgressError):
		return MsgCraftInProgress
	case strings.Contains(msg, handler.ErrMsgItemNotFoundError):
		return MsgItemNotFound
	case strings.Contains(msg, handler.ErrMsgInsufficientItemsError):
		return MsgNotEnoughItems
	case strings.Contains(msg, handler.ErrMsgProfessionNotFound):
		return MsgProfessionNotFound
	default:
		return "❌ " + msg
	}
}

// sendEmbed sends an embed message, logging send failures
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// createEmbed creates a standard embed. An empty footerText defaults to FooterRecipeCraft.
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterRecipeCraft
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}
