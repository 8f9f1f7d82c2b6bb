package handlers

import (
	"context"

	"camp-map-tracker/internal/statestore"

	"github.com/bwmarrin/discordgo"
)

// DiscordSession defines the interface for Discord API operations needed by handlers.
// This interface allows for testing with mocked Discord sessions.
type DiscordSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// BindingStore is the persistence surface the command handlers need.
type BindingStore interface {
	GetBinding(ctx context.Context, guildID string) (*statestore.Binding, error)
	PutBinding(ctx context.Context, b statestore.Binding) error
	DeleteBinding(ctx context.Context, guildID string) (bool, error)
}

// MapTracker triggers forced update cycles from commands.
type MapTracker interface {
	Trigger(ctx context.Context, guildID string) bool
}
