package tracker

import (
	"context"

	"camp-map-tracker/internal/gameapi"
	"camp-map-tracker/internal/mapview"
	"camp-map-tracker/internal/statestore"

	"github.com/bwmarrin/discordgo"
)

// External API Interfaces - abstractions for external dependencies

// TelemetryClient defines the game server API methods used by the Service
type TelemetryClient interface {
	GetPlayers() ([]gameapi.Player, error)
	GetGuilds() ([]gameapi.Guild, error)
}

// DiscordSession defines the Discord API methods used to publish snapshots
type DiscordSession interface {
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Internal Component Interfaces - abstractions for internal components

// BindingStore is the persistence surface the Service needs
type BindingStore interface {
	GetBinding(ctx context.Context, guildID string) (*statestore.Binding, error)
	PutBinding(ctx context.Context, b statestore.Binding) error
	ListBindings(ctx context.Context) ([]statestore.Binding, error)
}

// SnapshotRenderer encodes one snapshot into an image
type SnapshotRenderer interface {
	Render(players []mapview.Player, camps []mapview.Camp, colors *mapview.ColorTable) ([]byte, error)
}
