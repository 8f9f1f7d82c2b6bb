package handlers

import (
	"context"
	"log/slog"

	"camp-map-tracker/internal/formatting"
	"camp-map-tracker/internal/statestore"

	"github.com/bwmarrin/discordgo"
)

type BotHandler struct {
	Store   BindingStore
	Tracker MapTracker
}

func ReadyHandler(session *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("Camp Map Tracker is online!", "user", session.State.User.Username, "discriminator", session.State.User.Discriminator)
}

// AttachMap binds the guild's map to a channel. Re-attaching replaces the
// old binding, so the next cycle creates a fresh message wherever it points.
func (h *BotHandler) AttachMap(s DiscordSession, i *discordgo.InteractionCreate) {
	var channelID string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "channel" {
			channelID = opt.ChannelValue(nil).ID
		}
	}

	if channelID == "" {
		respond(s, i, formatting.MsgChannelRequired, true)
		return
	}

	binding := statestore.Binding{
		GuildID:   i.GuildID,
		ChannelID: channelID,
	}
	if err := h.Store.PutBinding(context.Background(), binding); err != nil {
		slog.Error("Failed to save binding", "guild_id", i.GuildID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	respond(s, i, formatting.MsgAttachSuccess(channelID), false)
	h.Tracker.Trigger(context.Background(), i.GuildID)
}

func (h *BotHandler) DetachMap(s DiscordSession, i *discordgo.InteractionCreate) {
	existed, err := h.Store.DeleteBinding(context.Background(), i.GuildID)
	if err != nil {
		slog.Error("Failed to delete binding", "guild_id", i.GuildID, "error", err)
		respond(s, i, formatting.MsgDetachError, true)
		return
	}
	if !existed {
		respond(s, i, formatting.MsgNotAttached, true)
		return
	}

	respond(s, i, formatting.MsgDetachSuccess, false)
}

func (h *BotHandler) MapStatus(s DiscordSession, i *discordgo.InteractionCreate) {
	binding, err := h.Store.GetBinding(context.Background(), i.GuildID)
	if err != nil {
		slog.Error("Failed to load binding", "guild_id", i.GuildID, "error", err)
		respond(s, i, formatting.MsgNotAttached, true)
		return
	}
	if binding == nil {
		respond(s, i, formatting.MsgNotAttached, true)
		return
	}

	respond(s, i, formatting.MsgStatusAttached(binding.ChannelID, binding.LastHash, binding.LastUpdated), true)
}

// ForceUpdate requests an immediate cycle for this guild, bypassing the
// change check. Dropped when a cycle is already running.
func (h *BotHandler) ForceUpdate(s DiscordSession, i *discordgo.InteractionCreate) {
	binding, err := h.Store.GetBinding(context.Background(), i.GuildID)
	if err != nil || binding == nil {
		respond(s, i, formatting.MsgNotAttached, true)
		return
	}

	if !h.Tracker.Trigger(context.Background(), i.GuildID) {
		respond(s, i, formatting.MsgUpdateBusy, true)
		return
	}

	respond(s, i, formatting.MsgUpdateQueued, false)
}

func respond(s DiscordSession, i *discordgo.InteractionCreate, msg string, ephemeral bool) {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	})
}
