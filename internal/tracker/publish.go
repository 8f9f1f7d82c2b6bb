package tracker

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"camp-map-tracker/internal/formatting"
	"camp-map-tracker/internal/metrics"
	"camp-map-tracker/internal/statestore"

	"github.com/bwmarrin/discordgo"
)

const snapshotFilename = "map.jpg"

// cycleBindings returns the bindings to reconcile this cycle: all of them on
// a scheduled tick, just one for a forced per-guild update.
func (s *Service) cycleBindings(ctx context.Context, guildID string) ([]statestore.Binding, error) {
	if guildID == "" {
		return s.store.ListBindings(ctx)
	}

	b, err := s.store.GetBinding(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		slog.Warn("Forced update for guild with no binding", "guild_id", guildID)
		return nil, nil
	}
	return []statestore.Binding{*b}, nil
}

// publish reconciles one binding against the snapshot: make sure the bound
// message still exists, then edit the image in unless the content hash says
// nothing changed. Errors affect only this binding.
func (s *Service) publish(ctx context.Context, snap *snapshot, b statestore.Binding, forced bool) error {
	recreated, err := s.ensureMessage(ctx, &b)
	if err != nil {
		return err
	}

	if !forced && !recreated && b.LastHash == snap.hash {
		slog.Debug("Snapshot unchanged, skipping edit", "guild_id", b.GuildID)
		metrics.BindingUpdates.WithLabelValues("unchanged").Inc()
		return nil
	}

	img, err := snap.Image(s.renderer, s.colors)
	if err != nil {
		return fmt.Errorf("failed to render snapshot: %w", err)
	}

	now := time.Now().UTC()
	content := formatting.MsgSnapshot(s.mapName, len(snap.players), len(snap.camps), now)
	edit := &discordgo.MessageEdit{
		ID:      b.MessageID,
		Channel: b.ChannelID,
		Content: &content,
		Files: []*discordgo.File{{
			Name:        snapshotFilename,
			ContentType: "image/jpeg",
			Reader:      bytes.NewReader(img),
		}},
		// Replaces the previous cycle's attachment instead of stacking.
		Attachments: &[]*discordgo.MessageAttachment{},
	}

	if _, err := s.discord.ChannelMessageEditComplex(edit); err != nil {
		metrics.DiscordMessagesEdited.WithLabelValues("edit", "error").Inc()
		return fmt.Errorf("failed to edit map message: %w", err)
	}
	metrics.DiscordMessagesEdited.WithLabelValues("edit", "ok").Inc()

	b.LastHash = snap.hash
	b.LastUpdated = now
	if err := s.store.PutBinding(ctx, b); err != nil {
		return fmt.Errorf("failed to save binding state: %w", err)
	}

	metrics.BindingUpdates.WithLabelValues("updated").Inc()
	return nil
}

// ensureMessage verifies the bound message still exists and recreates it
// when it was deleted or never sent. Reports whether a new message was made,
// which always forces a fresh edit regardless of the stored hash.
func (s *Service) ensureMessage(ctx context.Context, b *statestore.Binding) (bool, error) {
	if b.MessageID != "" {
		if _, err := s.discord.ChannelMessage(b.ChannelID, b.MessageID); err == nil {
			return false, nil
		}
		slog.Warn("Bound message gone, recreating", "guild_id", b.GuildID, "channel_id", b.ChannelID)
	}

	msg, err := s.discord.ChannelMessageSendComplex(b.ChannelID, &discordgo.MessageSend{
		Content: formatting.MsgPlaceholder,
	})
	if err != nil {
		metrics.DiscordMessagesEdited.WithLabelValues("send", "error").Inc()
		return false, fmt.Errorf("failed to create map message: %w", err)
	}
	metrics.DiscordMessagesEdited.WithLabelValues("send", "ok").Inc()

	b.MessageID = msg.ID
	b.LastHash = ""
	if err := s.store.PutBinding(ctx, *b); err != nil {
		return true, fmt.Errorf("failed to save recreated message: %w", err)
	}
	return true, nil
}
