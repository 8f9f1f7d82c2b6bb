package main

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

func GetApplicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "map-attach",
			Description: "Bind the live camp map to a channel in this server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel that will hold the map message",
					Required:    true,
					ChannelTypes: []discordgo.ChannelType{
						discordgo.ChannelTypeGuildText,
					},
				},
			},
		},
		{
			Name:        "map-detach",
			Description: "Stop updating the camp map in this server",
		},
		{
			Name:        "map-status",
			Description: "Show the current map binding and last update",
		},
		{
			Name:        "map-update",
			Description: "Refresh the camp map now",
		},
	}
}

func RegisterCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID string) []*discordgo.ApplicationCommand {
	registeredCommands := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		registered, err := session.ApplicationCommandCreate(userID, "", cmd)
		if err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "error", err)
			continue
		}
		registeredCommands[i] = registered
		slog.Info("Registered command", "name", cmd.Name)
	}

	return registeredCommands
}

func CleanupCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID string) {
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		err := session.ApplicationCommandDelete(userID, "", cmd.ID)
		if err != nil {
			slog.Error("Cannot delete command", "name", cmd.Name, "error", err)
		}
	}
}
