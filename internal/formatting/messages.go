package formatting

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MsgAdminRequired  = "You need Administrator permissions to use this command."
	MsgChannelRequired = "Channel is required."
	MsgNotAttached    = "No map channel is attached. Use /map-attach first."
	MsgSaveError      = "Failed to save map configuration."
	MsgDetachError    = "Failed to remove map configuration."
	MsgDetachSuccess  = "Map updates stopped. Configuration removed."
	MsgUpdateQueued   = "Map update queued. The snapshot will refresh shortly."
	MsgUpdateBusy     = "An update cycle is already running. Try again in a moment."
	MsgPlaceholder    = "Setting up the camp map, first snapshot incoming..."
)

const timestampLayout = "2006-01-02 15:04 UTC"

var titleCaser = cases.Title(language.English)

func MsgAttachSuccess(channelID string) string {
	return fmt.Sprintf("Camp map attached to <#%s>. The first snapshot is on the way.", channelID)
}

// MsgSnapshot is the text accompanying every rendered map image.
func MsgSnapshot(mapName string, players, camps int, updatedAt time.Time) string {
	return fmt.Sprintf("**%s** | %d players, %d camps | updated %s",
		titleCaser.String(mapName), players, camps, updatedAt.UTC().Format(timestampLayout))
}

func MsgStatusAttached(channelID, lastHash string, lastUpdated time.Time) string {
	updated := "never"
	if !lastUpdated.IsZero() {
		updated = lastUpdated.UTC().Format(timestampLayout)
	}
	hash := "none"
	if lastHash != "" {
		if len(lastHash) > 12 {
			lastHash = lastHash[:12]
		}
		hash = lastHash
	}
	return fmt.Sprintf("Map channel: <#%s>\nLast update: %s\nSnapshot hash: %s", channelID, updated, hash)
}
