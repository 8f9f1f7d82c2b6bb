package formatting

import (
	"testing"
	"time"
)

func TestMsgAttachSuccess(t *testing.T) {
	got := MsgAttachSuccess("123456")
	expected := "Camp map attached to <#123456>. The first snapshot is on the way."
	if got != expected {
		t.Errorf("Expected '%s', got '%s'", expected, got)
	}
}

func TestMsgSnapshot(t *testing.T) {
	at := time.Date(2026, 8, 23, 14, 5, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mapName  string
		players  int
		camps    int
		expected string
	}{
		{
			name:     "title cases the map name",
			mapName:  "northern reach",
			players:  12,
			camps:    5,
			expected: "**Northern Reach** | 12 players, 5 camps | updated 2026-08-23 14:05 UTC",
		},
		{
			name:     "empty world",
			mapName:  "Karakand",
			players:  0,
			camps:    0,
			expected: "**Karakand** | 0 players, 0 camps | updated 2026-08-23 14:05 UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MsgSnapshot(tt.mapName, tt.players, tt.camps, at); got != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestMsgSnapshot_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	at := time.Date(2026, 8, 23, 16, 5, 0, 0, loc)

	got := MsgSnapshot("Karakand", 1, 1, at)
	expected := "**Karakand** | 1 players, 1 camps | updated 2026-08-23 14:05 UTC"
	if got != expected {
		t.Errorf("Expected '%s', got '%s'", expected, got)
	}
}

func TestMsgStatusAttached(t *testing.T) {
	tests := []struct {
		name        string
		channelID   string
		lastHash    string
		lastUpdated time.Time
		expected    string
	}{
		{
			name:        "never updated",
			channelID:   "123",
			lastHash:    "",
			lastUpdated: time.Time{},
			expected:    "Map channel: <#123>\nLast update: never\nSnapshot hash: none",
		},
		{
			name:        "updated with truncated hash",
			channelID:   "123",
			lastHash:    "abcdef0123456789abcdef",
			lastUpdated: time.Date(2026, 8, 23, 14, 5, 0, 0, time.UTC),
			expected:    "Map channel: <#123>\nLast update: 2026-08-23 14:05 UTC\nSnapshot hash: abcdef012345",
		},
		{
			name:        "short hash kept whole",
			channelID:   "123",
			lastHash:    "abc",
			lastUpdated: time.Date(2026, 8, 23, 14, 5, 0, 0, time.UTC),
			expected:    "Map channel: <#123>\nLast update: 2026-08-23 14:05 UTC\nSnapshot hash: abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MsgStatusAttached(tt.channelID, tt.lastHash, tt.lastUpdated); got != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}
