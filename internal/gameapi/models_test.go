package gameapi

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPlayer_UnmarshalJSON_AliasPriority(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		wantID   string
		wantName string
	}{
		{
			name:   "id wins over player_id",
			json:   `{"id": "first", "player_id": "second", "name": "x"}`,
			wantID: "first",
		},
		{
			name:   "player_id wins over uid",
			json:   `{"player_id": "second", "uid": "third", "name": "x"}`,
			wantID: "second",
		},
		{
			name:   "steam_id is last resort",
			json:   `{"steam_id": "fourth", "name": "x"}`,
			wantID: "fourth",
		},
		{
			name:     "display_name wins over name",
			json:     `{"id": "p", "display_name": "Display", "name": "Plain"}`,
			wantID:   "p",
			wantName: "Display",
		},
		{
			name:     "nick is last name alias",
			json:     `{"id": "p", "nick": "Nick"}`,
			wantID:   "p",
			wantName: "Nick",
		},
		{
			name:   "numeric id accepted",
			json:   `{"id": 76561198000000000, "name": "x"}`,
			wantID: "76561198000000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Player
			if err := json.Unmarshal([]byte(tt.json), &p); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ID != tt.wantID {
				t.Errorf("expected id %q, got %q", tt.wantID, p.ID)
			}
			if tt.wantName != "" && p.Name != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, p.Name)
			}
		})
	}
}

func TestPlayer_UnmarshalJSON_NoIdentifier(t *testing.T) {
	var p Player
	err := json.Unmarshal([]byte(`{"location_x": 10, "location_y": 20}`), &p)
	if err == nil {
		t.Fatal("expected error for record with no identifier and no name")
	}
	if !strings.Contains(err.Error(), "no identifier") {
		t.Errorf("expected identifier error, got: %v", err)
	}
}

func TestPlayer_UnmarshalJSON_NameOnlyFallback(t *testing.T) {
	var p Player
	if err := json.Unmarshal([]byte(`{"name": "Rook"}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Key() != "Rook" {
		t.Errorf("expected identity key to fall back to name, got %q", p.Key())
	}
}

func TestPlayer_UnmarshalJSON_MissingCoordinates(t *testing.T) {
	var p Player
	if err := json.Unmarshal([]byte(`{"id": "p1", "name": "Rook"}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.WorldX != 0 || p.WorldY != 0 {
		t.Errorf("expected missing coordinates to default to zero, got (%v, %v)", p.WorldX, p.WorldY)
	}
}

func TestDecodePlayers_BadShape(t *testing.T) {
	_, err := decodePlayers([]byte(`"just a string"`))
	if err == nil {
		t.Fatal("expected error for non-array, non-object feed")
	}
}

func TestDecodeGuilds_NullEntrySkipped(t *testing.T) {
	guilds, err := decodeGuilds([]byte(`{"g1": null, "g2": {"name": "Watch"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(guilds) != 1 {
		t.Fatalf("expected null guild entry to be skipped, got %d guilds", len(guilds))
	}
	if guilds[0].ID != "g2" {
		t.Errorf("expected surviving guild g2, got %q", guilds[0].ID)
	}
}
