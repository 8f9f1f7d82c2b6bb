package mapview

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"sync"
)

// Palette is the fixed set of guild display colors, in assignment order.
// First unused entry wins; once every entry is taken new guilds get a random
// palette color, which may collide with an existing guild's color.
var Palette = []string{
	"#e6194b", // red
	"#3cb44b", // green
	"#4363d8", // blue
	"#f58231", // orange
	"#911eb4", // purple
	"#42d4f4", // cyan
	"#f032e6", // magenta
	"#bfef45", // lime
	"#fabed4", // pink
	"#469990", // teal
	"#dcbeff", // lavender
	"#9a6324", // brown
	"#fffac8", // beige
	"#800000", // maroon
	"#aaffc3", // mint
	"#ffd8b1", // apricot
}

// NoGuildColor marks players whose guild cannot be resolved.
const NoGuildColor = "#9e9e9e"

// ColorStore is the persistence boundary for guild color assignments. It is
// backed by the same store as channel bindings.
type ColorStore interface {
	GuildColors() (map[string]string, error)
	PutGuildColor(guildID, colorHex string) error
}

// ColorTable assigns each guild a stable display color. Assignments are
// persisted immediately so concurrent and subsequent lookups observe them.
type ColorTable struct {
	mu     sync.Mutex
	colors map[string]string
	store  ColorStore
}

func NewColorTable(store ColorStore) (*ColorTable, error) {
	colors, err := store.GuildColors()
	if err != nil {
		return nil, fmt.Errorf("failed to load guild colors: %w", err)
	}
	if colors == nil {
		colors = make(map[string]string)
	}
	return &ColorTable{colors: colors, store: store}, nil
}

// ColorFor returns the guild's assigned color, assigning and persisting one
// on first sight. A guild's color never changes once set.
func (t *ColorTable) ColorFor(guildID string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if hex, ok := t.colors[guildID]; ok {
		return hex
	}

	hex := t.pickUnusedLocked()
	t.colors[guildID] = hex
	if err := t.store.PutGuildColor(guildID, hex); err != nil {
		slog.Error("Failed to persist guild color", "guild_id", guildID, "color", hex, "error", err)
	}
	return hex
}

func (t *ColorTable) pickUnusedLocked() string {
	used := make(map[string]bool, len(t.colors))
	for _, hex := range t.colors {
		used[hex] = true
	}
	for _, hex := range Palette {
		if !used[hex] {
			return hex
		}
	}
	// Palette exhausted: random pick, collisions accepted.
	return Palette[rand.Intn(len(Palette))]
}

// ParseHexColor converts "#rrggbb" into an opaque color. Malformed input
// yields the no-guild gray rather than an error; colors here are cosmetic.
func ParseHexColor(hex string) color.NRGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
