package mapview

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Canonical tuples for fingerprinting. Missing numerics are zero, missing
// identifiers empty strings; field order is fixed by the struct definitions
// so the JSON encoding is stable.
type canonicalPlayer struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type canonicalCamp struct {
	ID    string  `json:"id"`
	Guild string  `json:"guild"`
	MapX  float64 `json:"map_x"`
	MapY  float64 `json:"map_y"`
}

type canonicalSnapshot struct {
	Players []canonicalPlayer `json:"players"`
	Camps   []canonicalCamp   `json:"camps"`
}

// Fingerprint hashes a canonicalized snapshot. Two snapshots with identical
// logical content hash identically regardless of upstream ordering; the
// orchestrator relies on this to skip redundant renders and edits.
func Fingerprint(players []Player, camps []Camp) string {
	snap := canonicalSnapshot{
		Players: make([]canonicalPlayer, 0, len(players)),
		Camps:   make([]canonicalCamp, 0, len(camps)),
	}

	for _, p := range players {
		key := p.ID
		if key == "" {
			key = p.Name
		}
		snap.Players = append(snap.Players, canonicalPlayer{
			ID:   key,
			Name: p.Name,
			X:    p.World.X,
			Y:    p.World.Y,
		})
	}
	sort.Slice(snap.Players, func(i, j int) bool {
		return snap.Players[i].ID < snap.Players[j].ID
	})

	for _, c := range camps {
		cc := canonicalCamp{ID: c.ID, Guild: c.GuildID}
		if c.Map != nil {
			cc.MapX = c.Map.X
			cc.MapY = c.Map.Y
		}
		snap.Camps = append(snap.Camps, cc)
	}
	sort.Slice(snap.Camps, func(i, j int) bool {
		return snap.Camps[i].ID < snap.Camps[j].ID
	})

	encoded, err := json.Marshal(snap)
	if err != nil {
		// Canonical structs of strings and floats cannot fail to encode;
		// guard anyway so a change here surfaces loudly.
		return ""
	}

	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}
