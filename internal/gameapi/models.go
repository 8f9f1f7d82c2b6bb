package gameapi

import (
	"encoding/json"
	"fmt"
)

// Player is one record from the player telemetry feed. The feed has gone
// through several server-mod versions that renamed the identifier and name
// fields, so parsing accepts a fixed list of aliases (see UnmarshalJSON).
type Player struct {
	ID     string
	Name   string
	WorldX float64
	WorldY float64
}

// Key returns the identity key used for fingerprinting and membership
// lookups: the id, falling back to the display name when the feed omits it.
func (p Player) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Name
}

// Alias priority is fixed and documented; first present alias wins.
var (
	playerIDAliases   = []string{"id", "player_id", "uid", "steam_id"}
	playerNameAliases = []string{"display_name", "name", "player_name", "nick"}
)

func (p *Player) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.ID = firstStringAlias(raw, playerIDAliases)
	p.Name = firstStringAlias(raw, playerNameAliases)
	if p.ID == "" && p.Name == "" {
		return fmt.Errorf("player record has no identifier (tried %v) and no name (tried %v)",
			playerIDAliases, playerNameAliases)
	}

	// Zero is a legitimate coordinate default: players with no reported
	// position are carried through and skipped at render time.
	p.WorldX = floatField(raw, "location_x")
	p.WorldY = floatField(raw, "location_y")
	return nil
}

func firstStringAlias(raw map[string]json.RawMessage, aliases []string) string {
	for _, key := range aliases {
		msg, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(msg, &s); err == nil && s != "" {
			return s
		}
		// Some feed versions send numeric ids.
		var n json.Number
		if err := json.Unmarshal(msg, &n); err == nil && n.String() != "" {
			return n.String()
		}
	}
	return ""
}

func floatField(raw map[string]json.RawMessage, key string) float64 {
	msg, ok := raw[key]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(msg, &f); err != nil {
		return 0
	}
	return f
}

// Guild is one entry of the guild/camp feed, which arrives as a JSON object
// keyed by guild identifier.
type Guild struct {
	ID        string   `json:"-"`
	Name      string   `json:"name"`
	Admin     string   `json:"admin"`
	Members   []string `json:"members"`
	CampCount int      `json:"camp_count"`
	Camps     []Camp   `json:"camps"`
}

// Camp is a guild camp. MapPos is authoritative when present; camps without
// a valid map position are excluded from rendering but still counted.
type Camp struct {
	ID       string    `json:"id"`
	MapPos   *Position `json:"map_pos"`
	WorldPos *Position `json:"world_pos"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func decodePlayers(data []byte) ([]Player, error) {
	trimmed := firstNonSpace(data)
	switch trimmed {
	case '[':
		var players []Player
		if err := json.Unmarshal(data, &players); err != nil {
			return nil, err
		}
		return players, nil
	case '{':
		var keyed map[string]Player
		if err := json.Unmarshal(data, &keyed); err != nil {
			return nil, err
		}
		players := make([]Player, 0, len(keyed))
		for key, p := range keyed {
			if p.ID == "" {
				p.ID = key
			}
			players = append(players, p)
		}
		return players, nil
	default:
		return nil, fmt.Errorf("player feed is neither a JSON array nor an object")
	}
}

func decodeGuilds(data []byte) ([]Guild, error) {
	var keyed map[string]*Guild
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, err
	}
	guilds := make([]Guild, 0, len(keyed))
	for id, g := range keyed {
		if g == nil {
			continue
		}
		g.ID = id
		guilds = append(guilds, *g)
	}
	return guilds, nil
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b
	}
	return 0
}
