package tracker

import (
	"fmt"
	"sync"

	"camp-map-tracker/internal/gameapi"
	"camp-map-tracker/internal/mapview"
)

// snapshot is one cycle's view of the world: positions, the content hash,
// and a lazily rendered image shared by every binding published this cycle.
type snapshot struct {
	players []mapview.Player
	camps   []mapview.Camp
	hash    string

	renderOnce sync.Once
	image      []byte
	renderErr  error
}

// Image renders the snapshot at most once per cycle. Every binding that
// needs the image this cycle gets the same bytes.
func (s *snapshot) Image(r SnapshotRenderer, colors *mapview.ColorTable) ([]byte, error) {
	s.renderOnce.Do(func() {
		s.image, s.renderErr = r.Render(s.players, s.camps, colors)
	})
	return s.image, s.renderErr
}

// buildSnapshot fetches both telemetry feeds once and resolves players to
// guilds through normalized identifier matching.
func (s *Service) buildSnapshot() (*snapshot, error) {
	apiPlayers, err := s.telemetry.GetPlayers()
	if err != nil {
		return nil, fmt.Errorf("player feed unavailable: %w", err)
	}
	guilds, err := s.telemetry.GetGuilds()
	if err != nil {
		return nil, fmt.Errorf("guild feed unavailable: %w", err)
	}

	membership := buildMembership(guilds)

	players := make([]mapview.Player, 0, len(apiPlayers))
	for _, p := range apiPlayers {
		players = append(players, mapview.Player{
			ID:      p.ID,
			Name:    p.Name,
			World:   mapview.WorldPoint{X: p.WorldX, Y: p.WorldY},
			GuildID: resolveGuild(membership, p),
		})
	}

	var camps []mapview.Camp
	for _, g := range guilds {
		for _, c := range g.Camps {
			camps = append(camps, mapview.Camp{
				ID:        c.ID,
				GuildID:   g.ID,
				GuildName: g.Name,
				Map:       s.campPosition(c),
			})
		}
	}

	return &snapshot{
		players: players,
		camps:   camps,
		hash:    mapview.Fingerprint(players, camps),
	}, nil
}

// campPosition prefers the feed's map position; camps reporting only a world
// position are projected through the calibration instead.
func (s *Service) campPosition(c gameapi.Camp) *mapview.MapPoint {
	if c.MapPos != nil {
		return &mapview.MapPoint{X: c.MapPos.X, Y: c.MapPos.Y}
	}
	if c.WorldPos != nil {
		m := s.calib.WorldToMap(mapview.WorldPoint{X: c.WorldPos.X, Y: c.WorldPos.Y})
		return &m
	}
	return nil
}

// buildMembership maps normalized member identifiers to guild ids. Member
// lists mix ids and display names across feed versions, so both forms of a
// player are looked up against it.
func buildMembership(guilds []gameapi.Guild) map[string]string {
	membership := make(map[string]string)
	for _, g := range guilds {
		for _, member := range g.Members {
			key := gameapi.NormalizeID(member)
			if key == "" {
				continue
			}
			membership[key] = g.ID
		}
		if g.Admin != "" {
			if key := gameapi.NormalizeID(g.Admin); key != "" {
				membership[key] = g.ID
			}
		}
	}
	return membership
}

func resolveGuild(membership map[string]string, p gameapi.Player) string {
	if p.ID != "" {
		if guildID, ok := membership[gameapi.NormalizeID(p.ID)]; ok {
			return guildID
		}
	}
	if p.Name != "" {
		if guildID, ok := membership[gameapi.NormalizeID(p.Name)]; ok {
			return guildID
		}
	}
	return ""
}
