package mapview

import "testing"

func fingerprintFixture() ([]Player, []Camp) {
	players := []Player{
		{ID: "p1", Name: "Alice", World: WorldPoint{X: 100, Y: 200}},
		{ID: "p2", Name: "Bob", World: WorldPoint{X: -50, Y: 75}},
	}
	camps := []Camp{
		{ID: "c1", GuildID: "g1", GuildName: "North", Map: &MapPoint{X: 10, Y: 20}},
		{ID: "c2", GuildID: "g2", GuildName: "South", Map: &MapPoint{X: 30, Y: 40}},
	}
	return players, camps
}

func TestFingerprint_OrderInvariant(t *testing.T) {
	players, camps := fingerprintFixture()
	original := Fingerprint(players, camps)

	reversedPlayers := []Player{players[1], players[0]}
	reversedCamps := []Camp{camps[1], camps[0]}

	if got := Fingerprint(reversedPlayers, reversedCamps); got != original {
		t.Errorf("reordered snapshot fingerprint %q differs from %q", got, original)
	}
}

func TestFingerprint_SensitiveToContent(t *testing.T) {
	players, camps := fingerprintFixture()
	original := Fingerprint(players, camps)

	tests := []struct {
		name   string
		mutate func(ps []Player, cs []Camp)
	}{
		{"player moved", func(ps []Player, cs []Camp) { ps[0].World.X += 1 }},
		{"player renamed", func(ps []Player, cs []Camp) { ps[0].Name = "Alicia" }},
		{"camp moved", func(ps []Player, cs []Camp) { cs[0].Map = &MapPoint{X: 11, Y: 20} }},
		{"camp reassigned", func(ps []Player, cs []Camp) { cs[0].GuildID = "g3" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, cs := fingerprintFixture()
			tt.mutate(ps, cs)
			if got := Fingerprint(ps, cs); got == original {
				t.Error("expected fingerprint to change")
			}
		})
	}
}

func TestFingerprint_MissingCampPositionIsZero(t *testing.T) {
	withNil := Fingerprint(nil, []Camp{{ID: "c1", GuildID: "g1"}})
	withZero := Fingerprint(nil, []Camp{{ID: "c1", GuildID: "g1", Map: &MapPoint{}}})

	if withNil != withZero {
		t.Errorf("nil position %q should hash like a zero position %q", withNil, withZero)
	}
}

func TestFingerprint_PlayersWithoutIDSortByName(t *testing.T) {
	a := []Player{
		{Name: "Alice", World: WorldPoint{X: 1, Y: 2}},
		{Name: "Bob", World: WorldPoint{X: 3, Y: 4}},
	}
	b := []Player{a[1], a[0]}

	if Fingerprint(a, nil) != Fingerprint(b, nil) {
		t.Error("players without IDs should fingerprint order-independently by name")
	}
}

func TestFingerprint_EmptySnapshotsMatch(t *testing.T) {
	if Fingerprint(nil, nil) != Fingerprint([]Player{}, []Camp{}) {
		t.Error("nil and empty snapshots should hash identically")
	}
}
