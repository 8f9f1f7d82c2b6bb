package gameapi

import "strings"

// NormalizeID canonicalizes a player identifier for cross-referencing the
// two telemetry feeds. The player feed reports hyphen-delimited mixed-case
// ids ("A1B2-C3D4-E5F6") while the guild membership lists use a compact
// lowercase form ("a1b2c3d4e5f6"); both collapse to the same canonical form.
func NormalizeID(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range strings.ToLower(id) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
