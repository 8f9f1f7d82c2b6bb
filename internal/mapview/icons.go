package mapview

import (
	"image"
	"image/color"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// IconRole identifies a base icon asset.
type IconRole string

const (
	IconCamp   IconRole = "camp"
	IconPlayer IconRole = "player"
)

type iconKey struct {
	role IconRole
	size int
	hex  string
}

// IconCache memoizes tinted icon rasters by (role, size, color) for the
// process lifetime. Icons and the palette are immutable after startup, so
// entries are never invalidated and memory stays bounded by the number of
// colors actually observed.
type IconCache struct {
	dir string

	mu     sync.Mutex
	base   map[IconRole]image.Image
	tinted map[iconKey]*image.NRGBA
	misses int
}

// NewIconCache loads base icons lazily from dir ("<role>.png"). Roles with
// no asset on disk get a drawn fallback shape, so the bot renders without
// shipped artwork.
func NewIconCache(dir string) *IconCache {
	return &IconCache{
		dir:    dir,
		base:   make(map[IconRole]image.Image),
		tinted: make(map[iconKey]*image.NRGBA),
	}
}

// Tinted returns the role's icon resized to size pixels and tinted with the
// given palette color. Hits return the stored raster with no recomputation.
func (c *IconCache) Tinted(role IconRole, size int, colorHex string) *image.NRGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := iconKey{role: role, size: size, hex: colorHex}
	if img, ok := c.tinted[key]; ok {
		return img
	}

	c.misses++
	base := c.baseLocked(role)
	// Nearest neighbor keeps pixel-art icon edges sharp.
	resized := imaging.Resize(base, size, size, imaging.NearestNeighbor)
	tinted := tint(resized, ParseHexColor(colorHex))
	c.tinted[key] = tinted
	return tinted
}

// Misses reports how many cache misses (decode/resize/tint computations)
// have occurred. Instrumentation point for tests.
func (c *IconCache) Misses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses
}

func (c *IconCache) baseLocked(role IconRole) image.Image {
	if img, ok := c.base[role]; ok {
		return img
	}

	img, err := imaging.Open(filepath.Join(c.dir, string(role)+".png"))
	if err != nil {
		img = fallbackIcon(role)
	}
	c.base[role] = img
	return img
}

// tint multiplies every pixel's RGB channels by the target color, preserving
// alpha. Base icons are drawn in white so the tint becomes the icon color.
func tint(src *image.NRGBA, c color.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := src.PixOffset(x, y)
			dst.Pix[i+0] = uint8(uint16(src.Pix[i+0]) * uint16(c.R) / 255)
			dst.Pix[i+1] = uint8(uint16(src.Pix[i+1]) * uint16(c.G) / 255)
			dst.Pix[i+2] = uint8(uint16(src.Pix[i+2]) * uint16(c.B) / 255)
			dst.Pix[i+3] = src.Pix[i+3]
		}
	}
	return dst
}

// fallbackIcon draws a simple white glyph for the role at a fixed base
// resolution: a tent outline for camps, a filled position marker for
// players.
func fallbackIcon(role IconRole) image.Image {
	const s = 64
	dc := gg.NewContext(s, s)
	dc.SetRGBA(1, 1, 1, 1)

	switch role {
	case IconCamp:
		// Tent silhouette.
		dc.MoveTo(s/2, 6)
		dc.LineTo(s-4, s-6)
		dc.LineTo(4, s-6)
		dc.ClosePath()
		dc.Fill()
	default:
		// Marker: disc on a stem, base at the bottom edge.
		dc.DrawCircle(s/2, s/2-8, 18)
		dc.Fill()
		dc.DrawRectangle(s/2-3, s/2, 6, s/2-2)
		dc.Fill()
	}

	return dc.Image()
}
