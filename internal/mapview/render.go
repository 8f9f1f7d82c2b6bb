package mapview

import (
	"bytes"
	"fmt"
	"image"
	"sort"
	"time"

	"camp-map-tracker/internal/metrics"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Player is a renderable player position. GuildID is resolved by the caller
// from the normalized membership map; empty means "no guild".
type Player struct {
	ID      string
	Name    string
	World   WorldPoint
	GuildID string
}

// Camp is a renderable guild camp. Map is the authoritative position; camps
// without one are excluded from compositing but still count in the legend.
type Camp struct {
	ID        string
	GuildID   string
	GuildName string
	Map       *MapPoint
}

const (
	jpegQuality = 85

	// Icon sizes relative to the output canvas.
	campIconDivisor   = 32
	playerIconDivisor = 40
)

// Renderer composites the base map, tinted icons, player labels and the
// guild legend into one JPEG snapshot. Output pixels are a pure function of
// the inputs and the assigned colors.
type Renderer struct {
	calib      Calibration
	baseMap    image.Image
	icons      *IconCache
	outputSize int
}

func NewRenderer(baseMap image.Image, calib Calibration, icons *IconCache, outputSize int) *Renderer {
	return &Renderer{
		calib:      calib,
		baseMap:    baseMap,
		icons:      icons,
		outputSize: outputSize,
	}
}

// LoadBaseMap reads the reference map image from disk.
func LoadBaseMap(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load base map %s: %w", path, err)
	}
	return img, nil
}

func (r *Renderer) Render(players []Player, camps []Camp, colors *ColorTable) ([]byte, error) {
	if r.baseMap == nil {
		return nil, fmt.Errorf("no base map loaded")
	}

	start := time.Now()

	native := r.baseMap.Bounds()
	if native.Dx() == 0 || native.Dy() == 0 {
		return nil, fmt.Errorf("base map has empty bounds")
	}
	scaleX := float64(r.outputSize) / float64(native.Dx())
	scaleY := float64(r.outputSize) / float64(native.Dy())

	dc := gg.NewContext(r.outputSize, r.outputSize)
	dc.DrawImage(imaging.Resize(r.baseMap, r.outputSize, r.outputSize, imaging.Lanczos), 0, 0)

	campSize := r.outputSize / campIconDivisor
	for _, camp := range camps {
		if camp.Map == nil || (camp.Map.X == 0 && camp.Map.Y == 0) {
			continue
		}
		px := r.calib.MapToPixel(*camp.Map)
		x, y := px.X*scaleX, px.Y*scaleY
		icon := r.icons.Tinted(IconCamp, campSize, colors.ColorFor(camp.GuildID))
		dc.DrawImageAnchored(icon, int(x), int(y), 0.5, 0.5)
	}

	playerSize := r.outputSize / playerIconDivisor
	for _, p := range players {
		if p.World.X == 0 && p.World.Y == 0 {
			continue
		}
		px := r.calib.WorldToPixel(p.World)
		x, y := px.X*scaleX, px.Y*scaleY

		hex := NoGuildColor
		if p.GuildID != "" {
			hex = colors.ColorFor(p.GuildID)
		}
		icon := r.icons.Tinted(IconPlayer, playerSize, hex)
		// The icon base, not its center, marks the position.
		dc.DrawImageAnchored(icon, int(x), int(y), 0.5, 1.0)
		r.drawLabel(dc, p.Name, x+float64(playerSize)/2+4, y-float64(playerSize)/2)
	}

	if legend := buildLegend(camps); len(legend) > 0 {
		r.drawLegend(dc, legend, colors)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dc.Image(), imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	metrics.SnapshotsRendered.Inc()
	metrics.RenderDuration.Observe(time.Since(start).Seconds())

	return buf.Bytes(), nil
}

// drawLabel paints a name badge: rounded dark background, white bold text,
// offset to the right of the player icon. Badge width follows the text with
// a minimum floor.
func (r *Renderer) drawLabel(dc *gg.Context, name string, x, y float64) {
	if name == "" {
		return
	}

	fontSize := float64(r.outputSize) / 100
	dc.SetFontFace(fontFace(fontSize, true))

	textW, textH := dc.MeasureString(name)
	padX := fontSize * 0.5
	badgeW := textW + 2*padX
	if minW := fontSize * 3; badgeW < minW {
		badgeW = minW
	}
	badgeH := textH + fontSize*0.6

	dc.SetRGBA(0, 0, 0, 0.72)
	dc.DrawRoundedRectangle(x, y-badgeH/2, badgeW, badgeH, badgeH/4)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(name, x+padX, y, 0, 0.35)
}

type legendEntry struct {
	guildID string
	name    string
	count   int
}

// buildLegend aggregates camp counts per guild, sorted by descending count
// with ties broken by guild name (case-sensitive).
func buildLegend(camps []Camp) []legendEntry {
	byGuild := make(map[string]*legendEntry)
	for _, camp := range camps {
		e, ok := byGuild[camp.GuildID]
		if !ok {
			e = &legendEntry{guildID: camp.GuildID, name: camp.GuildName}
			byGuild[camp.GuildID] = e
		}
		e.count++
	}

	entries := make([]legendEntry, 0, len(byGuild))
	for _, e := range byGuild {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	return entries
}

// drawLegend paints the guild legend panel anchored to the bottom-right
// corner of the canvas.
func (r *Renderer) drawLegend(dc *gg.Context, entries []legendEntry, colors *ColorTable) {
	fontSize := float64(r.outputSize) / 90
	titleFace := fontFace(fontSize*1.1, true)
	rowFace := fontFace(fontSize, false)

	rowH := fontSize * 1.7
	swatch := fontSize
	padding := fontSize

	dc.SetFontFace(rowFace)
	maxRowW := 0.0
	for _, e := range entries {
		w, _ := dc.MeasureString(legendRowText(e))
		if w > maxRowW {
			maxRowW = w
		}
	}
	dc.SetFontFace(titleFace)
	titleW, _ := dc.MeasureString("Camps")
	if titleW > maxRowW {
		maxRowW = titleW
	}

	panelW := padding + swatch + fontSize*0.6 + maxRowW + padding
	panelH := padding + rowH + float64(len(entries))*rowH + padding*0.5
	margin := float64(r.outputSize) / 128
	x0 := float64(r.outputSize) - margin - panelW
	y0 := float64(r.outputSize) - margin - panelH

	dc.SetRGBA(0, 0, 0, 0.66)
	dc.DrawRoundedRectangle(x0, y0, panelW, panelH, fontSize*0.5)
	dc.Fill()

	dc.SetFontFace(titleFace)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored("Camps", x0+padding, y0+padding+fontSize*0.3, 0, 0.5)

	dc.SetFontFace(rowFace)
	for i, e := range entries {
		rowY := y0 + padding + rowH + float64(i)*rowH + rowH/2

		c := ParseHexColor(colors.ColorFor(e.guildID))
		dc.SetRGB255(int(c.R), int(c.G), int(c.B))
		dc.DrawRectangle(x0+padding, rowY-swatch/2, swatch, swatch)
		dc.Fill()

		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(legendRowText(e), x0+padding+swatch+fontSize*0.6, rowY, 0, 0.35)
	}
}

func legendRowText(e legendEntry) string {
	name := e.name
	if name == "" {
		name = e.guildID
	}
	return fmt.Sprintf("%s (%d)", name, e.count)
}
