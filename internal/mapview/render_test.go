package mapview

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

// identityCalibration swaps world axes straight into pixels: the pixel
// position of world (wx, wy) is (wy, wx). Keeps expected coordinates
// readable in tests.
func identityCalibration() Calibration {
	return Calibration{
		WorldScale:  1,
		PixelScaleX: 1,
		PixelScaleY: 1,
	}
}

func testBaseMap(size int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
		}
	}
	return img
}

func testRenderer(t *testing.T, outputSize int) (*Renderer, *ColorTable) {
	t.Helper()

	colors, err := NewColorTable(newMockColorStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	icons := NewIconCache(t.TempDir())
	return NewRenderer(testBaseMap(256), identityCalibration(), icons, outputSize), colors
}

func decodeSnapshot(t *testing.T, data []byte) image.Image {
	t.Helper()

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	return img
}

// maxBrightness scans a 5x5 window around (x, y) and returns the largest
// R+G+B sum, tolerating the 1px placement slack of integer anchoring.
func maxBrightness(img image.Image, x, y int) int {
	best := 0
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			r, g, b, _ := img.At(x+dx, y+dy).RGBA()
			sum := int(r>>8) + int(g>>8) + int(b>>8)
			if sum > best {
				best = sum
			}
		}
	}
	return best
}

func TestRenderer_Render_ProducesJPEG(t *testing.T) {
	r, colors := testRenderer(t, 512)

	data, err := r.Render(nil, nil, colors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty output")
	}
	if data[0] != 0xff || data[1] != 0xd8 {
		t.Error("output does not start with the JPEG marker")
	}

	img := decodeSnapshot(t, data)
	if img.Bounds().Dx() != 512 || img.Bounds().Dy() != 512 {
		t.Errorf("expected 512x512 output, got %v", img.Bounds())
	}
}

func TestRenderer_Render_PlacesCampAtProjectedPosition(t *testing.T) {
	r, colors := testRenderer(t, 512)

	camps := []Camp{
		{ID: "c1", GuildID: "g1", GuildName: "North", Map: &MapPoint{X: 128, Y: 128}},
	}
	data, err := r.Render(nil, camps, colors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img := decodeSnapshot(t, data)

	// Map (128, 128) on a 256px base scaled to 512px lands at canvas
	// (256, 256), where the tinted tent should be much brighter than the
	// near-black base map.
	if got := maxBrightness(img, 256, 256); got < 150 {
		t.Errorf("expected camp icon at (256,256), brightest window sum %d", got)
	}
	if got := maxBrightness(img, 50, 50); got > 90 {
		t.Errorf("expected empty map region to stay dark, got %d", got)
	}
}

func TestRenderer_Render_PlacesPlayerAtProjectedPosition(t *testing.T) {
	r, colors := testRenderer(t, 512)

	players := []Player{
		{ID: "p1", Name: "Alice", World: WorldPoint{X: 60, Y: 200}, GuildID: "g1"},
	}
	data, err := r.Render(players, nil, colors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img := decodeSnapshot(t, data)

	// World (60, 200) projects to pixel (200, 60), canvas (400, 120). The
	// marker is anchored by its base, so the disc sits a few pixels above.
	if got := maxBrightness(img, 400, 112); got < 150 {
		t.Errorf("expected player marker above (400,120), brightest window sum %d", got)
	}
}

func TestRenderer_Render_SkipsCampsWithoutPosition(t *testing.T) {
	r, colors := testRenderer(t, 512)

	nilPos, err := r.Render(nil, []Camp{{ID: "c1", GuildID: "g1", GuildName: "North"}}, colors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	zeroPos, err := r.Render(nil, []Camp{{ID: "c1", GuildID: "g1", GuildName: "North", Map: &MapPoint{}}}, colors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(nilPos, zeroPos) {
		t.Error("camps with missing and zero positions should render identically")
	}
}

func TestRenderer_Render_SkipsPlayersAtOrigin(t *testing.T) {
	r, colors := testRenderer(t, 512)

	empty, err := r.Render(nil, nil, colors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	origin, err := r.Render([]Player{{ID: "p1", Name: "Ghost"}}, nil, colors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(empty, origin) {
		t.Error("players without coordinates should not be composited")
	}
}

func TestRenderer_Render_Deterministic(t *testing.T) {
	r, colors := testRenderer(t, 512)

	players := []Player{{ID: "p1", Name: "Alice", World: WorldPoint{X: 60, Y: 200}, GuildID: "g1"}}
	camps := []Camp{{ID: "c1", GuildID: "g1", GuildName: "North", Map: &MapPoint{X: 128, Y: 128}}}

	first, err := r.Render(players, camps, colors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Render(players, camps, colors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("identical inputs should produce identical snapshots")
	}
}

func TestRenderer_Render_NoBaseMap(t *testing.T) {
	colors, err := NewColorTable(newMockColorStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := NewRenderer(nil, identityCalibration(), NewIconCache(t.TempDir()), 512)

	if _, err := r.Render(nil, nil, colors); err == nil {
		t.Error("expected error when no base map is loaded")
	}
}

func TestBuildLegend_Ordering(t *testing.T) {
	camps := []Camp{
		{ID: "c1", GuildID: "g1", GuildName: "North"},
		{ID: "c2", GuildID: "g2", GuildName: "South"},
		{ID: "c3", GuildID: "g2", GuildName: "South"},
		{ID: "c4", GuildID: "g3", GuildName: "East"},
	}

	entries := buildLegend(camps)
	if len(entries) != 3 {
		t.Fatalf("expected 3 legend entries, got %d", len(entries))
	}

	// Counts descending, names ascending on ties.
	if entries[0].name != "South" || entries[0].count != 2 {
		t.Errorf("expected South (2) first, got %s (%d)", entries[0].name, entries[0].count)
	}
	if entries[1].name != "East" || entries[2].name != "North" {
		t.Errorf("expected tie broken by name, got %s then %s", entries[1].name, entries[2].name)
	}
}
