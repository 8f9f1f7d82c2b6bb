package mapview

// WorldPoint is a raw telemetry coordinate in game-world units.
type WorldPoint struct {
	X float64
	Y float64
}

// MapPoint is a coordinate in the map projection's own unit system.
type MapPoint struct {
	X float64
	Y float64
}

// PixelPoint is a raster coordinate in the reference map image's native
// pixel space, prior to output-canvas rescaling.
type PixelPoint struct {
	X float64
	Y float64
}

// Calibration holds the constants of the two chained affine stages. They are
// fit once from known world↔map and map↔pixel coordinate pairs on the
// reference image resolution and treated as configuration.
type Calibration struct {
	// world→map: translate, then swap axes and scale.
	WorldOffsetX float64
	WorldOffsetY float64
	WorldScale   float64

	// map→pixel: independent per-axis linear map.
	PixelScaleX  float64
	PixelOffsetX float64
	PixelScaleY  float64
	PixelOffsetY float64
}

// WorldToMap converts a world coordinate into map units. The game reports
// world positions with the axes swapped relative to the map projection.
func (c Calibration) WorldToMap(w WorldPoint) MapPoint {
	return MapPoint{
		X: (w.Y - c.WorldOffsetY) / c.WorldScale,
		Y: (w.X + c.WorldOffsetX) / c.WorldScale,
	}
}

// MapToPixel converts a map coordinate into the reference image's pixel
// space.
func (c Calibration) MapToPixel(m MapPoint) PixelPoint {
	return PixelPoint{
		X: c.PixelScaleX*m.X + c.PixelOffsetX,
		Y: c.PixelScaleY*m.Y + c.PixelOffsetY,
	}
}

// WorldToPixel is the composition of both stages.
func (c Calibration) WorldToPixel(w WorldPoint) PixelPoint {
	return c.MapToPixel(c.WorldToMap(w))
}
