package coordsys

import "math"

const webMercatorExtent = 2 * 20037508.342789244

var defaultMercatorResolver = MercatorResolver{
	Extent:   webMercatorExtent,
	TileSize: 256,
}

// A MercatorResolver implements the standard pyramid where each zoom level
// halves the resolution of the previous one.
type MercatorResolver struct {
	Extent   float64 // Width of the world in native units.
	TileSize int     // Tile size in pixels.
}

func (r MercatorResolver) ResolutionForZoom(zoom float64) float64 {
	return r.Extent / float64(r.TileSize) / math.Pow(2, zoom)
}

func (r MercatorResolver) ZoomForResolution(resolution float64) float64 {
	return math.Log2(r.Extent / float64(r.TileSize) / resolution)
}

// A TableResolver maps zoom levels onto a fixed table of resolutions, ordered
// from coarsest to finest. Zoom level i is Resolutions[i].
type TableResolver struct {
	Resolutions []float64
}

// ResolutionForZoom returns the resolution of the zoom level nearest to zoom,
// clamped to the table.
func (r TableResolver) ResolutionForZoom(zoom float64) float64 {
	if len(r.Resolutions) == 0 {
		return math.NaN()
	}
	index := int(math.Round(zoom))
	index = min(max(index, 0), len(r.Resolutions)-1)
	return r.Resolutions[index]
}

// ZoomForResolution returns the zoom level whose resolution is nearest to
// resolution.
func (r TableResolver) ZoomForResolution(resolution float64) float64 {
	if len(r.Resolutions) == 0 {
		return math.NaN()
	}
	nearestIndex := 0
	nearestDelta := math.Inf(1)
	for i, tableResolution := range r.Resolutions {
		if delta := math.Abs(tableResolution - resolution); delta < nearestDelta {
			nearestIndex = i
			nearestDelta = delta
		}
	}
	return float64(nearestIndex)
}
