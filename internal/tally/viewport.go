package tally

import (
	"math"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// DefaultCenter is used when no brewery has coordinates.
var DefaultCenter = domain.LatLng{Lat: 37.7749, Lng: -122.4194}

const (
	// DefaultZoom is the zoom level paired with DefaultCenter.
	DefaultZoom = 11

	minZoom = 3
	maxZoom = 15
)

// ComputeViewport fits the map around every mappable brewery.
// The zoom is the largest tile zoom at which the wider of the two spans still
// fits in one 360° world width, clamped to [minZoom, maxZoom].
func ComputeViewport(breweries []domain.Brewery) domain.Viewport {
	markers := make([]domain.Brewery, 0, len(breweries))
	for _, b := range breweries {
		if b.Mappable() {
			markers = append(markers, b)
		}
	}

	if len(markers) == 0 {
		return domain.Viewport{Center: DefaultCenter, Zoom: DefaultZoom, Markers: markers}
	}

	sw := domain.LatLng{Lat: *markers[0].Lat, Lng: *markers[0].Lng}
	ne := sw
	for _, m := range markers[1:] {
		sw.Lat = math.Min(sw.Lat, *m.Lat)
		sw.Lng = math.Min(sw.Lng, *m.Lng)
		ne.Lat = math.Max(ne.Lat, *m.Lat)
		ne.Lng = math.Max(ne.Lng, *m.Lng)
	}

	return domain.Viewport{
		Center:  domain.LatLng{Lat: (sw.Lat + ne.Lat) / 2, Lng: (sw.Lng + ne.Lng) / 2},
		Zoom:    zoomFor(math.Max(ne.Lat-sw.Lat, ne.Lng-sw.Lng)),
		Bounds:  &domain.Bounds{SouthWest: sw, NorthEast: ne},
		Markers: markers,
	}
}

func zoomFor(span float64) int {
	if span <= 0 {
		return maxZoom
	}
	z := int(math.Floor(math.Log2(360 / span)))
	return max(minZoom, min(maxZoom, z))
}
