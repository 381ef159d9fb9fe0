package domain

// LatLng is a single map coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is the rectangle enclosing a set of coordinates.
type Bounds struct {
	SouthWest LatLng `json:"southWest"`
	NorthEast LatLng `json:"northEast"`
}

// Viewport is the initial map position for a set of breweries.
// Bounds is nil when no brewery could be placed on the map.
type Viewport struct {
	Center  LatLng    `json:"center"`
	Zoom    int       `json:"zoom"`
	Bounds  *Bounds   `json:"bounds,omitempty"`
	Markers []Brewery `json:"markers"`
}
