package domain

// Style describes how a geometry is drawn on the map.
// Field names follow the Leaflet path options the map client consumes.
type Style struct {
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
	Opacity     float64 `json:"opacity,omitempty"`
	FillColor   string  `json:"fillColor,omitempty"`
	FillOpacity float64 `json:"fillOpacity,omitempty"`
	DashArray   string  `json:"dashArray,omitempty"`
}
