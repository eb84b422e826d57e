package service

import "github.com/smartcity/lowemission/internal/domain"

// Time-invariant styles, applied once when a feature is drawn
var staticStyles = map[domain.Category]domain.Style{
	domain.CategorySchool: {
		Color:       "#FF4444",
		Weight:      2,
		FillColor:   "#FF8888",
		FillOpacity: 0.6,
	},
	domain.CategoryBuffer: {
		Color:       "#FFAA00",
		Weight:      2,
		FillColor:   "#FFD700",
		FillOpacity: 0.4,
		DashArray:   "5, 5",
	},
	domain.CategoryRoad: {
		Color:   "#00AA00",
		Weight:  3,
		Opacity: 0.7,
	},
}

var (
	closedRoadOpen = domain.Style{
		Color:     "#CC0000",
		Weight:    4,
		Opacity:   0.6,
		DashArray: "10, 5",
	}
	closedRoadRestricted = domain.Style{
		Color:     "#CC0000",
		Weight:    6,
		Opacity:   1.0,
		DashArray: "10, 5",
	}
	fallbackStyle = domain.Style{
		Color:   "#00AA00",
		Weight:  2,
		Opacity: 0.6,
	}
)

// BaseLayerStyle is used for every geometry of the OSM base layer
var BaseLayerStyle = domain.Style{
	Color:   "#3388ff",
	Weight:  2,
	Opacity: 0.6,
}

// StyleFor returns the style of a category under a regime.
// Only closed roads depend on the regime.
func StyleFor(category domain.Category, regime domain.Regime) domain.Style {
	if category == domain.CategoryClosedRoad {
		if regime != domain.RegimeNormal {
			return closedRoadRestricted
		}
		return closedRoadOpen
	}
	if s, ok := staticStyles[category]; ok {
		return s
	}
	return fallbackStyle
}
