package domain

import "github.com/paulmach/orb"

// Category is the semantic class a loaded feature is assigned to
type Category string

const (
	CategorySchool     Category = "school"
	CategoryBuffer     Category = "buffer"
	CategoryClosedRoad Category = "closed_road"
	CategoryRoad       Category = "road" // road, highway and open_road
)

// Categories lists every category in render order
var Categories = []Category{CategorySchool, CategoryBuffer, CategoryClosedRoad, CategoryRoad}

// Layer names on the render surface. Classified features go to the layer
// named after their category; the OSM base layer is never classified.
const (
	LayerSchool     = string(CategorySchool)
	LayerBuffer     = string(CategoryBuffer)
	LayerClosedRoad = string(CategoryClosedRoad)
	LayerRoad       = string(CategoryRoad)
	LayerOSM        = "osm"
)

// Layers lists every named layer in the order the map stacks them
var Layers = []string{LayerSchool, LayerBuffer, LayerClosedRoad, LayerRoad, LayerOSM}

// GeoFeature is a classified geometry with its optional attributes.
// It is immutable after load.
type GeoFeature struct {
	ID        string       `json:"id"`
	Category  Category     `json:"category"`
	LayerType string       `json:"layer_type"`
	Name      string       `json:"name,omitempty"`
	Length    float64      `json:"length,omitempty"` // meters
	Area      float64      `json:"area,omitempty"`   // square meters
	Geometry  orb.Geometry `json:"-"`
}

// Layer returns the surface layer the feature is drawn on
func (f GeoFeature) Layer() string {
	if f.Category == "" {
		return LayerOSM
	}
	return string(f.Category)
}

// CategoryCounts holds the number of classified features per category.
// Built once at load time and never mutated afterwards.
type CategoryCounts map[Category]int

// Get returns the count for a category, zero when absent
func (c CategoryCounts) Get(cat Category) int {
	return c[cat]
}

// Total returns the number of classified features
func (c CategoryCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
