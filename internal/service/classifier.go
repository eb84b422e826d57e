package service

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	log "github.com/sirupsen/logrus"

	"github.com/smartcity/lowemission/internal/domain"
)

// categoryByLayerType maps the raw layer_type tag to its category.
// Adding a category is a new row here, nothing else.
var categoryByLayerType = map[string]domain.Category{
	"school":      domain.CategorySchool,
	"buffer":      domain.CategoryBuffer,
	"closed_road": domain.CategoryClosedRoad,
	"road":        domain.CategoryRoad,
	"highway":     domain.CategoryRoad,
	"open_road":   domain.CategoryRoad,
}

// CategoryOf returns the category for a raw layer_type tag
func CategoryOf(layerType string) (domain.Category, bool) {
	c, ok := categoryByLayerType[layerType]
	return c, ok
}

// Classification is the result of a single classifier pass
type Classification struct {
	Features []domain.GeoFeature
	Counts   domain.CategoryCounts
	Skipped  int
}

// Classify assigns every feature of the collection to a category and counts
// them. Features with an unknown layer_type or no geometry are skipped
// silently. The returned counts are complete; nothing observes them mid-pass.
func Classify(fc *geojson.FeatureCollection) Classification {
	result := Classification{Counts: make(domain.CategoryCounts)}
	if fc == nil {
		return result
	}

	result.Features = make([]domain.GeoFeature, 0, len(fc.Features))
	seen := make(map[string]bool, len(fc.Features))

	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			result.Skipped++
			continue
		}

		layerType := stringProp(f.Properties, "layer_type")
		category, ok := CategoryOf(layerType)
		if !ok {
			log.WithFields(log.Fields{"index": i, "layer_type": layerType}).Debug("Skipping unclassified feature")
			result.Skipped++
			continue
		}

		id := featureID(f, i)
		if seen[id] {
			id = uniqueID(fmt.Sprintf("feature-%d", i), func(s string) bool { return seen[s] })
		}
		seen[id] = true

		result.Features = append(result.Features, domain.GeoFeature{
			ID:        id,
			Category:  category,
			LayerType: layerType,
			Name:      stringProp(f.Properties, "name"),
			Length:    lengthOf(f),
			Area:      areaOf(f),
			Geometry:  f.Geometry,
		})
		result.Counts[category]++
	}

	if result.Counts.Get(domain.CategoryClosedRoad) > result.Counts.Get(domain.CategoryRoad) {
		log.WithFields(log.Fields{
			"closed_road": result.Counts.Get(domain.CategoryClosedRoad),
			"road":        result.Counts.Get(domain.CategoryRoad),
		}).Warn("More closed roads than roads in feature data, open road count will be clamped")
	}

	return result
}

// BaseFeatures converts the OSM base layer collection without classifying it
func BaseFeatures(fc *geojson.FeatureCollection) []domain.GeoFeature {
	if fc == nil {
		return nil
	}

	features := make([]domain.GeoFeature, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		features = append(features, domain.GeoFeature{
			ID:        fmt.Sprintf("osm-%d", i),
			LayerType: domain.LayerOSM,
			Name:      stringProp(f.Properties, "name"),
			Geometry:  f.Geometry,
		})
	}
	return features
}

func featureID(f *geojson.Feature, index int) string {
	switch id := f.ID.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return fmt.Sprintf("%.0f", id)
	case int:
		return fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("feature-%d", index)
}

// uniqueID returns id, or the first of id-2, id-3, ... that is not taken
func uniqueID(id string, taken func(string) bool) string {
	candidate := id
	for n := 2; taken(candidate); n++ {
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
	return candidate
}

// lengthOf prefers the length property and falls back to the geodesic
// length of line geometries.
func lengthOf(f *geojson.Feature) float64 {
	if v, ok := floatProp(f.Properties, "length"); ok {
		return v
	}
	switch f.Geometry.(type) {
	case orb.LineString, orb.MultiLineString:
		return geo.Length(f.Geometry)
	}
	return 0
}

// areaOf prefers the area property and falls back to the geodesic
// area of polygon geometries.
func areaOf(f *geojson.Feature) float64 {
	if v, ok := floatProp(f.Properties, "area"); ok {
		return v
	}
	switch f.Geometry.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return geo.Area(f.Geometry)
	}
	return 0
}

// stringProp reads a string property; Properties.MustString panics on
// mistyped values, which loaded documents can contain.
func stringProp(p geojson.Properties, key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

func floatProp(p geojson.Properties, key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
