package postgres

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// MockRepository serves a small built-in data set around Belek for demo mode
type MockRepository struct{}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// LowEmission returns the sample school zone layers
func (r *MockRepository) LowEmission() *MemorySource {
	return &MemorySource{build: sampleLowEmission}
}

// Base returns a sample OSM base layer
func (r *MockRepository) Base() *MemorySource {
	return &MemorySource{build: sampleBase}
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}

// MemorySource is a FeatureSource over a collection built in memory
type MemorySource struct {
	build func() *geojson.FeatureCollection
}

// NewMemorySource wraps an existing collection
func NewMemorySource(fc *geojson.FeatureCollection) *MemorySource {
	return &MemorySource{build: func() *geojson.FeatureCollection { return fc }}
}

// Fetch returns the collection; it fails only on a cancelled context
func (s *MemorySource) Fetch(ctx context.Context) (*geojson.FeatureCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("memory: fetch cancelled: %w", err)
	}
	return s.build(), nil
}

func sampleLowEmission() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	schools := []struct {
		name string
		at   orb.Point
	}{
		{"Belek Ilkokulu", orb.Point{31.055, 36.862}},
		{"Belek Ortaokulu", orb.Point{31.068, 36.857}},
	}
	for _, s := range schools {
		fc.Append(feature(square(s.at, 0.0008), "school", s.name))
		fc.Append(feature(square(s.at, 0.0025), "buffer", s.name))
	}

	for i := 0; i < 3; i++ {
		dy := float64(i) * 0.001
		line := orb.LineString{
			{31.053, 36.860 + dy},
			{31.058, 36.861 + dy},
		}
		fc.Append(feature(line, "closed_road", ""))
	}

	roads := []string{"open_road", "open_road", "road", "highway", "open_road"}
	for i, lt := range roads {
		dx := float64(i) * 0.003
		line := orb.LineString{
			{31.045 + dx, 36.850},
			{31.045 + dx, 36.870},
		}
		fc.Append(feature(line, lt, ""))
	}

	return fc
}

func sampleBase() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Append(feature(orb.LineString{{31.02, 36.86}, {31.10, 36.86}}, "osm", "Belek Caddesi"))
	fc.Append(feature(orb.LineString{{31.06, 36.84}, {31.06, 36.88}}, "osm", "Iskele Caddesi"))
	return fc
}

func feature(g orb.Geometry, layerType, name string) *geojson.Feature {
	f := geojson.NewFeature(g)
	f.Properties["layer_type"] = layerType
	if name != "" {
		f.Properties["name"] = name
	}
	return f
}

func square(center orb.Point, half float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{center[0] - half, center[1] - half},
		{center[0] + half, center[1] - half},
		{center[0] + half, center[1] + half},
		{center[0] - half, center[1] + half},
		{center[0] - half, center[1] - half},
	}}
}
