// Package geojsonfile loads feature collections from GeoJSON documents on disk.
package geojsonfile

import (
	"context"
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

// Source reads one GeoJSON feature collection file
type Source struct {
	path string
}

// NewSource creates a file source
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the file the source reads
func (s *Source) Path() string {
	return s.path
}

// Fetch reads and parses the whole document
func (s *Source) Fetch(ctx context.Context) (*geojson.FeatureCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("geojsonfile: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("geojsonfile: failed to read %s: %w", s.path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("geojsonfile: failed to parse %s: %w", s.path, err)
	}

	return fc, nil
}
