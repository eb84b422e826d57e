package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
)

// FeatureSource provides a GeoJSON feature collection.
// Implementations: GeoJSON file, PostGIS, Overpass, in-memory sample.
type FeatureSource interface {
	// Fetch returns the whole collection in one shot
	Fetch(ctx context.Context) (*geojson.FeatureCollection, error)
}

// Handle identifies a geometry drawn on a RenderSurface
type Handle = uuid.UUID

// RenderSurface is the map drawing contract the engine writes to
type RenderSurface interface {
	// AddStyledGeometry draws a feature and returns a handle to it
	AddStyledGeometry(f GeoFeature, s Style) Handle

	// Restyle changes the style of an already drawn geometry in place
	Restyle(h Handle, s Style)

	// AddToNamedLayer attaches a drawn geometry to a layer
	AddToNamedLayer(h Handle, layer string)

	// SetLayerVisible shows or hides a whole layer
	SetLayerVisible(layer string, visible bool)
}

// Display is the set of named display slots the UI renders.
// Writes to a slot that does not exist must be no-ops.
type Display interface {
	SetText(slot, text string)
	SetAttr(slot, attr, value string)
}
