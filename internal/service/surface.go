package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"github.com/smartcity/lowemission/internal/domain"
)

// LayerSet is an in-memory render surface. It keeps every drawn geometry
// with its current style and exports visible layers as styled GeoJSON.
type LayerSet struct {
	mu     sync.RWMutex
	items  map[domain.Handle]*renderedItem
	order  []domain.Handle
	hidden map[string]bool
}

type renderedItem struct {
	feature domain.GeoFeature
	style   domain.Style
	layer   string
}

// NewLayerSet creates an empty surface with every layer visible
func NewLayerSet() *LayerSet {
	return &LayerSet{
		items:  make(map[domain.Handle]*renderedItem),
		hidden: make(map[string]bool),
	}
}

// AddStyledGeometry draws a feature. It is not attached to any layer yet.
func (l *LayerSet) AddStyledGeometry(f domain.GeoFeature, s domain.Style) domain.Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	h := uuid.New()
	l.items[h] = &renderedItem{feature: f, style: s}
	l.order = append(l.order, h)
	return h
}

// Restyle replaces the style of a drawn geometry. Unknown handles are ignored.
func (l *LayerSet) Restyle(h domain.Handle, s domain.Style) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if item, ok := l.items[h]; ok {
		item.style = s
	}
}

// AddToNamedLayer attaches a drawn geometry to a layer
func (l *LayerSet) AddToNamedLayer(h domain.Handle, layer string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if item, ok := l.items[h]; ok {
		item.layer = layer
	}
}

// SetLayerVisible shows or hides a layer
func (l *LayerSet) SetLayerVisible(layer string, visible bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if visible {
		delete(l.hidden, layer)
	} else {
		l.hidden[layer] = true
	}
}

// Len returns the number of drawn geometries
func (l *LayerSet) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}

// LayerSize returns the number of geometries attached to a layer
func (l *LayerSet) LayerSize(layer string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for _, item := range l.items {
		if item.layer == layer {
			n++
		}
	}
	return n
}

// StyleOf returns the current style of a drawn geometry
func (l *LayerSet) StyleOf(h domain.Handle) (domain.Style, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	item, ok := l.items[h]
	if !ok {
		return domain.Style{}, false
	}
	return item.style, true
}

// FeatureCollection exports the geometries of visible layers in draw order.
// A non-empty layer restricts the export to that layer. The current style
// is attached as the "style" property.
func (l *LayerSet) FeatureCollection(layer string) *geojson.FeatureCollection {
	l.mu.RLock()
	defer l.mu.RUnlock()

	fc := geojson.NewFeatureCollection()
	for _, h := range l.order {
		item := l.items[h]
		if item.layer == "" || l.hidden[item.layer] {
			continue
		}
		if layer != "" && item.layer != layer {
			continue
		}

		f := geojson.NewFeature(item.feature.Geometry)
		f.ID = item.feature.ID
		f.Properties["handle"] = h.String()
		f.Properties["layer"] = item.layer
		f.Properties["layer_type"] = item.feature.LayerType
		if item.feature.Category != "" {
			f.Properties["category"] = string(item.feature.Category)
		}
		if item.feature.Name != "" {
			f.Properties["name"] = item.feature.Name
		}
		if item.feature.Length > 0 {
			f.Properties["length"] = item.feature.Length
		}
		if item.feature.Area > 0 {
			f.Properties["area"] = item.feature.Area
		}
		f.Properties["style"] = item.style
		fc.Append(f)
	}
	return fc
}
