package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/paulmach/orb/geojson"
	log "github.com/sirupsen/logrus"

	"github.com/smartcity/lowemission/internal/domain"
)

var (
	ErrFeatureNotFound = errors.New("engine: feature not found")
	ErrUnknownLayer    = errors.New("engine: unknown layer")
	ErrAlreadyLoaded   = errors.New("engine: features already loaded")
)

// Listener receives every published snapshot. It runs under the engine
// lock, so it must not call back into the engine and must return quickly:
// a slow listener stalls every reader and SetHour caller. Hand the
// snapshot to a goroutine or channel for anything beyond a cheap write.
type Listener func(domain.Snapshot)

// Engine owns the simulated hour and everything derived from it.
// SetHour is the only way to change the hour; each call resolves the
// regime once and feeds that single resolution to restyling, statistics
// and air quality before publishing one snapshot.
type Engine struct {
	mu sync.Mutex

	surface   domain.RenderSurface
	estimator *AirQualityEstimator

	// set once by Load
	loaded   bool
	raw      *geojson.FeatureCollection
	features map[string]domain.GeoFeature
	counts   domain.CategoryCounts
	closed   []domain.Handle

	hour      float64
	visible   map[string]bool
	snapshot  domain.Snapshot
	listeners []Listener
}

// NewEngine creates an engine at the given initial hour. Until Load is
// called, hour changes are accepted and snapshots carry zero counts.
func NewEngine(surface domain.RenderSurface, estimator *AirQualityEstimator, initialHour float64) *Engine {
	e := &Engine{
		surface:   surface,
		estimator: estimator,
		features:  make(map[string]domain.GeoFeature),
		counts:    make(domain.CategoryCounts),
		hour:      initialHour,
		visible:   make(map[string]bool, len(domain.Layers)),
	}
	for _, layer := range domain.Layers {
		e.visible[layer] = true
	}
	e.recompute(Resolve(initialHour), true)
	return e
}

// Subscribe registers a listener and immediately sends it the current snapshot
func (e *Engine) Subscribe(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.listeners = append(e.listeners, l)
	l(e.snapshot)
}

// Load draws the classified features and opens the load gate.
// Counts become visible to statistics only here, after the full pass.
func (e *Engine) Load(c Classification, raw *geojson.FeatureCollection) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loaded {
		return ErrAlreadyLoaded
	}

	res := Resolve(e.hour)
	for _, f := range c.Features {
		f.ID = uniqueID(f.ID, e.idTaken)
		h := e.surface.AddStyledGeometry(f, StyleFor(f.Category, res.Regime))
		e.surface.AddToNamedLayer(h, f.Layer())
		if f.Category == domain.CategoryClosedRoad {
			e.closed = append(e.closed, h)
		}
		e.features[f.ID] = f
	}

	for cat, n := range c.Counts {
		e.counts[cat] = n
	}
	e.raw = raw
	e.loaded = true

	log.WithFields(log.Fields{
		"school":      e.counts.Get(domain.CategorySchool),
		"buffer":      e.counts.Get(domain.CategoryBuffer),
		"closed_road": e.counts.Get(domain.CategoryClosedRoad),
		"road":        e.counts.Get(domain.CategoryRoad),
		"skipped":     c.Skipped,
	}).Info("Low emission features loaded")

	e.recompute(res, true)
	return nil
}

// LoadBase draws the OSM base layer. It does not affect counts or the gate.
func (e *Engine) LoadBase(features []domain.GeoFeature) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, f := range features {
		f.ID = uniqueID(f.ID, e.idTaken)
		h := e.surface.AddStyledGeometry(f, BaseLayerStyle)
		e.surface.AddToNamedLayer(h, domain.LayerOSM)
		e.features[f.ID] = f
	}
	log.WithField("features", len(features)).Info("OSM base layer loaded")
}

// SetHour changes the simulated hour and publishes the derived snapshot
func (e *Engine) SetHour(hour float64) domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.hour = hour
	res := Resolve(hour)

	// restyle in place; geometries are never redrawn
	style := StyleFor(domain.CategoryClosedRoad, res.Regime)
	for _, h := range e.closed {
		e.surface.Restyle(h, style)
	}

	e.recompute(res, true)
	return e.snapshot
}

// SetLayerVisible toggles a layer and republishes the active layer count.
// Air quality is not re-sampled since the hour did not change.
func (e *Engine) SetLayerVisible(layer string, visible bool) (domain.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	name, ok := canonicalLayer(layer)
	if !ok {
		return domain.Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownLayer, layer)
	}

	e.visible[name] = visible
	e.surface.SetLayerVisible(name, visible)
	e.recompute(Resolve(e.hour), false)
	return e.snapshot, nil
}

// LayerVisibility returns the visibility of every layer
func (e *Engine) LayerVisibility() map[string]bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]bool, len(e.visible))
	for k, v := range e.visible {
		out[k] = v
	}
	return out
}

// Snapshot returns the latest published snapshot
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

// Counts returns a copy of the load-time category counts
func (e *Engine) Counts() domain.CategoryCounts {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(domain.CategoryCounts, len(e.counts))
	for k, v := range e.counts {
		out[k] = v
	}
	return out
}

// Feature looks up a loaded feature by ID
func (e *Engine) Feature(id string) (domain.GeoFeature, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	f, ok := e.features[id]
	if !ok {
		return domain.GeoFeature{}, fmt.Errorf("%w: %s", ErrFeatureNotFound, id)
	}
	return f, nil
}

// Raw returns the low emission collection as loaded, nil before Load
func (e *Engine) Raw() *geojson.FeatureCollection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.raw
}

// idTaken reports whether a feature ID is already loaded. Callers hold mu.
func (e *Engine) idTaken(id string) bool {
	_, ok := e.features[id]
	return ok
}

// canonicalLayer returns the package-owned name of a known layer so that
// callers' strings are never kept as map keys.
func canonicalLayer(layer string) (string, bool) {
	for _, l := range domain.Layers {
		if l == layer {
			return l, true
		}
	}
	return "", false
}

// recompute rebuilds the snapshot from res and publishes it. Callers hold mu.
func (e *Engine) recompute(res domain.Resolution, resample bool) {
	aq := e.snapshot.AirQuality
	if resample || aq.Label == "" {
		aq = e.estimator.Estimate(res.Restricted)
	}

	active := 0
	for _, v := range e.visible {
		if v {
			active++
		}
	}

	e.snapshot = domain.Snapshot{
		Version:      e.snapshot.Version + 1,
		Hour:         res.Hour,
		Clock:        FormatClock(res.Hour),
		Regime:       res.Regime,
		Restricted:   res.Restricted,
		Status:       StatusText(res.Regime),
		Stats:        Aggregate(e.counts, res.Restricted),
		AirQuality:   aq,
		ActiveLayers: active,
		Loaded:       e.loaded,
		Timestamp:    time.Now(),
	}

	for _, l := range e.listeners {
		l(e.snapshot)
	}
}
