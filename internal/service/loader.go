package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/paulmach/orb/geojson"
	log "github.com/sirupsen/logrus"
)

// Loader fetches the two feature documents once and hands them to the engine
type Loader struct {
	engine   *Engine
	features FeatureSource
	base     FeatureSource // optional

	wgBg sync.WaitGroup // tracks the background load for graceful shutdown
}

// NewLoader creates a loader. base may be nil when no OSM layer is configured.
func NewLoader(engine *Engine, features, base FeatureSource) *Loader {
	return &Loader{
		engine:   engine,
		features: features,
		base:     base,
	}
}

// Start runs Load in the background. Failures are logged and not retried.
func (l *Loader) Start(timeout time.Duration) {
	l.wgBg.Add(1)
	go func() {
		defer l.wgBg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := l.Load(ctx); err != nil {
			log.WithError(err).Error("Feature load failed, layers stay empty")
		}
	}()
}

// WaitBackground blocks until the background load finishes
func (l *Loader) WaitBackground() {
	l.wgBg.Wait()
}

// Load fetches both documents concurrently. A failed base layer is logged
// and does not prevent the low emission features from loading.
func (l *Loader) Load(ctx context.Context) error {
	var (
		features *geojson.FeatureCollection
		base     *geojson.FeatureCollection
		featErr  error
		wg       sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		features, featErr = l.features.Fetch(ctx)
	}()

	if l.base != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fc, err := l.base.Fetch(ctx)
			if err != nil {
				log.WithError(err).Error("OSM base layer load failed")
				return
			}
			base = fc
		}()
	}

	wg.Wait()

	if base != nil {
		l.engine.LoadBase(BaseFeatures(base))
	}

	if featErr != nil {
		return fmt.Errorf("loader: failed to fetch low emission features: %w", featErr)
	}

	if err := l.engine.Load(Classify(features), features); err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	return nil
}
