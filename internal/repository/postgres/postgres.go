package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb/geojson"
)

// lowEmissionQuery assembles the school zone layers into one collection
const lowEmissionQuery = `
	SELECT jsonb_build_object(
		'type', 'FeatureCollection',
		'features', COALESCE(jsonb_agg(
			jsonb_build_object(
				'type', 'Feature',
				'geometry', ST_AsGeoJSON(geom)::jsonb,
				'properties', to_jsonb(t) - 'geom'
			)
		), '[]'::jsonb)
	)
	FROM (
		SELECT 'school' AS layer_type, okul_adi AS name, geom FROM schools_polygon_only
		UNION ALL
		SELECT 'buffer', okul_adi, geom FROM school_buffer_200m
		UNION ALL
		SELECT 'closed_road', NULL, geom FROM roads_to_close
		UNION ALL
		SELECT 'open_road', NULL, geom FROM roads_open
	) t
`

// baseLayerQuery returns the imported OSM features
const baseLayerQuery = `
	SELECT jsonb_build_object(
		'type', 'FeatureCollection',
		'features', COALESCE(jsonb_agg(
			jsonb_build_object(
				'type', 'Feature',
				'id', id,
				'geometry', ST_AsGeoJSON(geom)::jsonb,
				'properties', COALESCE(properties, '{}'::jsonb)
					|| jsonb_build_object('name', name, 'layer_type', layer_type)
			) ORDER BY id
		), '[]'::jsonb)
	)
	FROM osm_features
`

// Repository reads and writes feature layers in PostGIS
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostGIS repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// LowEmission returns a source for the school zone layers
func (r *Repository) LowEmission() *QuerySource {
	return &QuerySource{pool: r.pool, query: lowEmissionQuery, name: "low emission"}
}

// Base returns a source for the imported OSM base layer
func (r *Repository) Base() *QuerySource {
	return &QuerySource{pool: r.pool, query: baseLayerQuery, name: "osm"}
}

// Health checks database connectivity
func (r *Repository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// ImportFeatures replaces the content of osm_features with the collection.
// name and layer_type get their own columns, the remaining properties are
// stored as jsonb.
func (r *Repository) ImportFeatures(ctx context.Context, fc *geojson.FeatureCollection) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE osm_features RESTART IDENTITY"); err != nil {
		return 0, fmt.Errorf("postgres: failed to truncate osm_features: %w", err)
	}

	query := `
		INSERT INTO osm_features (name, layer_type, geom, properties)
		VALUES ($1, $2, ST_GeomFromGeoJSON($3), $4)
	`

	imported := 0
	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}

		geom, err := json.Marshal(geojson.NewGeometry(f.Geometry))
		if err != nil {
			return 0, fmt.Errorf("postgres: failed to encode geometry of feature %d: %w", i, err)
		}

		name, _ := f.Properties["name"].(string)
		layerType, ok := f.Properties["layer_type"].(string)
		if !ok {
			layerType = "unknown"
		}

		// jsonb NULL rather than an empty object when nothing else is set
		var props []byte
		rest := make(map[string]interface{}, len(f.Properties))
		for k, v := range f.Properties {
			if k != "name" && k != "layer_type" {
				rest[k] = v
			}
		}
		if len(rest) > 0 {
			if props, err = json.Marshal(rest); err != nil {
				return 0, fmt.Errorf("postgres: failed to encode properties of feature %d: %w", i, err)
			}
		}

		if _, err := tx.Exec(ctx, query, name, layerType, string(geom), props); err != nil {
			return 0, fmt.Errorf("postgres: failed to insert feature %d: %w", i, err)
		}
		imported++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit import: %w", err)
	}

	return imported, nil
}

// LayerCounts returns the number of imported features per layer_type
func (r *Repository) LayerCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, "SELECT layer_type, COUNT(*) FROM osm_features GROUP BY layer_type")
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to count layers: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			layerType string
			n         int
		)
		if err := rows.Scan(&layerType, &n); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan layer count: %w", err)
		}
		counts[layerType] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read layer counts: %w", err)
	}

	return counts, nil
}

// QuerySource is a FeatureSource backed by a single jsonb query
type QuerySource struct {
	pool  *pgxpool.Pool
	query string
	name  string
}

// Fetch runs the query and decodes the resulting collection
func (s *QuerySource) Fetch(ctx context.Context) (*geojson.FeatureCollection, error) {
	var raw []byte
	if err := s.pool.QueryRow(ctx, s.query).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geojson.NewFeatureCollection(), nil
		}
		return nil, fmt.Errorf("postgres: failed to query %s features: %w", s.name, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to decode %s features: %w", s.name, err)
	}

	return fc, nil
}
