// Package osm builds the OSM base layer from an Overpass API endpoint.
package osm

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/serjvanilla/go-overpass"
)

const roadQuery = `
	[out:json];
	(
		way["highway"~"motorway|trunk|primary|secondary|tertiary|residential|unclassified"](%s);
	);
	out body;
	>;
	out skel qt;
`

// Source fetches highway ways inside a bounding box
type Source struct {
	client *overpass.Client
	bbox   string
}

// NewSource creates an Overpass source. bbox is "minLat,minLon,maxLat,maxLon".
func NewSource(endpoint, bbox string, timeout time.Duration) (*Source, error) {
	minLat, minLon, maxLat, maxLon, err := ParseBBox(bbox)
	if err != nil {
		return nil, fmt.Errorf("osm: invalid bbox: %w", err)
	}

	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(endpoint, 1, httpClient)

	return &Source{
		client: &client,
		bbox:   fmt.Sprintf("%f,%f,%f,%f", minLat, minLon, maxLat, maxLon),
	}, nil
}

// Fetch runs the road query and converts ways to LineString features
func (s *Source) Fetch(ctx context.Context) (*geojson.FeatureCollection, error) {
	type queryResult struct {
		res overpass.Result
		err error
	}

	// the client has no context support; the http timeout bounds the call
	done := make(chan queryResult, 1)
	go func() {
		res, err := s.client.Query(fmt.Sprintf(roadQuery, s.bbox))
		done <- queryResult{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("osm: query cancelled: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("osm: query failed: %w", r.err)
		}
		return convertWays(&r.res), nil
	}
}

func convertWays(result *overpass.Result) *geojson.FeatureCollection {
	ids := make([]int64, 0, len(result.Ways))
	for id := range result.Ways {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fc := geojson.NewFeatureCollection()
	for _, id := range ids {
		way := result.Ways[id]

		line := make(orb.LineString, 0, len(way.Nodes))
		for _, node := range way.Nodes {
			if node == nil {
				continue
			}
			line = append(line, orb.Point{node.Lon, node.Lat})
		}
		if len(line) < 2 {
			continue
		}

		f := geojson.NewFeature(line)
		f.ID = fmt.Sprintf("way/%d", way.ID)
		f.Properties["layer_type"] = "osm"
		if name, ok := way.Tags["name"]; ok {
			f.Properties["name"] = name
		}
		if highway, ok := way.Tags["highway"]; ok {
			f.Properties["highway"] = highway
		}
		fc.Append(f)
	}

	return fc
}

// ParseBBox parses a bbox string in format "lat1,lon1,lat2,lon2" into minLat, minLon, maxLat, maxLon.
func ParseBBox(bbox string) (minLat, minLon, maxLat, maxLon float64, err error) {
	parts := strings.Split(bbox, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("bbox must have 4 components, got %d", len(parts))
	}

	values := make([]float64, 4)
	names := []string{"minLat", "minLon", "maxLat", "maxLon"}
	for i, p := range parts {
		values[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("invalid %s: %w", names[i], err)
		}
	}
	minLat, minLon, maxLat, maxLon = values[0], values[1], values[2], values[3]

	if minLat < -90 || minLat > 90 || maxLat < -90 || maxLat > 90 {
		return 0, 0, 0, 0, fmt.Errorf("latitude out of range [-90, 90]")
	}
	if minLon < -180 || minLon > 180 || maxLon < -180 || maxLon > 180 {
		return 0, 0, 0, 0, fmt.Errorf("longitude out of range [-180, 180]")
	}
	if minLat > maxLat || minLon > maxLon {
		return 0, 0, 0, 0, fmt.Errorf("minLat must be <= maxLat and minLon must be <= maxLon")
	}

	return minLat, minLon, maxLat, maxLon, nil
}
