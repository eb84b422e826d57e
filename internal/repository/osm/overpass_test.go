package osm

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/serjvanilla/go-overpass"
)

func TestParseBBox(t *testing.T) {
	tests := []struct {
		name    string
		bbox    string
		wantErr bool
	}{
		{"valid", "36.84,31.02,36.88,31.10", false},
		{"spaces", " 36.84, 31.02 ,36.88,31.10 ", false},
		{"too few parts", "36.84,31.02,36.88", true},
		{"not a number", "a,31.02,36.88,31.10", true},
		{"latitude out of range", "-91,31.02,36.88,31.10", true},
		{"inverted", "36.88,31.02,36.84,31.10", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, _, err := ParseBBox(tt.bbox)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseBBox(%q) error = %v, wantErr %v", tt.bbox, err, tt.wantErr)
			}
		})
	}
}

func TestNewSourceRejectsBadBBox(t *testing.T) {
	if _, err := NewSource("http://localhost/api/interpreter", "nope", 0); err == nil {
		t.Error("expected error for invalid bbox")
	}
}

func TestConvertWays(t *testing.T) {
	a := &overpass.Node{Meta: overpass.Meta{ID: 1}, Lat: 36.86, Lon: 31.05}
	b := &overpass.Node{Meta: overpass.Meta{ID: 2}, Lat: 36.87, Lon: 31.06}

	result := &overpass.Result{
		Ways: map[int64]*overpass.Way{
			20: {
				Meta:  overpass.Meta{ID: 20, Tags: map[string]string{"highway": "residential"}},
				Nodes: []*overpass.Node{b, a},
			},
			10: {
				Meta:  overpass.Meta{ID: 10, Tags: map[string]string{"highway": "primary", "name": "Belek Caddesi"}},
				Nodes: []*overpass.Node{a, b},
			},
			30: {
				Meta:  overpass.Meta{ID: 30},
				Nodes: []*overpass.Node{a},
			},
		},
	}

	fc := convertWays(result)
	if len(fc.Features) != 2 {
		t.Fatalf("got %d features, want 2", len(fc.Features))
	}

	first := fc.Features[0]
	if first.ID != "way/10" {
		t.Errorf("first ID = %v, want way/10", first.ID)
	}
	if first.Properties["name"] != "Belek Caddesi" || first.Properties["highway"] != "primary" {
		t.Errorf("unexpected properties: %v", first.Properties)
	}
	line, ok := first.Geometry.(orb.LineString)
	if !ok || len(line) != 2 || line[0] != (orb.Point{31.05, 36.86}) {
		t.Errorf("unexpected geometry: %v", first.Geometry)
	}
}
