package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/smartcity/lowemission/internal/domain"
)

func TestLayerSetLifecycle(t *testing.T) {
	l := NewLayerSet()
	f := domain.GeoFeature{ID: "x", Category: domain.CategoryClosedRoad, LayerType: "closed_road", Geometry: orb.LineString{{0, 0}, {1, 1}}}

	h := l.AddStyledGeometry(f, closedRoadOpen)
	if n := len(l.FeatureCollection("").Features); n != 0 {
		t.Errorf("geometry without a layer exported %d features", n)
	}

	l.AddToNamedLayer(h, domain.LayerClosedRoad)
	fc := l.FeatureCollection("")
	if len(fc.Features) != 1 {
		t.Fatalf("exported %d features, want 1", len(fc.Features))
	}
	if fc.Features[0].ID != "x" || fc.Features[0].Properties["handle"] != h.String() {
		t.Errorf("unexpected export: %+v", fc.Features[0])
	}

	l.Restyle(h, closedRoadRestricted)
	if s, _ := l.StyleOf(h); s != closedRoadRestricted {
		t.Errorf("style after restyle = %+v", s)
	}

	l.Restyle(uuid.New(), closedRoadOpen)
	if l.Len() != 1 {
		t.Errorf("restyling an unknown handle changed the surface")
	}

	l.SetLayerVisible(domain.LayerClosedRoad, false)
	if n := len(l.FeatureCollection("").Features); n != 0 {
		t.Errorf("hidden layer exported %d features", n)
	}
	l.SetLayerVisible(domain.LayerClosedRoad, true)
	if n := len(l.FeatureCollection(domain.LayerSchool).Features); n != 0 {
		t.Errorf("layer filter leaked %d features", n)
	}
}
