package service

import (
	"testing"

	"github.com/smartcity/lowemission/internal/domain"
)

func TestDescribeFeature(t *testing.T) {
	tests := []struct {
		name        string
		feature     domain.GeoFeature
		wantLabel   string
		wantLength  string
		wantArea    string
		wantNotices int
	}{
		{
			name:        "closed road",
			feature:     domain.GeoFeature{ID: "a", Category: domain.CategoryClosedRoad, LayerType: "closed_road", Length: 1234.6},
			wantLabel:   "Closed Road (School Hours)",
			wantLength:  "1,235 m",
			wantNotices: 1,
		},
		{
			name:        "buffer",
			feature:     domain.GeoFeature{ID: "b", Category: domain.CategoryBuffer, LayerType: "buffer", Name: "Belek Ilkokulu", Area: 125663.7},
			wantLabel:   "Safety Buffer",
			wantArea:    "125,664 m²",
			wantNotices: 1,
		},
		{
			name:      "highway",
			feature:   domain.GeoFeature{ID: "c", Category: domain.CategoryRoad, LayerType: "highway"},
			wantLabel: "Highway",
		},
		{
			name:      "unlabelled type",
			feature:   domain.GeoFeature{ID: "d", LayerType: "tram"},
			wantLabel: "tram",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := DescribeFeature(tt.feature)
			if info.TypeLabel != tt.wantLabel {
				t.Errorf("TypeLabel = %q, want %q", info.TypeLabel, tt.wantLabel)
			}
			if info.Length != tt.wantLength {
				t.Errorf("Length = %q, want %q", info.Length, tt.wantLength)
			}
			if info.Area != tt.wantArea {
				t.Errorf("Area = %q, want %q", info.Area, tt.wantArea)
			}
			if len(info.Notices) != tt.wantNotices {
				t.Errorf("got %d notices, want %d", len(info.Notices), tt.wantNotices)
			}
		})
	}
}

func TestDescribeClosedRoadHours(t *testing.T) {
	info := DescribeFeature(domain.GeoFeature{Category: domain.CategoryClosedRoad, LayerType: "closed_road"})
	want := "Restricted hours: Entry 08:00-09:00, Exit 15:00-16:00"
	if info.Notices[0] != want {
		t.Errorf("notice = %q, want %q", info.Notices[0], want)
	}
}
