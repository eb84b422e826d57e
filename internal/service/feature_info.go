package service

import (
	"github.com/dustin/go-humanize"

	"github.com/smartcity/lowemission/internal/domain"
	"github.com/smartcity/lowemission/pkg/utils"
)

var typeLabels = map[string]string{
	"school":      "School",
	"buffer":      "Safety Buffer",
	"closed_road": "Closed Road (School Hours)",
	"open_road":   "Open Road",
	"road":        "Road",
	"highway":     "Highway",
	"osm":         "OSM Base Layer",
}

// FeatureInfo is the popup content of a feature
type FeatureInfo struct {
	ID        string   `json:"id"`
	Name      string   `json:"name,omitempty"`
	LayerType string   `json:"layer_type"`
	TypeLabel string   `json:"type_label"`
	Length    string   `json:"length,omitempty"`
	Area      string   `json:"area,omitempty"`
	Notices   []string `json:"notices,omitempty"`
}

// DescribeFeature builds the popup content for a feature
func DescribeFeature(f domain.GeoFeature) FeatureInfo {
	info := FeatureInfo{
		ID:        f.ID,
		Name:      f.Name,
		LayerType: f.LayerType,
		TypeLabel: f.LayerType,
	}
	if label, ok := typeLabels[f.LayerType]; ok {
		info.TypeLabel = label
	}

	if f.Length > 0 {
		info.Length = humanize.Comma(int64(utils.RoundTo(f.Length, 0))) + " m"
	}
	if f.Area > 0 {
		info.Area = humanize.Comma(int64(utils.RoundTo(f.Area, 0))) + " m²"
	}

	switch f.Category {
	case domain.CategoryClosedRoad:
		info.Notices = append(info.Notices,
			"Restricted hours: Entry "+FormatClock(EntryWindow.Start)+"-"+FormatClock(EntryWindow.End)+
				", Exit "+FormatClock(ExitWindow.Start)+"-"+FormatClock(ExitWindow.End))
	case domain.CategoryBuffer:
		info.Notices = append(info.Notices, "200m safety zone around the school")
	}

	return info
}
