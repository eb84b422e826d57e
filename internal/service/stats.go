package service

import (
	"github.com/smartcity/lowemission/internal/domain"
	"github.com/smartcity/lowemission/pkg/utils"
)

// Aggregate derives the displayed counts from the load-time category counts.
// Open roads are clamped at zero when the data has more closed roads than
// roads in total.
func Aggregate(counts domain.CategoryCounts, restricted bool) domain.DisplayStats {
	roads := counts.Get(domain.CategoryRoad)
	stats := domain.DisplayStats{
		School:   counts.Get(domain.CategorySchool),
		OpenRoad: roads,
	}

	if restricted {
		closed := counts.Get(domain.CategoryClosedRoad)
		stats.ClosedRoad = closed
		stats.OpenRoad = int(utils.Clamp(float64(roads-closed), 0, float64(roads)))
	}

	return stats
}
