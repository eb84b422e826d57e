package service

import (
	"math/rand"
	"time"

	"github.com/smartcity/lowemission/internal/domain"
)

// Synthetic AQI ranges, [base, base+span)
const (
	restrictedAQIBase = 25
	restrictedAQISpan = 15
	normalAQIBase     = 45
	normalAQISpan     = 20
)

var (
	excellentPalette = domain.Palette{
		Background: "linear-gradient(135deg, #ecfdf5 0%, #d1fae5 100%)",
		Border:     "#6ee7b7",
		Text:       "#065f46",
	}
	goodPalette = domain.Palette{
		Background: "linear-gradient(135deg, #f0fdf4 0%, #dcfce7 100%)",
		Border:     "#86efac",
		Text:       "#166534",
	}
)

// AirQualityEstimator samples a synthetic AQI that is lower while
// roads around schools are closed. It is a placeholder signal, not a model.
// Not safe for concurrent use; the engine serialises calls.
type AirQualityEstimator struct {
	rng *rand.Rand
}

// NewAirQualityEstimator creates an estimator. A nil source seeds from the clock.
func NewAirQualityEstimator(src rand.Source) *AirQualityEstimator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &AirQualityEstimator{rng: rand.New(src)}
}

// Estimate samples a new reading. Repeated calls vary by design.
func (e *AirQualityEstimator) Estimate(restricted bool) domain.AirQuality {
	if restricted {
		return domain.AirQuality{
			Index:   restrictedAQIBase + e.rng.Intn(restrictedAQISpan),
			Level:   "excellent",
			Label:   "Excellent - Very Clean Air",
			Palette: excellentPalette,
		}
	}

	return domain.AirQuality{
		Index:   normalAQIBase + e.rng.Intn(normalAQISpan),
		Level:   "good",
		Label:   "Good - Clean Air",
		Palette: goodPalette,
	}
}
