package service

import (
	"fmt"
	"math"

	"github.com/smartcity/lowemission/internal/domain"
)

// Restriction windows around school entry and exit
var (
	EntryWindow = domain.Window{Start: 8, End: 9}
	ExitWindow  = domain.Window{Start: 15, End: 16}
)

// Resolve maps a simulated hour to its restriction regime.
// Hours outside [0,24) are not validated; they match no window and
// resolve to normal, as does NaN.
func Resolve(hour float64) domain.Resolution {
	regime := domain.RegimeNormal
	switch {
	case EntryWindow.Contains(hour):
		regime = domain.RegimeEntry
	case ExitWindow.Contains(hour):
		regime = domain.RegimeExit
	}

	return domain.Resolution{
		Hour:       hour,
		Regime:     regime,
		Restricted: regime != domain.RegimeNormal,
	}
}

// FormatClock renders an hour value as HH:MM, truncating to the minute
func FormatClock(hour float64) string {
	if math.IsNaN(hour) || math.IsInf(hour, 0) {
		return "--:--"
	}
	h := math.Floor(hour)
	// nudge so 8.1 reads 08:06 and not 08:05; the minute never rolls into
	// the next hour, which Resolve still treats as the current one
	m := int(math.Floor(hour*60+1e-9) - h*60)
	if m > 59 {
		m = 59
	} else if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", int(h), m)
}

// StatusText returns the human-readable traffic status for a regime
func StatusText(regime domain.Regime) string {
	switch regime {
	case domain.RegimeEntry:
		return "School Entry Hours - Roads Restricted"
	case domain.RegimeExit:
		return "School Exit Hours - Roads Restricted"
	default:
		return "Normal Traffic - All Roads Open"
	}
}
