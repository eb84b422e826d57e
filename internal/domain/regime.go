package domain

// Regime is the restriction mode derived from the simulated hour
type Regime string

const (
	RegimeNormal Regime = "normal"
	RegimeEntry  Regime = "entry"
	RegimeExit   Regime = "exit"
)

// Resolution is the resolved time state for one hour value
type Resolution struct {
	Hour       float64 `json:"hour"`
	Regime     Regime  `json:"regime"`
	Restricted bool    `json:"restricted"`
}

// Window is a half-open [Start, End) range of hours
type Window struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Contains reports whether hour falls inside the window
func (w Window) Contains(hour float64) bool {
	return hour >= w.Start && hour < w.End
}
