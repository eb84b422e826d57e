package service

import (
	"strconv"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/smartcity/lowemission/internal/domain"
)

// Display slot names
const (
	SlotCurrentTime     = "current-time"
	SlotEntryBadge      = "entry-badge"
	SlotExitBadge       = "exit-badge"
	SlotTrafficStatus   = "traffic-status"
	SlotStatusText      = "status-text"
	SlotSchoolCount     = "school-count"
	SlotClosedRoadCount = "closed-road-count"
	SlotOpenRoadCount   = "open-road-count"
	SlotAQIValue        = "aqi-value"
	SlotAQILabel        = "aqi-label"
	SlotAirQuality      = "air-quality"
	SlotActiveLayers    = "active-layers"
)

// DefaultSlots are the slots of the standard side panel
var DefaultSlots = []string{
	SlotCurrentTime, SlotEntryBadge, SlotExitBadge, SlotTrafficStatus,
	SlotStatusText, SlotSchoolCount, SlotClosedRoadCount, SlotOpenRoadCount,
	SlotAQIValue, SlotAQILabel, SlotAirQuality, SlotActiveLayers,
}

// Slot is the rendered content of one display element
type Slot struct {
	Text  string            `json:"text"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// Board is an in-memory Display with a fixed set of slots
type Board struct {
	mu    sync.RWMutex
	slots map[string]*Slot
}

// NewBoard creates a board exposing only the given slots
func NewBoard(slots ...string) *Board {
	b := &Board{slots: make(map[string]*Slot, len(slots))}
	for _, name := range slots {
		b.slots[name] = &Slot{}
	}
	return b
}

// SetText writes the text of a slot. Missing slots are ignored.
func (b *Board) SetText(slot, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.slots[slot]; ok {
		s.Text = text
	}
}

// SetAttr writes one attribute of a slot. Missing slots are ignored.
func (b *Board) SetAttr(slot, attr, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.slots[slot]
	if !ok {
		return
	}
	if s.Attrs == nil {
		s.Attrs = make(map[string]string)
	}
	s.Attrs[attr] = value
}

// Slots returns a copy of every slot
func (b *Board) Slots() map[string]Slot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]Slot, len(b.slots))
	for name, s := range b.slots {
		cp := Slot{Text: s.Text}
		if len(s.Attrs) > 0 {
			cp.Attrs = make(map[string]string, len(s.Attrs))
			for k, v := range s.Attrs {
				cp.Attrs[k] = v
			}
		}
		out[name] = cp
	}
	return out
}

// Present writes a snapshot to the display slots
func Present(d domain.Display, s domain.Snapshot) {
	d.SetText(SlotCurrentTime, s.Clock)

	d.SetAttr(SlotEntryBadge, "class", badgeClass(s.Regime == domain.RegimeEntry))
	d.SetAttr(SlotExitBadge, "class", badgeClass(s.Regime == domain.RegimeExit))

	if s.Restricted {
		d.SetAttr(SlotTrafficStatus, "class", "status-indicator restricted")
	} else {
		d.SetAttr(SlotTrafficStatus, "class", "status-indicator normal")
	}
	d.SetText(SlotStatusText, s.Status)

	d.SetText(SlotSchoolCount, strconv.Itoa(s.Stats.School))
	d.SetText(SlotClosedRoadCount, strconv.Itoa(s.Stats.ClosedRoad))
	d.SetText(SlotOpenRoadCount, humanize.Comma(int64(s.Stats.OpenRoad)))

	aq := s.AirQuality
	d.SetText(SlotAQIValue, strconv.Itoa(aq.Index))
	d.SetAttr(SlotAQIValue, "color", aq.Palette.Text)
	d.SetText(SlotAQILabel, aq.Label)
	d.SetAttr(SlotAQILabel, "color", aq.Palette.Text)
	d.SetAttr(SlotAirQuality, "background", aq.Palette.Background)
	d.SetAttr(SlotAirQuality, "border-color", aq.Palette.Border)

	d.SetText(SlotActiveLayers, strconv.Itoa(s.ActiveLayers))
}

// Presenter returns a listener that keeps d in sync with the engine
func Presenter(d domain.Display) Listener {
	return func(s domain.Snapshot) {
		Present(d, s)
	}
}

func badgeClass(active bool) string {
	if active {
		return "badge active"
	}
	return "badge"
}
