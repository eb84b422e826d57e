package service

import (
	"testing"

	"github.com/smartcity/lowemission/internal/domain"
)

func TestBoardIgnoresMissingSlots(t *testing.T) {
	b := NewBoard(SlotCurrentTime)

	b.SetText("does-not-exist", "x")
	b.SetAttr("does-not-exist", "class", "x")
	b.SetText(SlotCurrentTime, "08:00")

	slots := b.Slots()
	if len(slots) != 1 {
		t.Fatalf("board has %d slots, want 1", len(slots))
	}
	if slots[SlotCurrentTime].Text != "08:00" {
		t.Errorf("current-time = %q, want 08:00", slots[SlotCurrentTime].Text)
	}
}

func TestPresentWithPartialBoard(t *testing.T) {
	b := NewBoard(SlotStatusText, SlotOpenRoadCount)

	Present(b, domain.Snapshot{
		Status: "Normal Traffic - All Roads Open",
		Stats:  domain.DisplayStats{OpenRoad: 1234},
	})

	slots := b.Slots()
	if slots[SlotStatusText].Text != "Normal Traffic - All Roads Open" {
		t.Errorf("status-text = %q", slots[SlotStatusText].Text)
	}
	if slots[SlotOpenRoadCount].Text != "1,234" {
		t.Errorf("open-road-count = %q, want 1,234", slots[SlotOpenRoadCount].Text)
	}
}

func TestPresenterFollowsEngine(t *testing.T) {
	b := NewBoard(DefaultSlots...)
	e, _ := newTestEngine(12)
	e.Subscribe(Presenter(b))
	loadSchoolZone(t, e)

	e.SetHour(8.5)
	slots := b.Slots()

	checks := map[string]string{
		SlotCurrentTime:     "08:30",
		SlotStatusText:      StatusText(domain.RegimeEntry),
		SlotSchoolCount:     "3",
		SlotClosedRoadCount: "3",
		SlotOpenRoadCount:   "2",
		SlotActiveLayers:    "5",
	}
	for slot, want := range checks {
		if got := slots[slot].Text; got != want {
			t.Errorf("%s = %q, want %q", slot, got, want)
		}
	}

	if got := slots[SlotEntryBadge].Attrs["class"]; got != "badge active" {
		t.Errorf("entry badge class = %q", got)
	}
	if got := slots[SlotExitBadge].Attrs["class"]; got != "badge" {
		t.Errorf("exit badge class = %q", got)
	}
	if got := slots[SlotTrafficStatus].Attrs["class"]; got != "status-indicator restricted" {
		t.Errorf("traffic status class = %q", got)
	}
	if got := slots[SlotAirQuality].Attrs["border-color"]; got != excellentPalette.Border {
		t.Errorf("air quality border = %q", got)
	}

	e.SetHour(12)
	slots = b.Slots()
	if slots[SlotClosedRoadCount].Text != "0" || slots[SlotOpenRoadCount].Text != "5" {
		t.Errorf("at noon closed=%q open=%q", slots[SlotClosedRoadCount].Text, slots[SlotOpenRoadCount].Text)
	}
	if got := slots[SlotEntryBadge].Attrs["class"]; got != "badge" {
		t.Errorf("entry badge class at noon = %q", got)
	}
}
