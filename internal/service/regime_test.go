package service

import (
	"math"
	"testing"

	"github.com/smartcity/lowemission/internal/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name           string
		hour           float64
		wantRegime     domain.Regime
		wantRestricted bool
	}{
		{"midnight", 0, domain.RegimeNormal, false},
		{"just before entry", 7.999, domain.RegimeNormal, false},
		{"entry start", 8, domain.RegimeEntry, true},
		{"entry half", 8.5, domain.RegimeEntry, true},
		{"entry last instant", 8.9999999, domain.RegimeEntry, true},
		{"entry end", 9, domain.RegimeNormal, false},
		{"noon", 12, domain.RegimeNormal, false},
		{"exit start", 15, domain.RegimeExit, true},
		{"exit half", 15.5, domain.RegimeExit, true},
		{"exit end", 16, domain.RegimeNormal, false},
		{"late", 23.5, domain.RegimeNormal, false},
		{"negative", -1, domain.RegimeNormal, false},
		{"past midnight", 32.5, domain.RegimeNormal, false},
		{"not a number", math.NaN(), domain.RegimeNormal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.hour)
			if res.Regime != tt.wantRegime {
				t.Errorf("Resolve(%v).Regime = %s, want %s", tt.hour, res.Regime, tt.wantRegime)
			}
			if res.Restricted != tt.wantRestricted {
				t.Errorf("Resolve(%v).Restricted = %v, want %v", tt.hour, res.Restricted, tt.wantRestricted)
			}
		})
	}
}

func TestResolveWindowsSweep(t *testing.T) {
	for h := 0.0; h < 24; h += 0.25 {
		res := Resolve(h)
		inEntry := h >= 8 && h < 9
		inExit := h >= 15 && h < 16

		switch {
		case inEntry && res.Regime != domain.RegimeEntry:
			t.Errorf("hour %v: got %s, want entry", h, res.Regime)
		case inExit && res.Regime != domain.RegimeExit:
			t.Errorf("hour %v: got %s, want exit", h, res.Regime)
		case !inEntry && !inExit && res.Regime != domain.RegimeNormal:
			t.Errorf("hour %v: got %s, want normal", h, res.Regime)
		}
		if res.Restricted != (res.Regime != domain.RegimeNormal) {
			t.Errorf("hour %v: restricted %v inconsistent with regime %s", h, res.Restricted, res.Regime)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		hour float64
		want string
	}{
		{0, "00:00"},
		{8, "08:00"},
		{8.5, "08:30"},
		{8.1, "08:06"},
		{15.75, "15:45"},
		{23.99, "23:59"},
		{8.99999999999, "08:59"},
		{23.99999999999, "23:59"},
		{8.99999999999999, "08:59"},
		{math.NaN(), "--:--"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.hour); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestStatusText(t *testing.T) {
	if got := StatusText(domain.RegimeNormal); got != "Normal Traffic - All Roads Open" {
		t.Errorf("unexpected normal status: %q", got)
	}
	if StatusText(domain.RegimeEntry) == StatusText(domain.RegimeExit) {
		t.Error("entry and exit should have distinct status texts")
	}
}
