package postgres

import (
	"context"
	"testing"
)

func TestMockRepositorySample(t *testing.T) {
	repo := NewMockRepository()

	fc, err := repo.LowEmission().Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	counts := make(map[string]int)
	for _, f := range fc.Features {
		counts[f.Properties.MustString("layer_type")]++
	}

	want := map[string]int{"school": 2, "buffer": 2, "closed_road": 3, "open_road": 3, "road": 1, "highway": 1}
	for lt, n := range want {
		if counts[lt] != n {
			t.Errorf("%s: got %d, want %d", lt, counts[lt], n)
		}
	}

	base, err := repo.Base().Fetch(context.Background())
	if err != nil {
		t.Fatalf("base Fetch failed: %v", err)
	}
	if len(base.Features) != 2 {
		t.Errorf("base layer has %d features, want 2", len(base.Features))
	}

	if err := repo.Health(context.Background()); err != nil {
		t.Errorf("Health = %v", err)
	}
}

func TestMemorySourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMockRepository().LowEmission().Fetch(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}
