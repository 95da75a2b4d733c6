package entity

import (
	"testing"

	apperrors "book-weaver-api/pkg/errors"
)

func TestDefaultAdminConfig(t *testing.T) {
	cfg := DefaultAdminConfig()

	if len(cfg.CostTiers) != 4 {
		t.Fatalf("len(CostTiers) = %d, want 4", len(cfg.CostTiers))
	}
	want := []struct{ maxPages, credits int }{
		{30, 100}, {100, 300}, {200, 500}, {300, 750},
	}
	for i, w := range want {
		if cfg.CostTiers[i].MaxPages != w.maxPages || cfg.CostTiers[i].Credits != w.credits {
			t.Errorf("tier[%d] = (%d, %d), want (%d, %d)",
				i, cfg.CostTiers[i].MaxPages, cfg.CostTiers[i].Credits, w.maxPages, w.credits)
		}
	}

	if !cfg.BirthdayBonus.Enabled {
		t.Error("BirthdayBonus.Enabled = false, want true")
	}
	if cfg.BirthdayBonus.Credits != 250 {
		t.Errorf("BirthdayBonus.Credits = %d, want 250", cfg.BirthdayBonus.Credits)
	}
}

func TestAdminConfig_AddTier_KeepsAscendingOrder(t *testing.T) {
	cfg := &AdminConfig{}

	for _, maxPages := range []int{200, 50, 120} {
		if _, err := cfg.AddTier(maxPages, maxPages*2); err != nil {
			t.Fatalf("AddTier(%d) error: %v", maxPages, err)
		}
	}

	got := []int{}
	for _, tier := range cfg.CostTiers {
		got = append(got, tier.MaxPages)
	}
	want := []int{50, 120, 200}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tier order = %v, want %v", got, want)
		}
	}
}

func TestAdminConfig_AddTier_RejectsDuplicatePageCount(t *testing.T) {
	cfg := &AdminConfig{}
	if _, err := cfg.AddTier(100, 300); err != nil {
		t.Fatalf("first AddTier error: %v", err)
	}

	_, err := cfg.AddTier(100, 999)
	if err == nil {
		t.Fatal("expected error for duplicate max_pages")
	}
	if !apperrors.IsCode(err, apperrors.CodeDuplicateTier) {
		t.Errorf("error code = %v, want CodeDuplicateTier", err)
	}
	if len(cfg.CostTiers) != 1 {
		t.Errorf("len(CostTiers) = %d, want 1", len(cfg.CostTiers))
	}
}

func TestAdminConfig_AddTier_RejectsNonPositiveValues(t *testing.T) {
	cfg := &AdminConfig{}

	if _, err := cfg.AddTier(0, 100); err == nil {
		t.Error("expected error for max_pages = 0")
	}
	if _, err := cfg.AddTier(100, 0); err == nil {
		t.Error("expected error for credits = 0")
	}
	if _, err := cfg.AddTier(-5, -5); err == nil {
		t.Error("expected error for negative values")
	}
}

func TestAdminConfig_RemoveTier(t *testing.T) {
	cfg := &AdminConfig{}
	tier, err := cfg.AddTier(100, 300)
	if err != nil {
		t.Fatalf("AddTier error: %v", err)
	}

	if !cfg.RemoveTier(tier.ID) {
		t.Error("RemoveTier(existing) = false, want true")
	}
	if len(cfg.CostTiers) != 0 {
		t.Errorf("len(CostTiers) = %d, want 0", len(cfg.CostTiers))
	}
	if cfg.RemoveTier("missing-id") {
		t.Error("RemoveTier(missing) = true, want false")
	}
}
