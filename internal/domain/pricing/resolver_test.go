package pricing

import (
	"testing"

	"book-weaver-api/internal/domain/entity"
)

func tiers(pairs ...[2]int) []*entity.CostTier {
	out := make([]*entity.CostTier, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, &entity.CostTier{MaxPages: p[0], Credits: p[1]})
	}
	return out
}

func TestResolve(t *testing.T) {
	standard := tiers([2]int{30, 100}, [2]int{100, 300}, [2]int{200, 500})

	tests := []struct {
		name     string
		pages    int
		tiers    []*entity.CostTier
		want     int
		wantOK   bool
	}{
		{"below first tier boundary", 20, standard, 100, true},
		{"exactly first tier boundary", 30, standard, 100, true},
		{"between tiers picks next", 50, standard, 300, true},
		{"exactly last tier boundary", 200, standard, 500, true},
		{"above all tiers is unpriceable", 250, standard, 0, false},
		{"no tiers at all", 50, nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.pages, tt.tiers)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("credits = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolve_UnsortedTiersPickSmallestCoveringTier(t *testing.T) {
	unsorted := tiers([2]int{200, 500}, [2]int{30, 100}, [2]int{100, 300})

	got, ok := Resolve(50, unsorted)
	if !ok {
		t.Fatal("expected pages 50 to be priced")
	}
	if got != 300 {
		t.Errorf("credits = %d, want 300 (smallest covering tier)", got)
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	unsorted := tiers([2]int{200, 500}, [2]int{30, 100})

	Resolve(50, unsorted)

	if unsorted[0].MaxPages != 200 {
		t.Error("Resolve reordered the caller's tier slice")
	}
}
