package generation

import "testing"

func TestPlanChapterCount(t *testing.T) {
	tests := []struct {
		pages int
		want  int
	}{
		{30, 5},   // round(3) = 3, clamped to minimum 5
		{45, 5},   // round(4.5) = 5
		{54, 5},   // round(5.4) = 5
		{55, 6},   // round(5.5) rounds up
		{100, 10},
		{104, 10},
		{105, 11},
		{300, 30},
	}

	for _, tt := range tests {
		if got := PlanChapterCount(tt.pages); got != tt.want {
			t.Errorf("PlanChapterCount(%d) = %d, want %d", tt.pages, got, tt.want)
		}
	}
}

func TestPlanWordsPerChapter(t *testing.T) {
	tests := []struct {
		pages    int
		chapters int
		want     int
	}{
		{100, 10, 3000}, // 30000 / 10
		{30, 5, 1800},   // 9000 / 5
		{50, 7, 2143},   // round(15000 / 7)
		{100, 0, 0},     // no chapters means no budget
	}

	for _, tt := range tests {
		if got := PlanWordsPerChapter(tt.pages, tt.chapters); got != tt.want {
			t.Errorf("PlanWordsPerChapter(%d, %d) = %d, want %d", tt.pages, tt.chapters, got, tt.want)
		}
	}
}
