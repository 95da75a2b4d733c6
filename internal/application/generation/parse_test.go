package generation

import (
	"strings"
	"testing"

	apperrors "book-weaver-api/pkg/errors"
)

const validOutlineJSON = `{
	"title": "The Lighthouse Keeper",
	"synopsis": "A keeper uncovers a decades-old secret.",
	"outline": [
		{"chapter_title": "Arrival", "chapter_summary": "The keeper takes the post."},
		{"chapter_title": "The Logbook", "chapter_summary": "An old logbook surfaces."}
	]
}`

func TestParseOutline_ValidJSON(t *testing.T) {
	outline, err := ParseOutline(validOutlineJSON)
	if err != nil {
		t.Fatalf("ParseOutline error: %v", err)
	}
	if outline.Title != "The Lighthouse Keeper" {
		t.Errorf("Title = %q", outline.Title)
	}
	if len(outline.Chapters) != 2 {
		t.Fatalf("len(Chapters) = %d, want 2", len(outline.Chapters))
	}
	if outline.Chapters[1].Summary != "An old logbook surfaces." {
		t.Errorf("Chapters[1].Summary = %q", outline.Chapters[1].Summary)
	}
}

func TestParseOutline_FencedJSON(t *testing.T) {
	fenced := "Here is the outline:\n```json\n" + validOutlineJSON + "\n```\nHope you like it!"

	outline, err := ParseOutline(fenced)
	if err != nil {
		t.Fatalf("ParseOutline error: %v", err)
	}
	if len(outline.Chapters) != 2 {
		t.Errorf("len(Chapters) = %d, want 2", len(outline.Chapters))
	}
}

func TestParseOutline_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty output", ""},
		{"no json at all", "I could not produce an outline, sorry."},
		{"malformed json", `{"title": "Oops", "outline": [`},
		{"missing title", `{"synopsis": "s", "outline": [{"chapter_title": "c"}]}`},
		{"missing synopsis", `{"title": "t", "outline": [{"chapter_title": "c"}]}`},
		{"empty outline", `{"title": "t", "synopsis": "s", "outline": []}`},
		{"chapter without title", `{"title": "t", "synopsis": "s", "outline": [{"chapter_summary": "only summary"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOutline(tt.raw)
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperrors.IsCode(err, apperrors.CodeContractViolation) {
				t.Errorf("error code = %v, want CodeContractViolation", err)
			}
			if !strings.Contains(apperrors.AsAppError(err).Message, "valid book outline") {
				t.Errorf("unexpected message: %v", err)
			}
		})
	}
}
