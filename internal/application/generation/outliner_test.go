package generation

import (
	"testing"

	"book-weaver-api/internal/domain/entity"
)

func TestApplyUserTitle(t *testing.T) {
	t.Run("user title overrides model title", func(t *testing.T) {
		outline := &Outline{Title: "Model Title", Synopsis: "s"}
		req := &entity.GenerationRequest{Title: "  My Own Title  "}

		applyUserTitle(outline, req)

		if outline.Title != "My Own Title" {
			t.Errorf("title = %q, want %q", outline.Title, "My Own Title")
		}
	})

	t.Run("blank user title keeps model title", func(t *testing.T) {
		outline := &Outline{Title: "Model Title", Synopsis: "s"}
		req := &entity.GenerationRequest{Title: "   "}

		applyUserTitle(outline, req)

		if outline.Title != "Model Title" {
			t.Errorf("title = %q, want %q", outline.Title, "Model Title")
		}
	})
}
