package entity

import "testing"

func validRequest() *GenerationRequest {
	return &GenerationRequest{
		Description: "A mystery novel set in a lighthouse",
		Pages:       60,
		AuthorName:  "Ada Lovelace",
		Language:    "English",
	}
}

func TestGenerationRequest_Validate(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	t.Run("missing description", func(t *testing.T) {
		r := validRequest()
		r.Description = "  "
		if err := r.Validate(); err == nil {
			t.Error("expected error for blank description")
		}
	})

	t.Run("missing author", func(t *testing.T) {
		r := validRequest()
		r.AuthorName = ""
		if err := r.Validate(); err == nil {
			t.Error("expected error for missing author_name")
		}
	})

	t.Run("pages below minimum", func(t *testing.T) {
		r := validRequest()
		r.Pages = MinPages - 1
		if err := r.Validate(); err == nil {
			t.Error("expected error for pages below 30")
		}
	})

	t.Run("pages above maximum", func(t *testing.T) {
		r := validRequest()
		r.Pages = MaxPages + 1
		if err := r.Validate(); err == nil {
			t.Error("expected error for pages above 300")
		}
	})

	t.Run("boundary pages accepted", func(t *testing.T) {
		for _, pages := range []int{MinPages, MaxPages} {
			r := validRequest()
			r.Pages = pages
			if err := r.Validate(); err != nil {
				t.Errorf("pages = %d rejected: %v", pages, err)
			}
		}
	})

	t.Run("unsupported language", func(t *testing.T) {
		r := validRequest()
		r.Language = "Klingon"
		if err := r.Validate(); err == nil {
			t.Error("expected error for unsupported language")
		}
	})

	t.Run("all supported languages accepted", func(t *testing.T) {
		for _, lang := range SupportedLanguages {
			r := validRequest()
			r.Language = lang
			if err := r.Validate(); err != nil {
				t.Errorf("language %q rejected: %v", lang, err)
			}
		}
	})
}

func TestGenerationRequest_HasUserTitle(t *testing.T) {
	r := validRequest()
	if r.HasUserTitle() {
		t.Error("HasUserTitle() = true for empty title")
	}
	r.Title = "   "
	if r.HasUserTitle() {
		t.Error("HasUserTitle() = true for whitespace title")
	}
	r.Title = "The Lighthouse"
	if !r.HasUserTitle() {
		t.Error("HasUserTitle() = false for set title")
	}
}
