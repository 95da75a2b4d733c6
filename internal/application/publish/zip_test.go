package publish

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"book-weaver-api/internal/domain/entity"
)

func zipEntries(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader error: %v", err)
	}
	out := make(map[string][]byte)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		out[f.Name] = content
	}
	return out
}

func TestZipExporter_Export(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	coverURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)

	book := entity.NewBook("The Lighthouse Keeper", "Ada", "English", "A keeper uncovers a secret.", coverURI, []*entity.Chapter{
		{Title: "Arrival", Content: "It began with fog."},
		{Title: "The Log/Book", Content: "Pages were missing."},
	})

	data, err := NewZipExporter().Export(context.Background(), book)
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}

	entries := zipEntries(t, data)

	about, ok := entries["00_about.md"]
	if !ok {
		t.Fatal("missing 00_about.md entry")
	}
	if !strings.Contains(string(about), "The Lighthouse Keeper") || !strings.Contains(string(about), "by Ada") {
		t.Errorf("about content = %q", about)
	}

	if _, ok := entries["01_Arrival.md"]; !ok {
		t.Errorf("missing chapter entry, have %v", keysOf(entries))
	}
	// 章节标题中的非法字符被替换
	if _, ok := entries["02_The_Log-Book.md"]; !ok {
		t.Errorf("sanitized chapter entry missing, have %v", keysOf(entries))
	}

	cover, ok := entries["cover.jpg"]
	if !ok {
		t.Fatal("missing cover.jpg entry")
	}
	if !bytes.Equal(cover, jpeg) {
		t.Error("cover bytes do not round-trip")
	}
}

func TestZipExporter_Export_NoCover(t *testing.T) {
	book := entity.NewBook("Plain", "Ada", "English", "s", "", []*entity.Chapter{
		{Title: "Only", Content: "text"},
	})

	data, err := NewZipExporter().Export(context.Background(), book)
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	entries := zipEntries(t, data)
	if _, ok := entries["cover.jpg"]; ok {
		t.Error("unexpected cover entry for book without cover")
	}
	if _, ok := entries["cover.png"]; ok {
		t.Error("unexpected cover entry for book without cover")
	}
}

func keysOf(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Arrival", "Arrival"},
		{"The Log/Book", "The_Log-Book"},
		{`What? "Now" <here>`, "What_Now_here"},
		{"  padded  ", "padded"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLanguageTag(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{"English", "en"},
		{"Italian", "it"},
		{"Chinese (Simplified)", "zh-Hans"},
		{"Japanese", "ja"},
		{"Unknownese", "en"},
	}
	for _, tt := range tests {
		if got := languageTag(tt.language); got != tt.want {
			t.Errorf("languageTag(%q) = %q, want %q", tt.language, got, tt.want)
		}
	}
}
