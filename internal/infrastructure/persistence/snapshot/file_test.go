package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_LoadMissingReturnsNil(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	data, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if data != nil {
		t.Errorf("Load of missing file = %q, want nil", data)
	}
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	payload := []byte(`{"users":[]}`)
	if err := store.Save(context.Background(), payload); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Load = %q, want %q", got, payload)
	}

	// 保存不留临时文件
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after save")
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	if err := store.Save(context.Background(), []byte("one")); err != nil {
		t.Fatalf("first Save error: %v", err)
	}
	if err := store.Save(context.Background(), []byte("two")); err != nil {
		t.Fatalf("second Save error: %v", err)
	}

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if string(got) != "two" {
		t.Errorf("Load = %q, want %q", got, "two")
	}
}
