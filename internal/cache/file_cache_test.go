package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type testEntry struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestFileCacheSetGet(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	fc := NewFileCache[testEntry]("test")
	key := fc.GenerateKey("scene", 42)

	if _, ok := fc.Get(key); ok {
		t.Fatal("unexpected hit before Set")
	}

	want := testEntry{Name: "field-a", Score: 91.5}
	if err := fc.Set(key, want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := fc.Get(key)
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFileCacheChecksumRejectsTamperedEntry(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ROOT_PATH", root)

	fc := NewFileCache[testEntry]("test")
	key := fc.GenerateKey("scene")
	if err := fc.Set(key, testEntry{Name: "a"}); err != nil {
		t.Fatal(err)
	}

	cacheFile := filepath.Join(root, "data", "test", key+".json")
	raw, err := os.ReadFile(cacheFile)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(string(raw), `"name":"a"`, `"name":"b"`, 1)
	if tampered == string(raw) {
		t.Fatal("tampering target not found in cache entry")
	}
	if err := os.WriteFile(cacheFile, []byte(tampered), 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok := fc.Get(key); ok {
		t.Error("tampered entry should fail checksum validation")
	}
}

func TestGenerateFileKeyTracksFileIdentity(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	dir := t.TempDir()
	path := filepath.Join(dir, "scene.raw")
	if err := os.WriteFile(path, []byte("one"), 0644); err != nil {
		t.Fatal(err)
	}

	fc := NewFileCache[testEntry]("test")
	first, err := fc.GenerateFileKey(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("rewritten"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, time.Now(), time.Now().Add(time.Second)); err != nil {
		t.Fatal(err)
	}

	second, err := fc.GenerateFileKey(path)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("key should change when the file changes")
	}

	if _, err := fc.GenerateFileKey(filepath.Join(dir, "absent")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
