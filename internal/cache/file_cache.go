package cache

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cropscope/cropscope-research-cli/internal/properties"
)

type CacheEntry[T any] struct {
	Data      T         `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	Checksum  string    `json:"checksum"`
}

// FileCache stores analysis results as JSON files under data/<subDir>. An
// md5 checksum over the payload invalidates entries written by older result
// shapes.
type FileCache[T any] struct {
	cacheDir string
}

func NewFileCache[T any](subDir string) *FileCache[T] {
	cacheDir := filepath.Join(properties.RootPath()+"/data", subDir)
	return &FileCache[T]{
		cacheDir: cacheDir,
	}
}

func (fc *FileCache[T]) GenerateKey(params ...interface{}) string {
	var keyData string
	for _, param := range params {
		keyData += fmt.Sprintf("%v_", param)
	}
	h := sha1.New()
	h.Write([]byte(keyData))
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateFileKey keys a cache entry to a source file's identity: its path,
// size and modification time. Re-acquired imagery invalidates naturally.
func (fc *FileCache[T]) GenerateFileKey(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat cache source %s: %w", path, err)
	}
	return fc.GenerateKey(path, info.Size(), info.ModTime().UnixNano()), nil
}

func (fc *FileCache[T]) Get(key string) (T, bool) {
	var zero T
	cacheFile := filepath.Join(fc.cacheDir, key+".json")

	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return zero, false
	}

	var entry CacheEntry[T]
	if err := json.Unmarshal(data, &entry); err != nil {
		return zero, false
	}

	expectedChecksum := fc.calculateChecksum(entry.Data)
	if entry.Checksum != expectedChecksum {
		return zero, false
	}

	return entry.Data, true
}

func (fc *FileCache[T]) Set(key string, data T) error {
	if err := os.MkdirAll(fc.cacheDir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	entry := CacheEntry[T]{
		Data:      data,
		CreatedAt: time.Now(),
		Checksum:  fc.calculateChecksum(data),
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	cacheFile := filepath.Join(fc.cacheDir, key+".json")
	tmpFile := cacheFile + ".tmp"

	if err := os.WriteFile(tmpFile, jsonData, 0644); err != nil {
		return fmt.Errorf("writing temp cache file: %w", err)
	}

	if err := os.Rename(tmpFile, cacheFile); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("renaming temp cache file: %w", err)
	}

	return nil
}

func (fc *FileCache[T]) calculateChecksum(data T) string {
	jsonData, _ := json.Marshal(data)
	hash := md5.Sum(jsonData)
	return hex.EncodeToString(hash[:])
}
