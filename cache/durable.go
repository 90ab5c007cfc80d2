package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"
)

// DurableBackend persists the durable tier as one document that is read and
// rewritten as a whole.
type DurableBackend interface {
	Load() (map[string]Record, error)
	Save(doc map[string]Record) error
}

// documentEntry is the on-disk shape of one record. UTF-8 payloads are stored
// verbatim as a string; anything else is stored base64-encoded under "raw".
type documentEntry struct {
	Payload   string `json:"payload,omitempty"`
	Raw       []byte `json:"raw,omitempty"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
}

func encodeDocument(doc map[string]Record) ([]byte, error) {
	out := make(map[string]documentEntry, len(doc))
	for key, record := range doc {
		entry := documentEntry{CreatedAt: record.CreatedAt, ExpiresAt: record.ExpiresAt}
		if utf8.Valid(record.Payload) {
			entry.Payload = string(record.Payload)
		} else {
			entry.Raw = record.Payload
		}
		out[key] = entry
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeDocument(data []byte) (map[string]Record, error) {
	doc := make(map[string]Record)
	if len(data) == 0 {
		return doc, nil
	}

	var entries map[string]documentEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode durable document: %w", err)
	}

	for key, entry := range entries {
		payload := []byte(entry.Payload)
		if entry.Raw != nil {
			payload = entry.Raw
		}
		doc[key] = Record{
			Key:       key,
			Payload:   payload,
			CreatedAt: entry.CreatedAt,
			ExpiresAt: entry.ExpiresAt,
			Tier:      TierDurable,
		}
	}
	return doc, nil
}

// pruneExpired removes every record expired at now and returns how many were removed
func pruneExpired(doc map[string]Record, now time.Time) int {
	removed := 0
	for key, record := range doc {
		if record.Expired(now) {
			delete(doc, key)
			removed++
		}
	}
	return removed
}

// FileBackend stores the durable document as a JSON file
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend for the document at path
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the document location
func (b *FileBackend) Path() string {
	return b.path
}

// Load reads the document. A missing file is an empty document.
func (b *FileBackend) Load() (map[string]Record, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]Record), nil
		}
		return nil, fmt.Errorf("read durable document: %w", err)
	}
	return decodeDocument(data)
}

// Save replaces the document atomically via a temp file and rename
func (b *FileBackend) Save(doc map[string]Record) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encode durable document: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp document: %w", err)
	}

	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace durable document: %w", err)
	}
	return nil
}

// NewDurableBackend builds the backend selected by cfg. BackendNone yields nil.
func NewDurableBackend(ctx context.Context, cfg DurableConfig) (DurableBackend, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileBackend(cfg.Path), nil
	case BackendRedis:
		backend, err := NewRedisBackend(ctx, cfg.RedisAddr, cfg.RedisKey)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown durable backend %q", cfg.Backend)
	}
}
