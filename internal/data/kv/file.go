package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-step-monitor/internal/util"
)

const fileFormatVersion = 1

type fileRecord struct {
	Type   string   `json:"type"`
	Int    *int64   `json:"int,omitempty"`
	Float  *float64 `json:"float,omitempty"`
	String *string  `json:"string,omitempty"`
}

type fileDocument struct {
	Version   int                   `json:"version"`
	UpdatedAt time.Time             `json:"updated_at"`
	Values    map[string]fileRecord `json:"values"`
}

// FileStore persists all keys in one JSON document. Every Apply rewrites
// the document through a temp file and a rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path, creating its directory
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Snapshot() (map[string]Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Apply(batch *Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	batch.applyTo(values)
	return s.write(values)
}

func (s *FileStore) Close() error {
	return nil
}

// load reads the document. A missing file is an empty store; an unreadable
// document is logged and also treated as empty.
func (s *FileStore) load() (map[string]Value, error) {
	values := make(map[string]Value)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read store %s: %w", s.path, err)
	}

	var doc fileDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		util.LogWarn("Store document is corrupt, starting empty", util.F("path", s.path), util.F("error", err.Error()))
		return values, nil
	}

	for key, rec := range doc.Values {
		v, ok := rec.decode()
		if !ok {
			util.LogDebugf("Skipping malformed store record %q (type %q)", key, rec.Type)
			continue
		}
		values[key] = v
	}
	return values, nil
}

func (s *FileStore) write(values map[string]Value) error {
	doc := fileDocument{
		Version:   fileFormatVersion,
		UpdatedAt: time.Now().UTC(),
		Values:    make(map[string]fileRecord, len(values)),
	}
	for key, v := range values {
		doc.Values[key] = encodeRecord(v)
	}

	data, err := sonic.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store: %w", err)
	}

	util.LogDebugf("Saved %d keys to %s", len(values), s.path)
	return nil
}

func encodeRecord(v Value) fileRecord {
	rec := fileRecord{Type: v.Kind.String()}
	switch v.Kind {
	case KindInt:
		i := v.Int
		rec.Int = &i
	case KindFloat:
		f := v.Float
		rec.Float = &f
	case KindString:
		str := v.Str
		rec.String = &str
	}
	return rec
}

func (r fileRecord) decode() (Value, bool) {
	switch r.Type {
	case "int":
		if r.Int != nil {
			return IntValue(*r.Int), true
		}
	case "float":
		if r.Float != nil {
			return FloatValue(*r.Float), true
		}
	case "string":
		if r.String != nil {
			return StringValue(*r.String), true
		}
	}
	return Value{}, false
}
