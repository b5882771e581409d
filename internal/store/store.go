// Package store persists computed products as JSON or YAML files.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/matmul/internal/matrix"
)

// Record is one persisted product C = A*B.
type Record struct {
	ID        string         `json:"id" yaml:"id"`
	A         *matrix.Matrix `json:"a" yaml:"a"`
	B         *matrix.Matrix `json:"b" yaml:"b"`
	C         *matrix.Matrix `json:"c" yaml:"c"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
}

// NewRecord multiplies a by b and wraps the result.
func NewRecord(id string, a, b *matrix.Matrix) (Record, error) {
	c, err := matrix.Multiply(a, b)
	if err != nil {
		return Record{}, err
	}
	return Record{ID: id, A: a, B: b, C: c, Timestamp: time.Now().UTC()}, nil
}

// Validate checks every operand and that C has the product shape.
func (r Record) Validate() error {
	if r.ID == "" {
		return errors.New("record ID is required")
	}
	operands := []struct {
		name string
		m    *matrix.Matrix
	}{{"a", r.A}, {"b", r.B}, {"c", r.C}}
	for _, op := range operands {
		if err := op.m.Validate(); err != nil {
			return fmt.Errorf("%s: %w", op.name, err)
		}
	}
	if r.A.Cols != r.B.Rows {
		return fmt.Errorf("%s * %s: %w", r.A.Shape(), r.B.Shape(), matrix.ErrDimensionMismatch)
	}
	if r.C.Rows != r.A.Rows || r.C.Cols != r.B.Cols {
		return fmt.Errorf("c is %s, want %dx%d: %w", r.C.Shape(), r.A.Rows, r.B.Cols, matrix.ErrDimensionMismatch)
	}
	return nil
}

// Store saves and loads records by ID.
type Store interface {
	Save(ctx context.Context, r Record) error
	Load(ctx context.Context, id string) (Record, error)
}

type codec struct {
	ext       string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

var (
	jsonCodec = codec{
		ext:       ".json",
		marshal:   func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") },
		unmarshal: json.Unmarshal,
	}
	yamlCodec = codec{ext: ".yaml", marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}
)

// FileStore is a directory of one file per record.
type FileStore struct {
	dir   string
	codec codec
}

// NewJSONStore creates a FileStore writing JSON, ensuring the directory exists.
func NewJSONStore(dir string) (*FileStore, error) { return newFileStore(dir, jsonCodec) }

// NewYAMLStore creates a FileStore writing YAML, ensuring the directory exists.
func NewYAMLStore(dir string) (*FileStore, error) { return newFileStore(dir, yamlCodec) }

// New picks the store for format "json" or "yaml".
func New(dir, format string) (*FileStore, error) {
	switch format {
	case "json":
		return NewJSONStore(dir)
	case "yaml", "yml":
		return NewYAMLStore(dir)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func newFileStore(dir string, c codec) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, codec: c}, nil
}

// ErrInvalidID is returned for IDs that would not name a file directly
// inside the store directory.
var ErrInvalidID = errors.New("invalid record ID")

func checkID(id string) error {
	if id == "" || id == "." || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return nil
}

func (s *FileStore) path(id string) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, id+s.codec.ext), nil
}

func (s *FileStore) Save(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("record %q: %w", r.ID, err)
	}

	data, err := s.codec.marshal(r)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	fn, err := s.path(r.ID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	fn, err := s.path(id)
	if err != nil {
		return Record{}, err
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, fmt.Errorf("record %q: %w", id, os.ErrNotExist)
		}
		return Record{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var r Record
	if err := s.codec.unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("unmarshal: %w", err)
	}
	r.ID = id
	if err := r.Validate(); err != nil {
		return Record{}, fmt.Errorf("validation after load: %w", err)
	}
	return r, nil
}
