// Package manifest describes a generator run as a JSON document.
//
// The document is built as a protobuf Struct and rendered with protojson so
// that field names and number formatting are stable across Go versions.
package manifest

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrInvalid indicates a manifest document that is missing required fields.
var ErrInvalid = errors.New("manifest: invalid document")

// Subset describes one written subset file.
type Subset struct {
	Name     string
	File     string
	Profiles int
	Rows     int
	Bytes    int
}

// Run describes one generator run.
type Run struct {
	ID        string
	Seed      *uint64
	CreatedAt time.Time
	Source    string
	Languages int
	Profiles  int
	Subsets   []Subset
}

// NewID returns a fresh run identifier.
func NewID() string {
	return uuid.NewString()
}

// Struct converts r to a protobuf Struct. The seed is stored as a decimal
// string because JSON numbers cannot hold every uint64.
func (r Run) Struct() (*structpb.Struct, error) {
	subsets := make([]any, 0, len(r.Subsets))
	for _, s := range r.Subsets {
		subsets = append(subsets, map[string]any{
			"name":     s.Name,
			"file":     s.File,
			"profiles": s.Profiles,
			"rows":     s.Rows,
			"bytes":    s.Bytes,
		})
	}

	fields := map[string]any{
		"id":         r.ID,
		"created_at": r.CreatedAt.UTC().Format(time.RFC3339),
		"source":     r.Source,
		"languages":  r.Languages,
		"profiles":   r.Profiles,
		"subsets":    subsets,
	}
	if r.Seed != nil {
		fields["seed"] = strconv.FormatUint(*r.Seed, 10)
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("building manifest: %w", err)
	}
	return s, nil
}

// Marshal renders r as indented JSON.
func Marshal(r Run) ([]byte, error) {
	s, err := r.Struct()
	if err != nil {
		return nil, err
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal parses a document produced by Marshal.
func Unmarshal(data []byte) (Run, error) {
	var s structpb.Struct
	if err := protojson.Unmarshal(data, &s); err != nil {
		return Run{}, fmt.Errorf("decoding manifest: %w", err)
	}
	f := s.GetFields()

	id := f["id"].GetStringValue()
	if id == "" {
		return Run{}, fmt.Errorf("%w: missing id", ErrInvalid)
	}
	r := Run{
		ID:        id,
		Source:    f["source"].GetStringValue(),
		Languages: int(f["languages"].GetNumberValue()),
		Profiles:  int(f["profiles"].GetNumberValue()),
	}

	if ts := f["created_at"].GetStringValue(); ts != "" {
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return Run{}, fmt.Errorf("%w: created_at: %w", ErrInvalid, err)
		}
		r.CreatedAt = t
	}

	if v, ok := f["seed"]; ok {
		seed, err := strconv.ParseUint(v.GetStringValue(), 10, 64)
		if err != nil {
			return Run{}, fmt.Errorf("%w: seed: %w", ErrInvalid, err)
		}
		r.Seed = &seed
	}

	for _, v := range f["subsets"].GetListValue().GetValues() {
		sf := v.GetStructValue().GetFields()
		r.Subsets = append(r.Subsets, Subset{
			Name:     sf["name"].GetStringValue(),
			File:     sf["file"].GetStringValue(),
			Profiles: int(sf["profiles"].GetNumberValue()),
			Rows:     int(sf["rows"].GetNumberValue()),
			Bytes:    int(sf["bytes"].GetNumberValue()),
		})
	}
	return r, nil
}
