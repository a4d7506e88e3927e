package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Metadata is the optional per-project descriptor (catalogue.json). Every
// field is optional; defaults come from the folder itself.
type Metadata struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	OneLiner    string   `json:"oneLiner"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
	Kind        string   `json:"kind"`
	Status      string   `json:"status"`
}

// MetadataSource records where a project's metadata came from, so tests
// can tell "intentionally defaulted" apart from "present but malformed".
type MetadataSource int

const (
	// MetadataNone means no descriptor file exists.
	MetadataNone MetadataSource = iota
	// MetadataFile means the descriptor was read and parsed.
	MetadataFile
	// MetadataMalformed means a descriptor exists but could not be read
	// or parsed; defaults were applied.
	MetadataMalformed
)

// LoadMetadata reads the descriptor file inside dir. It never fails: a
// missing or malformed descriptor yields the zero Metadata and the
// matching source.
func LoadMetadata(dir, filename string) (Metadata, MetadataSource) {
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, MetadataNone
		}
		return Metadata{}, MetadataMalformed
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, MetadataMalformed
	}
	return meta, MetadataFile
}

// applyDefaults fills the documented defaults for absent fields. base is
// the project folder's base name.
func (m Metadata) applyDefaults(base string) Metadata {
	if m.ID == "" {
		m.ID = base
	}
	if m.Title == "" {
		m.Title = base
	}
	if m.OneLiner == "" {
		m.OneLiner = m.Description
	}
	if m.Kind == "" {
		m.Kind = "project"
	}
	if m.Status == "" {
		m.Status = "active"
	}
	return m
}
