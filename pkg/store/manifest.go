package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes one persisted dataset: where it came from, under what
// license, and which file holds the data. Importers write it next to
// data.json; the store reads it back for provenance reporting.
type Manifest struct {
	ID        string `yaml:"id" json:"id"`
	Version   string `yaml:"version" json:"version"`
	Dataset   string `yaml:"dataset" json:"dataset"`
	Source    string `yaml:"source" json:"source"`
	SourceURL string `yaml:"source_url" json:"source_url,omitempty"`
	License   string `yaml:"license" json:"license"`
	DataFile  string `yaml:"data_file" json:"data_file"`
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", path)
	}
	if m.DataFile == "" {
		m.DataFile = "data.json"
	}
	return &m, nil
}

// WriteManifest writes a Manifest as YAML to dir/manifest.yaml.
func WriteManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "manifest.yaml"), data, 0o644)
}
