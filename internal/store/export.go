// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes the stored citations to indexDir/export.yaml,
// applying the same filters as Retrieve. A zero MaxResults exports
// everything up to the export ceiling.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	records, err := s.Retrieve(ctx, opts)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(filepath.Join(s.indexDir, "export.yaml"), data, 0o644)
}

// ExportJSON writes the stored citations to indexDir/export.json,
// applying the same filters as Retrieve. A zero MaxResults exports
// everything up to the export ceiling.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	records, err := s.Retrieve(ctx, opts)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(filepath.Join(s.indexDir, "export.json"), data, 0o644)
}
