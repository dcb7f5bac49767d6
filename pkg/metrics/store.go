package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Store persists sample batches as flat JSON files under one directory.
type Store struct {
	dir string
}

// NewStore prepares the batch directory, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("metrics: store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("metrics: create store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir reports the directory batches are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Write persists a batch as <category>-<timestamp>.json and returns the file
// path. The recorded-at moment names the file; a zero value defaults to now.
func (s *Store) Write(batch Batch) (string, error) {
	if strings.TrimSpace(batch.Category) == "" {
		return "", fmt.Errorf("metrics: batch category is required")
	}
	if batch.RecordedAt.IsZero() {
		batch.RecordedAt = time.Now()
	}

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", fmt.Errorf("metrics: marshal batch %q: %w", batch.Category, err)
	}

	name := fmt.Sprintf("%s-%s.json", batch.Category, FileTimestamp(batch.RecordedAt))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("metrics: write batch %q: %w", batch.Category, err)
	}
	return path, nil
}

// LoadBatches reads every batch file in the directory, sorted by file name so
// batches come back in recording order.
func (s *Store) LoadBatches() ([]Batch, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("metrics: read store directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	batches := make([]Batch, 0, len(names))
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("metrics: read batch %s: %w", name, err)
		}
		var batch Batch
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("metrics: decode batch %s: %w", name, err)
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// LoadSamples flattens every stored batch into one sample list.
func (s *Store) LoadSamples() ([]Sample, error) {
	batches, err := s.LoadBatches()
	if err != nil {
		return nil, err
	}
	var samples []Sample
	for _, batch := range batches {
		samples = append(samples, batch.Samples...)
	}
	return samples, nil
}
