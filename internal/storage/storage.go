package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ilearnics/internal/assignment"
)

// Storage handles persistence of assignment snapshots
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// getSnapshotPath returns the path to the snapshot file for a feed source
func (s *Storage) getSnapshotPath(source string) string {
	if source == "" {
		return filepath.Join(s.dataDir, "snapshot.json")
	}
	return filepath.Join(s.dataDir, fmt.Sprintf("snapshot_%s.json", sanitizeSource(source)))
}

// sanitizeSource keeps snapshot filenames flat even when the source name
// carries path separators or spaces.
func sanitizeSource(source string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", " ", "_")
	return replacer.Replace(strings.TrimSpace(source))
}

// LoadSnapshot loads a snapshot from disk
func (s *Storage) LoadSnapshot(source string) (*assignment.Snapshot, error) {
	path := s.getSnapshotPath(source)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No previous snapshot, return empty one
			return assignment.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot assignment.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	// Ensure Records map is initialized
	if snapshot.Records == nil {
		snapshot.Records = make(map[string]*assignment.Record)
	}

	return &snapshot, nil
}

// SaveSnapshot saves a snapshot to disk
func (s *Storage) SaveSnapshot(snapshot *assignment.Snapshot, source string) error {
	path := s.getSnapshotPath(source)

	// Set updated timestamp
	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// CreateSnapshotFromRecords creates and saves a snapshot from a list of records
func (s *Storage) CreateSnapshotFromRecords(records []*assignment.Record, source string) error {
	snapshot := assignment.CreateSnapshot(records, time.Now().UTC().Format(time.RFC3339))
	return s.SaveSnapshot(snapshot, source)
}
