package services

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"superstore-dashboard/internal/models"
)

const snapshotVersion = "v1"

type tableSnapshot struct {
	Records  []models.Record
	StoredAt time.Time
}

func snapshotFilename(dir, csvPath string) string {
	name := strings.ReplaceAll(filepath.Clean(csvPath), string(filepath.Separator), "_")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.gob", name, snapshotVersion))
}

// saveSnapshot stores the parsed records so the next start can skip parsing.
func saveSnapshot(dir, csvPath string, t *Table) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	file, err := os.Create(snapshotFilename(dir, csvPath))
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewEncoder(file).Encode(tableSnapshot{
		Records:  t.records,
		StoredAt: time.Now(),
	})
}

// loadSnapshot returns the stored table when it is newer than the csv file.
func loadSnapshot(dir, csvPath string) (*Table, error) {
	info, err := os.Stat(csvPath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(snapshotFilename(dir, csvPath))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var snap tableSnapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, err
	}
	if !info.ModTime().Before(snap.StoredAt) {
		return nil, fmt.Errorf("snapshot older than %s", csvPath)
	}
	if len(snap.Records) == 0 {
		return nil, ErrNoRecords
	}
	return NewTable(snap.Records), nil
}
