// Package snapshot persists the in-memory store to a single JSON file.
// The whole state is rewritten on every save; the format stays
// human-readable and needs no write-ahead log at this write volume.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"todoapi/internal/domain"
	"todoapi/internal/repository"
)

// Gateway binds a memory repository to its snapshot file.
type Gateway struct {
	path string
	repo *repository.MemoryRepository
}

func NewGateway(path string, repo *repository.MemoryRepository) *Gateway {
	return &Gateway{path: path, repo: repo}
}

// Path returns the snapshot file location.
func (g *Gateway) Path() string {
	return g.path
}

// Load reads the snapshot into the repository. A missing file is a cold
// start: the repository stays empty and an empty snapshot is written so
// the file materializes on first run. On any other failure the repository
// is left untouched and the error is returned for the caller to log; it
// is never fatal.
func (g *Gateway) Load() error {
	data, err := os.ReadFile(g.path)
	if errors.Is(err, os.ErrNotExist) {
		return g.Save()
	}
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", g.path, err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse snapshot %s: %w", g.path, err)
	}
	g.repo.Restore(snap)
	return nil
}

// Save overwrites the snapshot file with the full current store state.
func (g *Gateway) Save() error {
	data, err := json.MarshalIndent(g.repo.State(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(g.path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", g.path, err)
	}
	return nil
}
