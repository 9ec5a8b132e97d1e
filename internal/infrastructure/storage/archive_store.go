package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// ArchiveStore writes deletion snapshots to the long-retention archive
// root, a separate tree from live file storage. Writes go through a
// temp file and rename so a crashed write never leaves a torn snapshot.
type ArchiveStore struct {
	Root string
}

func NewArchiveStore(root string) *ArchiveStore {
	return &ArchiveStore{Root: root}
}

func (s *ArchiveStore) WriteSnapshot(snapshot *domain.DeletionSnapshot) error {
	if err := os.MkdirAll(s.Root, 0o750); err != nil {
		return fmt.Errorf("creating archive root: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	name := fmt.Sprintf("deleted_user_%s_%s.json", snapshot.UserID, snapshot.DeletedAt.Format("2006-01-02"))
	final := filepath.Join(s.Root, name)

	tmp, err := os.CreateTemp(s.Root, name+".tmp")
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publishing snapshot: %w", err)
	}

	return nil
}
