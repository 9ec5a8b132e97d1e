package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

func TestWriteSnapshot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "archive")
	store := NewArchiveStore(root)

	deletedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	snapshot := &domain.DeletionSnapshot{
		ID:               "snap-1",
		UserID:           "user-1",
		EmailHash:        "abc123",
		TransactionCount: 4,
		PaymentCount:     2,
		TotalBought:      31000,
		TotalSold:        12500,
		DeletedAt:        deletedAt,
	}

	if err := store.WriteSnapshot(snapshot); err != nil {
		t.Fatalf("WriteSnapshot returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "deleted_user_user-1_2026-08-31.json"))
	if err != nil {
		t.Fatalf("snapshot file not written: %v", err)
	}

	var decoded domain.DeletionSnapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if decoded.UserID != "user-1" || decoded.TransactionCount != 4 {
		t.Errorf("decoded snapshot = %+v, want original values", decoded)
	}
	if decoded.TotalBought != 31000 {
		t.Errorf("TotalBought = %v, want 31000", decoded.TotalBought)
	}
}

func TestWriteSnapshotLeavesNoTempFiles(t *testing.T) {
	root := filepath.Join(t.TempDir(), "archive")
	store := NewArchiveStore(root)

	snapshot := &domain.DeletionSnapshot{
		ID:        "snap-1",
		UserID:    "user-1",
		DeletedAt: time.Now(),
	}
	if err := store.WriteSnapshot(snapshot); err != nil {
		t.Fatalf("WriteSnapshot returned error: %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, len(entries))
		for i, entry := range entries {
			names[i] = entry.Name()
		}
		t.Errorf("archive contains %v, want exactly the snapshot file", names)
	}
}
