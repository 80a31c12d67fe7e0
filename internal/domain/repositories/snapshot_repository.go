package repositories

import (
	"context"

	"github.com/johnquangdev/coursepulse/internal/domain/entities"
)

// SnapshotRepository persists semester snapshots.
type SnapshotRepository interface {
	// Replace atomically replaces any existing snapshot for the snapshot's
	// semester label (single-statement upsert, not read-modify-write).
	Replace(ctx context.Context, snapshot *entities.SemesterSnapshot) error

	// FindBySemester returns the stored snapshot for a label, or (nil, nil)
	// when no snapshot exists. Absence is a valid state, not an error.
	FindBySemester(ctx context.Context, label string) (*entities.SemesterSnapshot, error)
}
