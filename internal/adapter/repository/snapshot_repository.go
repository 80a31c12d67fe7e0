package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/coursepulse/internal/domain/entities"
	repo "github.com/johnquangdev/coursepulse/internal/domain/repositories"
)

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a snapshot repository backed by GORM
func NewSnapshotRepository(db *gorm.DB) repo.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Replace(ctx context.Context, s *entities.SemesterSnapshot) error {
	// Single-statement upsert keyed by semester. A concurrent request for the
	// same label resolves last-writer-wins; no read-modify-write.
	q := `INSERT INTO semester_snapshots (id, semester, captured_at, results, created_at)
        VALUES (?, ?, ?, ?::jsonb, ?)
        ON CONFLICT (semester) DO UPDATE SET captured_at = EXCLUDED.captured_at, results = EXCLUDED.results, updated_at = NOW()`

	return r.db.WithContext(ctx).
		Exec(q, s.ID, s.Semester, s.CapturedAt, string(s.Results), time.Now()).Error
}

func (r *snapshotRepository) FindBySemester(ctx context.Context, label string) (*entities.SemesterSnapshot, error) {
	row := r.db.WithContext(ctx).
		Raw(`SELECT id, semester, captured_at, results::text AS results, created_at FROM semester_snapshots WHERE semester = ? LIMIT 1`, label).
		Row()

	var res struct {
		ID         string
		Semester   string
		CapturedAt time.Time
		Results    string
		CreatedAt  time.Time
	}
	if err := row.Scan(&res.ID, &res.Semester, &res.CapturedAt, &res.Results, &res.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	s := &entities.SemesterSnapshot{
		Semester:   res.Semester,
		CapturedAt: res.CapturedAt,
		Results:    datatypes.JSON(res.Results),
		CreatedAt:  res.CreatedAt,
	}
	if id, err := uuid.Parse(res.ID); err == nil {
		s.ID = id
	}
	return s, nil
}
