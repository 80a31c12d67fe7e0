package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SemesterSnapshot is the persisted result set for one semester label.
// At most one row per label exists; a new run for the same label replaces
// the previous snapshot wholesale.
type SemesterSnapshot struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Semester   string         `json:"semester" gorm:"type:varchar(16);not null;uniqueIndex"`
	CapturedAt time.Time      `json:"date" gorm:"not null"`
	Results    datatypes.JSON `json:"results" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for SemesterSnapshot
func (SemesterSnapshot) TableName() string {
	return "semester_snapshots"
}

// NewSemesterSnapshot creates a snapshot for the given label stamped with the
// given capture time.
func NewSemesterSnapshot(label string, capturedAt time.Time, results []TeacherRollup) (*SemesterSnapshot, error) {
	if results == nil {
		results = []TeacherRollup{}
	}
	payload, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rollups: %w", err)
	}
	return &SemesterSnapshot{
		ID:         uuid.New(),
		Semester:   label,
		CapturedAt: capturedAt,
		Results:    datatypes.JSON(payload),
	}, nil
}

// Rollups decodes the stored result set.
func (s *SemesterSnapshot) Rollups() ([]TeacherRollup, error) {
	if len(s.Results) == 0 {
		return []TeacherRollup{}, nil
	}
	var rollups []TeacherRollup
	if err := json.Unmarshal(s.Results, &rollups); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot results: %w", err)
	}
	return rollups, nil
}
