package feedback

import (
	"sort"
	"strings"

	apperrors "github.com/johnquangdev/coursepulse/errors"
	"github.com/johnquangdev/coursepulse/internal/domain/entities"
)

// InputShape identifies which of the two accepted spreadsheet layouts a
// table matched.
type InputShape int

const (
	// ShapeRowPerComment has teacher, subject and comment columns; one
	// comment per row.
	ShapeRowPerComment InputShape = iota
	// ShapeColumnPerTeacher has one column per teacher; comments run down
	// each column.
	ShapeColumnPerTeacher
)

func (s InputShape) String() string {
	switch s {
	case ShapeRowPerComment:
		return "row_per_comment"
	case ShapeColumnPerTeacher:
		return "column_per_teacher"
	default:
		return "unknown"
	}
}

// Header aliases accepted for the row-per-comment layout, matched
// case-insensitively after trimming.
var (
	teacherAliases = []string{"teacher", "profesor", "professor", "docente"}
	subjectAliases = []string{"subject", "materia", "asignatura", "course"}
	commentAliases = []string{"comment", "criticism", "critica", "crítica", "feedback", "comentario"}
)

// Normalize detects the table layout and flattens it into comment records.
// Row-per-comment output is sorted by teacher then subject so grouping order
// is stable regardless of input order; the column layout keeps the header's
// column order. Blank comments are dropped in both shapes.
func Normalize(table [][]string) ([]entities.CommentRecord, InputShape, error) {
	if len(table) == 0 {
		return nil, 0, apperrors.ErrMalformedInput("spreadsheet is empty")
	}

	header := table[0]
	if isBlankRow(header) {
		return nil, 0, apperrors.ErrMalformedInput("header row is blank")
	}

	teacherCol := findColumn(header, teacherAliases)
	subjectCol := findColumn(header, subjectAliases)
	commentCol := findColumn(header, commentAliases)

	if teacherCol >= 0 && subjectCol >= 0 && commentCol >= 0 {
		records := normalizeRows(table[1:], teacherCol, subjectCol, commentCol)
		return records, ShapeRowPerComment, nil
	}

	records := normalizeColumns(header, table[1:])
	return records, ShapeColumnPerTeacher, nil
}

func normalizeRows(rows [][]string, teacherCol, subjectCol, commentCol int) []entities.CommentRecord {
	records := make([]entities.CommentRecord, 0, len(rows))
	for _, row := range rows {
		teacher := cellAt(row, teacherCol)
		subject := cellAt(row, subjectCol)
		comment := cellAt(row, commentCol)
		if teacher == "" || comment == "" {
			continue
		}
		records = append(records, entities.CommentRecord{
			TeacherID: teacher,
			SubjectID: subject,
			Text:      comment,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].TeacherID != records[j].TeacherID {
			return records[i].TeacherID < records[j].TeacherID
		}
		return records[i].SubjectID < records[j].SubjectID
	})
	return records
}

func normalizeColumns(header []string, rows [][]string) []entities.CommentRecord {
	var records []entities.CommentRecord
	for col, name := range header {
		teacher := strings.TrimSpace(name)
		if teacher == "" {
			continue
		}
		for _, row := range rows {
			comment := cellAt(row, col)
			if comment == "" {
				continue
			}
			records = append(records, entities.CommentRecord{
				TeacherID: teacher,
				Text:      comment,
			})
		}
	}
	return records
}

// findColumn returns the index of the first header cell matching any alias,
// or -1.
func findColumn(header []string, aliases []string) int {
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range aliases {
			if name == alias {
				return i
			}
		}
	}
	return -1
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
