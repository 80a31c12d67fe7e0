package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/johnquangdev/coursepulse/errors"
	"github.com/johnquangdev/coursepulse/internal/domain/entities"
)

func TestNormalizeRowPerComment(t *testing.T) {
	table := [][]string{
		{"Teacher", "Subject", "Comment"},
		{"Bob", "History", "Quite boring"},
		{"Alice", "Math", "Great class"},
		{"Alice", "Math", "Too fast"},
		{"Alice", "Physics", "Clear explanations"},
	}

	records, shape, err := Normalize(table)
	require.NoError(t, err)
	assert.Equal(t, ShapeRowPerComment, shape)

	// Sorted by teacher then subject, stable within a group
	require.Len(t, records, 4)
	assert.Equal(t, entities.CommentRecord{TeacherID: "Alice", SubjectID: "Math", Text: "Great class"}, records[0])
	assert.Equal(t, entities.CommentRecord{TeacherID: "Alice", SubjectID: "Math", Text: "Too fast"}, records[1])
	assert.Equal(t, entities.CommentRecord{TeacherID: "Alice", SubjectID: "Physics", Text: "Clear explanations"}, records[2])
	assert.Equal(t, entities.CommentRecord{TeacherID: "Bob", SubjectID: "History", Text: "Quite boring"}, records[3])
}

func TestNormalizeSpanishHeaders(t *testing.T) {
	table := [][]string{
		{"Profesor", "Materia", "Crítica"},
		{"Alice", "Math", "Muy buena clase"},
	}

	records, shape, err := Normalize(table)
	require.NoError(t, err)
	assert.Equal(t, ShapeRowPerComment, shape)
	require.Len(t, records, 1)
	assert.Equal(t, "Alice", records[0].TeacherID)
	assert.Equal(t, "Math", records[0].SubjectID)
}

func TestNormalizeColumnPerTeacher(t *testing.T) {
	table := [][]string{
		{"Alice", "Bob"},
		{"Great class", "Quite boring"},
		{"Too fast", ""},
	}

	records, shape, err := Normalize(table)
	require.NoError(t, err)
	assert.Equal(t, ShapeColumnPerTeacher, shape)

	// Column order preserved, blank cells dropped, no subjects
	require.Len(t, records, 3)
	assert.Equal(t, entities.CommentRecord{TeacherID: "Alice", Text: "Great class"}, records[0])
	assert.Equal(t, entities.CommentRecord{TeacherID: "Alice", Text: "Too fast"}, records[1])
	assert.Equal(t, entities.CommentRecord{TeacherID: "Bob", Text: "Quite boring"}, records[2])
}

func TestNormalizePartialHeadersFallBackToColumns(t *testing.T) {
	// Teacher and comment columns but no subject column: not the row shape
	table := [][]string{
		{"Teacher", "Comment"},
		{"row one", "row one"},
	}

	_, shape, err := Normalize(table)
	require.NoError(t, err)
	assert.Equal(t, ShapeColumnPerTeacher, shape)
}

func TestNormalizeDropsBlankComments(t *testing.T) {
	table := [][]string{
		{"teacher", "subject", "comment"},
		{"Alice", "Math", "   "},
		{"Alice", "Math", ""},
		{"Alice", "Math", "Fine"},
		{"", "Math", "Orphan comment"},
	}

	records, _, err := Normalize(table)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Fine", records[0].Text)
}

func TestNormalizeEmptyTable(t *testing.T) {
	_, _, err := Normalize(nil)
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_MALFORMED_INPUT, appErr.Code)
}

func TestNormalizeBlankHeader(t *testing.T) {
	_, _, err := Normalize([][]string{{"", "  ", ""}})
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_MALFORMED_INPUT, appErr.Code)
}
