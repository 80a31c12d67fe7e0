package entities

// CommentRecord is a single piece of free-text feedback attributed to a
// teacher and, in the row-per-comment input shape, a subject. It is never
// constructed for a blank comment cell.
type CommentRecord struct {
	TeacherID string `json:"teacher_id"`
	SubjectID string `json:"subject_id,omitempty"` // empty when the input shape carries no subjects
	Text      string `json:"text"`
}

// SentimentScore holds the four VADER polarity measures for one comment.
// Compound is in [-1, 1]; the other three are in [0, 1] and sum to ~1.
type SentimentScore struct {
	Compound float64 `json:"compound"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Positive float64 `json:"positive"`
}

// CriticismEntry pairs the original, untranslated comment text with its
// sentiment score. Immutable once created.
type CriticismEntry struct {
	Criticism string         `json:"criticism"`
	Score     SentimentScore `json:"score"`
}

// SubjectRollup aggregates one teacher's criticisms for a single subject.
// CompoundAverage is the mean compound over exactly these criticisms,
// 0 when the list is empty.
type SubjectRollup struct {
	SubjectID       string           `json:"subject"`
	CompoundAverage float64          `json:"compound_average"`
	Criticisms      []CriticismEntry `json:"criticisms"`
}

// TeacherRollup aggregates everything said about one teacher. The four
// averages are taken over the flat set of per-comment scores across all of
// the teacher's subjects, not over the subject averages.
type TeacherRollup struct {
	TeacherID       string          `json:"teacher"`
	CompoundAverage float64         `json:"compound_average"`
	NegativeAverage float64         `json:"negative_average"`
	NeutralAverage  float64         `json:"neutral_average"`
	PositiveAverage float64         `json:"positive_average"`
	Subjects        []SubjectRollup `json:"subjects"`
}
