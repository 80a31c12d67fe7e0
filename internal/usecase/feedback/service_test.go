package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/coursepulse/internal/domain/entities"
)

// fakeSnapshotRepo keeps snapshots in memory keyed by semester label
type fakeSnapshotRepo struct {
	snapshots   map[string]*entities.SemesterSnapshot
	replaceErr  error
	findErr     error
	replaceCall int
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{snapshots: make(map[string]*entities.SemesterSnapshot)}
}

func (f *fakeSnapshotRepo) Replace(_ context.Context, s *entities.SemesterSnapshot) error {
	f.replaceCall++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.snapshots[s.Semester] = s
	return nil
}

func (f *fakeSnapshotRepo) FindBySemester(_ context.Context, label string) (*entities.SemesterSnapshot, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.snapshots[label], nil
}

type fakeArchiver struct {
	objects map[string][]byte
	err     error
}

func (f *fakeArchiver) Archive(_ context.Context, objectName string, data []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[objectName] = data
	return nil
}

func newTestService(repo *fakeSnapshotRepo, archiver Archiver, now time.Time) *service {
	scorer := &stubScorer{scores: map[string]entities.SentimentScore{
		"GREAT CLASS": {Compound: 0.8, Positive: 0.8, Neutral: 0.2},
		"TOO FAST":    {Compound: -0.2, Negative: 0.3, Neutral: 0.7},
	}}
	agg := NewAggregator(&stubTranslator{}, scorer, zap.NewNop(), 2)
	svc := NewService(agg, repo, archiver, zap.NewNop(), "es", "en").(*service)
	svc.now = func() time.Time { return now }
	return svc
}

var testTable = [][]string{
	{"Teacher", "Subject", "Comment"},
	{"Alice", "Math", "great class"},
	{"Alice", "Math", "too fast"},
}

func TestAnalyzeReturnsCurrentAndStoresSnapshot(t *testing.T) {
	repo := newFakeSnapshotRepo()
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	svc := newTestService(repo, nil, now)

	report, err := svc.Analyze(context.Background(), AnalyzeInput{Rows: testTable})
	require.NoError(t, err)

	require.Len(t, report.CurrentSemesterAnalysis, 1)
	assert.Equal(t, "Alice", report.CurrentSemesterAnalysis[0].TeacherID)
	assert.InDelta(t, 0.3, report.CurrentSemesterAnalysis[0].CompoundAverage, 1e-9)

	// No previous snapshot yet: empty, never nil
	require.NotNil(t, report.PreviousSemesterAnalysis)
	assert.Empty(t, report.PreviousSemesterAnalysis)

	stored, ok := repo.snapshots["2026-S1"]
	require.True(t, ok)
	rollups, err := stored.Rollups()
	require.NoError(t, err)
	require.Len(t, rollups, 1)
	assert.Equal(t, "Alice", rollups[0].TeacherID)
}

func TestAnalyzeReturnsPreviousSemester(t *testing.T) {
	repo := newFakeSnapshotRepo()
	prev, err := entities.NewSemesterSnapshot("2025-S2",
		time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC),
		[]entities.TeacherRollup{{TeacherID: "Bob", CompoundAverage: -0.5}})
	require.NoError(t, err)
	repo.snapshots["2025-S2"] = prev

	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	svc := newTestService(repo, nil, now)

	report, err := svc.Analyze(context.Background(), AnalyzeInput{Rows: testTable})
	require.NoError(t, err)

	require.Len(t, report.PreviousSemesterAnalysis, 1)
	assert.Equal(t, "Bob", report.PreviousSemesterAnalysis[0].TeacherID)
}

func TestAnalyzeReplacesSnapshotForSameSemester(t *testing.T) {
	repo := newFakeSnapshotRepo()
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	svc := newTestService(repo, nil, now)

	_, err := svc.Analyze(context.Background(), AnalyzeInput{Rows: testTable})
	require.NoError(t, err)
	_, err = svc.Analyze(context.Background(), AnalyzeInput{Rows: testTable})
	require.NoError(t, err)

	// Second run replaces, never duplicates
	assert.Equal(t, 2, repo.replaceCall)
	assert.Len(t, repo.snapshots, 1)
}

func TestAnalyzeStoreFailureDegrades(t *testing.T) {
	repo := newFakeSnapshotRepo()
	repo.replaceErr = errors.New("db down")
	repo.findErr = errors.New("db down")

	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(repo, nil, now)

	report, err := svc.Analyze(context.Background(), AnalyzeInput{Rows: testTable})
	require.NoError(t, err)

	// Current results still come back; previous degrades to empty
	require.Len(t, report.CurrentSemesterAnalysis, 1)
	assert.Empty(t, report.PreviousSemesterAnalysis)
}

func TestAnalyzeMalformedInput(t *testing.T) {
	repo := newFakeSnapshotRepo()
	svc := newTestService(repo, nil, time.Now())

	_, err := svc.Analyze(context.Background(), AnalyzeInput{Rows: nil})
	require.Error(t, err)
	assert.Zero(t, repo.replaceCall)
}

func TestAnalyzeSourceLangOverride(t *testing.T) {
	repo := newFakeSnapshotRepo()
	translator := &stubTranslator{}
	scorer := &stubScorer{scores: map[string]entities.SentimentScore{
		"GREAT CLASS": {Compound: 0.8},
		"TOO FAST":    {Compound: -0.2},
	}}
	agg := NewAggregator(translator, scorer, zap.NewNop(), 2)
	svc := NewService(agg, repo, nil, zap.NewNop(), "es", "en").(*service)

	_, err := svc.Analyze(context.Background(), AnalyzeInput{Rows: testTable, SourceLang: "fr"})
	require.NoError(t, err)
	assert.Equal(t, 2, translator.calls)
}

func TestAnalyzeArchivesUpload(t *testing.T) {
	repo := newFakeSnapshotRepo()
	archiver := &fakeArchiver{}
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	svc := newTestService(repo, archiver, now)

	raw := []byte("Teacher,Subject,Comment\n")
	_, err := svc.Analyze(context.Background(), AnalyzeInput{
		Rows:     testTable,
		Filename: "feedback.csv",
		Raw:      raw,
	})
	require.NoError(t, err)

	require.Len(t, archiver.objects, 1)
	for name, data := range archiver.objects {
		assert.Contains(t, name, "uploads/2026-S1/")
		assert.Contains(t, name, ".csv")
		assert.Equal(t, raw, data)
	}
}

func TestAnalyzeArchiveFailureDegrades(t *testing.T) {
	repo := newFakeSnapshotRepo()
	archiver := &fakeArchiver{err: errors.New("storage down")}
	svc := newTestService(repo, archiver, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))

	report, err := svc.Analyze(context.Background(), AnalyzeInput{
		Rows:     testTable,
		Filename: "feedback.xlsx",
		Raw:      []byte("raw"),
	})
	require.NoError(t, err)
	assert.Len(t, report.CurrentSemesterAnalysis, 1)
}

func TestCachedTranslator(t *testing.T) {
	inner := &stubTranslator{}
	cache := &fakeCache{items: make(map[string]string)}
	translator := NewCachedTranslator(inner, cache, time.Hour, zap.NewNop())

	out, err := translator.Translate(context.Background(), "hola", "es", "en")
	require.NoError(t, err)
	assert.Equal(t, "HOLA", out)
	assert.Equal(t, 1, inner.calls)

	// Second call is served from cache
	out, err = translator.Translate(context.Background(), "hola", "es", "en")
	require.NoError(t, err)
	assert.Equal(t, "HOLA", out)
	assert.Equal(t, 1, inner.calls)

	// Different language pair misses
	_, err = translator.Translate(context.Background(), "hola", "es", "fr")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedTranslatorSkipsFailedTranslations(t *testing.T) {
	inner := &stubTranslator{failOn: map[string]bool{"hola": true}}
	cache := &fakeCache{items: make(map[string]string)}
	translator := NewCachedTranslator(inner, cache, time.Hour, zap.NewNop())

	_, err := translator.Translate(context.Background(), "hola", "es", "en")
	require.Error(t, err)
	assert.Empty(t, cache.items)
}

type fakeCache struct {
	items map[string]string
}

func (f *fakeCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := f.items[key]
	return v, ok
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) {
	f.items[key] = value
}
