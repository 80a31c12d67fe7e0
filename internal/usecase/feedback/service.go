package feedback

import (
	"context"
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/coursepulse/internal/domain/entities"
	"github.com/johnquangdev/coursepulse/internal/domain/repositories"
)

// Service analyzes uploaded feedback and maintains semester snapshots.
type Service interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*AnalysisReport, error)
}

// AnalyzeInput carries one parsed upload through the pipeline. Raw holds the
// original file bytes for archiving; SourceLang overrides the configured
// translation source when set.
type AnalyzeInput struct {
	Rows       [][]string
	Filename   string
	Raw        []byte
	SourceLang string
}

// AnalysisReport is the response payload for one analysis run. The previous
// semester's results are empty, not null, when no snapshot exists.
type AnalysisReport struct {
	CurrentSemesterAnalysis  []entities.TeacherRollup `json:"current_semester_analysis"`
	PreviousSemesterAnalysis []entities.TeacherRollup `json:"previous_semester_analysis"`
}

// TranslationCache caches translated comments keyed by language pair and
// content hash. Misses and store failures are silent.
type TranslationCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, expiration time.Duration)
}

// Archiver stores raw uploads for later audit.
type Archiver interface {
	Archive(ctx context.Context, objectName string, data []byte, contentType string) error
}

type service struct {
	aggregator *Aggregator
	snapshots  repositories.SnapshotRepository
	archiver   Archiver
	logger     *zap.Logger
	sourceLang string
	targetLang string
	now        func() time.Time
}

// NewService wires the analysis pipeline. archiver may be nil when upload
// archiving is disabled.
func NewService(
	aggregator *Aggregator,
	snapshots repositories.SnapshotRepository,
	archiver Archiver,
	logger *zap.Logger,
	sourceLang, targetLang string,
) Service {
	return &service{
		aggregator: aggregator,
		snapshots:  snapshots,
		archiver:   archiver,
		logger:     logger,
		sourceLang: sourceLang,
		targetLang: targetLang,
		now:        time.Now,
	}
}

// Analyze normalizes the table, scores every comment, persists the semester
// snapshot and returns current plus previous semester rollups. Snapshot store
// failures degrade: the current analysis is still returned.
func (s *service) Analyze(ctx context.Context, input AnalyzeInput) (*AnalysisReport, error) {
	records, shape, err := Normalize(input.Rows)
	if err != nil {
		return nil, err
	}
	s.logger.Info("📋 Feedback upload normalized",
		zap.String("shape", shape.String()),
		zap.Int("comments", len(records)))

	sourceLang := s.sourceLang
	if input.SourceLang != "" {
		sourceLang = input.SourceLang
	}

	rollups, err := s.aggregator.Run(ctx, records, sourceLang, s.targetLang)
	if err != nil {
		return nil, err
	}
	if rollups == nil {
		rollups = []entities.TeacherRollup{}
	}

	now := s.now()
	current := CurrentSemesterLabel(now)
	previous := PreviousSemesterLabel(now)

	s.archiveUpload(ctx, input, current)
	s.storeSnapshot(ctx, current, now, rollups)

	report := &AnalysisReport{
		CurrentSemesterAnalysis:  rollups,
		PreviousSemesterAnalysis: s.loadPrevious(ctx, previous),
	}
	return report, nil
}

// storeSnapshot replaces the current semester's snapshot. Failures are logged
// and swallowed so the caller still gets its results.
func (s *service) storeSnapshot(ctx context.Context, label string, capturedAt time.Time, rollups []entities.TeacherRollup) {
	snapshot, err := entities.NewSemesterSnapshot(label, capturedAt, rollups)
	if err != nil {
		s.logger.Warn("⚠️ Failed to encode semester snapshot", zap.String("semester", label), zap.Error(err))
		return
	}
	if err := s.snapshots.Replace(ctx, snapshot); err != nil {
		s.logger.Warn("⚠️ Failed to store semester snapshot", zap.String("semester", label), zap.Error(err))
		return
	}
	s.logger.Info("💾 Semester snapshot stored", zap.String("semester", label))
}

// loadPrevious fetches the previous semester's rollups. Absence and store
// failures both come back as an empty slice.
func (s *service) loadPrevious(ctx context.Context, label string) []entities.TeacherRollup {
	snapshot, err := s.snapshots.FindBySemester(ctx, label)
	if err != nil {
		s.logger.Warn("⚠️ Failed to load previous semester snapshot", zap.String("semester", label), zap.Error(err))
		return []entities.TeacherRollup{}
	}
	if snapshot == nil {
		return []entities.TeacherRollup{}
	}
	rollups, err := snapshot.Rollups()
	if err != nil {
		s.logger.Warn("⚠️ Failed to decode previous semester snapshot", zap.String("semester", label), zap.Error(err))
		return []entities.TeacherRollup{}
	}
	return rollups
}

// archiveUpload stores the raw file under uploads/<semester>/<uuid><ext>.
// Best effort only.
func (s *service) archiveUpload(ctx context.Context, input AnalyzeInput, semester string) {
	if s.archiver == nil || len(input.Raw) == 0 {
		return
	}

	ext := strings.ToLower(filepath.Ext(input.Filename))
	objectName := fmt.Sprintf("uploads/%s/%s%s", semester, uuid.New().String(), ext)

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if ext == ".csv" {
		contentType = "text/csv"
	}

	if err := s.archiver.Archive(ctx, objectName, input.Raw, contentType); err != nil {
		s.logger.Warn("⚠️ Failed to archive upload", zap.String("object", objectName), zap.Error(err))
		return
	}
	s.logger.Info("📦 Upload archived", zap.String("object", objectName))
}

// cachedTranslator wraps a Translator with a read-through cache keyed by the
// language pair and a hash of the text.
type cachedTranslator struct {
	inner  Translator
	cache  TranslationCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedTranslator wraps inner with cache. Returns inner unchanged when
// cache is nil.
func NewCachedTranslator(inner Translator, cache TranslationCache, ttl time.Duration, logger *zap.Logger) Translator {
	if cache == nil {
		return inner
	}
	return &cachedTranslator{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func (c *cachedTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	key := translationKey(text, source, target)
	if cached, ok := c.cache.Get(ctx, key); ok {
		return cached, nil
	}

	translated, err := c.inner.Translate(ctx, text, source, target)
	if err != nil {
		return "", err
	}

	c.cache.Set(ctx, key, translated, c.ttl)
	return translated, nil
}

func translationKey(text, source, target string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("translate:%s:%s:%x", source, target, sum)
}
