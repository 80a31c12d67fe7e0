package feedback

import (
	"context"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/coursepulse/errors"
	"github.com/johnquangdev/coursepulse/internal/domain/entities"
)

// Translator converts a comment into the scorer's language. Failures are
// tolerated; the original text is scored instead.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Scorer produces polarity measures for a single comment. A scoring failure
// is fatal to the whole analysis.
type Scorer interface {
	Score(ctx context.Context, text string) (entities.SentimentScore, error)
}

// Aggregator runs the translate-score pipeline over normalized comments and
// folds the results into per-subject and per-teacher rollups.
type Aggregator struct {
	translator Translator
	scorer     Scorer
	logger     *zap.Logger
	workers    int
}

// NewAggregator creates an aggregator with a bounded worker pool
func NewAggregator(translator Translator, scorer Scorer, logger *zap.Logger, workers int) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{
		translator: translator,
		scorer:     scorer,
		logger:     logger,
		workers:    workers,
	}
}

type scoredComment struct {
	record entities.CommentRecord
	entry  entities.CriticismEntry
}

// Run scores every comment concurrently and aggregates the results. Input
// order is preserved in the output regardless of worker scheduling.
func (a *Aggregator) Run(ctx context.Context, records []entities.CommentRecord, sourceLang, targetLang string) ([]entities.TeacherRollup, error) {
	scored, err := a.scoreAll(ctx, records, sourceLang, targetLang)
	if err != nil {
		return nil, err
	}
	return a.rollup(scored), nil
}

func (a *Aggregator) scoreAll(ctx context.Context, records []entities.CommentRecord, sourceLang, targetLang string) ([]scoredComment, error) {
	scored := make([]scoredComment, len(records))

	var wg sync.WaitGroup
	sem := make(chan struct{}, a.workers)

	var mu sync.Mutex
	var firstErr error

	for i, rec := range records {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, rec entities.CommentRecord) {
			defer wg.Done()
			defer func() { <-sem }()

			mu.Lock()
			failed := firstErr != nil
			mu.Unlock()
			if failed {
				return
			}

			text := rec.Text
			if a.translator != nil {
				translated, err := a.translator.Translate(ctx, rec.Text, sourceLang, targetLang)
				if err != nil {
					a.logger.Warn("⚠️ Translation failed, scoring original text",
						zap.String("teacher", rec.TeacherID),
						zap.Error(err))
				} else {
					text = translated
				}
			}

			score, err := a.scorer.Score(ctx, text)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			scored[idx] = scoredComment{
				record: rec,
				entry: entities.CriticismEntry{
					Criticism: rec.Text,
					Score:     score,
				},
			}
		}(i, rec)
	}

	wg.Wait()

	if firstErr != nil {
		a.logger.Error("❌ Sentiment scoring failed", zap.Error(firstErr))
		return nil, apperrors.ErrScoringFailed(firstErr)
	}
	return scored, nil
}

type groupKey struct {
	teacher string
	subject string
}

// rollup groups scored comments by teacher and subject. Teacher averages are
// taken over the flat union of that teacher's per-comment scores, not over
// subject averages, so subjects with more comments weigh more.
func (a *Aggregator) rollup(scored []scoredComment) []entities.TeacherRollup {
	var teacherOrder []string
	subjectOrder := make(map[string][]string)
	entries := make(map[groupKey][]entities.CriticismEntry)
	teacherScores := make(map[string][]entities.SentimentScore)

	for _, sc := range scored {
		key := groupKey{teacher: sc.record.TeacherID, subject: sc.record.SubjectID}
		if _, seen := teacherScores[key.teacher]; !seen {
			teacherOrder = append(teacherOrder, key.teacher)
		}
		if _, seen := entries[key]; !seen {
			subjectOrder[key.teacher] = append(subjectOrder[key.teacher], key.subject)
		}
		entries[key] = append(entries[key], sc.entry)
		teacherScores[key.teacher] = append(teacherScores[key.teacher], sc.entry.Score)
	}

	rollups := make([]entities.TeacherRollup, 0, len(teacherOrder))
	for _, teacher := range teacherOrder {
		subjects := make([]entities.SubjectRollup, 0, len(subjectOrder[teacher]))
		for _, subject := range subjectOrder[teacher] {
			key := groupKey{teacher: teacher, subject: subject}
			group := entries[key]

			var compoundSum float64
			for _, e := range group {
				compoundSum += e.Score.Compound
			}
			subjects = append(subjects, entities.SubjectRollup{
				SubjectID:       subject,
				CompoundAverage: mean(compoundSum, len(group)),
				Criticisms:      group,
			})
		}

		scores := teacherScores[teacher]
		var compound, negative, neutral, positive float64
		for _, s := range scores {
			compound += s.Compound
			negative += s.Negative
			neutral += s.Neutral
			positive += s.Positive
		}
		n := len(scores)

		rollups = append(rollups, entities.TeacherRollup{
			TeacherID:       teacher,
			CompoundAverage: mean(compound, n),
			NegativeAverage: mean(negative, n),
			NeutralAverage:  mean(neutral, n),
			PositiveAverage: mean(positive, n),
			Subjects:        subjects,
		})
	}
	return rollups
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}
