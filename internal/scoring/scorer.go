// internal/scoring/scorer.go
package scoring

import (
	"context"
	"math"
	"strings"

	"speech-scorer/internal/common/errors"
	"speech-scorer/internal/common/logger"
	"speech-scorer/internal/common/metrics"
	"speech-scorer/internal/embedding"
	"speech-scorer/internal/rubric"
)

// Config holds the validation bounds and the keyword fuzzy-match threshold.
type Config struct {
	MinWords       int
	MaxWords       int
	FuzzyThreshold int
}

func (c *Config) applyDefaults() {
	if c.MinWords == 0 {
		c.MinWords = 10
	}
	if c.MaxWords == 0 {
		c.MaxWords = 500
	}
	if c.FuzzyThreshold == 0 {
		c.FuzzyThreshold = 85
	}
}

// Scorer orchestrates the scoring pipeline: validate the transcript, score
// every rubric criterion in order, aggregate into a weighted overall score.
// Stateless per request; safe for concurrent use.
type Scorer struct {
	config   *Config
	embedder embedding.Provider
	rubric   rubric.Provider
	logger   logger.Logger
}

func NewScorer(config *Config, embedder embedding.Provider, rubricProvider rubric.Provider, log logger.Logger) *Scorer {
	config.applyDefaults()
	return &Scorer{
		config:   config,
		embedder: embedder,
		rubric:   rubricProvider,
		logger:   log.WithFields(map[string]interface{}{"component": "scorer"}),
	}
}

// Score evaluates one transcript against the rubric. It fails only on word
// count validation; every other anomaly degrades to a numeric default inside
// the per-criterion scorers.
func (s *Scorer) Score(ctx context.Context, transcript string) (*Result, error) {
	transcript = strings.TrimSpace(transcript)
	wordCount := CountWords(transcript)

	if wordCount < s.config.MinWords {
		return nil, errors.NewTranscriptTooShortError(wordCount, s.config.MinWords)
	}
	if wordCount > s.config.MaxWords {
		return nil, errors.NewTranscriptTooLongError(wordCount, s.config.MaxWords)
	}

	criteria := s.rubric.Rubric()
	results := make([]CriterionResult, 0, len(criteria))
	overall := 0.0
	for _, criterion := range criteria {
		result := s.scoreCriterion(ctx, transcript, criterion, wordCount)
		overall += result.Score * result.Weight
		results = append(results, result)
	}

	// Direct weighted sum; no renormalization when rubric weights do not
	// sum to 1.0.
	overallScore := round1(overall)
	metrics.ScoringOverallScore.Observe(overallScore)

	s.logger.Info("transcript scored", map[string]interface{}{
		"totalWords":   wordCount,
		"overallScore": overallScore,
		"criteria":     len(results),
	})

	return &Result{
		OverallScore: overallScore,
		TotalWords:   wordCount,
		Criteria:     results,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
