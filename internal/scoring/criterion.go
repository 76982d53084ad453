// internal/scoring/criterion.go
package scoring

import (
	"context"

	"speech-scorer/internal/rubric"
)

// Fixed sub-score blend of the composite criterion score. These are part of
// the scoring contract: semantic similarity dominates, keyword coverage is
// secondary, length compliance is a minor corrective signal.
const (
	keywordWeight  = 0.40
	semanticWeight = 0.50
	lengthWeight   = 0.10
)

// scoreCriterion combines keyword coverage, semantic similarity and length
// compliance for a single criterion. No failure reaches the caller.
func (s *Scorer) scoreCriterion(ctx context.Context, transcript string, criterion rubric.Criterion, wordCount int) CriterionResult {
	found, missing, keywordScore := MatchKeywords(transcript, criterion.Keywords, s.config.FuzzyThreshold)

	semanticScore := s.semanticSimilarity(ctx, transcript, criterion)

	lengthScore, lengthFeedback := LengthScore(wordCount, criterion.MinWords, criterion.MaxWords)

	criterionScore := keywordScore*keywordWeight +
		semanticScore*semanticWeight +
		lengthScore*lengthWeight

	return CriterionResult{
		Name:               criterion.Name,
		Description:        criterion.Description,
		Score:              round1(criterionScore),
		SemanticSimilarity: round1(semanticScore),
		KeywordsFound:      found,
		KeywordsMissing:    missing,
		LengthFeedback:     lengthFeedback,
		Weight:             criterion.Weight,
	}
}
