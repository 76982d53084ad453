// internal/scoring/semantic.go
package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"speech-scorer/internal/rubric"
)

// semanticSimilarity embeds the transcript and a reference text synthesized
// from the criterion, and rescales their cosine similarity to 0-100. Any
// embedding failure degrades to 0.0 so one criterion's semantic component
// never aborts scoring of the transcript.
func (s *Scorer) semanticSimilarity(ctx context.Context, transcript string, criterion rubric.Criterion) float64 {
	reference := fmt.Sprintf("%s. Keywords: %s",
		criterion.Description, strings.Join(criterion.Keywords, ", "))

	transcriptVec, err := s.embedder.Embed(ctx, transcript)
	if err != nil {
		s.logger.WithError(err).Error("error calculating semantic similarity", map[string]interface{}{
			"criterion": criterion.Name,
		})
		return 0.0
	}

	referenceVec, err := s.embedder.Embed(ctx, reference)
	if err != nil {
		s.logger.WithError(err).Error("error calculating semantic similarity", map[string]interface{}{
			"criterion": criterion.Name,
		})
		return 0.0
	}

	similarity, err := cosineSimilarity(transcriptVec, referenceVec)
	if err != nil {
		s.logger.WithError(err).Error("error calculating semantic similarity", map[string]interface{}{
			"criterion": criterion.Name,
		})
		return 0.0
	}

	// Linear rescale: negative similarities clamp to 0, numerical noise
	// above 1 clamps to 100.
	score := similarity * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-magnitude vector")
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
