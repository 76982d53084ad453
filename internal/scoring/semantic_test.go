// internal/scoring/semantic_test.go
package scoring

import (
	"context"
	"errors"
	"testing"

	"speech-scorer/internal/common/logger"
	"speech-scorer/internal/rubric"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
		wantErr  bool
	}{
		{
			name:     "identical vectors",
			a:        []float32{1, 2, 3},
			b:        []float32{1, 2, 3},
			expected: 1,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0},
			b:        []float32{0, 1},
			expected: 0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1, 1},
			b:        []float32{-1, -1},
			expected: -1,
		},
		{
			name:     "scaled vectors keep similarity",
			a:        []float32{1, 2},
			b:        []float32{2, 4},
			expected: 1,
		},
		{
			name:    "dimension mismatch",
			a:       []float32{1, 2, 3},
			b:       []float32{1, 2},
			wantErr: true,
		},
		{
			name:    "empty vectors",
			a:       []float32{},
			b:       []float32{},
			wantErr: true,
		},
		{
			name:    "zero magnitude",
			a:       []float32{0, 0},
			b:       []float32{1, 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, err := cosineSimilarity(tt.a, tt.b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, sim, 1e-9)
		})
	}
}

func TestSemanticSimilarity_EmbeddingFailureReturnsZero(t *testing.T) {
	scorer := NewScorer(&Config{}, &failEmbedder{err: errors.New("model unavailable")},
		rubric.Static(rubric.Default()), logger.NewTestLogger(t))

	score := scorer.semanticSimilarity(context.Background(), "some transcript text here",
		rubric.Default()[0])

	assert.Equal(t, 0.0, score)
}

func TestSemanticSimilarity_NegativeSimilarityClampsToZero(t *testing.T) {
	embedder := &sequenceEmbedder{vectors: [][]float32{{1, 1}, {-1, -1}}}
	scorer := NewScorer(&Config{}, embedder, rubric.Static(rubric.Default()), logger.NewTestLogger(t))

	score := scorer.semanticSimilarity(context.Background(), "opposed content",
		rubric.Default()[0])

	assert.Equal(t, 0.0, score)
}

func TestSemanticSimilarity_IdenticalTextScoresFull(t *testing.T) {
	embedder := &hashEmbedder{dims: 64}
	scorer := NewScorer(&Config{}, embedder, rubric.Static(rubric.Default()), logger.NewTestLogger(t))

	criterion := rubric.Criterion{
		Name:        "Echo",
		Description: "identical text",
		Keywords:    []string{},
	}
	// transcript equal to the synthesized reference text
	score := scorer.semanticSimilarity(context.Background(), "identical text. Keywords: ", criterion)

	assert.InDelta(t, 100.0, score, 0.001)
}
