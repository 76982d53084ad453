// internal/embedding/provider.go
package embedding

import (
	"context"
	"errors"
)

var (
	ErrEmbeddingTimeout = errors.New("EMBEDDING_TIMEOUT")
	ErrEmbeddingFailed  = errors.New("EMBEDDING_FAILED")
)

// Provider generates text embeddings. Implementations must be deterministic
// for identical input and safe for concurrent use; the scoring pipeline treats
// failures as recoverable and never lets them abort a request.
type Provider interface {
	// Embed generates the embedding vector for a single text
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding dimension
	Dimensions() int
}
