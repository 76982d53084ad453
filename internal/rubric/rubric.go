// internal/rubric/rubric.go
package rubric

// Criterion is one named, weighted evaluation dimension of the rubric.
type Criterion struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Weight      float64  `json:"weight"`
	MinWords    int      `json:"minWords"`
	MaxWords    int      `json:"maxWords"`
}

// Provider supplies the ordered criteria a transcript is scored against.
// The returned slice is read-only and safe for concurrent use.
type Provider interface {
	Rubric() []Criterion
}

type staticProvider struct {
	criteria []Criterion
}

func (p *staticProvider) Rubric() []Criterion {
	return p.criteria
}

// Static wraps a fixed criteria slice as a Provider.
func Static(criteria []Criterion) Provider {
	return &staticProvider{criteria: criteria}
}

// Default returns the built-in communication rubric. Weights sum to 1.0.
func Default() []Criterion {
	return []Criterion{
		{
			Name:        "Clarity and Articulation",
			Description: "Clear pronunciation and well-structured sentences",
			Keywords:    []string{"clear", "articulate", "precise", "understandable", "coherent", "structured", "organized", "logical"},
			Weight:      0.25,
			MinWords:    50,
			MaxWords:    500,
		},
		{
			Name:        "Content Quality",
			Description: "Relevant, informative, and well-organized content",
			Keywords:    []string{"relevant", "informative", "detailed", "organized", "evidence", "examples", "facts", "data", "analysis"},
			Weight:      0.30,
			MinWords:    50,
			MaxWords:    500,
		},
		{
			Name:        "Engagement",
			Description: "Ability to maintain audience interest and connect",
			Keywords:    []string{"engaging", "interesting", "compelling", "attention", "enthusiasm", "dynamic", "passionate", "captivating"},
			Weight:      0.20,
			MinWords:    50,
			MaxWords:    500,
		},
		{
			Name:        "Language Proficiency",
			Description: "Proper grammar, vocabulary, and language use",
			Keywords:    []string{"vocabulary", "grammar", "language", "professional", "appropriate", "fluent", "eloquent", "articulate"},
			Weight:      0.25,
			MinWords:    50,
			MaxWords:    500,
		},
	}
}
