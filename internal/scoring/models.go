// internal/scoring/models.go
package scoring

// CriterionResult is the breakdown for a single rubric criterion.
type CriterionResult struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Score              float64  `json:"score"`
	SemanticSimilarity float64  `json:"semanticSimilarity"`
	KeywordsFound      []string `json:"keywordsFound"`
	KeywordsMissing    []string `json:"keywordsMissing"`
	LengthFeedback     string   `json:"lengthFeedback"`
	Weight             float64  `json:"weight"`
}

// Result is the outcome of scoring one transcript against the full rubric.
// Criteria preserves rubric order.
type Result struct {
	OverallScore float64           `json:"overallScore"`
	TotalWords   int               `json:"totalWords"`
	Criteria     []CriterionResult `json:"criteria"`
}
