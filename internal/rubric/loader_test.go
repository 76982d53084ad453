// internal/rubric/loader_test.go
package rubric

import (
	"os"
	"path/filepath"
	"testing"

	"speech-scorer/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRubricFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rubric.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_WeightsSumToOne(t *testing.T) {
	criteria := Default()
	require.Len(t, criteria, 4)

	sum := 0.0
	for _, criterion := range criteria {
		sum += criterion.Weight
		assert.NotEmpty(t, criterion.Keywords, criterion.Name)
		assert.Greater(t, criterion.MinWords, 0, criterion.Name)
		assert.GreaterOrEqual(t, criterion.MaxWords, criterion.MinWords, criterion.Name)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeRubricFile(t, `name,description,keywords,weight,min_words,max_words
Structure,Logical flow of the talk,"intro,body,conclusion",0.6,40,400
Delivery,Confidence on stage,"confident,calm",0.4,30,300
`)

	provider := Load(path, logger.NewTestLogger(t))
	criteria := provider.Rubric()

	require.Len(t, criteria, 2)
	assert.Equal(t, "Structure", criteria[0].Name)
	assert.Equal(t, []string{"intro", "body", "conclusion"}, criteria[0].Keywords)
	assert.Equal(t, 0.6, criteria[0].Weight)
	assert.Equal(t, 40, criteria[0].MinWords)
	assert.Equal(t, 400, criteria[0].MaxWords)
	assert.Equal(t, "Delivery", criteria[1].Name)
}

func TestLoad_BlankWordBoundsUseDefaults(t *testing.T) {
	path := writeRubricFile(t, `name,description,keywords,weight,min_words,max_words
Structure,Logical flow,"intro,body",0.5,,
`)

	criteria := Load(path, logger.NewTestLogger(t)).Rubric()

	require.Len(t, criteria, 1)
	assert.Equal(t, defaultMinWords, criteria[0].MinWords)
	assert.Equal(t, defaultMaxWords, criteria[0].MaxWords)
}

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	provider := Load("/nonexistent/rubric.csv", logger.NewTestLogger(t))

	assert.Equal(t, Default(), provider.Rubric())
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	provider := Load("", logger.NewTestLogger(t))

	assert.Equal(t, Default(), provider.Rubric())
}

func TestLoad_InvalidRowsFallBackToDefault(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "non-numeric weight",
			content: `name,description,keywords,weight,min_words,max_words
Structure,Flow,"intro",heavy,40,400
`,
		},
		{
			name: "weight above one",
			content: `name,description,keywords,weight,min_words,max_words
Structure,Flow,"intro",1.5,40,400
`,
		},
		{
			name: "zero weight",
			content: `name,description,keywords,weight,min_words,max_words
Structure,Flow,"intro",0,40,400
`,
		},
		{
			name: "min above max",
			content: `name,description,keywords,weight,min_words,max_words
Structure,Flow,"intro",0.5,400,40
`,
		},
		{
			name: "empty name",
			content: `name,description,keywords,weight,min_words,max_words
,Flow,"intro",0.5,40,400
`,
		},
		{
			name:    "header only",
			content: "name,description,keywords,weight,min_words,max_words\n",
		},
		{
			name: "missing required column",
			content: `name,description,keywords
Structure,Flow,"intro"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRubricFile(t, tt.content)
			provider := Load(path, logger.NewTestLogger(t))
			assert.Equal(t, Default(), provider.Rubric())
		})
	}
}
