// internal/rubric/loader.go
package rubric

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"speech-scorer/internal/common/errors"
	"speech-scorer/internal/common/logger"

	"github.com/xeipuuv/gojsonschema"
)

const (
	defaultMinWords = 50
	defaultMaxWords = 500
)

// expected CSV header, keywords comma-separated within the cell
var expectedColumns = []string{"name", "description", "keywords", "weight", "min_words", "max_words"}

// Load builds a Provider from an external rubric file. Any load, parse, or
// validation failure is logged as a warning and the built-in default rubric
// is used instead; a rubric misconfiguration must never keep the service down.
func Load(path string, log logger.Logger) Provider {
	if path == "" {
		return Static(Default())
	}

	criteria, err := parseFile(path)
	if err != nil {
		log.Warn("error loading rubric file, using default rubric", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return Static(Default())
	}

	log.Info("rubric loaded", map[string]interface{}{
		"path":     path,
		"criteria": len(criteria),
	})
	return Static(criteria)
}

func parseFile(path string) ([]Criterion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewRubricLoadFailedError(path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewRubricLoadFailedError(path, err)
	}
	if len(records) < 2 {
		return nil, errors.NewRubricLoadFailedError(path, fmt.Errorf("no criterion rows"))
	}

	cols, err := columnIndex(records[0])
	if err != nil {
		return nil, errors.NewRubricLoadFailedError(path, err)
	}

	criteria := make([]Criterion, 0, len(records)-1)
	for _, row := range records[1:] {
		criterion, err := parseRow(row, cols)
		if err != nil {
			return nil, err
		}
		if err := validate(criterion); err != nil {
			return nil, err
		}
		criteria = append(criteria, criterion)
	}
	return criteria, nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range expectedColumns[:4] {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (Criterion, error) {
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	weight, err := strconv.ParseFloat(cell("weight"), 64)
	if err != nil {
		return Criterion{}, errors.NewRubricValidationFailedError(cell("name"),
			fmt.Sprintf("invalid weight: %q", cell("weight")))
	}

	minWords := defaultMinWords
	if raw := cell("min_words"); raw != "" {
		minWords, err = strconv.Atoi(raw)
		if err != nil {
			return Criterion{}, errors.NewRubricValidationFailedError(cell("name"),
				fmt.Sprintf("invalid min_words: %q", raw))
		}
	}

	maxWords := defaultMaxWords
	if raw := cell("max_words"); raw != "" {
		maxWords, err = strconv.Atoi(raw)
		if err != nil {
			return Criterion{}, errors.NewRubricValidationFailedError(cell("name"),
				fmt.Sprintf("invalid max_words: %q", raw))
		}
	}

	keywords := []string{}
	for _, kw := range strings.Split(cell("keywords"), ",") {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}

	return Criterion{
		Name:        cell("name"),
		Description: cell("description"),
		Keywords:    keywords,
		Weight:      weight,
		MinWords:    minWords,
		MaxWords:    maxWords,
	}, nil
}

// criterionSchema constrains a parsed rubric row. Cross-field ordering of the
// word band is checked separately.
var criterionSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"name": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"description": map[string]interface{}{
			"type": "string",
		},
		"keywords": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"weight": map[string]interface{}{
			"type":    "number",
			"minimum": 0,
			"maximum": 1,
		},
		"min_words": map[string]interface{}{
			"type":    "integer",
			"minimum": 1,
		},
		"max_words": map[string]interface{}{
			"type":    "integer",
			"minimum": 1,
		},
	},
	"required": []string{"name", "weight", "min_words", "max_words"},
}

func validate(c Criterion) error {
	doc := map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"keywords":    c.Keywords,
		"weight":      c.Weight,
		"min_words":   c.MinWords,
		"max_words":   c.MaxWords,
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(criterionSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return errors.NewRubricValidationFailedError(c.Name, err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return errors.NewRubricValidationFailedError(c.Name, strings.Join(details, "; "))
	}

	if c.Weight == 0 {
		return errors.NewRubricValidationFailedError(c.Name, "weight must be greater than 0")
	}
	if c.MinWords > c.MaxWords {
		return errors.NewRubricValidationFailedError(c.Name,
			fmt.Sprintf("min_words %d exceeds max_words %d", c.MinWords, c.MaxWords))
	}
	return nil
}
