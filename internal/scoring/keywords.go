// internal/scoring/keywords.go
package scoring

import "strings"

// MatchKeywords checks which keywords appear in the transcript, first by exact
// substring containment in the normalized text, then by fuzzy similarity
// against individual tokens. found and missing partition keywords, keeping the
// original casing and order. The score is the found percentage (0-100); an
// empty keyword list scores 0.
func MatchKeywords(transcript string, keywords []string, fuzzyThreshold int) (found, missing []string, score float64) {
	normalized := Normalize(transcript)
	tokens := strings.Fields(normalized)

	found = make([]string, 0, len(keywords))
	missing = make([]string, 0)

	for _, keyword := range keywords {
		keywordLower := strings.ToLower(keyword)
		if strings.Contains(normalized, keywordLower) {
			found = append(found, keyword)
			continue
		}

		matched := false
		for _, token := range tokens {
			if similarityRatio(keywordLower, token) >= float64(fuzzyThreshold) {
				matched = true
				break
			}
		}
		if matched {
			found = append(found, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}

	if len(keywords) == 0 {
		return found, missing, 0
	}
	score = float64(len(found)) / float64(len(keywords)) * 100
	return found, missing, score
}
