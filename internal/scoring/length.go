// internal/scoring/length.go
package scoring

import "fmt"

// LengthScore maps a word count against a [minWords, maxWords] band to a
// 0-100 compliance score plus feedback. Short transcripts scale linearly up
// to the minimum; long transcripts lose 20 points per 100 excess words,
// floored at 50.
func LengthScore(wordCount, minWords, maxWords int) (float64, string) {
	if wordCount < minWords {
		score := float64(wordCount) / float64(minWords) * 100
		feedback := fmt.Sprintf(
			"Transcript is shorter than recommended (%d/%d words). Consider adding more detail.",
			wordCount, minWords)
		return score, feedback
	}

	if wordCount > maxWords {
		excess := wordCount - maxWords
		penalty := float64(excess) / 100 * 20
		if penalty > 50 {
			penalty = 50
		}
		score := 100 - penalty
		if score < 50 {
			score = 50
		}
		feedback := fmt.Sprintf(
			"Transcript exceeds recommended length (%d/%d words). Consider being more concise.",
			wordCount, maxWords)
		return score, feedback
	}

	return 100, "Good length - within recommended range."
}
