// internal/scoring/fuzzy.go
package scoring

// similarityRatio scales edit distance into a 0-100 similarity score:
// 100 means equal strings, 0 means nothing in common.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 100
	}
	ar := []rune(a)
	br := []rune(b)
	longest := len(ar)
	if len(br) > longest {
		longest = len(br)
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein(ar, br)
	return 100 * (1 - float64(dist)/float64(longest))
}

// levenshtein computes edit distance (insertion, deletion, substitution cost 1)
// with a single-row DP table.
func levenshtein(ar, br []rune) int {
	n, m := len(ar), len(br)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}
	dp := make([]int, m+1)
	for j := 0; j <= m; j++ {
		dp[j] = j
	}
	for i := 1; i <= n; i++ {
		prev := dp[0]
		dp[0] = i
		for j := 1; j <= m; j++ {
			tmp := dp[j]
			cost := 0
			if ar[i-1] != br[j-1] {
				cost = 1
			}
			ins := dp[j] + 1
			del := dp[j-1] + 1
			sub := prev + cost
			dp[j] = min3(ins, del, sub)
			prev = tmp
		}
	}
	return dp[m]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
