package sponge

import "sort"

// minLoop is the minimum number of unpaired bases a hairpin loop must
// enclose: positions i and j may only pair when j-i > minLoop
const minLoop = 3

// Pair is one base pair of a predicted structure, I < J
type Pair struct {
	I int `json:"i"`

	J int `json:"j"`
}

// FoldResult is a predicted non-crossing secondary structure
type FoldResult struct {
	// base pairs sorted by opening index; no index appears twice and
	// no two pairs cross
	Pairs []Pair `json:"pairs"`

	// dot-bracket annotation, one character per input base
	DotBracket string `json:"dotBracket"`
}

// canPair reports whether two bases form a Watson-Crick (A-U, G-C) or
// wobble (G-U) pair
func canPair(a, b byte) bool {
	switch {
	case a == 'A' && b == 'U', a == 'U' && b == 'A':
		return true
	case a == 'G' && b == 'C', a == 'C' && b == 'G':
		return true
	case a == 'G' && b == 'U', a == 'U' && b == 'G':
		return true
	}
	return false
}

// Fold estimates a maximum-pairing secondary structure for an RNA
// sequence. Case-insensitive; T is read as U. Sequences too short for
// any legal hairpin loop come back all-unpaired.
//
// This is the classical maximum-pairing dynamic program: pairs must be
// Watson-Crick or wobble, separated by more than minLoop bases, and
// non-crossing (no pseudoknots). It maximizes pair count, not free
// energy, so it is a preview fallback rather than a physical folding
// model. O(n^3) time and O(n^2) space, intended for cassette-sized
// windows only.
func Fold(sequence string) FoldResult {
	seq := []byte(normalizeRNA(sequence))
	n := len(seq)

	if n <= minLoop+1 {
		return FoldResult{Pairs: []Pair{}, DotBracket: dots(n)}
	}

	// dp[i][j] is the maximum pair count within [i, j]
	dp := make([][]int, n)
	for i := range dp {
		dp[i] = make([]int, n)
	}

	for span := minLoop + 1; span < n; span++ {
		for i := 0; i+span < n; i++ {
			j := i + span

			// option 1: j unpaired
			best := dp[i][j-1]

			// option 2: j paired with some k, splitting the range
			for k := i; k < j-minLoop; k++ {
				if !canPair(seq[k], seq[j]) {
					continue
				}

				score := 1
				if k > i {
					score += dp[i][k-1]
				}
				if k+1 <= j-1 {
					score += dp[k+1][j-1]
				}
				if score > best {
					best = score
				}
			}

			dp[i][j] = best
		}
	}

	// traceback with an explicit stack, re-deriving the winning branch
	// at each range in the same order the dp tested them
	pairs := []Pair{}
	stack := [][2]int{{0, n - 1}}

	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i, j := r[0], r[1]
		if j-i <= minLoop || dp[i][j] == 0 {
			continue
		}

		// unpaired first, matching the dp's option order on ties
		if dp[i][j] == dp[i][j-1] {
			stack = append(stack, [2]int{i, j - 1})
			continue
		}

		for k := i; k < j-minLoop; k++ {
			if !canPair(seq[k], seq[j]) {
				continue
			}

			score := 1
			if k > i {
				score += dp[i][k-1]
			}
			if k+1 <= j-1 {
				score += dp[k+1][j-1]
			}

			if score == dp[i][j] {
				pairs = append(pairs, Pair{I: k, J: j})
				if k > i {
					stack = append(stack, [2]int{i, k - 1})
				}
				stack = append(stack, [2]int{k + 1, j - 1})
				break
			}
		}
	}

	sort.Slice(pairs, func(a, b int) bool { return pairs[a].I < pairs[b].I })

	bracket := []byte(dots(n))
	for _, p := range pairs {
		bracket[p.I] = '('
		bracket[p.J] = ')'
	}

	return FoldResult{Pairs: pairs, DotBracket: string(bracket)}
}

// dots returns an all-unpaired annotation of length n
func dots(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '.'
	}
	return string(b)
}
