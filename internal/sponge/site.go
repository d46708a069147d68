package sponge

import (
	"bytes"
	"fmt"
	"strings"
)

// seedLen is the length of a site's perfectly complementary seed match
const seedLen = 8

// bulgeLen is the length of the deliberately mismatched bulge region
const bulgeLen = 4

// minMatureLen is the shortest mature sequence the seed/bulge/3' slicing
// is defined for
const minMatureLen = seedLen + bulgeLen + 1

// BindingSite is a single bulged sponge site for one miRNA. The site
// strand is 5'->3' and antiparallel to the element: its last 8 nt pair
// perfectly with the element's seed region, the 4 nt before that are
// mutated to never pair (the bulge), and the rest pairs with the
// element's 3' end.
type BindingSite struct {
	// source element id
	ID string `json:"id"`

	// normalized mature sequence of the element
	ElementSeq string `json:"elementSeq"`

	// the full site, ThreePrimeMatch + BulgeMismatch + SeedMatch
	Seq string `json:"seq"`

	// 8 nt complementary to the element's seed-adjacent window
	SeedMatch string `json:"seedMatch"`

	// 4 nt guaranteed not to pair with the element
	BulgeMismatch string `json:"bulgeMismatch"`

	// the remaining 5' portion, complementary to the element's 3' end
	ThreePrimeMatch string `json:"threePrimeMatch"`
}

// Synthesize builds the bulged binding site for one mature miRNA
// sequence. The bulge prevents cleavage-style silencing while keeping
// the duplex stable, increasing the site's half-life as a sponge.
//
// The mature sequence must be at least 13 nt of A/U/G/C after
// normalization (uppercase, T mapped to U); anything else is rejected
// rather than sliced ambiguously.
func Synthesize(id, matureSeq string) (BindingSite, error) {
	mirna := normalizeRNA(matureSeq)

	if len(mirna) < minMatureLen {
		return BindingSite{}, fmt.Errorf(
			"mature sequence of %s is %d nt, need at least %d for seed/bulge slicing",
			id, len(mirna), minMatureLen,
		)
	}

	rc, err := revCompRNA(mirna)
	if err != nil {
		return BindingSite{}, fmt.Errorf("mature sequence of %s: %v", id, err)
	}

	seedMatch := rc[len(rc)-seedLen:]
	bulge := rc[len(rc)-seedLen-bulgeLen : len(rc)-seedLen]
	threePrime := rc[:len(rc)-seedLen-bulgeLen]

	return BindingSite{
		ID:              id,
		ElementSeq:      mirna,
		Seq:             threePrime + mismatch(bulge) + seedMatch,
		SeedMatch:       seedMatch,
		BulgeMismatch:   mismatch(bulge),
		ThreePrimeMatch: threePrime,
	}, nil
}

// normalizeRNA uppercases a sequence and maps legacy DNA "T"s to "U"s
func normalizeRNA(seq string) string {
	return strings.ReplaceAll(strings.ToUpper(seq), "T", "U")
}

// revCompRNA returns the RNA reverse complement, the antisense strand
// that would form a perfect duplex with seq
func revCompRNA(seq string) (string, error) {
	compMap := map[rune]byte{
		'A': 'U',
		'U': 'A',
		'G': 'C',
		'C': 'G',
	}

	var compBuffer bytes.Buffer
	for i, c := range seq {
		comp, ok := compMap[c]
		if !ok {
			return "", fmt.Errorf("unrecognized base %q at index %d", c, i)
		}
		compBuffer.WriteByte(comp)
	}

	compBytes := compBuffer.Bytes()
	for i := 0; i < len(compBytes)/2; i++ {
		j := len(compBytes) - i - 1
		compBytes[i], compBytes[j] = compBytes[j], compBytes[i]
	}

	return string(compBytes), nil
}

// mismatch substitutes every base with one that cannot Watson-Crick or
// wobble pair against the base the input would have paired with
func mismatch(seq string) string {
	mismatchMap := map[rune]byte{
		'A': 'C',
		'U': 'G',
		'G': 'U',
		'C': 'A',
	}

	var b bytes.Buffer
	for _, c := range seq {
		b.WriteByte(mismatchMap[c])
	}
	return b.String()
}
