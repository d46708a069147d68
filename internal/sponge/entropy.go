package sponge

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// EntropyRank is one row of an entropy ranking: an element expressed in
// the cell type of interest, scored by how evenly its expression is
// spread across all cell types
type EntropyRank struct {
	ID string `json:"id"`

	Seed string `json:"seed"`

	// mean expression in the queried cell type
	MeanExpr float64 `json:"meanExpr"`

	// base-2 Shannon entropy of the element's expression distribution
	// across every cell type; low entropy means cell-type specific
	Entropy float64 `json:"entropy"`
}

// RankByEntropy returns the topN lowest-entropy elements whose mean
// expression in cellType is at least floor, entropy ascending with
// catalog order breaking ties. Cell-type-specific (low-entropy)
// elements are the most useful sponge candidates because they silence
// narrowly.
func RankByEntropy(matrix ExpressionMatrix, catalog *Catalog, cellTypes []string, cellType string, floor float64, topN int) ([]EntropyRank, error) {
	known := false
	for _, ct := range cellTypes {
		if ct == cellType {
			known = true
			break
		}
	}
	if !known {
		available := append([]string{}, cellTypes...)
		sort.Strings(available)
		return nil, fmt.Errorf(
			"cell type %q not found, available cell types:\n  %s",
			cellType, strings.Join(available, "\n  "),
		)
	}

	var ranks []EntropyRank
	for _, id := range catalog.IDs {
		mean := matrix.Expression(id, cellType)
		if mean < floor {
			continue
		}

		ranks = append(ranks, EntropyRank{
			ID:       id,
			Seed:     catalog.Seeds[id],
			MeanExpr: mean,
			Entropy:  expressionEntropy(matrix, id, cellTypes),
		})
	}

	// stable: catalog order survives exact entropy ties
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Entropy < ranks[j].Entropy
	})

	if topN >= 0 && len(ranks) > topN {
		ranks = ranks[:topN]
	}
	return ranks, nil
}

// expressionEntropy computes the base-2 Shannon entropy of an element's
// expression distribution over the cell types, 0 when the element is
// entirely unexpressed
func expressionEntropy(matrix ExpressionMatrix, id string, cellTypes []string) float64 {
	total := 0.0
	for _, ct := range cellTypes {
		total += matrix.Expression(id, ct)
	}
	if total == 0 {
		return 0
	}

	p := make([]float64, len(cellTypes))
	for i, ct := range cellTypes {
		p[i] = matrix.Expression(id, ct) / total
	}

	return stat.Entropy(p) / math.Ln2
}
