// Package sponge designs miRNA sponge cassettes: it selects a minimal
// panel of miRNAs that silence a regulatory program in off-target cell
// types while sparing target cell types, synthesizes bulged binding
// sites for each, assembles them into a 3'UTR cassette, and estimates
// secondary structure for preview.
package sponge

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ExpressionMatrix maps element id to cell type to mean expression.
// Absent entries are implicitly zero. The matrix is owned by the caller
// and never mutated here.
type ExpressionMatrix map[string]map[string]float64

// Expression returns the mean expression of an element in a cell type,
// zero when the entry is absent
func (m ExpressionMatrix) Expression(id, cellType string) float64 {
	return m[id][cellType]
}

// Catalog holds the miRNA elements available for selection. IDs keeps
// the catalog-native order, which is also the deterministic tie-break
// order of the greedy selector
type Catalog struct {
	// ids in catalog order
	IDs []string

	// element id to seed string
	Seeds map[string]string

	// element id to mature sequence (RNA, may contain legacy "T"s)
	MatureSeqs map[string]string
}

// SelectionParams are the user-facing knobs of the selector
type SelectionParams struct {
	// cell types that must stay unaffected ("silent in" these)
	Targets []string `json:"targets"`

	// cell types the cassette should suppress
	OffTargets []string `json:"offTargets"`

	// exclusive upper bound on mean expression in every target
	TargetThreshold float64 `json:"targetThreshold"`

	// inclusive lower bound for an off-target to count as covered
	CoverThreshold float64 `json:"coverThreshold"`

	// hard cap on the number of selected elements
	MaxElements int `json:"maxElements"`
}

// SelectionStep records one greedy pick
type SelectionStep struct {
	// the selected element
	ID string `json:"id"`

	// its seed string from the catalog
	Seed string `json:"seed"`

	// its mature sequence from the catalog
	MatureSeq string `json:"matureSeq"`

	// arithmetic mean of its expression across the targets
	MeanTarget float64 `json:"meanTarget"`

	// off-targets newly covered by this pick, sorted
	NewlyCovered []string `json:"newlyCovered"`
}

// SelectionResult is the outcome of a selector run. Failure to cover
// every off-target is not an error: it's Success=false plus the
// remaining Uncovered set, so callers can render partial progress
type SelectionResult struct {
	// whether every off-target was covered
	Success bool `json:"success"`

	// selected element ids in selection order, no duplicates
	Selected []string `json:"selected"`

	// one step per selected element, same order
	Steps []SelectionStep `json:"steps"`

	// off-targets no selected element covers, sorted
	Uncovered []string `json:"uncovered"`

	// every off-target considered, sorted
	AllOffTargets []string `json:"allOffTargets"`
}

// Select runs the greedy maximum-coverage selection: find elements that
// are silent in every target (mean expression strictly below
// TargetThreshold) but collectively expressed (at or above
// CoverThreshold) in every off-target cell type.
//
// The classical greedy approximation is used: each round picks the
// candidate covering the most still-uncovered off-targets, scanning in
// catalog order so that exact ties go to the earliest candidate. The
// loop exits early when no candidate makes progress, or at MaxElements.
// Callers must inspect Success/Uncovered, not just len(Selected), to
// know whether the design goal was met.
func Select(matrix ExpressionMatrix, catalog *Catalog, params SelectionParams) SelectionResult {
	allOff := uniqueSorted(params.OffTargets)

	if len(params.Targets) == 0 || len(params.OffTargets) == 0 {
		return SelectionResult{
			Success:       false,
			Selected:      []string{},
			Steps:         []SelectionStep{},
			Uncovered:     uniqueSorted(params.OffTargets),
			AllOffTargets: allOff,
		}
	}

	// candidates: silent in every target simultaneously
	var candidates []string
	for _, id := range catalog.IDs {
		silent := true
		for _, target := range params.Targets {
			if matrix.Expression(id, target) >= params.TargetThreshold {
				silent = false
				break
			}
		}
		if silent {
			candidates = append(candidates, id)
		}
	}

	// coverage precomputation per candidate
	covers := make(map[string]map[string]bool, len(candidates))
	for _, id := range candidates {
		covered := make(map[string]bool)
		for _, cell := range allOff {
			if matrix.Expression(id, cell) >= params.CoverThreshold {
				covered[cell] = true
			}
		}
		covers[id] = covered
	}

	uncovered := make(map[string]bool, len(allOff))
	for _, cell := range allOff {
		uncovered[cell] = true
	}

	selected := []string{}
	steps := []SelectionStep{}
	picked := make(map[string]bool)

	for len(uncovered) > 0 && len(selected) < params.MaxElements {
		bestID := ""
		var bestNew map[string]bool

		for _, id := range candidates {
			if picked[id] {
				continue
			}

			newCover := make(map[string]bool)
			for cell := range covers[id] {
				if uncovered[cell] {
					newCover[cell] = true
				}
			}

			// strictly larger only: the first candidate in catalog
			// order wins exact ties
			if len(newCover) > len(bestNew) {
				bestID = id
				bestNew = newCover
			}
		}

		if bestID == "" || len(bestNew) == 0 {
			break // no candidate makes progress
		}

		targetExpr := make([]float64, len(params.Targets))
		for i, target := range params.Targets {
			targetExpr[i] = matrix.Expression(bestID, target)
		}

		picked[bestID] = true
		selected = append(selected, bestID)
		steps = append(steps, SelectionStep{
			ID:           bestID,
			Seed:         catalog.Seeds[bestID],
			MatureSeq:    catalog.MatureSeqs[bestID],
			MeanTarget:   stat.Mean(targetExpr, nil),
			NewlyCovered: setToSorted(bestNew),
		})

		for cell := range bestNew {
			delete(uncovered, cell)
		}
	}

	return SelectionResult{
		Success:       len(uncovered) == 0,
		Selected:      selected,
		Steps:         steps,
		Uncovered:     setToSorted(uncovered),
		AllOffTargets: allOff,
	}
}

// uniqueSorted copies a slice to a sorted slice without duplicates
func uniqueSorted(list []string) []string {
	set := make(map[string]bool, len(list))
	for _, v := range list {
		set[v] = true
	}
	return setToSorted(set)
}

// setToSorted flattens a string set to a sorted slice
func setToSorted(set map[string]bool) []string {
	list := make([]string, 0, len(set))
	for v := range set {
		list = append(list, v)
	}
	sort.Strings(list)
	return list
}
