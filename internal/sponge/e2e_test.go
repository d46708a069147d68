package sponge

import (
	"strings"
	"testing"
)

// end to end: select a panel, synthesize a site per pick, assemble the
// cassette, and preview its structure
func Test_design_e2e(test *testing.T) {
	matrix := ExpressionMatrix{
		"miR-122-5p": {"Hepatocyte": 95000, "Cardiomyocyte": 4, "Neuron": 2},
		"miR-1-3p":   {"Cardiomyocyte": 60000, "Hepatocyte": 8, "Neuron": 1},
		"miR-124-3p": {"Neuron": 30000, "Hepatocyte": 1},
		"miR-16-5p":  {"Hepatocyte": 2000, "Cardiomyocyte": 2500, "Neuron": 3},
	}
	catalog := &Catalog{
		IDs: []string{"miR-122-5p", "miR-1-3p", "miR-124-3p", "miR-16-5p"},
		Seeds: map[string]string{
			"miR-122-5p": "GGAGUGU",
			"miR-1-3p":   "GGAAUGU",
			"miR-124-3p": "AAGGCAC",
			"miR-16-5p":  "AGCAGCA",
		},
		MatureSeqs: map[string]string{
			"miR-122-5p": "UGGAGUGUGACAAUGGUGUUUG",
			"miR-1-3p":   "UGGAAUGUAAAGAAGUAUGUAU",
			"miR-124-3p": "UAAGGCACGCGGUGAAUGCCAA",
			"miR-16-5p":  "UAGCAGCACGUAAAUAUUGGCG",
		},
	}

	// protect neurons, silence liver and heart
	params := SelectionParams{
		Targets:         []string{"Neuron"},
		OffTargets:      []string{"Hepatocyte", "Cardiomyocyte"},
		TargetThreshold: 10,
		CoverThreshold:  1000,
		MaxElements:     20,
	}

	selection := Select(matrix, catalog, params)
	if !selection.Success {
		test.Fatalf("selection failed, uncovered %v", selection.Uncovered)
	}

	// miR-16-5p covers both off-targets alone and comes up first even
	// though it is last in the catalog
	if len(selection.Selected) != 1 || selection.Selected[0] != "miR-16-5p" {
		test.Fatalf("selected %v, want [miR-16-5p]", selection.Selected)
	}

	sites := make([]BindingSite, 0, len(selection.Steps))
	for _, step := range selection.Steps {
		site, err := Synthesize(step.ID, step.MatureSeq)
		if err != nil {
			test.Fatal(err)
		}
		sites = append(sites, site)
	}

	assembly := Assemble(sites, 16, nil)

	if assembly.NumSites != 16 {
		test.Errorf("assembled %d sites, want 16", assembly.NumSites)
	}
	if !strings.HasPrefix(assembly.Seq, stopCodon+leadIn) {
		test.Error("assembly doesn't start with the stop codon and lead-in")
	}
	if !strings.HasSuffix(assembly.Seq, polyASignal) {
		test.Error("assembly doesn't end with the poly-A signal")
	}
	if warnings := ValidateCassette(assembly); len(warnings) != 0 {
		test.Errorf("cassette QC warnings: %v", warnings)
	}

	// the repeated site content shows up in the fold preview window
	fold := Fold(assembly.Cassette[:100])
	if len(fold.DotBracket) != 100 {
		test.Errorf("fold annotation is %d chars, want 100", len(fold.DotBracket))
	}
}
