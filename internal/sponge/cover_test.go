package sponge

import (
	"reflect"
	"testing"
)

// testCatalog builds a catalog whose order is the order of ids given
func testCatalog(ids ...string) *Catalog {
	c := &Catalog{
		Seeds:      make(map[string]string),
		MatureSeqs: make(map[string]string),
	}
	for _, id := range ids {
		c.IDs = append(c.IDs, id)
		c.Seeds[id] = "ACGUACG"
		c.MatureSeqs[id] = "ACGUACGUACGUA"
	}
	return c
}

func Test_Select(t *testing.T) {
	type args struct {
		matrix  ExpressionMatrix
		catalog *Catalog
		params  SelectionParams
	}
	tests := []struct {
		name          string
		args          args
		wantSuccess   bool
		wantSelected  []string
		wantUncovered []string
	}{
		{
			"single miRNA covers both off-targets",
			args{
				ExpressionMatrix{
					"miR-122": {"Liver": 2, "Heart": 1500, "Kidney": 1200},
				},
				testCatalog("miR-122"),
				SelectionParams{
					Targets:         []string{"Liver"},
					OffTargets:      []string{"Heart", "Kidney"},
					TargetThreshold: 10,
					CoverThreshold:  1000,
					MaxElements:     20,
				},
			},
			true,
			[]string{"miR-122"},
			[]string{},
		},
		{
			"no candidate reaches the cover bar",
			args{
				ExpressionMatrix{
					"miR-122": {"Liver": 2, "Heart": 1500, "Kidney": 1200},
				},
				testCatalog("miR-122"),
				SelectionParams{
					Targets:         []string{"Liver"},
					OffTargets:      []string{"Heart", "Kidney"},
					TargetThreshold: 10,
					CoverThreshold:  2000,
					MaxElements:     20,
				},
			},
			false,
			[]string{},
			[]string{"Heart", "Kidney"},
		},
		{
			"two miRNAs needed to cover three off-targets",
			args{
				ExpressionMatrix{
					"miR-1": {"Liver": 2, "Heart": 150, "Kidney": 120},
					"miR-2": {"Brain": 500},
					"miR-3": {"Liver": 50, "Heart": 900, "Kidney": 900, "Brain": 900},
				},
				testCatalog("miR-1", "miR-2", "miR-3"),
				SelectionParams{
					Targets:         []string{"Liver"},
					OffTargets:      []string{"Heart", "Kidney", "Brain"},
					TargetThreshold: 10,
					CoverThreshold:  100,
					MaxElements:     20,
				},
			},
			true,
			[]string{"miR-1", "miR-2"},
			[]string{},
		},
		{
			"cap stops the loop before full coverage",
			args{
				ExpressionMatrix{
					"miR-1": {"Heart": 150, "Kidney": 120},
					"miR-2": {"Brain": 500},
				},
				testCatalog("miR-1", "miR-2"),
				SelectionParams{
					Targets:         []string{"Liver"},
					OffTargets:      []string{"Heart", "Kidney", "Brain"},
					TargetThreshold: 10,
					CoverThreshold:  100,
					MaxElements:     1,
				},
			},
			false,
			[]string{"miR-1"},
			[]string{"Brain"},
		},
		{
			"first candidate in catalog order wins exact ties",
			args{
				ExpressionMatrix{
					"miR-b": {"Heart": 300},
					"miR-a": {"Heart": 300},
				},
				testCatalog("miR-b", "miR-a"),
				SelectionParams{
					Targets:         []string{"Liver"},
					OffTargets:      []string{"Heart"},
					TargetThreshold: 10,
					CoverThreshold:  100,
					MaxElements:     20,
				},
			},
			true,
			[]string{"miR-b"},
			[]string{},
		},
		{
			"a miRNA expressed in any target is not a candidate",
			args{
				ExpressionMatrix{
					"miR-1": {"Muscle": 80, "Heart": 900},
					"miR-2": {"Heart": 500},
				},
				testCatalog("miR-1", "miR-2"),
				SelectionParams{
					Targets:         []string{"Liver", "Muscle"},
					OffTargets:      []string{"Heart"},
					TargetThreshold: 10,
					CoverThreshold:  100,
					MaxElements:     20,
				},
			},
			true,
			[]string{"miR-2"},
			[]string{},
		},
		{
			"empty targets return a trivial failure",
			args{
				ExpressionMatrix{
					"miR-1": {"Heart": 900},
				},
				testCatalog("miR-1"),
				SelectionParams{
					Targets:         []string{},
					OffTargets:      []string{"Heart"},
					TargetThreshold: 10,
					CoverThreshold:  100,
					MaxElements:     20,
				},
			},
			false,
			[]string{},
			[]string{"Heart"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.args.matrix, tt.args.catalog, tt.args.params)

			if got.Success != tt.wantSuccess {
				t.Errorf("Select() success = %v, want %v", got.Success, tt.wantSuccess)
			}
			if !reflect.DeepEqual(got.Selected, tt.wantSelected) {
				t.Errorf("Select() selected = %v, want %v", got.Selected, tt.wantSelected)
			}
			if !reflect.DeepEqual(got.Uncovered, tt.wantUncovered) {
				t.Errorf("Select() uncovered = %v, want %v", got.Uncovered, tt.wantUncovered)
			}
			if len(got.Selected) != len(got.Steps) {
				t.Errorf("Select() %d selected but %d steps", len(got.Selected), len(got.Steps))
			}
			if len(got.Selected) > tt.args.params.MaxElements && tt.args.params.MaxElements > 0 {
				t.Errorf("Select() %d selected, cap %d", len(got.Selected), tt.args.params.MaxElements)
			}
		})
	}
}

// every off-target lands in exactly one of uncovered or some step's
// newly covered set
func Test_Select_accounting(t *testing.T) {
	matrix := ExpressionMatrix{
		"miR-1": {"Heart": 150, "Kidney": 120},
		"miR-2": {"Brain": 500, "Kidney": 500},
		"miR-3": {"Lung": 40},
	}
	params := SelectionParams{
		Targets:         []string{"Liver"},
		OffTargets:      []string{"Heart", "Kidney", "Brain", "Lung", "Skin"},
		TargetThreshold: 10,
		CoverThreshold:  100,
		MaxElements:     20,
	}

	got := Select(matrix, testCatalog("miR-1", "miR-2", "miR-3"), params)

	seen := make(map[string]int)
	for _, cell := range got.Uncovered {
		seen[cell]++
	}
	for _, step := range got.Steps {
		for _, cell := range step.NewlyCovered {
			seen[cell]++
		}
	}

	for _, cell := range got.AllOffTargets {
		if seen[cell] != 1 {
			t.Errorf("off-target %s accounted for %d times, want exactly once", cell, seen[cell])
		}
	}
	if len(seen) != len(got.AllOffTargets) {
		t.Errorf("%d cell types accounted for, want %d", len(seen), len(got.AllOffTargets))
	}
}

func Test_Select_meanTarget(t *testing.T) {
	matrix := ExpressionMatrix{
		"miR-1": {"Liver": 4, "Muscle": 8, "Heart": 900},
	}
	params := SelectionParams{
		Targets:         []string{"Liver", "Muscle"},
		OffTargets:      []string{"Heart"},
		TargetThreshold: 10,
		CoverThreshold:  100,
		MaxElements:     20,
	}

	got := Select(matrix, testCatalog("miR-1"), params)

	if len(got.Steps) != 1 {
		t.Fatalf("Select() made %d steps, want 1", len(got.Steps))
	}
	if got.Steps[0].MeanTarget != 6 {
		t.Errorf("Select() meanTarget = %v, want 6", got.Steps[0].MeanTarget)
	}
}
