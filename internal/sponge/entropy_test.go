package sponge

import (
	"math"
	"testing"
)

func Test_RankByEntropy(t *testing.T) {
	matrix := ExpressionMatrix{
		"miR-even":   {"Liver": 100, "Heart": 100},
		"miR-single": {"Liver": 200},
		"miR-skewed": {"Liver": 150, "Heart": 50},
	}
	catalog := testCatalog("miR-even", "miR-single", "miR-skewed")
	cellTypes := []string{"Liver", "Heart"}

	type args struct {
		cellType string
		floor    float64
		topN     int
	}
	tests := []struct {
		name    string
		args    args
		wantIDs []string
		wantErr bool
	}{
		{
			"entropy ascending",
			args{"Liver", 100, 10},
			[]string{"miR-single", "miR-skewed", "miR-even"},
			false,
		},
		{
			"floor filters out weakly expressed",
			args{"Liver", 120, 10},
			[]string{"miR-single", "miR-skewed"},
			false,
		},
		{
			"topN truncates",
			args{"Liver", 100, 2},
			[]string{"miR-single", "miR-skewed"},
			false,
		},
		{
			"unknown cell type",
			args{"Kidney", 100, 10},
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RankByEntropy(matrix, catalog, cellTypes, tt.args.cellType, tt.args.floor, tt.args.topN)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RankByEntropy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			if len(got) != len(tt.wantIDs) {
				t.Fatalf("RankByEntropy() returned %d rows, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("RankByEntropy() row %d = %s, want %s", i, got[i].ID, want)
				}
			}
		})
	}
}

func Test_expressionEntropy(t *testing.T) {
	matrix := ExpressionMatrix{
		"miR-even":   {"Liver": 100, "Heart": 100},
		"miR-single": {"Liver": 200},
		"miR-skewed": {"Liver": 150, "Heart": 50},
		"miR-silent": {},
	}
	cellTypes := []string{"Liver", "Heart"}

	tests := []struct {
		id   string
		want float64
	}{
		{"miR-even", 1.0},
		{"miR-single", 0.0},
		{"miR-skewed", -(0.75*math.Log2(0.75) + 0.25*math.Log2(0.25))},
		{"miR-silent", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := expressionEntropy(matrix, tt.id, cellTypes)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expressionEntropy(%s) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
