package sponge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_WriteJSON(t *testing.T) {
	site := BindingSite{ID: "miR-a", Seq: "UCAUGACGUACGU"}
	out := &Output{
		Time:      "2026-01-01 12:00:00",
		Execution: 0.2,
		Selection: SelectionResult{
			Success:       true,
			Selected:      []string{"miR-a"},
			Steps:         []SelectionStep{{ID: "miR-a", NewlyCovered: []string{"Heart"}}},
			Uncovered:     []string{},
			AllOffTargets: []string{"Heart"},
		},
		Assembly: Assemble([]BindingSite{site}, 2, nil),
	}

	path := filepath.Join(t.TempDir(), "design.json")
	if err := WriteJSON(path, out); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var read Output
	if err := json.Unmarshal(contents, &read); err != nil {
		t.Fatalf("written JSON doesn't parse: %v", err)
	}

	if !read.Selection.Success {
		t.Error("round-tripped output lost selection success")
	}
	if read.Assembly.Seq != out.Assembly.Seq {
		t.Error("round-tripped output lost the assembled sequence")
	}
	if len(read.Assembly.Regions) != len(out.Assembly.Regions) {
		t.Errorf(
			"round-tripped output has %d regions, want %d",
			len(read.Assembly.Regions), len(out.Assembly.Regions),
		)
	}

	// region types serialize as names, not ints
	if !strings.Contains(string(contents), `"type": "stop_codon"`) {
		t.Error("region types should serialize as their names")
	}
}

func Test_WriteFasta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.fasta")
	seq := strings.Repeat("UCAUGACGUACGU", 8)

	if err := WriteFasta(path, "sponge_utr3", seq); err != nil {
		t.Fatalf("WriteFasta() error = %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	if !strings.HasPrefix(lines[0], ">sponge_utr3") {
		t.Errorf("FASTA header = %q", lines[0])
	}

	var joined strings.Builder
	for _, line := range lines[1:] {
		if len(line) > 60 {
			t.Errorf("FASTA line longer than 60 chars: %q", line)
		}
		joined.WriteString(line)
	}
	if joined.String() != seq {
		t.Errorf("FASTA body = %s, want %s", joined.String(), seq)
	}
}
