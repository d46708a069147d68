package sponge

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Output is a struct containing the results of one design run
type Output struct {
	// Time, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the command
	Execution float64 `json:"execution"`

	// Params echo the selection parameters the run used
	Params SelectionParams `json:"params"`

	// Selection is the greedy cover outcome
	Selection SelectionResult `json:"selection"`

	// Assembly is the laid out sponge 3'UTR
	Assembly AssemblyResult `json:"assembly"`

	// Fold is a structure preview of the cassette, when computed
	Fold *FoldResult `json:"fold,omitempty"`

	// Warnings from cassette QC
	Warnings []string `json:"warnings,omitempty"`
}

// WriteJSON writes a design output to the filename requested
func WriteJSON(filename string, out *Output) error {
	contents, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize design output: %v", err)
	}

	if err := os.WriteFile(filename, contents, 0644); err != nil {
		return fmt.Errorf("failed to write design output to %s: %v", filename, err)
	}
	return nil
}

// WriteFasta writes a single RNA sequence to a FASTA file, wrapped at
// 60 characters
func WriteFasta(filename, id, seq string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", filename, err)
	}
	defer f.Close()

	s := linear.NewSeq(id, alphabet.BytesToLetters([]byte(seq)), alphabet.RNA)
	w := fasta.NewWriter(f, 60)
	if _, err := w.Write(s); err != nil {
		return fmt.Errorf("failed to write %s to %s: %v", id, filename, err)
	}
	return nil
}
