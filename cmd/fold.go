package cmd

import (
	"sponge/internal/sponge"

	"github.com/spf13/cobra"
)

// foldCmd prints an estimated secondary structure for a sequence
var foldCmd = &cobra.Command{
	Use:                        "fold [sequence]",
	Short:                      "Estimate the secondary structure of an RNA sequence",
	Run:                        sponge.FoldCmd,
	SuggestionsMinimumDistance: 2,
	Long: `Estimate a non-crossing secondary structure with a maximum-pairing
dynamic program and print it in dot-bracket form.

This is a fast preview for cassette-sized sequences, not a thermodynamic
folding model: it maximizes Watson-Crick and wobble pair count under a
minimum hairpin loop of 3 nt.`,
}

// set flags
func init() {
	RootCmd.AddCommand(foldCmd)

	foldCmd.Flags().StringP("in", "i", "", "file with the sequence to fold (plain text or FASTA)")
}
