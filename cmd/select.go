package cmd

import (
	"sponge/internal/sponge"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	targetHelp = `cell type(s) to protect. Selected miRNAs must be silent in every
one of these simultaneously. Repeat or comma separate for more than one.`

	offTargetHelp = `cell type(s) to suppress. Defaults to every cell type in the
dataset that is not a target.`
)

// selectCmd is for choosing the minimal miRNA panel covering the off-targets
var selectCmd = &cobra.Command{
	Use:                        "select",
	Short:                      "Select a minimal panel of miRNAs silent in the targets but active in the off-targets",
	PreRun:                     bindSelectFlags,
	Run:                        sponge.SelectCmd,
	SuggestionsMinimumDistance: 2,
	Long: `Select miRNAs for a sponge cassette with a greedy maximum-coverage search.

A miRNA is a candidate if its mean expression is below the target threshold in
every target cell type. Each round picks the candidate covering the most
still-uncovered off-target cell types (mean expression at or above the cover
threshold) until every off-target is covered, the panel cap is reached, or no
candidate makes further progress.`,
}

// set flags
func init() {
	RootCmd.AddCommand(selectCmd)

	selectCmd.Flags().StringP("data", "d", "", "path to the dataset JSON document")
	selectCmd.Flags().String("matrix", "", "path to the raw miRNA x sample expression CSV (alternative to --data)")
	selectCmd.Flags().String("metadata", "", "path to the sample metadata CSV mapping samples to cell types")
	selectCmd.Flags().String("family", "", "path to the miRNA family CSV with seed and mature sequences")
	selectCmd.Flags().StringP("out", "o", "", "output file name for the selection JSON")
	selectCmd.Flags().StringSliceP("target", "t", nil, targetHelp)
	selectCmd.Flags().StringSliceP("off-target", "f", nil, offTargetHelp)
	selectCmd.Flags().Float64("target-threshold", 10, "mean expression in a target must be below this")
	selectCmd.Flags().Float64("cover-threshold", 1000, "mean expression in an off-target must reach this to cover it")
	selectCmd.Flags().IntP("max", "m", 20, "maximum number of miRNAs in the panel")
	selectCmd.MarkFlagRequired("target")
}

// bindSelectFlags binds this command's flag instances right before it
// runs. Binding in init would race with other commands binding the same
// keys, and viper only honors the flag instance bound last.
func bindSelectFlags(cmd *cobra.Command, args []string) {
	viper.BindPFlag("selection.target-threshold", cmd.Flags().Lookup("target-threshold"))
	viper.BindPFlag("selection.cover-threshold", cmd.Flags().Lookup("cover-threshold"))
	viper.BindPFlag("selection.max-elements", cmd.Flags().Lookup("max"))
}
