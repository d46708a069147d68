package cmd

import (
	"sponge/internal/sponge"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// designCmd runs selection, site synthesis, and cassette assembly end to end
var designCmd = &cobra.Command{
	Use:                        "design",
	Short:                      "Design a complete sponge 3'UTR for the target cell types",
	PreRun:                     bindDesignFlags,
	Run:                        sponge.DesignCmd,
	SuggestionsMinimumDistance: 2,
	Long: `Design a sponge 3'UTR end to end: select the miRNA panel, synthesize a
bulged binding site per miRNA, and lay the sites out into a cassette between
the stop codon, linkers, spacers, and the poly-A signal.

The report includes the selection steps, the region map of the assembled
sequence, QC warnings, and a secondary structure preview of the cassette.`,
	Aliases: []string{"build", "make"},
}

// set flags
func init() {
	RootCmd.AddCommand(designCmd)

	designCmd.Flags().StringP("data", "d", "", "path to the dataset JSON document")
	designCmd.Flags().String("matrix", "", "path to the raw miRNA x sample expression CSV (alternative to --data)")
	designCmd.Flags().String("metadata", "", "path to the sample metadata CSV mapping samples to cell types")
	designCmd.Flags().String("family", "", "path to the miRNA family CSV with seed and mature sequences")
	designCmd.Flags().StringP("out", "o", "", "output file name for the design JSON (default design.json)")
	designCmd.Flags().StringP("fasta", "a", "", "also write the full sequence to this FASTA file")
	designCmd.Flags().StringP("context", "c", "", "upstream context sequence to emit before the cassette")
	designCmd.Flags().StringSliceP("target", "t", nil, targetHelp)
	designCmd.Flags().StringSliceP("off-target", "f", nil, offTargetHelp)
	designCmd.Flags().Float64("target-threshold", 10, "mean expression in a target must be below this")
	designCmd.Flags().Float64("cover-threshold", 1000, "mean expression in an off-target must reach this to cover it")
	designCmd.Flags().IntP("max", "m", 20, "maximum number of miRNAs in the panel")
	designCmd.Flags().IntP("sites", "n", 16, "total number of sponge sites in the cassette")
	designCmd.MarkFlagRequired("target")
}

// bindDesignFlags binds this command's flag instances right before it
// runs, so its tuning flags win over select's bindings for the shared
// selection keys.
func bindDesignFlags(cmd *cobra.Command, args []string) {
	viper.BindPFlag("selection.target-threshold", cmd.Flags().Lookup("target-threshold"))
	viper.BindPFlag("selection.cover-threshold", cmd.Flags().Lookup("cover-threshold"))
	viper.BindPFlag("selection.max-elements", cmd.Flags().Lookup("max"))
	viper.BindPFlag("cassette.num-sites", cmd.Flags().Lookup("sites"))
}
