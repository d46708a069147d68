package cmd

import (
	"sponge/internal/sponge"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rankCmd lists cell-type-specific miRNAs for one cell type
var rankCmd = &cobra.Command{
	Use:                        "rank",
	Short:                      "Rank miRNAs expressed in a cell type by how cell-type specific they are",
	PreRun:                     bindRankFlags,
	Run:                        sponge.RankCmd,
	SuggestionsMinimumDistance: 2,
	Long: `Rank the miRNAs expressed in one cell type by the Shannon entropy of
their expression across all cell types, lowest entropy first. Low-entropy
miRNAs are narrowly expressed and make the most selective sponge candidates.`,
}

// set flags
func init() {
	RootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("data", "d", "", "path to the dataset JSON document")
	rankCmd.Flags().String("matrix", "", "path to the raw miRNA x sample expression CSV (alternative to --data)")
	rankCmd.Flags().String("metadata", "", "path to the sample metadata CSV mapping samples to cell types")
	rankCmd.Flags().String("family", "", "path to the miRNA family CSV with seed and mature sequences")
	rankCmd.Flags().StringP("cell-type", "c", "", "cell type the miRNAs must be expressed in")
	rankCmd.Flags().Float64("min", 100, "minimum mean expression in the cell type")
	rankCmd.Flags().IntP("top", "n", 10, "number of miRNAs to print")
	rankCmd.MarkFlagRequired("cell-type")
}

// bindRankFlags binds this command's flag instances right before it runs
func bindRankFlags(cmd *cobra.Command, args []string) {
	viper.BindPFlag("filter.min-expression", cmd.Flags().Lookup("min"))
}
