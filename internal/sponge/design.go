package sponge

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"sponge/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// foldPreviewLimit caps the cassette length handed to the O(n^3) fold
// preview during a design run
const foldPreviewLimit = 600

// Flags contains parsed cobra flags like "data", "out", "target", etc
// that are used by multiple commands
type Flags struct {
	// path to the dataset JSON document
	data string

	// raw CSV alternative to data: expression matrix, sample metadata,
	// and miRNA family table
	matrix   string
	metadata string
	family   string

	// the name of the file to write the output to
	out string

	// the name of an optional FASTA file to write the sequence to
	fasta string

	// cell types to protect
	targets []string

	// cell types to suppress; all non-target cell types when empty
	offTargets []string

	// optional upstream context sequence emitted before the cassette
	context string
}

// parseCmdFlags gathers the data path, out path, etc from a cobra cmd
// object. Returns Flags and a Config struct for the runners below.
func parseCmdFlags(cmd *cobra.Command, args []string) (*Flags, *config.Config) {
	fs := &Flags{}
	c := config.New()

	fs.data, _ = cmd.Flags().GetString("data")
	fs.matrix, _ = cmd.Flags().GetString("matrix")
	fs.metadata, _ = cmd.Flags().GetString("metadata")
	fs.family, _ = cmd.Flags().GetString("family")
	fs.out, _ = cmd.Flags().GetString("out")
	fs.fasta, _ = cmd.Flags().GetString("fasta")
	fs.targets, _ = cmd.Flags().GetStringSlice("target")
	fs.offTargets, _ = cmd.Flags().GetStringSlice("off-target")
	fs.context, _ = cmd.Flags().GetString("context")

	return fs, c
}

// selectionParams builds SelectionParams from flags, config, and the
// dataset. When no off-targets were passed, every non-target cell type
// in the dataset is an off-target.
func selectionParams(dataset *Dataset, flags *Flags, c *config.Config) SelectionParams {
	offTargets := flags.offTargets
	if len(offTargets) == 0 {
		isTarget := make(map[string]bool, len(flags.targets))
		for _, t := range flags.targets {
			isTarget[t] = true
		}
		for _, cell := range dataset.CellTypes {
			if !isTarget[cell] {
				offTargets = append(offTargets, cell)
			}
		}
	}

	return SelectionParams{
		Targets:         flags.targets,
		OffTargets:      offTargets,
		TargetThreshold: c.Selection.TargetThreshold,
		CoverThreshold:  c.Selection.CoverThreshold,
		MaxElements:     c.Selection.MaxElements,
	}
}

// readFlagDataset loads the dataset named by the --data flag, or builds
// one from the raw CSV trio when --matrix was passed instead
func readFlagDataset(flags *Flags, c *config.Config) *Dataset {
	if flags.matrix != "" {
		if flags.metadata == "" || flags.family == "" {
			stderr.Fatal("--matrix needs --metadata and --family as well")
		}

		dataset, err := ReadCSVDataset(flags.matrix, flags.metadata, flags.family, c.Filter.MinExpression)
		if err != nil {
			stderr.Fatalf("failed to load dataset: %v", err)
		}
		return dataset
	}

	if flags.data == "" {
		stderr.Fatal("no dataset passed, see --data or --matrix")
	}

	dataset, err := ReadDataset(flags.data)
	if err != nil {
		stderr.Fatalf("failed to load dataset: %v", err)
	}
	return dataset
}

// SelectCmd runs panel selection from a cobra command (with its flags)
func SelectCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd, args)
	dataset := readFlagDataset(flags, conf)

	params := selectionParams(dataset, flags, conf)
	result := Select(dataset.Matrix, dataset.Catalog, params)
	printSelection(result)

	if flags.out != "" {
		contents, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			stderr.Fatalf("failed to serialize selection: %v", err)
		}
		if err := os.WriteFile(flags.out, contents, 0644); err != nil {
			stderr.Fatalf("failed to write %s: %v", flags.out, err)
		}
	}
}

// DesignCmd runs an end to end sponge design from a cobra command:
// select the panel, synthesize a site per miRNA, assemble the cassette,
// QC it, fold a preview, and write the report
func DesignCmd(cmd *cobra.Command, args []string) {
	start := time.Now()

	flags, conf := parseCmdFlags(cmd, args)
	dataset := readFlagDataset(flags, conf)

	params := selectionParams(dataset, flags, conf)
	result := Select(dataset.Matrix, dataset.Catalog, params)
	printSelection(result)

	if len(result.Selected) == 0 {
		stderr.Fatalf(
			"no miRNA is silent below %.1f in %s and expressed above %.1f in any off-target",
			params.TargetThreshold, strings.Join(params.Targets, ","), params.CoverThreshold,
		)
	}
	if !result.Success {
		logrus.Warnf("%d off-target cell types remain uncovered", len(result.Uncovered))
	}

	sites := make([]BindingSite, 0, len(result.Steps))
	for _, step := range result.Steps {
		site, err := Synthesize(step.ID, step.MatureSeq)
		if err != nil {
			stderr.Fatalf("failed to synthesize a binding site: %v", err)
		}
		sites = append(sites, site)
	}

	var leading []Segment
	if flags.context != "" {
		leading = append(leading, Segment{Name: "context", Seq: flags.context})
	}

	assembly := Assemble(sites, conf.Cassette.NumSites, leading)

	warnings := ValidateCassette(assembly)
	for _, w := range warnings {
		logrus.Warn(w)
	}

	var foldPreview *FoldResult
	if len(assembly.Cassette) <= foldPreviewLimit {
		f := Fold(assembly.Cassette)
		foldPreview = &f
	} else {
		logrus.Infof(
			"cassette is %d nt, skipping fold preview (limit %d)",
			len(assembly.Cassette), foldPreviewLimit,
		)
	}

	out := &Output{
		Time:      time.Now().Format("2006-01-02 15:04:05"),
		Execution: time.Since(start).Seconds(),
		Params:    params,
		Selection: result,
		Assembly:  assembly,
		Fold:      foldPreview,
		Warnings:  warnings,
	}

	outPath := flags.out
	if outPath == "" {
		outPath = "design.json"
	}
	if err := WriteJSON(outPath, out); err != nil {
		stderr.Fatal(err)
	}

	if flags.fasta != "" {
		if err := WriteFasta(flags.fasta, "sponge_utr3", assembly.Seq); err != nil {
			stderr.Fatal(err)
		}
	}

	fmt.Printf(
		"%d sites over %d miRNAs, %d nt total, written to %s\n",
		assembly.NumSites, len(sites), len(assembly.Seq), outPath,
	)
}

// FoldCmd estimates and prints the structure of a sequence passed as an
// argument or in a plain/FASTA file via --in
func FoldCmd(cmd *cobra.Command, args []string) {
	var seq string
	if len(args) > 0 {
		seq = args[0]
	} else if in, _ := cmd.Flags().GetString("in"); in != "" {
		contents, err := os.ReadFile(in)
		if err != nil {
			stderr.Fatalf("failed to read %s: %v", in, err)
		}
		for _, line := range strings.Split(string(contents), "\n") {
			if strings.HasPrefix(line, ">") {
				continue
			}
			seq += strings.TrimSpace(line)
		}
	}

	if seq == "" {
		stderr.Fatal("no sequence passed, pass one as an argument or see --in")
	}

	result := Fold(seq)
	fmt.Println(normalizeRNA(seq))
	fmt.Println(result.DotBracket)
	fmt.Printf("%d pairs\n", len(result.Pairs))
}

// RankCmd prints the lowest-entropy miRNAs expressed in one cell type
func RankCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd, args)
	dataset := readFlagDataset(flags, conf)

	cellType, _ := cmd.Flags().GetString("cell-type")
	top, _ := cmd.Flags().GetInt("top")

	ranks, err := RankByEntropy(
		dataset.Matrix,
		dataset.Catalog,
		dataset.CellTypes,
		cellType,
		conf.Filter.MinExpression,
		top,
	)
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	fmt.Printf("%-20s %-10s %12s %10s\n", "id", "seed", "mean", "entropy")
	for _, r := range ranks {
		fmt.Printf("%-20s %-10s %12.1f %10.3f\n", r.ID, r.Seed, r.MeanExpr, r.Entropy)
	}
}

// printSelection writes the step table and outcome to stdout
func printSelection(result SelectionResult) {
	fmt.Printf("%-5s %-20s %-10s %12s %10s\n", "step", "id", "seed", "target mean", "covers")
	for i, step := range result.Steps {
		fmt.Printf(
			"%-5d %-20s %-10s %12.1f %10d\n",
			i+1, step.ID, step.Seed, step.MeanTarget, len(step.NewlyCovered),
		)
	}

	if result.Success {
		fmt.Printf("covered all %d off-target cell types\n", len(result.AllOffTargets))
	} else {
		fmt.Printf("uncovered: %s\n", strings.Join(result.Uncovered, ", "))
	}
}
