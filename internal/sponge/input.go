package sponge

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Dataset bundles everything a design run needs: the cell types seen in
// the expression data, the element-by-cell-type matrix of mean values,
// and the element catalog
type Dataset struct {
	CellTypes []string

	Matrix ExpressionMatrix

	Catalog *Catalog
}

// datasetDoc is the on-disk JSON document layout
type datasetDoc struct {
	CellTypes []string     `json:"cell_types"`
	Elements  []elementDoc `json:"elements"`
}

// elementDoc is one element entry of the JSON document. Expression is
// sparse: absent cell types mean zero
type elementDoc struct {
	ID         string             `json:"id"`
	Seed       string             `json:"seed"`
	MatureSeq  string             `json:"mature_sequence"`
	Expression map[string]float64 `json:"expression"`
}

// ReadDataset reads a dataset from its JSON document form. Element
// order in the document becomes the catalog order, which the selector
// uses as its deterministic tie-break.
func ReadDataset(path string) (*Dataset, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset from %s: %v", path, err)
	}

	var doc datasetDoc
	if err := json.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %v", path, err)
	}
	if len(doc.Elements) == 0 {
		return nil, fmt.Errorf("dataset %s has no elements", path)
	}

	catalog := &Catalog{
		Seeds:      make(map[string]string, len(doc.Elements)),
		MatureSeqs: make(map[string]string, len(doc.Elements)),
	}
	matrix := make(ExpressionMatrix, len(doc.Elements))

	for _, el := range doc.Elements {
		if el.ID == "" {
			return nil, fmt.Errorf("dataset %s has an element without an id", path)
		}
		if _, seen := matrix[el.ID]; seen {
			return nil, fmt.Errorf("dataset %s lists element %s twice", path, el.ID)
		}

		catalog.IDs = append(catalog.IDs, el.ID)
		catalog.Seeds[el.ID] = el.Seed
		catalog.MatureSeqs[el.ID] = el.MatureSeq

		expr := make(map[string]float64, len(el.Expression))
		for cell, value := range el.Expression {
			expr[cell] = value
		}
		matrix[el.ID] = expr
	}

	return &Dataset{
		CellTypes: doc.CellTypes,
		Matrix:    matrix,
		Catalog:   catalog,
	}, nil
}

// ReadCSVDataset builds a dataset from the raw measurement files: an
// element x sample expression matrix, a sample metadata table mapping
// sample ids to cell types, and a family table with each element's seed
// and mature sequence.
//
// Sample columns are grouped by their cell type and averaged into the
// per-cell-type means the selector works with. Elements whose largest
// sample value does not exceed minExpression, or whose total signal is
// zero, are dropped as noise.
func ReadCSVDataset(matrixPath, metadataPath, familyPath string, minExpression float64) (*Dataset, error) {
	sampleCell, err := readSampleMetadata(metadataPath)
	if err != nil {
		return nil, err
	}

	records, err := readCSVRecords(matrixPath)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 || len(records[0]) < 2 {
		return nil, fmt.Errorf("expression matrix %s has no samples", matrixPath)
	}

	// header row: first column is the element id, the rest are samples
	samples := records[0][1:]
	cellTypeSet := make(map[string]bool)
	for _, sample := range samples {
		cell, ok := sampleCell[sample]
		if !ok {
			return nil, fmt.Errorf("sample %s has no cell type in %s", sample, metadataPath)
		}
		cellTypeSet[cell] = true
	}

	seeds, matures, err := readFamilyTable(familyPath)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{
		Seeds:      make(map[string]string),
		MatureSeqs: make(map[string]string),
	}
	matrix := make(ExpressionMatrix)

	for _, row := range records[1:] {
		id := row[0]

		sum := make(map[string]float64)
		count := make(map[string]int)
		max := 0.0
		total := 0.0

		for i, field := range row[1:] {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("bad value %q for %s in %s: %v", field, id, matrixPath, err)
			}

			cell := sampleCell[samples[i]]
			sum[cell] += value
			count[cell]++
			total += value
			if value > max {
				max = value
			}
		}

		// noise floor: skip elements never convincingly expressed
		if max <= minExpression || total == 0 {
			continue
		}

		means := make(map[string]float64, len(sum))
		for cell, s := range sum {
			means[cell] = s / float64(count[cell])
		}

		catalog.IDs = append(catalog.IDs, id)
		catalog.Seeds[id] = seeds[id]
		catalog.MatureSeqs[id] = matures[id]
		matrix[id] = means
	}

	if len(catalog.IDs) == 0 {
		return nil, fmt.Errorf("no elements in %s pass the %.0f expression floor", matrixPath, minExpression)
	}

	return &Dataset{
		CellTypes: setToSorted(cellTypeSet),
		Matrix:    matrix,
		Catalog:   catalog,
	}, nil
}

// readSampleMetadata maps sample ids to cell type labels from a CSV
// with columns "sample" and "CellType"
func readSampleMetadata(path string) (map[string]string, error) {
	records, err := readCSVRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("sample metadata %s is empty", path)
	}

	cellTypeCol := -1
	for i, name := range records[0] {
		if name == "CellType" {
			cellTypeCol = i
		}
	}
	if cellTypeCol < 0 {
		return nil, fmt.Errorf("sample metadata %s has no CellType column", path)
	}

	sampleCell := make(map[string]string, len(records)-1)
	for _, row := range records[1:] {
		sampleCell[row[0]] = row[cellTypeCol]
	}
	return sampleCell, nil
}

// readFamilyTable maps element ids to seeds and mature sequences from a
// CSV with columns "id", "seed" and "mature_sequence"
func readFamilyTable(path string) (seeds, matures map[string]string, err error) {
	records, err := readCSVRecords(path)
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("family table %s is empty", path)
	}

	seedCol, matureCol := -1, -1
	for i, name := range records[0] {
		switch name {
		case "seed":
			seedCol = i
		case "mature_sequence":
			matureCol = i
		}
	}
	if seedCol < 0 || matureCol < 0 {
		return nil, nil, fmt.Errorf("family table %s needs seed and mature_sequence columns", path)
	}

	seeds = make(map[string]string, len(records)-1)
	matures = make(map[string]string, len(records)-1)
	for _, row := range records[1:] {
		seeds[row[0]] = row[seedCol]
		matures[row[0]] = row[matureCol]
	}
	return seeds, matures, nil
}

// readCSVRecords reads a CSV into string records, header row first
func readCSVRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
	if df.Err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, df.Err)
	}

	return df.Records(), nil
}
