package sponge

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RegionType tags each region of an assembled sequence. It is a closed
// enum so render layers can match exhaustively
type RegionType int

const (
	// RegionContext is caller-supplied upstream sequence passed through
	RegionContext RegionType = iota

	// RegionStopCodon is the translation terminator
	RegionStopCodon

	// RegionLeadIn is the short linker between stop codon and cassette
	RegionLeadIn

	// RegionSite is one synthesized binding site
	RegionSite

	// RegionSpacer is one spacer between sites
	RegionSpacer

	// RegionLeadOut is the short linker after the cassette
	RegionLeadOut

	// RegionPolyASignal is the terminal poly-adenylation signal
	RegionPolyASignal
)

// String returns the region type's name for tables and JSON
func (t RegionType) String() string {
	switch t {
	case RegionContext:
		return "context"
	case RegionStopCodon:
		return "stop_codon"
	case RegionLeadIn:
		return "lead_in"
	case RegionSite:
		return "site"
	case RegionSpacer:
		return "spacer"
	case RegionLeadOut:
		return "lead_out"
	case RegionPolyASignal:
		return "polya_signal"
	}
	return "unknown"
}

// MarshalJSON writes the region type as its name
func (t RegionType) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// UnmarshalJSON reads a region type back from its name
func (t *RegionType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	for _, known := range []RegionType{
		RegionContext, RegionStopCodon, RegionLeadIn, RegionSite,
		RegionSpacer, RegionLeadOut, RegionPolyASignal,
	} {
		if known.String() == name {
			*t = known
			return nil
		}
	}
	return fmt.Errorf("unknown region type %q", name)
}

// Region is one typed, half-open [Start, End) span of the assembled
// sequence. Regions partition the sequence exactly and in order
type Region struct {
	Type RegionType `json:"type"`

	Start int `json:"start"`

	End int `json:"end"`

	Seq string `json:"seq"`

	// source element id for site regions, segment name for context
	ID string `json:"id,omitempty"`

	// cyclic index into the distinct sites for site regions, -1 otherwise
	ElementIndex int `json:"elementIndex"`
}

// Segment is a caller-supplied leading sequence (eg an upstream CDS)
// emitted before the cassette without biological interpretation
type Segment struct {
	Name string `json:"name"`

	Seq string `json:"seq"`
}

// AssemblyResult is a fully laid out sponge 3'UTR
type AssemblyResult struct {
	// the complete sequence, every region concatenated in order
	Seq string `json:"seq"`

	// only the repeated site+spacer block, excluding fixed flanks
	Cassette string `json:"cassette"`

	// the distinct binding sites cycled through
	Sites []BindingSite `json:"sites"`

	// ordered regions tiling Seq with no gaps or overlaps
	Regions []Region `json:"regions"`

	// total number of site regions emitted
	NumSites int `json:"numSites"`
}

// Fixed cassette building blocks. These literals are a system contract
// shared with downstream tooling, not runtime settings.
const (
	stopCodon = "UAA"
	leadIn    = "gcauac"
	leadOut   = "gauc"

	polyASignal = "CUCAGGUGCAGGCUGCCUAUCAGAAGGUGGUGGCUGGUGUGGCCAAUGCCCUGGCUCACAAAUACCACU" +
		"GAGAUCUUUUUCCCUCUGCCAAAAAUUAUGGGGACAUCAUGAAGCCCCUUGAGCAUCUGACUUCUGGCUAAUAAAGG" +
		"AAAUUUAUUUUCAUUGCAAUAGUGUGUUGGAAUUUUUUGUGUCUCUCACUCGGAAGGACAUAUGGGAGGGCAAAUCA" +
		"UUUAAAACAUCAGAAUGAGUAUUUGGUUUAGAGUUUGGCA"
)

// spacers are 16 non-homologous, low-structure 4 nt sequences cycled
// between sites. Lowercase marks them apart from the uppercase sites
var spacers = [16]string{
	"aauu", "ucga", "caag", "auac",
	"gaau", "cuua", "uuca", "agcu",
	"uacg", "gaua", "cuac", "acuc",
	"uguu", "caua", "ucuu", "agau",
}

// Assemble lays out a complete sponge 3'UTR: optional leading context,
// stop codon, lead-in, numSites binding sites alternating with spacers,
// lead-out, and the poly-A signal. Sites cycle through the distinct
// sites given, spacers cycle through the fixed pool of 16.
//
// Leading context is lowercased so the designed (uppercase) sites stay
// distinguishable from pass-through sequence by inspection alone.
func Assemble(sites []BindingSite, numSites int, leading []Segment) AssemblyResult {
	if len(sites) == 0 {
		return AssemblyResult{
			Seq:     "",
			Sites:   []BindingSite{},
			Regions: []Region{},
		}
	}

	var seq strings.Builder
	var cassette strings.Builder
	regions := []Region{}

	// emit appends a region at the running cursor
	emit := func(t RegionType, s, id string, elementIndex int) {
		start := seq.Len()
		seq.WriteString(s)
		regions = append(regions, Region{
			Type:         t,
			Start:        start,
			End:          seq.Len(),
			Seq:          s,
			ID:           id,
			ElementIndex: elementIndex,
		})
	}

	for _, segment := range leading {
		emit(RegionContext, strings.ToLower(segment.Seq), segment.Name, -1)
	}

	emit(RegionStopCodon, stopCodon, "", -1)
	emit(RegionLeadIn, leadIn, "", -1)

	for i := 0; i < numSites; i++ {
		site := sites[i%len(sites)]
		emit(RegionSite, site.Seq, site.ID, i%len(sites))
		cassette.WriteString(site.Seq)

		if i < numSites-1 {
			spacer := spacers[i%len(spacers)]
			emit(RegionSpacer, spacer, "", -1)
			cassette.WriteString(spacer)
		}
	}

	emit(RegionLeadOut, leadOut, "", -1)
	emit(RegionPolyASignal, polyASignal, "", -1)

	return AssemblyResult{
		Seq:      seq.String(),
		Cassette: cassette.String(),
		Sites:    sites,
		Regions:  regions,
		NumSites: numSites,
	}
}
