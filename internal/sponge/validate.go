package sponge

import (
	"fmt"
	"strings"

	"github.com/bebop/poly/checks"
)

// Cassette GC bounds. A cassette outside this band folds or mis-primes
// more readily and is worth flagging before synthesis
const (
	cassetteGCMin = 0.25
	cassetteGCMax = 0.75
)

// homopolymers are runs a spacer must never contain
var homopolymers = []string{"AAAA", "UUUU", "GGGG", "CCCC"}

// ValidateCassette checks an assembly for GC content outside the
// allowed band and for homopolymer runs inside spacer regions. The
// checks are report-only: warnings are returned for the caller to log
// or render, never acted on here.
func ValidateCassette(result AssemblyResult) (warnings []string) {
	if result.Cassette != "" {
		gc := checks.GcContent(strings.ToUpper(result.Cassette))
		if gc < cassetteGCMin || gc > cassetteGCMax {
			warnings = append(warnings, fmt.Sprintf(
				"cassette GC content %.2f is outside [%.2f, %.2f]",
				gc, cassetteGCMin, cassetteGCMax,
			))
		}
	}

	for _, region := range result.Regions {
		if region.Type != RegionSpacer {
			continue
		}

		seq := strings.ToUpper(region.Seq)
		for _, run := range homopolymers {
			if strings.Contains(seq, run) {
				warnings = append(warnings, fmt.Sprintf(
					"spacer at [%d,%d) contains homopolymer %s",
					region.Start, region.End, run,
				))
			}
		}
	}
	return warnings
}
