// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// SelectionConfig holds the selector thresholds and cap
type SelectionConfig struct {
	// exclusive upper bound on mean expression in a target cell type
	TargetThreshold float64 `mapstructure:"target-threshold"`

	// inclusive lower bound for an off-target to count as covered
	CoverThreshold float64 `mapstructure:"cover-threshold"`

	// the maximum number of miRNAs in the final panel
	MaxElements int `mapstructure:"max-elements"`
}

// CassetteConfig is settings for cassette layout
type CassetteConfig struct {
	// total number of sponge sites in the cassette
	NumSites int `mapstructure:"num-sites"`
}

// FilterConfig is settings for expression data filtering
type FilterConfig struct {
	// an element's largest sample value must exceed this to be kept
	MinExpression float64 `mapstructure:"min-expression"`
}

// Config is the root-level settings struct and is a mix of settings
// available in defaults and those from the command line
type Config struct {
	// Selection thresholds and cap
	Selection SelectionConfig

	// Cassette layout settings
	Cassette CassetteConfig

	// Expression filter settings
	Filter FilterConfig
}

// New returns a new Config struct populated by Viper settings
// (defaults and/or command line arguments)
func New() *Config {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct: %v", err)
	}

	return &c
}

// setDefaults registers the fallback value for every setting
func setDefaults() {
	viper.SetDefault("selection.target-threshold", 10.0)
	viper.SetDefault("selection.cover-threshold", 1000.0)
	viper.SetDefault("selection.max-elements", 20)
	viper.SetDefault("cassette.num-sites", 16)
	viper.SetDefault("filter.min-expression", 100.0)
}
