package main

import (
	"flag"

	"github.com/pgnkit/movetree/internal/config"
)

var (
	help    = flag.Bool("h", false, "Show usage information")
	version = flag.Bool("version", false, "Show version information")

	outputFile = flag.String("o", "", "Write output to `file` instead of stdout")
	formatName = flag.String("W", "pgn", "Output `format`: pgn or json")
	figurine   = flag.Bool("figurine", false, "Emit moves with Unicode piece glyphs")
	workers    = flag.Int("workers", 0, "Number of input files parsed in parallel (default: CPU count)")
	verbose    = flag.Bool("v", false, "Enable debug logging")

	stripComments   = flag.Bool("C", false, "Strip comments from output")
	stripNAGs       = flag.Bool("N", false, "Strip annotation glyphs from output")
	stripVariations = flag.Bool("V", false, "Strip variations from output")
)

// applyFlags transfers parsed flag values into the configuration.
func applyFlags(cfg *config.Config) {
	if *formatName == "json" {
		cfg.Format = config.JSON
	}
	cfg.Figurine = *figurine
	cfg.Verbose = *verbose
	cfg.KeepComments = !*stripComments
	cfg.KeepNAGs = !*stripNAGs
	cfg.KeepVariations = !*stripVariations
	if *workers > 0 {
		cfg.Workers = *workers
	}
}
