// Package config holds program configuration for the movetree tool.
package config

import (
	"io"
	"os"
	"runtime"
)

// OutputFormat represents the supported output formats.
type OutputFormat int

const (
	PGN  OutputFormat = iota // movetext with tag-pair header
	JSON                     // structured game export
)

// Config holds all program configuration.
type Config struct {
	Format   OutputFormat
	Figurine bool // emit moves with Unicode piece glyphs
	Verbose  bool

	// Content filtering for output.
	KeepComments   bool
	KeepNAGs       bool
	KeepVariations bool

	// Workers is the number of files parsed concurrently.
	Workers int

	OutputFile io.Writer
}

// NewDefault returns a configuration with default values.
func NewDefault() *Config {
	return &Config{
		Format:         PGN,
		KeepComments:   true,
		KeepNAGs:       true,
		KeepVariations: true,
		Workers:        runtime.NumCPU(),
		OutputFile:     os.Stdout,
	}
}
