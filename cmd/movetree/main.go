// movetree parses PGN movetext into navigable move trees and re-emits
// the games as PGN or JSON.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/pgnkit/movetree/internal/config"
	"github.com/pgnkit/movetree/internal/logx"
	"github.com/pgnkit/movetree/internal/output"
	"github.com/pgnkit/movetree/internal/parser"
	"github.com/pgnkit/movetree/internal/rules"
	"github.com/pgnkit/movetree/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *version {
		fmt.Printf("movetree version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewDefault()
	applyFlags(cfg)
	log := logx.NewLogger(cfg.Verbose)

	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", *outputFile).Msg("create output file")
		}
		defer f.Close()
		cfg.OutputFile = f
	}

	writer := output.NewWriter(cfg.OutputFile, cfg)
	engine := rules.NewEngine()

	var games []*parser.Game
	var err error
	if flag.NArg() == 0 {
		games, err = parser.ParseAll(os.Stdin, engine)
		if err != nil {
			log.Fatal().Err(err).Msg("parse stdin")
		}
	} else {
		games = parseFiles(flag.Args(), engine, cfg, log)
	}

	written := 0
	for _, game := range games {
		if err := writer.WriteGame(game); err != nil {
			log.Fatal().Err(err).Msg("write game")
		}
		written++
		logGameStats(log, game)
	}
	if err := writer.Close(); err != nil {
		log.Fatal().Err(err).Msg("close output")
	}
	log.Info().Int("games", written).Msg("done")
}

// parseFiles parses the input files through a worker pool and returns
// the games in argument order.
func parseFiles(paths []string, engine rules.Engine, cfg *config.Config, log zerolog.Logger) []*parser.Game {
	pool := worker.NewPool(func(item worker.WorkItem) worker.ParseResult {
		res := worker.ParseResult{Path: item.Path, Index: item.Index}
		r, err := openInput(item.Path)
		if err != nil {
			res.Err = err
			return res
		}
		defer r.Close()
		res.Games, res.Err = parser.ParseAll(r, engine)
		return res
	}, worker.WithWorkers(cfg.Workers), worker.WithBufferSize(len(paths)+1))

	pool.Start()
	go func() {
		for i, path := range paths {
			pool.Submit(worker.WorkItem{Path: path, Index: i})
		}
		pool.Close()
	}()

	results := make([]worker.ParseResult, 0, len(paths))
	for res := range pool.Results() {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })

	var games []*parser.Game
	for _, res := range results {
		if res.Err != nil {
			log.Error().Err(res.Err).Str("path", res.Path).Msg("parse failed")
			continue
		}
		log.Debug().Str("path", res.Path).Int("games", len(res.Games)).Msg("parsed")
		games = append(games, res.Games...)
	}
	return games
}

// logGameStats reports per-game diagnostics at debug level.
func logGameStats(log zerolog.Logger, game *parser.Game) {
	s := game.Stats
	if s.IllegalMoves == 0 && s.TokensSkipped == 0 && s.DuplicateResults == 0 {
		return
	}
	log.Debug().
		Int("illegalMoves", s.IllegalMoves).
		Int("tokensSkipped", s.TokensSkipped).
		Int("duplicateResults", s.DuplicateResults).
		Str("event", game.Tags["Event"]).
		Msg("parse diagnostics")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: movetree [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Parses PGN movetext into move trees and re-emits the games.\n")
	fmt.Fprintf(os.Stderr, "Reads stdin when no input files are given; .gz and .zst input\n")
	fmt.Fprintf(os.Stderr, "is decompressed transparently.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nOutput formats (-W):\n")
	fmt.Fprintf(os.Stderr, "  pgn    tag-pair header plus movetext (default)\n")
	fmt.Fprintf(os.Stderr, "  json   structured export with per-move FENs\n")
}
