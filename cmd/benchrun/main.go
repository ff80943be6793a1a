package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"sappyduck/config"
	"sappyduck/engine"
)

const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// perftCase is a position with a published node count.
type perftCase struct {
	label string
	fen   string
	depth int
	nodes uint64
}

var perftCases = []perftCase{
	{"start", engine.StartFEN, 3, 8902},
	{"start", engine.StartFEN, 4, 197281},
	{"start", engine.StartFEN, 5, 4865609},
	{"kiwipete", kiwipeteFEN, 3, 97862},
}

func main() {
	maxDepth := flag.Int("perft-depth", 5, "skip perft cases deeper than this")
	searchDepth := flag.Int("search-depth", 4, "depth of the timed search")
	cfgFlag := flag.String("config", "", "optional engine config file")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Load(*cfgFlag)
	if err != nil {
		sugar.Fatalf("could not load config: %v", err)
	}

	microBenchmarks(os.Stdout)
	if err := perftChecks(os.Stdout, *maxDepth); err != nil {
		sugar.Errorw("perft mismatch", "error", err)
		logger.Sync()
		os.Exit(1)
	}
	searchRun(os.Stdout, engine.NewSearcher(cfg.SearchConfig(), logger, nil), *searchDepth)
}

// microBenchmarks times the evaluation and move ordering hot paths.
func microBenchmarks(w io.Writer) {
	pos := engine.PositionFromFEN(kiwipeteFEN)
	moves := pos.LegalMoves()

	fmt.Fprintln(w, "Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	for _, bench := range []struct {
		name string
		fn   func()
	}{
		{"Evaluate", func() { engine.Evaluate(&pos.Board, 40) }},
		{"OrderMoves", func() { engine.OrderMoves(&pos, moves) }},
		{"LegalMoves", func() { pos.LegalMoves() }},
	} {
		r := testing.Benchmark(func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				bench.fn()
			}
		})
		fmt.Fprintf(w, "%-12s %s %s\n", bench.name, r.String(), r.MemString())
	}
}

// perftChecks runs every case up to maxDepth and fails on the first wrong count.
func perftChecks(w io.Writer, maxDepth int) error {
	fmt.Fprintln(w, "\nPerft:")
	fmt.Fprintln(w, "TEST\t\tDepth\tNodes\t\tTime\tNPS")
	for _, c := range perftCases {
		if c.depth > maxDepth {
			continue
		}
		pos := engine.PositionFromFEN(c.fen)
		start := time.Now()
		nodes := engine.Perft(&pos, c.depth)
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%-10s\t%d\t%-12d\t%v\t%.0f\n", c.label, c.depth, nodes, elapsed.Round(time.Millisecond), float64(nodes)/elapsed.Seconds())
		if nodes != c.nodes {
			return fmt.Errorf("%s depth %d: got %d nodes want %d", c.label, c.depth, nodes, c.nodes)
		}
	}
	return nil
}

func searchRun(w io.Writer, s *engine.Searcher, depth int) {
	pos := engine.NewPosition()
	start := time.Now()
	result, _ := s.Search(context.Background(), &pos, engine.Limits{Depth: depth, MaxTime: time.Hour})
	elapsed := time.Since(start)
	fmt.Fprintf(w, "\nSearch: depth %d bestmove %s nodes %d time %v nps %.0f\n",
		result.Depth, result.Move.String(), result.Nodes, elapsed.Round(time.Millisecond), float64(result.Nodes)/elapsed.Seconds())
}
