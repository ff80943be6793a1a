package main

import (
	"context"
	"flag"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"go.uber.org/zap"

	"sappyduck/config"
	"sappyduck/engine"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", 5, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	cfgFlag := flag.String("config", "", "optional engine config file")
	verbose := flag.Bool("v", false, "print info lines for every completed depth")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	if *depthFlag <= 0 {
		sugar.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	cfg, err := config.Load(*cfgFlag)
	if err != nil {
		sugar.Fatalf("could not load config: %v", err)
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			sugar.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			sugar.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := engine.StartFEN
	if *fenFlag != "" {
		fen = *fenFlag
	}

	var progress io.Writer
	if *verbose {
		progress = os.Stdout
	}
	searcher := engine.NewSearcher(cfg.SearchConfig(), logger, progress)
	limits := engine.Limits{Depth: *depthFlag, MaxTime: cfg.DepthMaxTime}

	sugar.Infow("searchbench", "fen", fen, "depth", *depthFlag, "repeat", *repeatFlag)

	startAll := time.Now()
	var totalNodes uint64
	for i := 0; i < *repeatFlag; i++ {
		// Fresh position for each run
		pos := engine.PositionFromFEN(fen)

		iterStart := time.Now()
		result, ok := searcher.Search(context.Background(), &pos, limits)
		iterElapsed := time.Since(iterStart)
		if !ok {
			sugar.Warnw("no legal moves", "fen", fen)
			break
		}
		totalNodes += result.Nodes

		sugar.Infow("iteration",
			"n", i+1,
			"bestmove", result.Move.String(),
			"score", result.Score,
			"depth", result.Depth,
			"nodes", result.Nodes,
			"time", iterElapsed)
	}
	totalElapsed := time.Since(startAll)
	sugar.Infow("total", "time", totalElapsed, "nodes", totalNodes, "nps", float64(totalNodes)/totalElapsed.Seconds())

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			sugar.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			sugar.Fatalf("could not write memory profile: %v", err)
		}
	}
}
