package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"sappyduck/config"
	"sappyduck/engine"
)

func main() {
	cfgPath := flag.String("config", os.Getenv(config.EnvPrefix+"_CONFIG"), "path to a config file (yaml, json, toml, env)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	h := newUCIHandler(cfg, logger, os.Stdout)
	h.run(os.Stdin)
	_ = logger.Sync()
	os.Exit(0)
}

// syncWriter serialises protocol output from the loop and the search goroutine.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

type uciHandler struct {
	cfg      *config.Config
	tm       engine.TimeManager
	searcher *engine.Searcher
	logger   *zap.Logger
	out      io.Writer

	pos    engine.Position
	gameID uuid.UUID

	// Only touched from the command loop.
	cancel context.CancelFunc
	done   chan struct{}
}

func newUCIHandler(cfg *config.Config, logger *zap.Logger, out io.Writer) *uciHandler {
	w := &syncWriter{w: out}
	return &uciHandler{
		cfg:      cfg,
		tm:       cfg.TimeManager(),
		searcher: engine.NewSearcher(cfg.SearchConfig(), logger, w),
		logger:   logger,
		out:      w,
		pos:      engine.NewPosition(),
		gameID:   uuid.New(),
	}
}

// run reads commands until quit or end of input.
func (h *uciHandler) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !h.handle(scanner.Text()) {
			return
		}
	}
	h.wait()
}

// handle executes one command line and reports false on quit.
func (h *uciHandler) handle(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 { // ignore blank lines
		return true
	}
	switch strings.ToLower(tokens[0]) {
	case "uci":
		fmt.Fprintln(h.out, "id name SappyDuck")
		fmt.Fprintln(h.out, "id author sappyduckie")
		fmt.Fprintln(h.out, "uciok")
	case "isready":
		fmt.Fprintln(h.out, "readyok")
	case "ucinewgame":
		h.wait()
		h.pos = engine.NewPosition()
		h.gameID = uuid.New()
		h.logger.Info("new game", zap.String("game", h.gameID.String()))
	case "position":
		h.wait()
		h.handlePosition(tokens[1:])
	case "go":
		h.wait()
		h.handleGo(tokens[1:])
	case "stop":
		h.stop()
	case "eval":
		h.wait()
		h.handleEval()
	case "quit":
		h.stop()
		return false
	default:
		fmt.Fprintln(h.out, "info string Unknown command:", line)
	}
	return true
}

func (h *uciHandler) handlePosition(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(h.out, "info string Malformed position command")
		return
	}

	var pos engine.Position
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		pos = engine.NewPosition()
	case "fen":
		fenFields := rest
		rest = nil
		if idx := slices.IndexFunc(fenFields, isMovesToken); idx >= 0 {
			fenFields, rest = fenFields[:idx], fenFields[idx:]
		}
		fen := strings.Join(fenFields, " ")
		pos = engine.PositionFromFEN(fen)
		h.logger.Debug("position from fen", zap.String("fen", fen), zap.String("parsed", pos.String()))
	default:
		fmt.Fprintln(h.out, "info string Invalid position subcommand")
		return
	}

	if len(rest) > 0 && isMovesToken(rest[0]) {
		for _, mv := range rest[1:] {
			if err := pos.MakeMove(mv); err != nil {
				fmt.Fprintln(h.out, "info string", err)
				h.logger.Warn("skipping move", zap.String("game", h.gameID.String()), zap.Error(err))
			}
		}
	}
	h.pos = pos
}

func isMovesToken(s string) bool {
	return strings.EqualFold(s, "moves")
}

type goCommand struct {
	depth    int
	infinite bool
	clock    engine.GameTime
}

// parseGo reads the go arguments. Missing or malformed numbers count as 0.
func parseGo(args []string) (cmd goCommand, unknown []string) {
	value := func(i int) int64 {
		if i+1 >= len(args) {
			return 0
		}
		n, err := strconv.ParseInt(args[i+1], 10, 64)
		if err != nil {
			return 0
		}
		return n
	}

	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "infinite":
			cmd.infinite = true
			continue
		case "depth":
			cmd.depth = int(value(i))
		case "wtime":
			cmd.clock.WTime = value(i)
		case "btime":
			cmd.clock.BTime = value(i)
		case "winc":
			cmd.clock.WInc = value(i)
		case "binc":
			cmd.clock.BInc = value(i)
		case "movestogo":
			cmd.clock.MovesToGo = int(value(i))
		case "movetime":
			cmd.clock.MoveTime = value(i)
		default:
			unknown = append(unknown, args[i])
			continue
		}
		i++
	}
	return cmd, unknown
}

func (h *uciHandler) limitsFor(cmd goCommand) engine.Limits {
	switch {
	case cmd.depth > 0:
		return engine.Limits{Depth: cmd.depth, MaxTime: h.cfg.DepthMaxTime}
	case cmd.infinite:
		return engine.Limits{Depth: h.cfg.MaxDepth, MaxTime: h.cfg.InfiniteMaxTime}
	default:
		return engine.Limits{
			Depth:   h.cfg.MaxDepth,
			MaxTime: h.tm.Budget(cmd.clock, h.pos.SideToMoveWhite()),
		}
	}
}

func (h *uciHandler) handleGo(args []string) {
	cmd, unknown := parseGo(args)
	for _, token := range unknown {
		fmt.Fprintln(h.out, "info string Unknown go subcommand", token)
	}
	limits := h.limitsFor(cmd)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	h.cancel, h.done = cancel, done

	pos := h.pos
	logger := h.logger.With(zap.String("game", h.gameID.String()))
	logger.Info("search requested",
		zap.Int("depth", limits.Depth),
		zap.Duration("budget", limits.MaxTime),
		zap.Bool("infinite", cmd.infinite))

	go func() {
		defer close(done)
		defer cancel()

		start := time.Now()
		bestMove, ok := h.searcher.PickMove(ctx, &pos, limits)
		if !ok {
			fmt.Fprintln(h.out, "info string no legal moves available")
			bestMove = "0000"
		}
		fmt.Fprintln(h.out, "bestmove", bestMove)
		logger.Info("search finished", zap.String("bestmove", bestMove), zap.Duration("elapsed", time.Since(start)))
	}()
}

// roundScore rounds to the printed precision so a score that cancels to a
// tiny negative value prints as 0.00 rather than -0.00.
func roundScore(score float64) float64 {
	r := math.Round(score*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

func (h *uciHandler) handleEval() {
	e := engine.EvaluateBreakdown(&h.pos.Board, h.pos.MoveCount)
	fmt.Fprintln(h.out, "info string phase", e.Phase)
	for _, side := range []struct {
		name  string
		score engine.SideScore
	}{{"white", e.White}, {"black", e.Black}} {
		fmt.Fprintf(h.out, "info string %s positional %.2f material %.2f tactical %.2f mate %.2f total %.2f\n",
			side.name, side.score.Positional, side.score.Material, side.score.Tactical, side.score.MatePatterns, side.score.Total())
	}
	fmt.Fprintf(h.out, "info string score %.2f\n", roundScore(e.Score))
}

func (h *uciHandler) stop() {
	if h.cancel != nil {
		h.cancel()
	}
}

// wait blocks until the running search, if any, has printed its bestmove.
func (h *uciHandler) wait() {
	if h.done == nil {
		return
	}
	<-h.done
	h.done, h.cancel = nil, nil
}
