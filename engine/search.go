package engine

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"go.uber.org/zap"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	Checkmate = 10000.0
	DrawScore = 0.0
)

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

type SearchConfig struct {
	MaxDepth           int
	AspirationWindow   float64
	AspirationMinDepth int
	// AspirationMaxRetries caps re-searches of one depth; 0 never gives up.
	AspirationMaxRetries int
	// PrintCutStats writes the cut statistics as info strings after each search.
	PrintCutStats bool
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxDepth:           64,
		AspirationWindow:   0.5,
		AspirationMinDepth: 4,
	}
}

// SearchParams lives for one PickMove call.
type SearchParams struct {
	Depth     int
	StartTime time.Time
	MaxTime   time.Duration
	Nodes     uint64
	Cuts      CutStatistics
}

// Limits bounds a search. MaxTime is checked between depths only, and depth 1
// always completes, even with a zero MaxTime.
type Limits struct {
	Depth   int
	MaxTime time.Duration
}

type SearchResult struct {
	Move  dragontoothmg.Move
	Score float64
	Depth int
	Nodes uint64
	Cuts  CutStatistics
}

type Searcher struct {
	cfg    SearchConfig
	logger *zap.Logger
	out    io.Writer
}

// NewSearcher writes progress lines to out and diagnostics to logger.
func NewSearcher(cfg SearchConfig, logger *zap.Logger, out io.Writer) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultSearchConfig().MaxDepth
	}
	return &Searcher{cfg: cfg, logger: logger, out: out}
}

// PickMove returns the chosen move in coordinate notation, or false when the
// side to move has no legal move.
func (s *Searcher) PickMove(ctx context.Context, pos *Position, limits Limits) (string, bool) {
	result, ok := s.Search(ctx, pos, limits)
	if !ok {
		return "", false
	}
	return result.Move.String(), true
}

func (s *Searcher) Search(ctx context.Context, pos *Position, limits Limits) (SearchResult, bool) {
	legalMoves := pos.LegalMoves()
	if len(legalMoves) == 0 {
		s.logger.Info("no legal moves at root", zap.String("fen", pos.String()))
		return SearchResult{}, false
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 {
		maxDepth = s.cfg.MaxDepth
	}

	params := &SearchParams{StartTime: time.Now(), MaxTime: limits.MaxTime}
	// Always have a move ready
	result := SearchResult{Move: legalMoves[0]}

	s.logger.Debug("search started",
		zap.String("fen", pos.String()),
		zap.Int("moveCount", pos.MoveCount),
		zap.Int("maxDepth", maxDepth),
		zap.Duration("maxTime", limits.MaxTime))

	for depth := 1; depth <= maxDepth; depth++ {
		params.Depth = depth

		iterCtx := ctx
		if depth == 1 {
			iterCtx = context.WithoutCancel(ctx)
		}

		score, bestMove, completed := s.searchDepth(iterCtx, pos, depth, result, params)
		if !completed {
			s.logger.Debug("iteration interrupted", zap.Int("depth", depth))
			break
		}

		if bestMove != NoMove {
			result.Move = bestMove
		}
		result.Score = score
		result.Depth = depth
		s.report(params, depth, score, result.Move)

		if ctx.Err() != nil || time.Since(params.StartTime) >= params.MaxTime {
			break
		}
	}

	result.Nodes = params.Nodes
	result.Cuts = params.Cuts
	s.logger.Debug("search finished",
		zap.Int("depth", result.Depth),
		zap.Uint64("nodes", result.Nodes),
		zap.Object("cuts", &params.Cuts))
	if s.cfg.PrintCutStats {
		params.Cuts.dump(s.out)
	}
	return result, true
}

// searchDepth runs one iteration, re-searching with a wider window whenever
// the score lands outside the aspiration window.
func (s *Searcher) searchDepth(ctx context.Context, pos *Position, depth int, prev SearchResult, params *SearchParams) (float64, dragontoothmg.Move, bool) {
	alpha, beta := negInf, posInf
	if depth >= s.cfg.AspirationMinDepth && prev.Depth > 0 {
		alpha = prev.Score - s.cfg.AspirationWindow
		beta = prev.Score + s.cfg.AspirationWindow
	}

	for retries := 0; ; retries++ {
		score, bestMove := AlphaBeta(ctx, pos, depth, alpha, beta, true, params)
		if ctx.Err() != nil {
			return score, bestMove, false
		}

		switch {
		case score <= alpha:
			alpha = negInf
			params.Cuts.AspirationFailLow++
		case score >= beta:
			beta = posInf
			params.Cuts.AspirationFailHigh++
		default:
			return score, bestMove, true
		}

		s.logger.Debug("aspiration window failed",
			zap.Int("depth", depth),
			zap.Float64("score", score),
			zap.Int("retry", retries+1))

		if s.cfg.AspirationMaxRetries > 0 && retries+1 >= s.cfg.AspirationMaxRetries && (alpha != negInf || beta != posInf) {
			alpha, beta = negInf, posInf
			params.Cuts.AspirationGiveUps++
		}
	}
}

func (s *Searcher) report(params *SearchParams, depth int, score float64, bestMove dragontoothmg.Move) {
	elapsed := time.Since(params.StartTime)
	fmt.Fprintf(s.out, "info depth %d score cp %d nodes %d time %d pv %s\n",
		depth, int(score*100), params.Nodes, elapsed.Milliseconds(), bestMove.String())
	s.logger.Debug("depth completed",
		zap.Int("depth", depth),
		zap.Float64("score", score),
		zap.Uint64("nodes", params.Nodes),
		zap.Duration("elapsed", elapsed),
		zap.String("pv", bestMove.String()))
}

// AlphaBeta is depth-limited minimax with alpha-beta pruning. Scores are from
// the maximizing player's side; children are independent copies of pos.
// A cancelled context turns every node it reaches into a leaf.
func AlphaBeta(ctx context.Context, pos *Position, depth int, alpha, beta float64, maximizing bool, params *SearchParams) (float64, dragontoothmg.Move) {
	params.Nodes++

	if depth == 0 || ctx.Err() != nil {
		return leafScore(pos, maximizing), NoMove
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return terminalScore(pos, depth, maximizing), NoMove
	}
	moves = OrderMoves(pos, moves)

	bestMove := NoMove
	bestValue := posInf
	if maximizing {
		bestValue = negInf
	}

	for _, mv := range moves {
		child := pos.Apply(mv)
		eval, _ := AlphaBeta(ctx, &child, depth-1, alpha, beta, !maximizing, params)

		if maximizing && eval > bestValue {
			bestValue = eval
			bestMove = mv
			alpha = math.Max(alpha, eval)
		} else if !maximizing && eval < bestValue {
			bestValue = eval
			bestMove = mv
			beta = math.Min(beta, eval)
		}

		if beta <= alpha {
			params.Cuts.BetaCutoffs++
			break
		}
	}
	return bestValue, bestMove
}

// Minimax is AlphaBeta without pruning or ordering.
func Minimax(pos *Position, depth int, maximizing bool) (float64, dragontoothmg.Move) {
	if depth == 0 {
		return leafScore(pos, maximizing), NoMove
	}
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return terminalScore(pos, depth, maximizing), NoMove
	}

	bestMove := NoMove
	bestValue := posInf
	if maximizing {
		bestValue = negInf
	}
	for _, mv := range moves {
		child := pos.Apply(mv)
		eval, _ := Minimax(&child, depth-1, !maximizing)
		if (maximizing && eval > bestValue) || (!maximizing && eval < bestValue) {
			bestValue = eval
			bestMove = mv
		}
	}
	return bestValue, bestMove
}

func leafScore(pos *Position, maximizing bool) float64 {
	score := Evaluate(&pos.Board, pos.MoveCount)
	if maximizing {
		return score
	}
	return -score
}

// terminalScore handles a node without legal moves: mate or stalemate.
func terminalScore(pos *Position, depth int, maximizing bool) float64 {
	if !pos.InCheck() {
		return DrawScore
	}
	if maximizing {
		return -Checkmate + float64(depth)
	}
	return Checkmate - float64(depth)
}
