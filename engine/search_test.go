package engine

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

const (
	foolsMateFEN  = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemateFEN  = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	backRankFEN   = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	italianFEN    = "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 4"
	generousLimit = time.Minute
)

func newTestSearcher(t *testing.T, cfg SearchConfig) (*Searcher, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return NewSearcher(cfg, zaptest.NewLogger(t), &out), &out
}

func fullWindow(ctx context.Context, pos *Position, depth int) (float64, *SearchParams) {
	params := &SearchParams{StartTime: time.Now(), MaxTime: generousLimit}
	score, _ := AlphaBeta(ctx, pos, depth, math.Inf(-1), math.Inf(1), true, params)
	return score, params
}

func TestAlphaBetaDepthZeroIsStaticEval(t *testing.T) {
	pos := PositionFromFEN(italianFEN)
	score, params := fullWindow(context.Background(), &pos, 0)
	if want := Evaluate(&pos.Board, pos.MoveCount); score != want {
		t.Fatalf("depth 0: got %v want %v", score, want)
	}
	if params.Nodes != 1 {
		t.Fatalf("depth 0 visited %d nodes want 1", params.Nodes)
	}
}

func TestAlphaBetaTerminalScores(t *testing.T) {
	mated := PositionFromFEN(foolsMateFEN)
	if score, _ := fullWindow(context.Background(), &mated, 1); score != -Checkmate+1 {
		t.Fatalf("mated at depth 1: got %v want %v", score, -Checkmate+1)
	}
	if score, _ := fullWindow(context.Background(), &mated, 3); score != -Checkmate+3 {
		t.Fatalf("mated at depth 3: got %v want %v", score, -Checkmate+3)
	}

	stalemate := PositionFromFEN(stalemateFEN)
	if score, _ := fullWindow(context.Background(), &stalemate, 2); score != DrawScore {
		t.Fatalf("stalemate: got %v want %v", score, DrawScore)
	}
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	tests := []struct {
		fen   string
		depth int
	}{
		{StartFEN, 3},
		{italianFEN, 2},
		{kiwipeteFEN, 2},
		{"4k3/8/8/3r4/8/4N3/8/4K3 w - - 0 30", 3},
	}
	for _, tt := range tests {
		pos := PositionFromFEN(tt.fen)
		got, _ := fullWindow(context.Background(), &pos, tt.depth)
		want, _ := Minimax(&pos, tt.depth, true)
		if got != want {
			t.Errorf("%s depth %d: alpha-beta %v minimax %v", tt.fen, tt.depth, got, want)
		}
	}
}

func TestPickMoveFindsMateInOne(t *testing.T) {
	s, out := newTestSearcher(t, DefaultSearchConfig())
	pos := PositionFromFEN(backRankFEN)

	result, ok := s.Search(context.Background(), &pos, Limits{Depth: 2, MaxTime: generousLimit})
	if !ok {
		t.Fatalf("expected a move")
	}
	if got := result.Move.String(); got != "a1a8" {
		t.Fatalf("best move %s want a1a8", got)
	}
	if result.Score != Checkmate-1 {
		t.Fatalf("score %v want %v", result.Score, Checkmate-1)
	}
	if result.Depth != 2 || result.Nodes == 0 {
		t.Fatalf("depth %d nodes %d", result.Depth, result.Nodes)
	}
	for _, line := range []string{"info depth 1 score cp", "info depth 2 score cp 999900"} {
		if !strings.Contains(out.String(), line) {
			t.Fatalf("output missing %q:\n%s", line, out.String())
		}
	}
}

func TestPickMoveReturnsLegalMove(t *testing.T) {
	s, _ := newTestSearcher(t, DefaultSearchConfig())
	pos := NewPosition()
	best, ok := s.PickMove(context.Background(), &pos, Limits{Depth: 2, MaxTime: generousLimit})
	if !ok {
		t.Fatalf("expected a move from the start position")
	}
	for _, mv := range pos.LegalMoveStrings() {
		if mv == best {
			return
		}
	}
	t.Fatalf("%s is not legal in the start position", best)
}

func TestPickMoveWithoutLegalMoves(t *testing.T) {
	s, out := newTestSearcher(t, DefaultSearchConfig())
	for _, fen := range []string{foolsMateFEN, stalemateFEN} {
		pos := PositionFromFEN(fen)
		if best, ok := s.PickMove(context.Background(), &pos, Limits{Depth: 3, MaxTime: generousLimit}); ok {
			t.Fatalf("%s: got %q, expected no move", fen, best)
		}
	}
	if out.Len() != 0 {
		t.Fatalf("no progress lines expected, got %q", out.String())
	}
}

func TestSearchZeroBudgetCompletesDepthOne(t *testing.T) {
	s, _ := newTestSearcher(t, DefaultSearchConfig())
	pos := PositionFromFEN(italianFEN)
	result, ok := s.Search(context.Background(), &pos, Limits{Depth: 6, MaxTime: 0})
	if !ok || result.Depth != 1 {
		t.Fatalf("ok=%v depth=%d, want depth 1", ok, result.Depth)
	}
}

func TestSearchStopsAfterBudget(t *testing.T) {
	s, _ := newTestSearcher(t, DefaultSearchConfig())
	pos := PositionFromFEN(italianFEN)
	budget := 50 * time.Millisecond

	start := time.Now()
	result, ok := s.Search(context.Background(), &pos, Limits{MaxTime: budget})
	elapsed := time.Since(start)
	if !ok || result.Depth < 1 || result.Depth >= DefaultSearchConfig().MaxDepth {
		t.Fatalf("ok=%v depth=%d", ok, result.Depth)
	}

	// Depths before the last one finished inside the budget, so the overrun is
	// at most one iteration. Replaying the same depths bounds that iteration.
	start = time.Now()
	s.Search(context.Background(), &pos, Limits{Depth: result.Depth, MaxTime: generousLimit})
	replay := time.Since(start)
	if limit := budget + 2*replay + 250*time.Millisecond; elapsed > limit {
		t.Fatalf("search took %v, limit %v (depth %d)", elapsed, limit, result.Depth)
	}
}

func TestSearchCancelledStillAnswers(t *testing.T) {
	s, _ := newTestSearcher(t, DefaultSearchConfig())
	pos := PositionFromFEN(italianFEN)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, ok := s.Search(ctx, &pos, Limits{Depth: 6, MaxTime: generousLimit})
	if !ok || result.Depth != 1 || result.Move == NoMove {
		t.Fatalf("ok=%v depth=%d move=%v", ok, result.Depth, result.Move)
	}
}

func TestAspirationRetriesReachExactScore(t *testing.T) {
	cfg := SearchConfig{MaxDepth: 3, AspirationWindow: 0.0001, AspirationMinDepth: 2, AspirationMaxRetries: 1}
	s, _ := newTestSearcher(t, cfg)
	pos := PositionFromFEN(italianFEN)

	result, ok := s.Search(context.Background(), &pos, Limits{MaxTime: generousLimit})
	if !ok || result.Depth != 3 {
		t.Fatalf("ok=%v depth=%d", ok, result.Depth)
	}
	want, _ := Minimax(&pos, 3, true)
	if result.Score != want {
		t.Fatalf("aspiration score %v, minimax %v", result.Score, want)
	}
}

func TestCutStatisticsAreCollected(t *testing.T) {
	cfg := DefaultSearchConfig()
	cfg.PrintCutStats = true
	s, out := newTestSearcher(t, cfg)
	pos := NewPosition()

	result, ok := s.Search(context.Background(), &pos, Limits{Depth: 3, MaxTime: generousLimit})
	if !ok {
		t.Fatalf("expected a move")
	}
	if result.Cuts.BetaCutoffs == 0 {
		t.Fatalf("expected beta cutoffs at depth 3")
	}
	if !strings.Contains(out.String(), "info string   Beta cutoffs:") {
		t.Fatalf("cut statistics not printed:\n%s", out.String())
	}
}

func TestNewSearcherDefaults(t *testing.T) {
	s := NewSearcher(SearchConfig{}, nil, nil)
	if s.cfg.MaxDepth != DefaultSearchConfig().MaxDepth || s.logger == nil || s.out == nil {
		t.Fatalf("defaults not applied: %+v", s.cfg)
	}
}

func BenchmarkSearchStartDepth3(b *testing.B) {
	s := NewSearcher(DefaultSearchConfig(), nil, nil)
	pos := NewPosition()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Search(context.Background(), &pos, Limits{Depth: 3, MaxTime: generousLimit})
	}
}
