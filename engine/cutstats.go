package engine

import (
	"fmt"
	"io"

	"go.uber.org/zap/zapcore"
)

// CutStatistics collects counts for each cutoff and re-search mechanism
// during one search.
type CutStatistics struct {
	BetaCutoffs        uint64
	AspirationFailLow  uint64
	AspirationFailHigh uint64
	// AspirationGiveUps counts depths where the retry cap forced a full window.
	AspirationGiveUps uint64
}

func (c *CutStatistics) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("betaCutoffs", c.BetaCutoffs)
	enc.AddUint64("aspirationFailLow", c.AspirationFailLow)
	enc.AddUint64("aspirationFailHigh", c.AspirationFailHigh)
	enc.AddUint64("aspirationGiveUps", c.AspirationGiveUps)
	return nil
}

func (c *CutStatistics) dump(w io.Writer) {
	fmt.Fprintln(w, "info string Cut statistics:")
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", c.BetaCutoffs)
	fmt.Fprintf(w, "info string   Aspiration fail-lows: %d\n", c.AspirationFailLow)
	fmt.Fprintf(w, "info string   Aspiration fail-highs: %d\n", c.AspirationFailHigh)
	fmt.Fprintf(w, "info string   Aspiration give-ups: %d\n", c.AspirationGiveUps)
}
