package engine

// Perft counts leaf nodes of the legal move tree to the given depth.
func Perft(pos *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, mv := range moves {
		child := pos.Apply(mv)
		nodes += Perft(&child, depth-1)
	}
	return nodes
}

// PerftDivide splits the perft count by root move.
func PerftDivide(pos *Position, depth int) map[string]uint64 {
	div := make(map[string]uint64)
	if depth <= 0 {
		return div
	}
	for _, mv := range pos.LegalMoves() {
		child := pos.Apply(mv)
		div[mv.String()] = Perft(&child, depth-1)
	}
	return div
}
