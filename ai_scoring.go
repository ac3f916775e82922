package main

import "sort"

// scoreMoveFor rates a hypothetical stone for one side only, by measuring the
// run it would create on each of the four axes and how many of the run's ends
// stay open. Occupied cells score zero.
func scoreMoveFor(state *GameState, rules Rules, move Move, player PlayerColor, h HeuristicConfig) float64 {
	if !state.Board.InBounds(move.X, move.Y) || !state.Board.IsEmpty(move.X, move.Y) {
		return 0
	}
	playerCell := CellFromPlayer(player)
	winLen := rules.WinLength()
	total := 0.0
	for _, dir := range lineDirections {
		length, openEnds := measureRun(state.Board, move, playerCell, dir[0], dir[1])
		total += runWeight(length, openEnds, winLen, h)
	}
	return total
}

// measureRun walks both ways from move along (dx,dy), counting own stones the
// placed stone would connect, and reports how many of the two ends land on an
// empty in-bounds cell.
func measureRun(board Board, move Move, playerCell Cell, dx, dy int) (length, openEnds int) {
	length = 1
	for _, sign := range [2]int{1, -1} {
		x := move.X + dx*sign
		y := move.Y + dy*sign
		for board.InBounds(x, y) && board.At(x, y) == playerCell {
			length++
			x += dx * sign
			y += dy * sign
		}
		if board.InBounds(x, y) && board.At(x, y) == CellEmpty {
			openEnds++
		}
	}
	return length, openEnds
}

func runWeight(length, openEnds, winLen int, h HeuristicConfig) float64 {
	if length >= winLen {
		return h.Win5
	}
	if openEnds == 0 {
		return 0
	}
	switch length {
	case winLen - 1:
		if openEnds == 2 {
			return h.Open4
		}
		return h.Closed4
	case winLen - 2:
		if openEnds == 2 {
			return h.Open3
		}
		return h.Closed3
	case winLen - 3:
		if openEnds == 2 {
			return h.Open2
		}
		return h.Closed2
	default:
		return 0
	}
}

// scoreMove rates a move for player by combining its attacking value with the
// value of denying the same cell to the opponent. Completing a five dominates
// everything; blocking the opponent's five dominates everything but that.
func scoreMove(state *GameState, rules Rules, move Move, player PlayerColor, config Config) float64 {
	h := config.Heuristics
	if h == (HeuristicConfig{}) {
		h = DefaultConfig().Heuristics
	}
	own := scoreMoveFor(state, rules, move, player, h)
	if own >= h.Win5 {
		return h.Win5
	}
	block := scoreMoveFor(state, rules, move, otherPlayer(player), h)
	if block >= h.Win5 {
		return h.BlockWin5 + own
	}
	return own + block*0.9
}

// collectCandidateMoves returns the empty cells within Chebyshev distance
// radius of any stone, ordered by (Y,X). An empty board yields only the
// center cell.
func collectCandidateMoves(state *GameState, radius int) []Move {
	size := state.Board.Size()
	if state.Board.CountStones() == 0 {
		c := size / 2
		return []Move{{X: c, Y: c}}
	}
	if radius < 1 {
		radius = 1
	}
	seen := make(map[int]bool)
	moves := []Move{}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if state.Board.At(x, y) == CellEmpty {
				continue
			}
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					ny := y + dy
					if !state.Board.InBounds(nx, ny) || !state.Board.IsEmpty(nx, ny) {
						continue
					}
					idx := ny*size + nx
					if seen[idx] {
						continue
					}
					seen[idx] = true
					moves = append(moves, Move{X: nx, Y: ny})
				}
			}
		}
	}
	sort.Slice(moves, func(i, j int) bool {
		if moves[i].Y != moves[j].Y {
			return moves[i].Y < moves[j].Y
		}
		return moves[i].X < moves[j].X
	})
	return moves
}

// orderCandidates sorts candidates best-first by their single-move threat
// score, breaking ties by (Y,X) so the ordering stays deterministic.
func orderCandidates(state *GameState, rules Rules, moves []Move, player PlayerColor, config Config) []Move {
	type scored struct {
		move  Move
		score float64
	}
	scoredMoves := make([]scored, len(moves))
	for i, m := range moves {
		scoredMoves[i] = scored{move: m, score: scoreMove(state, rules, m, player, config)}
	}
	sort.SliceStable(scoredMoves, func(i, j int) bool {
		return scoredMoves[i].score > scoredMoves[j].score
	})
	out := make([]Move, len(moves))
	for i, s := range scoredMoves {
		out[i] = s.move
	}
	return out
}
