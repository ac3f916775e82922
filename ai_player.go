package main

import "fmt"

// ChooseMove picks a move for player according to the requested difficulty.
// Easy plays the best single-move threat near existing stones, Medium greedily
// maximizes the whole-board evaluation one ply ahead, and Hard runs the
// minimax search. All three are deterministic for a given position.
func ChooseMove(state *GameState, rules Rules, player PlayerColor, difficulty Difficulty, config Config) (Move, error) {
	if state.Status == StatusBlackWon || state.Status == StatusWhiteWon || state.Status == StatusDraw {
		return Move{}, fmt.Errorf("game is over: %w", ErrNoLegalMove)
	}
	if state.Board.IsFull() {
		return Move{}, fmt.Errorf("board is full: %w", ErrNoLegalMove)
	}
	switch difficulty {
	case DifficultyEasy:
		return chooseEasyMove(state, rules, player, config)
	case DifficultyMedium:
		return chooseMediumMove(state, rules, player, config)
	case DifficultyHard:
		move, _, err := SearchBestMove(state, rules, player, config, defaultSearchOptions(config))
		return move, err
	default:
		return Move{}, fmt.Errorf("difficulty %d: %w", int(difficulty), ErrInvalidDifficulty)
	}
}

func chooseEasyMove(state *GameState, rules Rules, player PlayerColor, config Config) (Move, error) {
	candidates := collectCandidateMoves(state, config.EasyRadius)
	if len(candidates) == 0 {
		return Move{}, fmt.Errorf("no candidate cells: %w", ErrNoLegalMove)
	}
	best := candidates[0]
	bestScore := scoreMove(state, rules, best, player, config)
	for _, move := range candidates[1:] {
		score := scoreMove(state, rules, move, player, config)
		if score > bestScore || (score == bestScore && preferMove(move, best, state.Board.Size())) {
			best = move
			bestScore = score
		}
	}
	return best, nil
}

func chooseMediumMove(state *GameState, rules Rules, player PlayerColor, config Config) (Move, error) {
	candidates := collectCandidateMoves(state, config.CandidateRadius)
	if len(candidates) == 0 {
		return Move{}, fmt.Errorf("no candidate cells: %w", ErrNoLegalMove)
	}
	working := state.Clone()
	best := Move{X: -1, Y: -1}
	bestScore := -evalInf * 2
	for _, move := range candidates {
		if _, err := working.ApplyMove(rules, move, player); err != nil {
			continue
		}
		score := EvaluateBoard(working.Board, player, config)
		working.UndoMove()
		if score > bestScore || (score == bestScore && preferMove(move, best, working.Board.Size())) {
			best = move
			bestScore = score
		}
	}
	if best.X < 0 {
		return Move{}, fmt.Errorf("no playable candidate: %w", ErrNoLegalMove)
	}
	return best, nil
}

// preferMove breaks score ties: closer to the board center wins, then the
// smaller (Y,X) pair. Candidate lists are already (Y,X)-sorted, so the first
// best-scoring move is kept unless a later one is strictly more central.
func preferMove(a, b Move, size int) bool {
	if b.X < 0 {
		return true
	}
	center := size / 2
	da := chebyshev(a.X-center, a.Y-center)
	db := chebyshev(b.X-center, b.Y-center)
	if da != db {
		return da < db
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

func chebyshev(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
