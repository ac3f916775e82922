package main

import "fmt"

const (
	searchDepthMin = 2
	searchDepthMax = 4
)

// SearchOptions tunes one SearchBestMove call. Prune toggles alpha-beta
// cutoffs; with pruning off the search visits every node but must return the
// same move and value. ShouldStop, when set, is polled between root moves.
type SearchOptions struct {
	Depth      int
	Prune      bool
	Cache      *EvalCache
	ShouldStop func() bool
}

func defaultSearchOptions(config Config) SearchOptions {
	depth := config.AiDepth
	if depth < searchDepthMin {
		depth = searchDepthMin
	}
	if depth > searchDepthMax {
		depth = searchDepthMax
	}
	var cache *EvalCache
	if config.AiEnableEvalCache {
		cache = NewEvalCache(config.AiEvalCacheSize, config.AiEvalCacheBuckets)
	}
	return SearchOptions{Depth: depth, Prune: true, Cache: cache}
}

// SearchBestMove runs a fixed-depth minimax for player on a copy of state and
// returns the best move with its score. A finished or full position yields
// ErrNoLegalMove.
func SearchBestMove(state *GameState, rules Rules, player PlayerColor, config Config, opts SearchOptions) (Move, float64, error) {
	if state.Status != StatusRunning && state.Status != StatusNotStarted {
		return Move{}, 0, fmt.Errorf("game is over: %w", ErrNoLegalMove)
	}
	if state.Board.IsFull() {
		return Move{}, 0, fmt.Errorf("board is full: %w", ErrNoLegalMove)
	}
	if opts.Depth <= 0 {
		opts.Depth = defaultSearchOptions(config).Depth
	}

	working := state.Clone()
	candidates := collectCandidateMoves(&working, config.CandidateRadius)
	candidates = orderCandidates(&working, rules, candidates, player, config)

	bestMove := Move{X: -1, Y: -1}
	bestScore := -evalInf * 2
	alpha := -evalInf * 2
	beta := evalInf * 2

	for _, move := range candidates {
		if opts.ShouldStop != nil && opts.ShouldStop() && bestMove.X >= 0 {
			break
		}
		if _, err := working.ApplyMove(rules, move, player); err != nil {
			continue
		}
		score := minimaxValue(&working, rules, player, opts.Depth-1, 1, alpha, beta, false, config, opts)
		working.UndoMove()
		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if opts.Prune && bestScore > alpha {
			alpha = bestScore
		}
	}

	if bestMove.X < 0 {
		return Move{}, 0, fmt.Errorf("no playable candidate: %w", ErrNoLegalMove)
	}
	return bestMove, bestScore, nil
}

// minimaxValue scores the position from me's perspective. Wins closer to the
// root score higher than the same win found deeper, so the engine finishes
// games instead of stalling.
func minimaxValue(state *GameState, rules Rules, me PlayerColor, depth, ply int, alpha, beta float64, maximizing bool, config Config, opts SearchOptions) float64 {
	switch state.Status {
	case StatusBlackWon, StatusWhiteWon:
		winner := PlayerBlack
		if state.Status == StatusWhiteWon {
			winner = PlayerWhite
		}
		if winner == me {
			return evalInf - float64(ply)
		}
		return -evalInf + float64(ply)
	case StatusDraw:
		return 0
	}

	if depth <= 0 {
		return cachedEvaluate(state, me, config, opts.Cache)
	}

	toMove := me
	if !maximizing {
		toMove = otherPlayer(me)
	}
	candidates := collectCandidateMoves(state, config.CandidateRadius)
	candidates = orderCandidates(state, rules, candidates, toMove, config)
	if len(candidates) == 0 {
		return cachedEvaluate(state, me, config, opts.Cache)
	}

	if maximizing {
		best := -evalInf * 2
		for _, move := range candidates {
			if _, err := state.ApplyMove(rules, move, toMove); err != nil {
				continue
			}
			score := minimaxValue(state, rules, me, depth-1, ply+1, alpha, beta, false, config, opts)
			state.UndoMove()
			if score > best {
				best = score
			}
			if opts.Prune {
				if best > alpha {
					alpha = best
				}
				if alpha >= beta {
					break
				}
			}
		}
		return best
	}

	best := evalInf * 2
	for _, move := range candidates {
		if _, err := state.ApplyMove(rules, move, toMove); err != nil {
			continue
		}
		score := minimaxValue(state, rules, me, depth-1, ply+1, alpha, beta, true, config, opts)
		state.UndoMove()
		if score < best {
			best = score
		}
		if opts.Prune {
			if best < beta {
				beta = best
			}
			if alpha >= beta {
				break
			}
		}
	}
	return best
}

func cachedEvaluate(state *GameState, me PlayerColor, config Config, cache *EvalCache) float64 {
	if !cache.Enabled() {
		return EvaluateBoard(state.Board, me, config)
	}
	key := state.Hash ^ GetZobrist(state.Board.Size()).ViewKey(me)
	if value, ok := cache.Lookup(key); ok {
		return value
	}
	value := EvaluateBoard(state.Board, me, config)
	cache.Store(key, value)
	return value
}
