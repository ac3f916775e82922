package main

import "errors"

type PlayerColor int

type GameStatus int

const (
	PlayerBlack PlayerColor = iota
	PlayerWhite
)

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrNoLegalMove = errors.New("no legal move")
)

type GameState struct {
	Board       Board
	ToMove      PlayerColor
	Status      GameStatus
	HasLastMove bool
	LastMove    Move
	Hash        uint64
	History     MoveHistory
	WinningLine []Move
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Board = NewBoard(settings.BoardSize)
	if settings.BlackStarts {
		s.ToMove = PlayerBlack
	} else {
		s.ToMove = PlayerWhite
	}
	s.Status = StatusNotStarted
	s.HasLastMove = false
	s.LastMove = Move{X: -1, Y: -1}
	s.History.Clear()
	s.WinningLine = nil
	s.Hash = ComputeHash(*s)
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.History = s.History.Clone()
	clone.WinningLine = append([]Move(nil), s.WinningLine...)
	return clone
}

// ApplyMove places a stone for player, updating history, hash, and status.
// The board is mutated only here and in UndoMove; a cell, once filled, stays
// filled until an undo or a full reset.
func (s *GameState) ApplyMove(rules Rules, move Move, player PlayerColor) (GameStatus, error) {
	if s.Status == StatusBlackWon || s.Status == StatusWhiteWon || s.Status == StatusDraw {
		return s.Status, ErrIllegalMove
	}
	if ok, reason := rules.IsLegal(*s, move); !ok {
		return s.Status, wrapIllegal(reason)
	}
	prevToMove := s.ToMove
	s.Board.Set(move.X, move.Y, CellFromPlayer(player))
	s.History.Push(HistoryEntry{Move: move, Player: player})
	s.HasLastMove = true
	s.LastMove = move
	s.ToMove = otherPlayer(player)
	UpdateHashAfterMove(s, move, player, prevToMove)

	switch {
	case rules.IsWin(s.Board, move):
		if player == PlayerBlack {
			s.Status = StatusBlackWon
		} else {
			s.Status = StatusWhiteWon
		}
		if line, ok := rules.FindWinningLine(s.Board, move); ok {
			s.WinningLine = line
		}
	case rules.IsDraw(s.Board):
		s.Status = StatusDraw
	default:
		s.Status = StatusRunning
	}
	return s.Status, nil
}

// UndoMove reverts the most recent move. Used for search place/undo pairs and
// for restart bookkeeping; it is a no-op on an untouched board.
func (s *GameState) UndoMove() bool {
	entry, ok := s.History.Pop()
	if !ok {
		return false
	}
	prevToMove := s.ToMove
	s.Board.Remove(entry.Move.X, entry.Move.Y)
	s.ToMove = entry.Player
	UpdateHashAfterUndo(s, entry.Move, entry.Player, prevToMove)
	s.Status = StatusRunning
	s.WinningLine = nil
	if last, ok := s.History.Last(); ok {
		s.HasLastMove = true
		s.LastMove = last.Move
	} else {
		s.HasLastMove = false
		s.LastMove = Move{X: -1, Y: -1}
		s.Status = StatusNotStarted
	}
	return true
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

func (p PlayerColor) String() string {
	if p == PlayerBlack {
		return "black"
	}
	return "white"
}

func (s GameStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusRunning:
		return "running"
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "unknown"
	}
}
