package main

import (
	"errors"
	"testing"
)

func mustApply(t *testing.T, state *GameState, rules Rules, x, y int, player PlayerColor) GameStatus {
	t.Helper()
	status, err := state.ApplyMove(rules, Move{X: x, Y: y}, player)
	if err != nil {
		t.Fatalf("apply (%d,%d) for %s: %v", x, y, player, err)
	}
	return status
}

func TestApplyMoveRejectsOccupiedCell(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 9
	rules := NewRules(settings)
	state := DefaultGameState(settings)

	mustApply(t, &state, rules, 4, 4, PlayerBlack)
	if _, err := state.ApplyMove(rules, Move{X: 4, Y: 4}, PlayerWhite); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove for occupied cell, got %v", err)
	}
}

func TestApplyMoveRejectsOutOfBounds(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 9
	rules := NewRules(settings)
	state := DefaultGameState(settings)

	for _, move := range []Move{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 9, Y: 0}, {X: 0, Y: 9}} {
		if _, err := state.ApplyMove(rules, move, PlayerBlack); !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("expected ErrIllegalMove for %v, got %v", move, err)
		}
	}
	if state.History.Size() != 0 {
		t.Fatalf("rejected moves must not enter history, got %d entries", state.History.Size())
	}
}

func TestApplyMoveRejectsFinishedGame(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 9
	rules := NewRules(settings)
	state := DefaultGameState(settings)

	for x := 0; x < 4; x++ {
		mustApply(t, &state, rules, x, 0, PlayerBlack)
		mustApply(t, &state, rules, x, 1, PlayerWhite)
	}
	if status := mustApply(t, &state, rules, 4, 0, PlayerBlack); status != StatusBlackWon {
		t.Fatalf("expected black win, got %s", status)
	}
	if _, err := state.ApplyMove(rules, Move{X: 5, Y: 5}, PlayerWhite); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove after game end, got %v", err)
	}
}

func TestUndoMoveRestoresPosition(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 9
	rules := NewRules(settings)
	state := DefaultGameState(settings)

	original := state.Clone()
	mustApply(t, &state, rules, 3, 3, PlayerBlack)
	mustApply(t, &state, rules, 4, 4, PlayerWhite)
	if !state.UndoMove() || !state.UndoMove() {
		t.Fatalf("expected two undos to succeed")
	}
	if state.UndoMove() {
		t.Fatalf("undo on an empty history must fail")
	}
	if state.Hash != original.Hash {
		t.Fatalf("hash not restored: got %x want %x", state.Hash, original.Hash)
	}
	if state.Board.CountStones() != 0 {
		t.Fatalf("expected empty board after undos, got %d stones", state.Board.CountStones())
	}
	if state.ToMove != original.ToMove {
		t.Fatalf("turn not restored: got %s want %s", state.ToMove, original.ToMove)
	}
}

func TestUndoAfterWinClearsStatus(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 9
	rules := NewRules(settings)
	state := DefaultGameState(settings)

	for x := 0; x < 4; x++ {
		mustApply(t, &state, rules, x, 0, PlayerBlack)
		mustApply(t, &state, rules, x, 1, PlayerWhite)
	}
	mustApply(t, &state, rules, 4, 0, PlayerBlack)
	if !state.UndoMove() {
		t.Fatalf("undo of the winning move failed")
	}
	if state.Status != StatusRunning {
		t.Fatalf("expected running after undoing the win, got %s", state.Status)
	}
	if state.WinningLine != nil {
		t.Fatalf("winning line should be cleared on undo")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 9
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	mustApply(t, &state, rules, 4, 4, PlayerBlack)

	clone := state.Clone()
	mustApply(t, &clone, rules, 5, 5, PlayerWhite)
	if state.Board.At(5, 5) != CellEmpty {
		t.Fatalf("mutating the clone leaked into the original")
	}
	if state.History.Size() != 1 || clone.History.Size() != 2 {
		t.Fatalf("history sizes diverged wrong: %d / %d", state.History.Size(), clone.History.Size())
	}
}
