package main

import (
	"errors"
	"testing"
)

func TestChooseMoveInvalidDifficulty(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 9
	rules := NewRules(settings)
	state := DefaultGameState(settings)

	if _, err := ChooseMove(&state, rules, PlayerBlack, Difficulty(42), DefaultConfig()); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}
}

func TestChooseMoveFullBoardReturnsNoLegalMove(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 5
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	fillBoardWithoutFive(t, &state, rules)

	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if _, err := ChooseMove(&state, rules, PlayerBlack, d, DefaultConfig()); !errors.Is(err, ErrNoLegalMove) {
			t.Fatalf("%s: expected ErrNoLegalMove, got %v", d, err)
		}
	}
}

func TestChooseMoveEmptyBoardPlaysCenter(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 15
	rules := NewRules(settings)
	config := DefaultConfig()

	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		state := DefaultGameState(settings)
		move, err := ChooseMove(&state, rules, PlayerBlack, d, config)
		if err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		if move.X != 7 || move.Y != 7 {
			t.Fatalf("%s: expected center (7,7) on an empty board, got %v", d, move)
		}
	}
}

func TestEasyTakesImmediateWin(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 9
	state, rules := runningState(t, settings, []HistoryEntry{
		{Move: Move{X: 2, Y: 4}, Player: PlayerWhite},
		{Move: Move{X: 3, Y: 4}, Player: PlayerWhite},
		{Move: Move{X: 4, Y: 4}, Player: PlayerWhite},
		{Move: Move{X: 5, Y: 4}, Player: PlayerWhite},
		{Move: Move{X: 2, Y: 6}, Player: PlayerBlack},
	})

	move, err := ChooseMove(&state, rules, PlayerWhite, DifficultyEasy, DefaultConfig())
	if err != nil {
		t.Fatalf("easy move: %v", err)
	}
	if move.Y != 4 || (move.X != 1 && move.X != 6) {
		t.Fatalf("easy must complete the five, got %v", move)
	}
}

func TestMediumBlocksOpenFour(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 15
	state, rules := runningState(t, settings, []HistoryEntry{
		{Move: Move{X: 5, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 6, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 7, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 8, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 5, Y: 9}, Player: PlayerWhite},
	})

	move, err := ChooseMove(&state, rules, PlayerWhite, DifficultyMedium, DefaultConfig())
	if err != nil {
		t.Fatalf("medium move: %v", err)
	}
	if move.Y != 7 || (move.X != 4 && move.X != 9) {
		t.Fatalf("medium must block the open four at (4,7) or (9,7), got %v", move)
	}
}

func TestMediumTakesOwnWinOverBlocking(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 15
	state, rules := runningState(t, settings, []HistoryEntry{
		{Move: Move{X: 5, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 6, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 7, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 8, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 5, Y: 9}, Player: PlayerWhite},
		{Move: Move{X: 6, Y: 9}, Player: PlayerWhite},
		{Move: Move{X: 7, Y: 9}, Player: PlayerWhite},
		{Move: Move{X: 8, Y: 9}, Player: PlayerWhite},
	})

	move, err := ChooseMove(&state, rules, PlayerWhite, DifficultyMedium, DefaultConfig())
	if err != nil {
		t.Fatalf("medium move: %v", err)
	}
	if move.Y != 9 || (move.X != 4 && move.X != 9) {
		t.Fatalf("medium must complete its own five, got %v", move)
	}
}

func TestHardBlocksOpenFour(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 15
	state, rules := runningState(t, settings, []HistoryEntry{
		{Move: Move{X: 5, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 6, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 7, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 8, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 5, Y: 9}, Player: PlayerWhite},
	})

	move, err := ChooseMove(&state, rules, PlayerWhite, DifficultyHard, DefaultConfig())
	if err != nil {
		t.Fatalf("hard move: %v", err)
	}
	if move.Y != 7 || (move.X != 4 && move.X != 9) {
		t.Fatalf("hard must block the open four at (4,7) or (9,7), got %v", move)
	}
}

func TestChooseMoveIsDeterministicPerDifficulty(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 11
	config := DefaultConfig()

	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		state, rules := runningState(t, settings, []HistoryEntry{
			{Move: Move{X: 5, Y: 5}, Player: PlayerBlack},
			{Move: Move{X: 4, Y: 4}, Player: PlayerWhite},
			{Move: Move{X: 6, Y: 5}, Player: PlayerBlack},
		})
		first, err := ChooseMove(&state, rules, PlayerWhite, d, config)
		if err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		for i := 0; i < 3; i++ {
			move, err := ChooseMove(&state, rules, PlayerWhite, d, config)
			if err != nil {
				t.Fatalf("%s repeat: %v", d, err)
			}
			if !move.Equals(first) {
				t.Fatalf("%s not deterministic: %v then %v", d, first, move)
			}
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"easy":   DifficultyEasy,
		"Medium": DifficultyMedium,
		"HARD":   DifficultyHard,
	}
	for in, want := range cases {
		got, err := ParseDifficulty(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: got %s want %s", in, got, want)
		}
	}
	if _, err := ParseDifficulty("nightmare"); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty for unknown value, got %v", err)
	}
}
