package main

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidProvider = errors.New("invalid ai provider")
	ErrMissingAPIKey   = errors.New("missing api key")
	ErrBadAIResponse   = errors.New("unusable ai response")
)

// AIMove is a provider's answer: the cell to play plus optional table talk
// for the chat panel.
type AIMove struct {
	Move    Move
	Comment string
}

// ChatResponse is a provider's reply to a free-form chat message.
type ChatResponse struct {
	Content string
}

// AIProvider turns positions and chat into model calls. Implementations are
// called from the game loop goroutine and must honor ctx cancellation; any
// error makes the caller fall back to the local engine.
type AIProvider interface {
	Name() string
	GetMove(ctx context.Context, state *GameState, rules Rules, player PlayerColor, history []ChatMessage, suggested Move, instruction string) (AIMove, error)
	Chat(ctx context.Context, message string, history []ChatMessage, state *GameState, player PlayerColor) (ChatResponse, error)
	ValidateConnection(ctx context.Context) (bool, string)
}

// PromptBuilder renders positions into the text protocol the providers speak:
// a coordinate-labelled grid plus a strict "MOVE: H8" reply contract.
type PromptBuilder struct{}

func (PromptBuilder) SystemPrompt(rules Rules, player PlayerColor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are playing gomoku (%d in a row wins) on a %dx%d board as %s.\n",
		rules.WinLength(), rules.BoardSize(), rules.BoardSize(), providerStoneName(player))
	b.WriteString("Columns are letters starting at A, rows are numbers starting at 1.\n")
	b.WriteString("Reply with exactly one line of the form 'MOVE: H8' naming an empty cell. ")
	b.WriteString("You may add one short sentence of table talk after that line.")
	return b.String()
}

// MovePrompt is the per-turn user message: board, recent moves, the local
// engine's suggestion, and whatever the human last asked for in chat.
func (p PromptBuilder) MovePrompt(state *GameState, player PlayerColor, suggested Move, instruction string) string {
	var b strings.Builder
	b.WriteString(p.renderBoard(state))
	if recent := recentMoveLines(state); recent != "" {
		b.WriteString("Recent moves:\n")
		b.WriteString(recent)
	}
	if suggested.IsValid(state.Board.Size()) {
		fmt.Fprintf(&b, "A reasonable move here is %s; play it unless you see better.\n", suggested.Label())
	}
	if instruction != "" {
		fmt.Fprintf(&b, "The opponent asked: %q. Feel free to react in your table talk.\n", instruction)
	}
	fmt.Fprintf(&b, "You play %s. Choose your move.", providerStoneName(player))
	return b.String()
}

func (p PromptBuilder) ChatPrompt(state *GameState, player PlayerColor, message string) string {
	var b strings.Builder
	b.WriteString(p.renderBoard(state))
	fmt.Fprintf(&b, "You play %s. The opponent says: %q\n", providerStoneName(player), message)
	b.WriteString("Answer in one or two short sentences. Do not output a MOVE line.")
	return b.String()
}

func (PromptBuilder) renderBoard(state *GameState) string {
	size := state.Board.Size()
	var b strings.Builder
	b.WriteString("Current board ('X' = black, 'O' = white, '.' = empty):\n")
	b.WriteString("  ")
	for x := 0; x < size && x < len(colLabels); x++ {
		b.WriteByte(' ')
		b.WriteByte(colLabels[x])
	}
	b.WriteByte('\n')
	for y := 0; y < size; y++ {
		fmt.Fprintf(&b, "%2d", y+1)
		for x := 0; x < size; x++ {
			b.WriteByte(' ')
			switch state.Board.At(x, y) {
			case CellBlack:
				b.WriteByte('X')
			case CellWhite:
				b.WriteByte('O')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func recentMoveLines(state *GameState) string {
	entries := state.History.All()
	if len(entries) > chatHistoryLimit {
		entries = entries[len(entries)-chatHistoryLimit:]
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "  %s: %s\n", e.Player, e.Move.Label())
	}
	return b.String()
}

func providerStoneName(player PlayerColor) string {
	if player == PlayerBlack {
		return "black (X)"
	}
	return "white (O)"
}

// Reply formats, strictest first: the contractual "MOVE: H8" line, a bare
// "H8" token, and a "(row, col)" pair with 1-based coordinates.
var (
	moveLinePattern = regexp.MustCompile(`(?mi)^\s*MOVE:\s*([A-Y])\s*([0-9]{1,2})\s*$`)
	bareCellPattern = regexp.MustCompile(`(?m)\b([A-Y])([0-9]{1,2})\b`)
	rowColPattern   = regexp.MustCompile(`\(\s*([0-9]{1,2})\s*,\s*([0-9]{1,2})\s*\)`)
)

// ParseMoveResponse extracts the move and any trailing table talk from a raw
// provider reply. The parsed cell must be empty and in range.
func ParseMoveResponse(raw string, state *GameState) (Move, string, error) {
	if match := moveLinePattern.FindStringSubmatch(raw); match != nil {
		move, err := moveFromLabelParts(match[1], match[2], state)
		if err != nil {
			return Move{}, "", err
		}
		talk := strings.TrimSpace(moveLinePattern.ReplaceAllString(raw, ""))
		return move, talk, nil
	}
	if match := bareCellPattern.FindStringSubmatch(raw); match != nil {
		move, err := moveFromLabelParts(match[1], match[2], state)
		if err != nil {
			return Move{}, "", err
		}
		return move, "", nil
	}
	if match := rowColPattern.FindStringSubmatch(raw); match != nil {
		row, _ := strconv.Atoi(match[1])
		col, _ := strconv.Atoi(match[2])
		move := Move{X: col - 1, Y: row - 1}
		if err := checkPlayable(move, state); err != nil {
			return Move{}, "", err
		}
		return move, "", nil
	}
	return Move{}, "", fmt.Errorf("no move in %q: %w", truncateForLog(raw), ErrBadAIResponse)
}

func moveFromLabelParts(col, row string, state *GameState) (Move, error) {
	x := strings.Index(colLabels, strings.ToUpper(col))
	r, err := strconv.Atoi(row)
	if err != nil || r < 1 {
		return Move{}, fmt.Errorf("bad row %q: %w", row, ErrBadAIResponse)
	}
	move := Move{X: x, Y: r - 1}
	if err := checkPlayable(move, state); err != nil {
		return Move{}, err
	}
	return move, nil
}

func checkPlayable(move Move, state *GameState) error {
	if !move.IsValid(state.Board.Size()) {
		return fmt.Errorf("move %v out of bounds: %w", move, ErrBadAIResponse)
	}
	if !state.Board.IsEmpty(move.X, move.Y) {
		return fmt.Errorf("move %s targets an occupied cell: %w", move.Label(), ErrBadAIResponse)
	}
	return nil
}

func truncateForLog(s string) string {
	const max = 120
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
