package main

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"
)

// Renderer draws the whole screen with termenv: board, cursor, status,
// controls, chat panel. It repaints from scratch on every change; a gomoku
// board is small enough that diffing is not worth the bookkeeping.
type Renderer struct {
	out     *termenv.Output
	profile termenv.Profile

	blackStyle  termenv.Style
	whiteStyle  termenv.Style
	cursorStyle termenv.Style
	lastStyle   termenv.Style
	winStyle    termenv.Style
	dimStyle    termenv.Style
	titleStyle  termenv.Style
}

func NewRenderer() *Renderer {
	out := termenv.NewOutput(os.Stdout)
	p := out.ColorProfile()
	return &Renderer{
		out:         out,
		profile:     p,
		blackStyle:  out.String().Foreground(p.Color("1")).Bold(),
		whiteStyle:  out.String().Foreground(p.Color("6")).Bold(),
		cursorStyle: out.String().Reverse(),
		lastStyle:   out.String().Foreground(p.Color("3")).Bold(),
		winStyle:    out.String().Foreground(p.Color("2")).Bold(),
		dimStyle:    out.String().Faint(),
		titleStyle:  out.String().Bold(),
	}
}

func (r *Renderer) EnterScreen() {
	r.out.AltScreen()
	r.out.HideCursor()
}

func (r *Renderer) LeaveScreen() {
	r.out.ShowCursor()
	r.out.ExitAltScreen()
}

// Screen bundles everything one frame needs. The game loop fills it and calls
// Draw; the renderer owns no game state.
type Screen struct {
	State      *GameState
	Cursor     Move
	Difficulty Difficulty
	Provider   string
	Message    string
	ChatLines  []string
	ChatInput  string
	ChatMode   bool
	ShowHelp   bool
}

func (r *Renderer) Draw(s Screen) {
	r.out.ClearScreen()
	r.out.MoveCursor(1, 1)

	var b strings.Builder
	b.WriteString(r.titleStyle.Styled("  Gomoku: five in a row") + "\r\n\r\n")
	if s.ShowHelp {
		r.drawHelp(&b)
		fmt.Fprint(r.out, b.String())
		return
	}

	r.drawBoard(&b, s)
	b.WriteString("\r\n")
	r.drawStatus(&b, s)
	r.drawChat(&b, s)
	fmt.Fprint(r.out, b.String())
}

func (r *Renderer) drawBoard(b *strings.Builder, s Screen) {
	size := s.State.Board.Size()
	winning := make(map[int]bool, len(s.State.WinningLine))
	for _, m := range s.State.WinningLine {
		winning[m.Y*size+m.X] = true
	}

	b.WriteString("    ")
	for x := 0; x < size && x < len(colLabels); x++ {
		b.WriteString(r.dimStyle.Styled(string(colLabels[x])) + " ")
	}
	b.WriteString("\r\n")

	for y := 0; y < size; y++ {
		b.WriteString(r.dimStyle.Styled(fmt.Sprintf("%3d", y+1)) + " ")
		for x := 0; x < size; x++ {
			b.WriteString(r.cellGlyph(s, x, y, winning[y*size+x]))
			if x < size-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteString("\r\n")
	}
}

func (r *Renderer) cellGlyph(s Screen, x, y int, onWinningLine bool) string {
	glyph := "·"
	switch s.State.Board.At(x, y) {
	case CellBlack:
		glyph = "●"
	case CellWhite:
		glyph = "○"
	}

	styled := r.dimStyle.Styled(glyph)
	switch {
	case onWinningLine:
		styled = r.winStyle.Styled(glyph)
	case s.State.Board.At(x, y) == CellBlack:
		styled = r.blackStyle.Styled(glyph)
	case s.State.Board.At(x, y) == CellWhite:
		styled = r.whiteStyle.Styled(glyph)
	}
	if s.State.HasLastMove && s.State.LastMove.X == x && s.State.LastMove.Y == y && !onWinningLine {
		styled = r.lastStyle.Styled(glyph)
	}
	if !s.ChatMode && s.Cursor.X == x && s.Cursor.Y == y && s.State.Status != StatusBlackWon &&
		s.State.Status != StatusWhiteWon && s.State.Status != StatusDraw {
		styled = r.cursorStyle.Styled(glyph)
	}
	return styled
}

func (r *Renderer) drawStatus(b *strings.Builder, s Screen) {
	var status string
	switch s.State.Status {
	case StatusBlackWon:
		status = r.winStyle.Styled("You win! Press r to play again, q to quit.")
	case StatusWhiteWon:
		status = r.winStyle.Styled("AI wins. Press r to play again, q to quit.")
	case StatusDraw:
		status = r.winStyle.Styled("Draw, the board is full. Press r or q.")
	default:
		turn := "your move"
		if s.State.ToMove == PlayerWhite {
			turn = "AI is thinking..."
		}
		status = fmt.Sprintf("%s  |  %s  |  cursor %s",
			fmt.Sprintf("%s / %s", s.Difficulty, s.Provider), turn, s.Cursor.Label())
	}
	b.WriteString("  " + status + "\r\n")
	if s.Message != "" {
		b.WriteString("  " + r.lastStyle.Styled(s.Message) + "\r\n")
	}
	b.WriteString("  " + r.dimStyle.Styled("arrows/wasd move · enter/space place · c chat · h help · r restart · q quit") + "\r\n")
}

func (r *Renderer) drawChat(b *strings.Builder, s Screen) {
	if len(s.ChatLines) == 0 && !s.ChatMode {
		return
	}
	b.WriteString("\r\n  " + r.titleStyle.Styled("Chat") + "\r\n")
	for _, line := range s.ChatLines {
		for _, wrapped := range wrapText(line, 72) {
			b.WriteString("  " + wrapped + "\r\n")
		}
	}
	if s.ChatMode {
		b.WriteString("  > " + s.ChatInput + r.cursorStyle.Styled(" ") + "\r\n")
		b.WriteString("  " + r.dimStyle.Styled("enter send · esc leave chat") + "\r\n")
	}
}

func (r *Renderer) drawHelp(b *strings.Builder) {
	lines := []string{
		"Goal: place five of your stones in a row horizontally,",
		"vertically, or diagonally. You play black (●), the AI plays white (○).",
		"",
		"  arrows / wasd   move the cursor",
		"  enter / space   place a stone at the cursor",
		"  c               chat with the AI opponent",
		"  r               restart the game",
		"  h               toggle this help",
		"  q               quit",
		"",
		"Press any key to return.",
	}
	for _, line := range lines {
		b.WriteString("  " + line + "\r\n")
	}
}

// wrapText splits s into lines of at most width runes, breaking on spaces
// where possible. Chat replies are prose; mid-word breaks are rare.
func wrapText(s string, width int) []string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return []string{s}
	}
	var lines []string
	words := strings.Fields(s)
	current := ""
	currentLen := 0
	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case current == "":
			current = word
			currentLen = wordLen
		case currentLen+1+wordLen <= width:
			current += " " + word
			currentLen += 1 + wordLen
		default:
			lines = append(lines, current)
			current = word
			currentLen = wordLen
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
