package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Game runs the interactive loop: the human plays black from the keyboard,
// the AI answers as white. Everything is synchronous; the spectator hub, when
// present, only receives snapshots.
type Game struct {
	state    GameState
	rules    Rules
	settings GameSettings

	ai       *AIService
	chat     *ChatManager
	renderer *Renderer
	input    *Input
	logger   *Logger
	hub      *Hub

	cursor    Move
	message   string
	showHelp  bool
	chatMode  bool
	chatInput string
	chatLines []string
}

func NewGame(settings GameSettings, ai *AIService, chat *ChatManager, logger *Logger, hub *Hub) *Game {
	center := settings.BoardSize / 2
	return &Game{
		state:    DefaultGameState(settings),
		rules:    NewRules(settings),
		settings: settings,
		ai:       ai,
		chat:     chat,
		logger:   logger,
		hub:      hub,
		cursor:   Move{X: center, Y: center},
	}
}

// Run drives the loop until the player quits. The renderer and raw-mode input
// are acquired here and always released, even on an early error.
func (g *Game) Run(ctx context.Context) error {
	input, err := NewInput()
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	g.input = input
	defer g.input.Restore()

	g.renderer = NewRenderer()
	g.renderer.EnterScreen()
	defer g.renderer.LeaveScreen()

	g.logger.Infof("game started: size=%d difficulty=%s provider=%s",
		g.settings.BoardSize, g.ai.Difficulty(), g.ai.ProviderName())
	g.broadcast()

	for {
		g.draw()
		ev, err := g.input.ReadKey(g.chatMode)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if g.showHelp {
			g.showHelp = false
			continue
		}
		if g.chatMode {
			g.handleChatKey(ctx, ev)
			continue
		}
		quit, err := g.handleGameKey(ctx, ev)
		if err != nil {
			return err
		}
		if quit {
			g.logger.Infof("game quit by player")
			return nil
		}
	}
}

func (g *Game) handleGameKey(ctx context.Context, ev KeyEvent) (quit bool, err error) {
	g.message = ""
	switch ev.Key {
	case KeyQuit:
		return true, nil
	case KeyRestart:
		g.restart()
	case KeyHelp:
		g.showHelp = true
	case KeyChat:
		g.chatMode = true
		g.chatInput = ""
	case KeyUp:
		g.moveCursor(0, -1)
	case KeyDown:
		g.moveCursor(0, 1)
	case KeyLeft:
		g.moveCursor(-1, 0)
	case KeyRight:
		g.moveCursor(1, 0)
	case KeyEnter, KeySpace:
		if err := g.playHumanTurn(ctx); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (g *Game) playHumanTurn(ctx context.Context) error {
	if g.state.Status != StatusRunning && g.state.Status != StatusNotStarted {
		return nil
	}
	if g.state.ToMove != PlayerBlack {
		return nil
	}
	status, err := g.state.ApplyMove(g.rules, g.cursor, PlayerBlack)
	if err != nil {
		if errors.Is(err, ErrIllegalMove) {
			g.message = fmt.Sprintf("Can't play %s: %v", g.cursor.Label(), err)
			return nil
		}
		return err
	}
	g.logger.Infof("human played %s -> %s", g.cursor.Label(), status)
	g.broadcast()
	if status != StatusRunning {
		return nil
	}
	return g.playAITurn(ctx)
}

func (g *Game) playAITurn(ctx context.Context) error {
	g.draw()
	aiMove, err := g.ai.NextMove(ctx, &g.state, g.rules, PlayerWhite)
	if err != nil {
		if errors.Is(err, ErrNoLegalMove) {
			g.state.Status = StatusDraw
			g.broadcast()
			return nil
		}
		return fmt.Errorf("ai move: %w", err)
	}
	status, err := g.state.ApplyMove(g.rules, aiMove.Move, PlayerWhite)
	if err != nil {
		return fmt.Errorf("applying ai move %s: %w", aiMove.Move.Label(), err)
	}
	g.markLastAsAI()
	g.logger.Infof("ai played %s -> %s", aiMove.Move.Label(), status)
	if aiMove.Comment != "" {
		g.ai.RecordTableTalk(aiMove.Comment)
		g.appendChatLine("AI: " + aiMove.Comment)
	}
	g.broadcast()
	return nil
}

func (g *Game) markLastAsAI() {
	if entry, ok := g.state.History.Last(); ok {
		entry.IsAi = true
		g.state.History.ReplaceLast(entry)
	}
}

func (g *Game) handleChatKey(ctx context.Context, ev KeyEvent) {
	switch ev.Key {
	case KeyEscape, KeyQuit:
		g.chatMode = false
		g.chatInput = ""
	case KeyBackspace:
		if len(g.chatInput) > 0 {
			runes := []rune(g.chatInput)
			g.chatInput = string(runes[:len(runes)-1])
		}
	case KeyEnter:
		message := strings.TrimSpace(g.chatInput)
		g.chatInput = ""
		if message == "" {
			g.chatMode = false
			return
		}
		g.appendChatLine("You: " + message)
		reply, err := g.ai.SendChat(ctx, &g.state, PlayerWhite, message)
		if err != nil {
			g.appendChatLine("(no reply: " + err.Error() + ")")
			return
		}
		g.appendChatLine("AI: " + reply)
	case KeyRune, KeySpace:
		r := ev.Rune
		if ev.Key == KeySpace {
			r = ' '
		}
		g.chatInput += string(r)
	}
}

func (g *Game) appendChatLine(line string) {
	g.chatLines = append(g.chatLines, line)
	if len(g.chatLines) > chatHistoryLimit {
		g.chatLines = g.chatLines[len(g.chatLines)-chatHistoryLimit:]
	}
}

func (g *Game) restart() {
	g.state.Reset(g.settings)
	center := g.settings.BoardSize / 2
	g.cursor = Move{X: center, Y: center}
	g.message = ""
	g.chatLines = nil
	if g.chat != nil {
		g.chat.Clear()
	}
	g.logger.Infof("game restarted")
	g.broadcast()
}

func (g *Game) moveCursor(dx, dy int) {
	next := Move{X: g.cursor.X + dx, Y: g.cursor.Y + dy}
	if next.IsValid(g.settings.BoardSize) {
		g.cursor = next
	}
}

func (g *Game) draw() {
	g.renderer.Draw(Screen{
		State:      &g.state,
		Cursor:     g.cursor,
		Difficulty: g.ai.Difficulty(),
		Provider:   g.ai.ProviderName(),
		Message:    g.message,
		ChatLines:  g.chatLines,
		ChatInput:  g.chatInput,
		ChatMode:   g.chatMode,
		ShowHelp:   g.showHelp,
	})
}

func (g *Game) broadcast() {
	if g.hub != nil {
		g.hub.BroadcastState(&g.state)
	}
}
