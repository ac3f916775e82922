package main

import (
	"bufio"
	"os"

	"golang.org/x/term"
)

type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeySpace
	KeyEscape
	KeyBackspace
	KeyQuit
	KeyRestart
	KeyHelp
	KeyChat
	KeyRune
)

// KeyEvent is one decoded keypress. Rune is set only for KeyRune, which feeds
// chat input.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// Input owns the terminal's raw mode and decodes escape sequences into key
// events. Restore must run before the process exits or the shell is left in
// raw mode.
type Input struct {
	fd       int
	oldState *term.State
	reader   *bufio.Reader
}

func NewInput() (*Input, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Input{
		fd:       fd,
		oldState: oldState,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (in *Input) Restore() {
	if in.oldState != nil {
		term.Restore(in.fd, in.oldState)
	}
}

// ReadKey blocks for the next keypress. chatMode disables the single-letter
// game bindings so letters type into the chat line instead.
func (in *Input) ReadKey(chatMode bool) (KeyEvent, error) {
	r, _, err := in.reader.ReadRune()
	if err != nil {
		return KeyEvent{}, err
	}
	switch r {
	case 0x1b:
		return in.readEscape()
	case '\r', '\n':
		return KeyEvent{Key: KeyEnter}, nil
	case 0x7f, 0x08:
		return KeyEvent{Key: KeyBackspace}, nil
	case 0x03: // ctrl-c
		return KeyEvent{Key: KeyQuit}, nil
	}
	if chatMode {
		return KeyEvent{Key: KeyRune, Rune: r}, nil
	}
	switch r {
	case ' ':
		return KeyEvent{Key: KeySpace}, nil
	case 'q', 'Q':
		return KeyEvent{Key: KeyQuit}, nil
	case 'r', 'R':
		return KeyEvent{Key: KeyRestart}, nil
	case 'h', 'H':
		return KeyEvent{Key: KeyHelp}, nil
	case 'c', 'C', '/':
		return KeyEvent{Key: KeyChat}, nil
	case 'w', 'W':
		return KeyEvent{Key: KeyUp}, nil
	case 's', 'S':
		return KeyEvent{Key: KeyDown}, nil
	case 'a', 'A':
		return KeyEvent{Key: KeyLeft}, nil
	case 'd', 'D':
		return KeyEvent{Key: KeyRight}, nil
	}
	return KeyEvent{Key: KeyRune, Rune: r}, nil
}

// readEscape decodes CSI arrow sequences; a lone ESC (nothing buffered after
// it) is the escape key itself.
func (in *Input) readEscape() (KeyEvent, error) {
	if in.reader.Buffered() == 0 {
		return KeyEvent{Key: KeyEscape}, nil
	}
	b1, err := in.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	if b1 != '[' && b1 != 'O' {
		return KeyEvent{Key: KeyEscape}, nil
	}
	b2, err := in.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	switch b2 {
	case 'A':
		return KeyEvent{Key: KeyUp}, nil
	case 'B':
		return KeyEvent{Key: KeyDown}, nil
	case 'C':
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		return KeyEvent{Key: KeyLeft}, nil
	}
	return KeyEvent{Key: KeyNone}, nil
}
