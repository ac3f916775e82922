package main

import "fmt"

type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewMove(x, y int) Move {
	return Move{X: x, Y: y}
}

func (m Move) IsValid(boardSize int) bool {
	return m.X >= 0 && m.Y >= 0 && m.X < boardSize && m.Y < boardSize
}

func (m Move) Equals(other Move) bool {
	return m.X == other.X && m.Y == other.Y
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.X, m.Y)
}

// Label renders a move in board notation, column letter first ("H8").
func (m Move) Label() string {
	if m.X < 0 || m.X >= len(colLabels) {
		return m.String()
	}
	return fmt.Sprintf("%c%d", colLabels[m.X], m.Y+1)
}

const colLabels = "ABCDEFGHIJKLMNOPQRSTUVWXY"
