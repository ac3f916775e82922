package main

import "sync"

const evalInf = 1_000_000_000.0

// ThreatTotals counts pattern occurrences for one side across every line of
// the board. "M" is the scored side, "O" a blocker (opponent stone or edge).
type ThreatTotals struct {
	Win5    int
	Open4   int
	Closed4 int
	Broken4 int
	Open3   int
	Broken3 int
	Closed3 int
	Open2   int
	Broken2 int
}

type patternMatch struct {
	pattern string
	apply   func(*ThreatTotals)
}

var evalPatterns = [...]patternMatch{
	{pattern: "MMMMM", apply: func(t *ThreatTotals) { t.Win5++ }},
	{pattern: ".MMMM.", apply: func(t *ThreatTotals) { t.Open4++ }},
	{pattern: "OMMMM.", apply: func(t *ThreatTotals) { t.Closed4++ }},
	{pattern: ".MMMMO", apply: func(t *ThreatTotals) { t.Closed4++ }},
	{pattern: ".MMM.M.", apply: func(t *ThreatTotals) { t.Broken4++ }},
	{pattern: ".M.MMM.", apply: func(t *ThreatTotals) { t.Broken4++ }},
	{pattern: ".MMM.", apply: func(t *ThreatTotals) { t.Open3++ }},
	{pattern: ".MM.M.", apply: func(t *ThreatTotals) { t.Broken3++ }},
	{pattern: ".M.MM.", apply: func(t *ThreatTotals) { t.Broken3++ }},
	{pattern: "OMMM.", apply: func(t *ThreatTotals) { t.Closed3++ }},
	{pattern: ".MMMO", apply: func(t *ThreatTotals) { t.Closed3++ }},
	{pattern: ".MM.", apply: func(t *ThreatTotals) { t.Open2++ }},
	{pattern: ".M.M.", apply: func(t *ThreatTotals) { t.Broken2++ }},
}

type lineCache struct {
	mu    sync.Mutex
	lines map[int][][]int
}

var cachedLines = &lineCache{lines: make(map[int][][]int)}

func getLinesForSize(size int) [][]int {
	cachedLines.mu.Lock()
	defer cachedLines.mu.Unlock()
	if lines, ok := cachedLines.lines[size]; ok {
		return lines
	}
	lines := buildLines(size)
	cachedLines.lines[size] = lines
	return lines
}

func buildLines(size int) [][]int {
	lines := [][]int{}
	if size <= 0 {
		return lines
	}
	// Rows.
	for y := 0; y < size; y++ {
		line := make([]int, 0, size)
		for x := 0; x < size; x++ {
			line = append(line, y*size+x)
		}
		lines = append(lines, line)
	}
	// Cols.
	for x := 0; x < size; x++ {
		line := make([]int, 0, size)
		for y := 0; y < size; y++ {
			line = append(line, y*size+x)
		}
		lines = append(lines, line)
	}
	// Diagonals (\)
	for x := 0; x < size; x++ {
		line := collectDiag(size, x, 0, 1, 1)
		if len(line) >= 5 {
			lines = append(lines, line)
		}
	}
	for y := 1; y < size; y++ {
		line := collectDiag(size, 0, y, 1, 1)
		if len(line) >= 5 {
			lines = append(lines, line)
		}
	}
	// Anti-diagonals (/)
	for x := 0; x < size; x++ {
		line := collectDiag(size, x, 0, -1, 1)
		if len(line) >= 5 {
			lines = append(lines, line)
		}
	}
	for y := 1; y < size; y++ {
		line := collectDiag(size, size-1, y, -1, 1)
		if len(line) >= 5 {
			lines = append(lines, line)
		}
	}
	return lines
}

func collectDiag(size, startX, startY, dx, dy int) []int {
	line := []int{}
	x := startX
	y := startY
	for x >= 0 && y >= 0 && x < size && y < size {
		line = append(line, y*size+x)
		x += dx
		y += dy
	}
	return line
}

// EvaluateBoard scores the whole board from sideToMove's perspective: own
// pattern totals minus the opponent's, with hard overrides for a finished
// five and an unanswerable open four.
func EvaluateBoard(board Board, sideToMove PlayerColor, config Config) float64 {
	weights := resolveThreatWeights(config)
	lines := getLinesForSize(board.Size())
	me := sideToMove
	opp := otherPlayer(sideToMove)
	var tokensBufStack [64]byte
	tokensBuf := tokensBufStack[:0]

	var totalsMe ThreatTotals
	var totalsOpp ThreatTotals

	for _, line := range lines {
		tokensMe := buildTokensInto(board, line, me, tokensBuf)
		accumulatePatterns(tokensMe, &totalsMe)
		tokensOpp := buildTokensInto(board, line, opp, tokensBuf)
		accumulatePatterns(tokensOpp, &totalsOpp)
	}

	if totalsMe.Win5 > 0 {
		return evalInf
	}
	if totalsOpp.Win5 > 0 {
		return -evalInf
	}
	if totalsOpp.Open4 > 0 {
		return -900000.0
	}
	if totalsMe.Open4 > 0 {
		return 900000.0
	}

	score := weightedSum(totalsMe, weights) - weightedSum(totalsOpp, weights)
	score += forkBonus(totalsMe, weights) - forkBonus(totalsOpp, weights)
	return score
}

type threatWeights struct {
	open4        float64
	closed4      float64
	broken4      float64
	open3        float64
	broken3      float64
	closed3      float64
	open2        float64
	broken2      float64
	forkOpen3    float64
	forkFourPlus float64
}

func resolveThreatWeights(config Config) threatWeights {
	if config.Heuristics == (HeuristicConfig{}) {
		config.Heuristics = DefaultConfig().Heuristics
	}
	h := config.Heuristics
	return threatWeights{
		open4:        h.Open4,
		closed4:      h.Closed4,
		broken4:      h.Broken4,
		open3:        h.Open3,
		broken3:      h.Broken3,
		closed3:      h.Closed3,
		open2:        h.Open2,
		broken2:      h.Broken2,
		forkOpen3:    h.ForkOpen3,
		forkFourPlus: h.ForkFourPlus,
	}
}

func buildTokensInto(board Board, line []int, player PlayerColor, buf []byte) []byte {
	needed := len(line) + 2
	if cap(buf) < needed {
		buf = make([]byte, needed)
	} else {
		buf = buf[:needed]
	}
	buf[0] = 'O'
	playerCell := CellFromPlayer(player)
	for i, idx := range line {
		switch cell := board.cells[idx]; {
		case cell == CellEmpty:
			buf[i+1] = '.'
		case cell == playerCell:
			buf[i+1] = 'M'
		default:
			buf[i+1] = 'O'
		}
	}
	buf[needed-1] = 'O'
	return buf
}

func accumulatePatterns(tokens []byte, totals *ThreatTotals) {
	for i := 0; i < len(tokens); i++ {
		for _, entry := range evalPatterns {
			if matchAt(tokens, entry.pattern, i) {
				entry.apply(totals)
				i += len(entry.pattern) - 2
				break
			}
		}
	}
}

func matchAt(tokens []byte, pattern string, start int) bool {
	if start+len(pattern) > len(tokens) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if tokens[start+i] != pattern[i] {
			return false
		}
	}
	return true
}

func weightedSum(t ThreatTotals, w threatWeights) float64 {
	return float64(t.Open4)*w.open4 +
		float64(t.Closed4)*w.closed4 +
		float64(t.Broken4)*w.broken4 +
		float64(t.Open3)*w.open3 +
		float64(t.Broken3)*w.broken3 +
		float64(t.Closed3)*w.closed3 +
		float64(t.Open2)*w.open2 +
		float64(t.Broken2)*w.broken2
}

func forkBonus(t ThreatTotals, w threatWeights) float64 {
	bonus := 0.0
	if t.Open3 >= 2 {
		bonus += w.forkOpen3
	}
	if t.Closed4+t.Broken4 >= 2 {
		bonus += w.forkFourPlus
	}
	return bonus
}
