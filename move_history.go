package main

type HistoryEntry struct {
	Move   Move
	Player PlayerColor
	IsAi   bool
}

// MoveHistory is append-only during play; Pop exists solely for undo.
type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Clear() {
	h.entries = nil
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

func (h *MoveHistory) Pop() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	entry := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return entry, true
}

// ReplaceLast swaps the newest entry, used to tag AI-authored moves after the
// fact without touching board state.
func (h *MoveHistory) ReplaceLast(entry HistoryEntry) bool {
	if len(h.entries) == 0 {
		return false
	}
	h.entries[len(h.entries)-1] = entry
	return true
}

func (h MoveHistory) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

func (h MoveHistory) Size() int {
	return len(h.entries)
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

func (h MoveHistory) Clone() MoveHistory {
	return MoveHistory{entries: append([]HistoryEntry(nil), h.entries...)}
}
