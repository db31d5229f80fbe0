// Package tui provides a Bubble Tea terminal UI for the AbilityCore session engine.
package tui

// History is a fixed-size ring of submitted commands with a navigation
// cursor. Once full, each push overwrites the oldest entry.
type History struct {
	buf    []string
	start  int // index of the oldest entry in buf
	n      int // number of stored entries
	cursor int // -1 = not navigating, else 0..n-1 counted from the oldest
}

// NewHistory creates a history ring holding up to size commands.
// Sizes below one keep a single entry.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{buf: make([]string, size), cursor: -1}
}

// at returns the i-th entry counted from the oldest.
func (h *History) at(i int) string {
	return h.buf[(h.start+i)%len(h.buf)]
}

// Len reports how many commands are stored.
func (h *History) Len() int { return h.n }

// Push records a command. Repeating the newest entry is a no-op.
func (h *History) Push(cmd string) {
	if h.n > 0 && h.at(h.n-1) == cmd {
		return
	}
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = cmd
		h.n++
		return
	}
	h.buf[h.start] = cmd
	h.start = (h.start + 1) % len(h.buf)
}

// Prev moves the cursor one entry older and returns it, stopping at the
// oldest. Returns ("", false) if history is empty.
func (h *History) Prev() (string, bool) {
	if h.n == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = h.n - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.at(h.cursor), true
}

// Next moves the cursor one entry newer. Returns ("", false) once it
// passes the newest entry, which ends navigation.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= h.n {
		h.cursor = -1
		return "", false
	}
	return h.at(h.cursor), true
}

// ResetCursor ends navigation; the next Prev starts from the newest entry.
func (h *History) ResetCursor() {
	h.cursor = -1
}
