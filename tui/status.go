package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// content title, every entity's hp and the turn count.
func (m Model) renderStatusBar() string {
	title := m.info.Title
	if title == "" {
		title = "AbilityCore"
	}

	w := m.engine.World
	var hps []string
	for _, id := range w.IDs() {
		ent, err := w.Entity(id)
		if err != nil {
			continue
		}
		hps = append(hps, fmt.Sprintf("#%d %d", ent.ID, ent.HP))
	}

	left := fmt.Sprintf(" %s", title)
	right := fmt.Sprintf("T:%d ", m.engine.Turn)

	// Show hp for every entity if it fits, otherwise just the count.
	if len(hps) > 0 {
		candidate := fmt.Sprintf("HP %s | T:%d ", strings.Join(hps, " "), m.engine.Turn)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Entities: %d | T:%d ", len(hps), m.engine.Turn)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
