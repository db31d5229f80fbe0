package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePlain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleSeparator = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	styleHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Bold(true)

	styleModifier = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141"))

	styleDamage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("209"))

	styleHeal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	styleStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleTick = lipgloss.NewStyle().
			Foreground(lipgloss.Color("180"))

	styleEntity = lipgloss.NewStyle().
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindPlain lineKind = iota
	kindSeparator
	kindHeader
	kindModifier
	kindDamage
	kindHeal
	kindStatus
	kindTick
	kindEntity
	kindSystem
	kindError
)

// classifyLine determines what kind of output line this is. Only the first
// physical line of a multi-line trace entry is classified; continuation
// lines inherit its kind.
func classifyLine(line string) lineKind {
	switch {
	case line != "" && strings.Trim(line, "-") == "":
		return kindSeparator
	case strings.HasPrefix(line, "Resolving ability:"):
		return kindHeader
	case strings.HasPrefix(line, "Modifier:"):
		return kindModifier
	case strings.HasPrefix(line, "Resolving Damage:"):
		return kindDamage
	case strings.HasPrefix(line, "Effect: Heal"):
		return kindHeal
	case strings.HasPrefix(line, "Status applied:"),
		strings.HasPrefix(line, "Effect: Remove Status"):
		return kindStatus
	case strings.HasPrefix(line, "Turn Start"),
		strings.HasPrefix(line, "Turn ") && strings.HasSuffix(line, " begins."):
		return kindTick
	case strings.HasPrefix(line, "#"):
		return kindEntity
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Error:"),
		strings.HasPrefix(line, "Usage:"),
		strings.HasPrefix(line, "invalid entity id"),
		strings.HasPrefix(line, "I don't understand"):
		return kindError
	default:
		return kindPlain
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindSeparator:
		return styleSeparator.Render(line)
	case kindHeader:
		return styleHeader.Render(line)
	case kindModifier:
		return styleModifier.Render(line)
	case kindDamage:
		return styleDamage.Render(line)
	case kindHeal:
		return styleHeal.Render(line)
	case kindStatus:
		return styleStatus.Render(line)
	case kindTick:
		return styleTick.Render(line)
	case kindEntity:
		return styledEntity(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	default:
		return stylePlain.Render(line)
	}
}

// styledEntity renders "#2 hp:82 ..." with the entity id bold.
func styledEntity(line string) string {
	id, rest, found := strings.Cut(line, " ")
	if !found {
		return styleEntity.Render(line)
	}
	return styleEntity.Render(id) + stylePlain.Render(" "+rest)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
