package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/finest9/cards"
	"github.com/lox/finest9/internal/game"
	"github.com/lox/finest9/internal/player"
)

const sidebarWidth = 28

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	board := m.renderBoard()
	footer := m.help.View(m.keys)

	boardPane := paneStyle.Width(max(m.width-2, 1)).Render(board)
	used := lipgloss.Height(header) + lipgloss.Height(boardPane) + lipgloss.Height(footer)

	logWidth := max(m.width-sidebarWidth-4, 1)
	logHeight := max(m.height-used-2, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := paneStyle.Width(logWidth).Height(logHeight).Render(m.logViewport.View())
	sidebar := paneStyle.Width(sidebarWidth).Height(logHeight).Render(m.renderSidebar())
	middle := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)

	return lipgloss.JoinVertical(lipgloss.Left, header, middle, boardPane, footer)
}

func (m *Model) renderHeader() string {
	line := HeaderStyle.Render("Finest 9") + " " + InstructionStyle.Render(game.Instruction(m.state))
	if m.status != "" {
		line += "  " + ErrorStyle.Render(m.status)
	}
	return line
}

// renderSidebar lists the players, the deck and the roll.
func (m *Model) renderSidebar() string {
	var b strings.Builder

	for i, p := range m.state.Players {
		name := p.Name
		if p.IsBot {
			name += " (bot)"
		}
		line := fmt.Sprintf("%-14s %4d", name, p.Score)
		if i == m.state.CurrentPlayerIndex && !m.state.IsGameOver() {
			b.WriteString(CurrentPlayerStyle.Render("> " + line))
		} else {
			b.WriteString(PlayerInfoStyle.Render("  " + line))
		}
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(fmt.Sprintf("    %d in hand, %d captured", len(p.Tableau), len(p.Captured))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(PlayerInfoStyle.Render(fmt.Sprintf("Deck: %d", len(m.state.Deck))))
	b.WriteString("\n")
	if roll := m.state.LastDiceRoll; roll != nil {
		b.WriteString(WarningStyle.Render("Roll: " + roll.String()))
		b.WriteString("\n")
	}
	if m.state.FinalRoundStarted && !m.state.IsGameOver() {
		b.WriteString(WarningStyle.Render("Final round"))
		b.WriteString("\n")
	}
	return b.String()
}

// renderBoard shows the tableau of the human whose turn it is (or the first
// human when a bot is playing) and the captures on offer.
func (m *Model) renderBoard() string {
	p, ok := m.focusPlayer()
	if !ok {
		return InfoStyle.Render("No game in progress")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s's tableau: %s", p.Name, formatCards(p.Tableau)))

	if len(m.matches) > 0 {
		b.WriteString("\n")
		for i, mt := range m.matches {
			line := fmt.Sprintf("%-10s %s (%d pts)", mt.Type, formatCards(mt.Cards), mt.Score)
			if i == m.selected {
				b.WriteString(SelectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	} else if m.state.Phase == game.PhaseMatching && m.humansTurn() {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("No matches, press d to draw"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) focusPlayer() (player.Player, bool) {
	if p, ok := m.state.CurrentPlayer(); ok && !p.IsBot {
		return p, true
	}
	for _, p := range m.state.Players {
		if !p.IsBot {
			return p, true
		}
	}
	return m.state.CurrentPlayer()
}

// formatCards formats cards with colors
func formatCards(cs []cards.Card) string {
	if len(cs) == 0 {
		return "[]"
	}

	formatted := make([]string, len(cs))
	for i, c := range cs {
		switch {
		case c.IsWild():
			formatted[i] = WildCardStyle.Render(c.String())
		case c.Suit.IsRed():
			formatted[i] = RedCardStyle.Render(c.String())
		default:
			formatted[i] = BlackCardStyle.Render(c.String())
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func standing(rank int, name string, score int) string {
	return fmt.Sprintf("%d. %s: %d", rank, name, score)
}
