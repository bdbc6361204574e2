package board

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/soundkit/internal/gain"
	"github.com/llehouerou/soundkit/internal/sfx"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	playStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

var helpContexts = []string{"global", "board", "voice", "output"}

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	board := panelStyle.Render(m.renderProfiles())
	plays := panelStyle.Render(m.renderPlays())

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("soundkit"))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, plays))
	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m Model) renderProfiles() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Profiles"))
	for i, s := range m.sounds {
		sb.WriteString("\n")
		line := fmt.Sprintf("%s  %s", s.Profile.Name, dimStyle.Render(s.Profile.Output))
		if i == m.cursor {
			sb.WriteString(cursorStyle.Render("> ") + line)
			continue
		}
		sb.WriteString("  " + line)
	}
	if len(m.sounds) == 0 {
		sb.WriteString("\n" + dimStyle.Render("no profiles"))
	}
	return sb.String()
}

func (m Model) renderPlays() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Playing"))
	handles := m.pool.ActiveHandles()
	for _, h := range handles {
		sb.WriteString("\n")
		sb.WriteString(playStyle.Render(m.describe(h)))
	}
	if len(handles) == 0 {
		sb.WriteString("\n" + dimStyle.Render("silence"))
	}
	return sb.String()
}

// describe renders one live play. Errors mean the play ended since the
// handles were listed.
func (m Model) describe(h *sfx.Handle) string {
	name := m.names[h]
	if name == "" {
		name = "?"
	}
	pos, err := h.SamplePosition()
	if err != nil {
		return name + " ended"
	}
	vol, _ := h.Volume()
	loops, _ := h.LoopCount()
	state := "playing"
	if m.paused[h] {
		state = "paused"
	} else if playing, _ := h.IsPlaying(); !playing {
		state = "waiting"
	}
	return fmt.Sprintf("%-16s %-8s sample %s  %s  loops %s",
		name, state, humanize.Comma(int64(pos)), formatDecibel(vol), formatLoops(loops))
}

func formatDecibel(v float64) string {
	db := gain.LinearToDecibel(v)
	if db <= gain.Floor {
		return "-inf dB"
	}
	return humanize.FtoaWithDigits(math.Round(db*10)/10, 1) + " dB"
}

func formatLoops(n int) string {
	if n < 0 {
		return "inf"
	}
	return humanize.Comma(int64(n))
}

func (m Model) renderFooter() string {
	voices, idle := m.pool.Stats()
	stats := dimStyle.Render(fmt.Sprintf("voices %s (%s idle)  ducking %s  ? help",
		humanize.Comma(int64(voices)), humanize.Comma(int64(idle)), onOff(m.duck)))
	if m.status == "" {
		return stats
	}
	return statusStyle.Render(m.status) + "\n" + stats
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Key bindings"))
	for _, ctx := range helpContexts {
		sb.WriteString("\n\n")
		sb.WriteString(headerStyle.Render(ctx))
		for _, line := range m.keys.Help(ctx) {
			keys, desc, _ := strings.Cut(line, "  ")
			sb.WriteString("\n  ")
			sb.WriteString(helpKeyStyle.Render(keys))
			sb.WriteString("  ")
			sb.WriteString(helpDescStyle.Render(strings.TrimSpace(desc)))
		}
	}
	return panelStyle.Render(sb.String())
}
