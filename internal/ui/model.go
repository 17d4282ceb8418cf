// ABOUTME: Bubbletea model for the turn status view
// ABOUTME: Tracks request progress, returned messages and the saved clip
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voiceturn/voiceturn-go/internal/version"
)

// Stage is the progress of a turn
type Stage int

const (
	StageIdle Stage = iota
	StageSending
	StageAudio
	StagePlaying
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageSending:
		return "Sending request"
	case StageAudio:
		return "Saving audio"
	case StagePlaying:
		return "Playing audio"
	case StageDone:
		return "Done"
	case StageFailed:
		return "Failed"
	default:
		return "Idle"
	}
}

// Finished reports whether the turn reached a terminal stage
func (s Stage) Finished() bool {
	return s == StageDone || s == StageFailed
}

// Model represents the TUI state
type Model struct {
	// Request
	stage    Stage
	request  string
	voice    string
	language string

	// Response
	messages    []string
	audioPath   string
	audioFormat string
	converted   bool
	note        string
	err         string

	// Playback
	volume int
	muted  bool

	startTime time.Time
	elapsed   time.Duration

	volumeCtrl *VolumeControl
	quitting   bool

	// Dimensions
	width  int
	height int
}

type tickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tickEvery()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		if m.stage.Finished() {
			return m, nil
		}
		m.elapsed = time.Time(msg).Sub(m.startTime).Round(100 * time.Millisecond)
		return m, tickEvery()
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Exiting...\n"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	errStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196"))

	var b strings.Builder

	b.WriteString(titleStyle.Render(version.String()))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(headerStyle.Render(label + ": "))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	field("Status", fmt.Sprintf("%s (%s)", m.stage, m.elapsed))
	field("You", truncate(m.request, m.lineWidth()))
	field("Voice", fmt.Sprintf("%s / %s", orDash(m.voice), orDash(m.language)))
	b.WriteString("\n")

	if len(m.messages) == 0 {
		b.WriteString(valueStyle.Render("  No messages yet"))
		b.WriteString("\n")
	}
	for _, line := range m.messages {
		b.WriteString(messageStyle.Render("  " + truncate(line, m.lineWidth())))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.audioPath != "" {
		format := m.audioFormat
		if m.converted {
			format = "converted to mp3"
		}
		field("Audio", fmt.Sprintf("%s (%s)", m.audioPath, format))
	}

	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}
	field("Volume", fmt.Sprintf("[%s] %d%%%s", renderBar(m.volume, 100, 10), m.volume, muteIcon))

	if m.note != "" {
		b.WriteString(valueStyle.Render("Note: " + m.note))
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString(errStyle.Render("Error: " + m.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("↑/↓:Volume  m:Mute  q:Quit"))

	return b.String()
}

func (m Model) lineWidth() int {
	if m.width > 12 {
		return m.width - 8
	}
	return 72
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		if m.volumeCtrl != nil {
			select {
			case m.volumeCtrl.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case "up":
		m.volume += 5
		if m.volume > 100 {
			m.volume = 100
		}
		m.sendVolume()
	case "down":
		m.volume -= 5
		if m.volume < 0 {
			m.volume = 0
		}
		m.sendVolume()
	case "m":
		m.muted = !m.muted
		m.sendVolume()
	}

	return m, nil
}

func (m Model) sendVolume() {
	if m.volumeCtrl == nil {
		return
	}
	select {
	case m.volumeCtrl.Changes <- VolumeChangeMsg{Volume: m.volume, Muted: m.muted}:
	default:
	}
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Stage != nil {
		m.stage = *msg.Stage
	}
	if msg.Request != "" {
		m.request = msg.Request
	}
	if msg.Voice != "" {
		m.voice = msg.Voice
	}
	if msg.Language != "" {
		m.language = msg.Language
	}
	if msg.Messages != nil {
		m.messages = msg.Messages
	}
	if msg.AudioPath != "" {
		m.audioPath = msg.AudioPath
		m.audioFormat = msg.AudioFormat
		m.converted = msg.Converted
	}
	if msg.Note != "" {
		m.note = msg.Note
	}
	if msg.Err != "" {
		m.err = msg.Err
	}
}

// StatusMsg updates TUI state. Zero fields leave the current value.
type StatusMsg struct {
	Stage       *Stage
	Request     string
	Voice       string
	Language    string
	Messages    []string
	AudioPath   string
	AudioFormat string
	Converted   bool
	Note        string
	Err         string
}

// StageStatus is a StatusMsg that only moves the stage
func StageStatus(s Stage) StatusMsg {
	return StatusMsg{Stage: &s}
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
