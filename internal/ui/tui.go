// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the turn status view
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// VolumeChangeMsg carries a volume change from the keyboard to the player
type VolumeChangeMsg struct {
	Volume int
	Muted  bool
}

// QuitMsg signals that the user closed the view
type QuitMsg struct{}

// VolumeControl holds channels for volume control communication
type VolumeControl struct {
	Changes chan VolumeChangeMsg
	Quit    chan QuitMsg
}

// NewVolumeControl creates a new volume control handler
func NewVolumeControl() *VolumeControl {
	return &VolumeControl{
		Changes: make(chan VolumeChangeMsg, 10),
		Quit:    make(chan QuitMsg, 1),
	}
}

// NewModel creates a new TUI model
func NewModel(volCtrl *VolumeControl) Model {
	return Model{
		volume:     100,
		stage:      StageIdle,
		startTime:  time.Now(),
		volumeCtrl: volCtrl,
	}
}

// Run creates the TUI program; the caller drives it with Run and Send
func Run(volCtrl *VolumeControl) *tea.Program {
	return tea.NewProgram(NewModel(volCtrl), tea.WithAltScreen())
}
