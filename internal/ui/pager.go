package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// PagerOps hands the terminal to the ov pager for long documents
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a pager bound to no program; SetProgram must be called before Show
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// Show displays content in ov and blocks until the user leaves it
func (p *PagerOps) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to open pager: %w", err)
	}

	// keep ov from printing the document back to our screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// give ov time to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	return root.Run()
}
