package ui

import (
	"avaliaccess/internal/domain"
	"avaliaccess/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerMsg contains the result of a pager command. content is shown in a popup when the pager failed.
type pagerMsg struct {
	content string
	err     error
}

// sessionRestoredMsg reports the startup check of a persisted token
type sessionRestoredMsg struct {
	user *domain.UserProfile
	err  error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct {
	id int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
