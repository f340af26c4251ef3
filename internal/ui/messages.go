package ui

import (
	"expandlist/internal/config"
	"expandlist/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// ConfigReloadedMsg carries settings re-read after the config file changed
type ConfigReloadedMsg struct {
	Config *config.Config
}

// toastExpiredMsg removes the toast with the given id
type toastExpiredMsg struct {
	id int
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// copiedMsg reports the result of a clipboard write
type copiedMsg struct {
	text string
	err  error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
