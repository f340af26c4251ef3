package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxToasts caps how many notifications are on screen at once
const maxToasts = 3

type toast struct {
	id   int
	text string
}

// toastQueue holds short-lived notifications, newest last
type toastQueue struct {
	nextID int
	items  []toast
}

// push adds a toast and returns the command that expires it
func (q *toastQueue) push(text string, ttl time.Duration) tea.Cmd {
	q.nextID++
	id := q.nextID
	q.items = append(q.items, toast{id: id, text: text})
	if len(q.items) > maxToasts {
		q.items = q.items[len(q.items)-maxToasts:]
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (q *toastQueue) expire(id int) {
	for i, t := range q.items {
		if t.id == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

func (q *toastQueue) texts() []string {
	out := make([]string, len(q.items))
	for i, t := range q.items {
		out[i] = t.text
	}
	return out
}
