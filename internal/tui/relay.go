package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/portalgun/internal/query"
)

// stateMsg carries a published controller state into the program.
type stateMsg struct {
	state query.State
}

// relay hands controller states to a running program without blocking the
// publisher. Only the newest pending state is kept; the model discards
// anything older than what it already shows.
type relay struct {
	mu     sync.Mutex
	latest *query.State
	wake   chan struct{}
}

func newRelay() *relay {
	return &relay{wake: make(chan struct{}, 1)}
}

// Publish records st and wakes the forwarder. It never blocks, so it is safe
// to install as the controller's change hook even when mutators run inside
// the program's Update.
func (r *relay) Publish(st query.State) {
	r.mu.Lock()
	r.latest = &st
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// forward sends pending states with send until done is closed.
func (r *relay) forward(send func(tea.Msg), done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-r.wake:
		}

		r.mu.Lock()
		st := r.latest
		r.latest = nil
		r.mu.Unlock()

		if st != nil {
			send(stateMsg{state: *st})
		}
	}
}
