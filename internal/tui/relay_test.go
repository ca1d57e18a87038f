package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/portalgun/internal/query"
)

func TestRelay_ForwardsLatestState(t *testing.T) {
	r := newRelay()

	// Publishing before anyone listens must not block.
	r.Publish(query.State{Revision: 1})
	r.Publish(query.State{Revision: 2})

	got := make(chan tea.Msg, 4)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		r.forward(func(msg tea.Msg) { got <- msg }, done)
	}()

	select {
	case msg := <-got:
		sm, ok := msg.(stateMsg)
		require.True(t, ok)
		assert.Equal(t, uint64(2), sm.state.Revision, "pending states coalesce to the newest")
	case <-time.After(5 * time.Second):
		t.Fatal("no state forwarded")
	}

	r.Publish(query.State{Revision: 3})
	select {
	case msg := <-got:
		assert.Equal(t, uint64(3), msg.(stateMsg).state.Revision)
	case <-time.After(5 * time.Second):
		t.Fatal("no state forwarded")
	}

	close(done)
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("forwarder did not stop")
	}
}
