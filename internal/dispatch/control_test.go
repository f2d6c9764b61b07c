package dispatch

import (
	"context"
	"testing"

	"github.com/rbright/swaytouch/internal/gesture"
	"github.com/rbright/swaytouch/internal/ipc"
	"github.com/stretchr/testify/require"
)

func TestHandlePauseResumeStatus(t *testing.T) {
	ws := &fakeWorkspaces{current: 2}
	d := New(&scriptedSource{}, ws, Options{})

	for _, ev := range swipeEvents(3, gesture.Update{DX: 20}) {
		d.HandleEvent(context.Background(), ev)
	}

	resp := d.Handle(context.Background(), ipc.Request{Command: ipc.CommandStatus})
	require.True(t, resp.OK)
	require.Equal(t, StateRunning, resp.State)
	require.Equal(t, 3, resp.LastSwitch)
	require.Equal(t, uint64(1), resp.Swipes)
	require.Equal(t, uint64(1), resp.Switches)

	resp = d.Handle(context.Background(), ipc.Request{Command: ipc.CommandPause})
	require.True(t, resp.OK)
	require.Equal(t, StatePaused, resp.State)
	require.Equal(t, "paused", resp.Message)
	require.True(t, d.Paused())

	resp = d.Handle(context.Background(), ipc.Request{Command: ipc.CommandPause})
	require.Equal(t, "already paused", resp.Message)

	resp = d.Handle(context.Background(), ipc.Request{Command: ipc.CommandResume})
	require.True(t, resp.OK)
	require.Equal(t, StateRunning, resp.State)
	require.Equal(t, "resumed", resp.Message)

	resp = d.Handle(context.Background(), ipc.Request{Command: ipc.CommandResume})
	require.Equal(t, "already running", resp.Message)
}

func TestHandleUnknownCommand(t *testing.T) {
	d := New(&scriptedSource{}, &fakeWorkspaces{}, Options{})

	resp := d.Handle(context.Background(), ipc.Request{Command: "toggle"})
	require.False(t, resp.OK)
	require.Equal(t, StateRunning, resp.State)
	require.Contains(t, resp.Error, "unknown command: toggle")
}
