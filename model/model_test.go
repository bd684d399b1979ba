package model

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nickng/chopsticks/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeout = 2 * time.Second
	tick    = time.Millisecond
)

func TestTableDot(t *testing.T) {
	dot, err := NewTableDot(5)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = dot.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "digraph table {"), out)
	for _, edge := range []string{"P1->C1", "P1->C2", "P3->C3", "P3->C4", "P5->C5", "P5->C1"} {
		assert.Contains(t, out, edge)
	}
	assert.Contains(t, out, `"Philosopher 1"`)
	assert.Contains(t, out, `"Chopstick 5"`)
}

func TestModelsRejectEmptyTable(t *testing.T) {
	_, err := NewTableDot(0)
	assert.True(t, errors.Is(err, monitor.ErrInvalidConfiguration))
	_, err = NewCFSMs(0)
	assert.True(t, errors.Is(err, monitor.ErrInvalidConfiguration))
	_, err = NewMigo(-2)
	assert.True(t, errors.Is(err, monitor.ErrInvalidConfiguration))
}

func TestWaitForDot(t *testing.T) {
	ctx := context.Background()
	m, err := monitor.New(5)
	require.NoError(t, err)
	require.NoError(t, m.AcquireResources(ctx, 1))
	require.NoError(t, m.AcquireResources(ctx, 3))
	require.NoError(t, m.AcquireTalkSlot(ctx, 5))

	waiting, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 2)
	go func() { done <- m.AcquireResources(waiting, 2) }()
	require.Eventually(t, func() bool { return m.Snapshot().Waiting(2) }, timeout, tick)
	go func() { done <- m.AcquireResources(waiting, 4) }()
	require.Eventually(t, func() bool { return m.Snapshot().Waiting(4) }, timeout, tick)

	dot, err := NewWaitForDot(m.Snapshot())
	require.NoError(t, err)
	out := dot.String()

	assert.True(t, strings.HasPrefix(out, "digraph waitfor {"), out)
	assert.Contains(t, out, "P2->P1")
	assert.Contains(t, out, "P2->P3")
	assert.Contains(t, out, "P4->P3")
	assert.Contains(t, out, "P4->P2") // Queue order.
	assert.Contains(t, out, `"Philosopher 1 (eating)"`)
	assert.Contains(t, out, `"Philosopher 2 (waiting)"`)
	assert.Contains(t, out, `"Philosopher 5 (idle, talking)"`)
	assert.Contains(t, out, colourWaiting)

	cancel()
	<-done
	<-done
}

func TestCFSMs(t *testing.T) {
	sys, err := NewCFSMs(3)
	require.NoError(t, err)
	require.Len(t, sys.Philosophers, 3)
	assert.Equal(t, "monitor", sys.Monitor.Comment)
	assert.Equal(t, "philosopher 2", sys.Philosophers[1].Comment)

	var buf bytes.Buffer
	_, err = sys.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	for _, msg := range []string{MsgAcquire, MsgGranted, MsgRelease, MsgTalk, MsgTalkGranted, MsgEndTalk} {
		assert.Contains(t, out, msg)
	}

	buf.Reset()
	sys.PrintSummary(&buf)
	assert.Contains(t, buf.String(), "Total of 4 CFSMs")
	assert.Contains(t, buf.String(), "= philosopher 3")
}

func TestMigo(t *testing.T) {
	prog, err := NewMigo(2)
	require.NoError(t, err)
	prog.Simplify()

	var buf bytes.Buffer
	_, err = prog.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	for _, s := range []string{"philosopher1", "philosopher2", "monitor", "eat1", "talkok2"} {
		assert.Contains(t, out, s)
	}
}
