package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventString(t *testing.T) {
	tests := []struct {
		e    Event
		want string
	}{
		{Event{Kind: Acquired, Agent: 3, Left: 2, Right: 3}, "Philosopher 3 picked up chopsticks 3 and 4"},
		{Event{Kind: Released, Agent: 5, Left: 4, Right: 0}, "Philosopher 5 put down chopsticks 5 and 1"},
		{Event{Kind: TalkStarted, Agent: 1}, "Philosopher 1 started talking"},
		{Event{Kind: TalkEnded, Agent: 1}, "Philosopher 1 stopped talking"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.e.String())
	}
}

func TestKindJSON(t *testing.T) {
	b, err := json.Marshal(Event{Kind: Cancelled, Agent: 2})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"kind":"cancelled"`)
}

func TestText(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	var buf bytes.Buffer
	r := NewText(&buf, false)
	r.Report(Event{Kind: Queued, Agent: 1, Left: 0, Right: 1})
	r.Report(Event{Kind: Acquired, Agent: 1, Left: 0, Right: 1})
	r.Report(Event{Kind: Released, Agent: 1, Left: 0, Right: 1})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "Philosopher 1 picked up chopsticks 1 and 2"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "Philosopher 1 put down chopsticks 1 and 2"), lines[1])

	buf.Reset()
	NewText(&buf, true).Report(Event{Kind: Queued, Agent: 4, Left: 3, Right: 4})
	assert.Contains(t, buf.String(), "Philosopher 4 is waiting for chopsticks 4 and 5")
}

func TestRecorderLimit(t *testing.T) {
	r := NewRecorder(2)
	for i := 1; i <= 3; i++ {
		r.Report(Event{Kind: Acquired, Agent: i})
	}
	events := r.Events()
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[0].Agent)
	assert.Equal(t, 3, events[1].Agent)
	assert.Equal(t, 3, r.Total())
}

func TestMultiSkipsNil(t *testing.T) {
	r1, r2 := NewRecorder(0), NewRecorder(0)
	var calls int
	m := NewMulti(r1, nil, r2, Func(func(Event) { calls++ }))
	require.Len(t, m, 3)
	m.Report(Event{Kind: TalkStarted, Agent: 1})
	assert.Len(t, r1.Events(), 1)
	assert.Len(t, r2.Events(), 1)
	assert.Equal(t, 1, calls)
	assert.Len(t, r1.Filter(TalkStarted, TalkEnded), 1)
	assert.Empty(t, r1.Filter(Acquired))
}
