package philosopher

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/nickng/chopsticks/monitor"
	"github.com/nickng/chopsticks/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(n, iterations int) Config {
	return Config{
		Philosophers: n,
		Iterations:   iterations,
		Think:        time.Millisecond,
		Eat:          time.Millisecond,
		Talk:         time.Millisecond,
		TalkChance:   1,
		Seed:         42,
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := []func(*Config){
		func(c *Config) { c.Philosophers = 0 },
		func(c *Config) { c.Iterations = -1 },
		func(c *Config) { c.Eat = -time.Second },
		func(c *Config) { c.TalkChance = 1.5 },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		err := cfg.Validate()
		assert.True(t, errors.Is(err, ErrInvalidConfig), "case %d: %v", i, err)
	}
}

func TestNewTableRejectsBadConfig(t *testing.T) {
	_, err := NewTable(Config{}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDineLogsStates(t *testing.T) {
	var buf bytes.Buffer
	m, err := monitor.New(1)
	require.NoError(t, err)
	p := New(1, fastConfig(1, 1), log.New(&buf, "", 0))

	require.NoError(t, p.Dine(context.Background(), m))
	assert.Equal(t, Done, p.State())
	assert.Equal(t, []int{1}, m.Snapshot().Meals)

	want := []string{
		"Philosopher 1 is thinking",
		"Philosopher 1 is hungry",
		"Philosopher 1 is eating",
		"Philosopher 1 wants to talk",
		"Philosopher 1 is talking",
		"Philosopher 1 is done",
	}
	for _, line := range want {
		assert.Contains(t, buf.String(), line)
	}
}

func TestNeverTalks(t *testing.T) {
	cfg := fastConfig(2, 5)
	cfg.TalkChance = 0
	table, err := NewTable(cfg, nil, nil)
	require.NoError(t, err)
	require.NoError(t, table.Run(context.Background()))
	for _, s := range table.Stats() {
		assert.Equal(t, 5, s.Meals)
		assert.Zero(t, s.Talks)
	}
}

func TestTableRunBounded(t *testing.T) {
	rec := report.NewRecorder(0)
	table, err := NewTable(fastConfig(5, 20), rec, nil)
	require.NoError(t, err)
	require.NotEmpty(t, table.ID)

	done := make(chan error, 1)
	go func() { done <- table.Run(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(20 * time.Second):
		t.Fatalf("dinner did not finish: %+v", table.Monitor.Snapshot())
	}

	for _, s := range table.Stats() {
		assert.Equal(t, 20, s.Meals, "meals of %d", s.ID)
		assert.Equal(t, 20, s.Talks, "talks of %d", s.ID)
		assert.Equal(t, Done, s.State)
	}
	assert.Len(t, rec.Filter(report.Acquired), 100)
	assert.Len(t, rec.Filter(report.Released), 100)

	// Replay events: neighbours never eat at the same time.
	holders := make([]int, 5)
	for _, e := range rec.Filter(report.Acquired, report.Released) {
		switch e.Kind {
		case report.Acquired:
			assert.Zero(t, holders[e.Left], "chopstick %d shared", e.Left)
			assert.Zero(t, holders[e.Right], "chopstick %d shared", e.Right)
			holders[e.Left], holders[e.Right] = e.Agent, e.Agent
		case report.Released:
			holders[e.Left], holders[e.Right] = 0, 0
		}
	}
	assert.True(t, table.Time > 0)
}

func TestTableRunUntilCancelled(t *testing.T) {
	table, err := NewTable(fastConfig(5, 0), nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, table.Run(ctx))

	s := table.Monitor.Snapshot()
	assert.Equal(t, []bool{true, true, true, true, true}, s.Free)
	assert.Empty(t, s.Queue)
	assert.Zero(t, s.Talker)
	for _, st := range table.States() {
		assert.Equal(t, Done, st)
	}
	assert.Positive(t, s.TotalMeals())
}

func TestStateString(t *testing.T) {
	b, err := Hungry.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "hungry", string(b))
	assert.Equal(t, "unknown", State(99).String())
}
