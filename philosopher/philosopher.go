// Package philosopher drives philosophers around a monitor.
//
// Each Philosopher runs its own loop in a goroutine:
//
//	think -> pick up chopsticks -> eat -> put down chopsticks
//	      -> (maybe) request talk -> talk -> end talk
//
// The richer per-philosopher state (thinking, hungry, eating, ...) lives
// here; the monitor only knows who holds what.
package philosopher // "github.com/nickng/chopsticks/philosopher"

import (
	"context"
	"io"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/nickng/chopsticks/monitor"
)

// State is what a philosopher is doing.
type State int32

const (
	Thinking State = iota
	Hungry
	Eating
	WantsToTalk
	Talking
	Done
)

func (s State) String() string {
	switch s {
	case Thinking:
		return "thinking"
	case Hungry:
		return "hungry"
	case Eating:
		return "eating"
	case WantsToTalk:
		return "wants to talk"
	case Talking:
		return "talking"
	case Done:
		return "done"
	}
	return "unknown"
}

func (s State) phrase() string {
	if s == WantsToTalk {
		return s.String()
	}
	return "is " + s.String()
}

// MarshalText lets State show up as a word in JSON output.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Philosopher is a single diner.
type Philosopher struct {
	ID int

	cfg    Config
	rng    *rand.Rand
	logger *log.Logger
	state  atomic.Int32
}

// New creates philosopher id. A nil logger discards output.
func New(id int, cfg Config, logger *log.Logger) *Philosopher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Philosopher{
		ID:     id,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed + int64(id))),
		logger: logger,
	}
}

// State returns what the philosopher is currently doing.
func (p *Philosopher) State() State { return State(p.state.Load()) }

func (p *Philosopher) setState(s State) {
	p.state.Store(int32(s))
	p.logger.Printf("Philosopher %d %s", p.ID, s.phrase())
}

// Dine runs the philosopher's loop against m until the configured number of
// iterations is reached or ctx is done. Chopsticks and the talk slot are
// always handed back before Dine returns.
func (p *Philosopher) Dine(ctx context.Context, m *monitor.Monitor) error {
	defer p.setState(Done)
	for i := 0; p.cfg.Iterations == 0 || i < p.cfg.Iterations; i++ {
		if err := p.dineOnce(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (p *Philosopher) dineOnce(ctx context.Context, m *monitor.Monitor) error {
	p.setState(Thinking)
	if err := p.pause(ctx, p.cfg.Think); err != nil {
		return err
	}

	p.setState(Hungry)
	if err := m.AcquireResources(ctx, p.ID); err != nil {
		return err
	}
	p.setState(Eating)
	err := p.pause(ctx, p.cfg.Eat)
	m.ReleaseResources(p.ID)
	if err != nil {
		return err
	}

	if !p.wantsToTalk() {
		return nil
	}
	p.setState(WantsToTalk)
	if err := m.AcquireTalkSlot(ctx, p.ID); err != nil {
		return err
	}
	p.setState(Talking)
	err = p.pause(ctx, p.cfg.Talk)
	m.ReleaseTalkSlot(p.ID)
	return err
}

func (p *Philosopher) wantsToTalk() bool {
	switch {
	case p.cfg.TalkChance <= 0:
		return false
	case p.cfg.TalkChance >= 1:
		return true
	}
	return p.rng.Float64() < p.cfg.TalkChance
}

// pause sleeps for a random duration up to d, or until ctx is done.
func (p *Philosopher) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(p.rng.Int63n(int64(d))) + 1)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
