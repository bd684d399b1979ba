package philosopher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nickng/chopsticks/monitor"
	"github.com/nickng/chopsticks/report"
	"golang.org/x/sync/errgroup"
)

// Table is a dinner: a monitor and the philosophers sitting around it.
type Table struct {
	ID           string // Run identifier.
	Config       Config
	Monitor      *monitor.Monitor
	Philosophers []*Philosopher

	Time   time.Duration // Duration of the last Run.
	logger *log.Logger
}

// NewTable seats cfg.Philosophers philosophers around a new monitor which
// reports to r. A nil logger discards driver output.
func NewTable(cfg Config, r report.Reporter, logger *log.Logger) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m, err := monitor.New(cfg.Philosophers, monitor.WithReporter(r))
	if err != nil {
		return nil, err
	}
	t := &Table{
		ID:      uuid.NewString(),
		Config:  cfg,
		Monitor: m,
		logger:  logger,
	}
	for id := 1; id <= cfg.Philosophers; id++ {
		t.Philosophers = append(t.Philosophers, New(id, cfg, logger))
	}
	return t, nil
}

// Run lets every philosopher dine in its own goroutine and waits for all of
// them. Stopping through ctx is a normal end of dinner and returns nil.
func (t *Table) Run(ctx context.Context) error {
	t.logger.Printf("---- Dinner %s: %d philosophers ----", t.ID, len(t.Philosophers))
	startTime := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range t.Philosophers {
		p := p
		g.Go(func() error {
			if err := p.Dine(gctx, t.Monitor); err != nil {
				return fmt.Errorf("philosopher %d: %w", p.ID, err)
			}
			return nil
		})
	}
	err := g.Wait()
	t.Time = time.Since(startTime)
	if err != nil && ctx.Err() != nil && isContextErr(err) {
		err = nil
	}
	t.logger.Printf("---- Dinner %s finished in %s ----", t.ID, t.Time)
	return err
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Stat summarises one philosopher.
type Stat struct {
	ID            int   `json:"philosopher"`
	State         State `json:"state"`
	Meals         int   `json:"meals"` // Times admitted by the monitor.
	Talks         int   `json:"talks"`
	Cancellations int   `json:"cancellations"`
}

// Stats summarises every philosopher at the table.
func (t *Table) Stats() []Stat {
	s := t.Monitor.Snapshot()
	stats := make([]Stat, len(t.Philosophers))
	for i, p := range t.Philosophers {
		stats[i] = Stat{
			ID:            p.ID,
			State:         p.State(),
			Meals:         s.Meals[i],
			Talks:         s.Talks[i],
			Cancellations: s.Cancellations[i],
		}
	}
	return stats
}

// States returns the current state of every philosopher, indexed by id - 1.
func (t *Table) States() []State {
	states := make([]State, len(t.Philosophers))
	for i, p := range t.Philosophers {
		states[i] = p.State()
	}
	return states
}
