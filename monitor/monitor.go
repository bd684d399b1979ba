// Package monitor synchronises dining philosophers.
//
// A Monitor guards N chopsticks laid out in a circle and a single talk slot.
// Philosopher t (1-based) eats with chopsticks t-1 and t mod N (0-based).
// Both chopsticks are picked up atomically, and philosophers are admitted in
// the order they started waiting, so the table can neither deadlock nor
// starve anyone:
//
//   - a philosopher waits until it is at the front of the fairness queue AND
//     both of its chopsticks are free;
//   - the front of the queue blocks everybody behind it, even philosophers
//     whose chopsticks are free;
//   - every release wakes all waiters so the new front re-checks promptly.
//
// All state lives behind one mutex and one condition variable.
package monitor // "github.com/nickng/chopsticks/monitor"

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nickng/chopsticks/report"
)

// Monitor is the shared table state.
type Monitor struct {
	mu   sync.Mutex
	cond *sync.Cond

	n       int
	free    []bool // Chopstick availability, true = on the table.
	holders []int  // Philosopher holding each chopstick, 0 if free.
	eating  []bool // Indexed by philosopher id - 1.
	queue   *Queue
	talking bool
	talker  int

	meals   []int
	talks   []int
	cancels []int

	reporter report.Reporter
	now      func() time.Time
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithReporter sends monitor events to r.
func WithReporter(r report.Reporter) Option {
	return func(m *Monitor) {
		if r != nil {
			m.reporter = r
		}
	}
}

// New creates a Monitor for n philosophers and n chopsticks.
func New(n int, opts ...Option) (*Monitor, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: need at least one philosopher, got %d", ErrInvalidConfiguration, n)
	}
	m := &Monitor{
		n:        n,
		free:     make([]bool, n),
		holders:  make([]int, n),
		eating:   make([]bool, n),
		queue:    NewQueue(n),
		meals:    make([]int, n),
		talks:    make([]int, n),
		cancels:  make([]int, n),
		reporter: report.Nop{},
		now:      time.Now,
	}
	m.cond = sync.NewCond(&m.mu)
	for i := range m.free {
		m.free[i] = true
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Size returns the number of philosophers (and chopsticks).
func (m *Monitor) Size() int { return m.n }

// Chopsticks returns the 0-based left and right chopsticks of philosopher id.
func (m *Monitor) Chopsticks(id int) (left, right int) {
	return Left(id), Right(id, m.n)
}

// Left returns the left chopstick of philosopher id.
func Left(id int) int { return id - 1 }

// Right returns the right chopstick of philosopher id at a table of n.
func Right(id, n int) int { return id % n }

// AcquireResources blocks until philosopher id holds both of its chopsticks.
//
// The philosopher joins the fairness queue and is admitted once it is at the
// front and both chopsticks are free. If ctx is done first, the philosopher
// leaves the queue and ctx.Err() is returned; nothing is held in that case.
func (m *Monitor) AcquireResources(ctx context.Context, id int) error {
	const op = "AcquireResources"
	m.checkID(op, id)
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.eating[id-1] {
		panic(violation(op, id, "already holds its chopsticks"))
	}
	left, right := m.Chopsticks(id)
	if !m.queue.Contains(id) {
		if err := m.queue.Push(id); err != nil {
			panic(violation(op, id, "cannot queue: %v", err))
		}
		m.report(report.Queued, id, left, right)
	}

	stop := context.AfterFunc(ctx, m.wakeAll)
	defer stop()

	for !m.admissible(id, left, right) {
		if err := ctx.Err(); err != nil {
			m.queue.Remove(id)
			m.cancels[id-1]++
			m.report(report.Cancelled, id, left, right)
			// The front of the queue may have changed.
			m.cond.Broadcast()
			return err
		}
		m.cond.Wait()
	}

	m.free[left], m.free[right] = false, false
	m.holders[left], m.holders[right] = id, id
	m.eating[id-1] = true
	m.meals[id-1]++
	if _, err := m.queue.Pop(); err != nil {
		panic(violation(op, id, "admitted from an empty queue"))
	}
	// The new front may already have both chopsticks free.
	m.cond.Broadcast()
	m.report(report.Acquired, id, left, right)
	return nil
}

// ReleaseResources puts both chopsticks of philosopher id back on the table
// and wakes every waiter.
func (m *Monitor) ReleaseResources(id int) {
	const op = "ReleaseResources"
	m.checkID(op, id)

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.eating[id-1] {
		panic(violation(op, id, "does not hold its chopsticks"))
	}
	left, right := m.Chopsticks(id)
	m.free[left], m.free[right] = true, true
	m.holders[left], m.holders[right] = 0, 0
	m.eating[id-1] = false
	m.report(report.Released, id, left, right)
	m.cond.Broadcast()
}

// AcquireTalkSlot blocks until philosopher id is the only one talking.
//
// There is no queue for the talk slot: any waiter may win after a release.
func (m *Monitor) AcquireTalkSlot(ctx context.Context, id int) error {
	m.checkID("AcquireTalkSlot", id)
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.talker == id {
		panic(violation("AcquireTalkSlot", id, "is already talking"))
	}
	stop := context.AfterFunc(ctx, m.wakeAll)
	defer stop()

	for m.talking {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.cond.Wait()
	}
	m.talking = true
	m.talker = id
	m.talks[id-1]++
	m.report(report.TalkStarted, id, 0, 0)
	return nil
}

// ReleaseTalkSlot ends the talk of philosopher id and wakes every waiter.
func (m *Monitor) ReleaseTalkSlot(id int) {
	const op = "ReleaseTalkSlot"
	m.checkID(op, id)

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.talking || m.talker != id {
		panic(violation(op, id, "is not talking"))
	}
	m.talking = false
	m.talker = 0
	m.report(report.TalkEnded, id, 0, 0)
	m.cond.Broadcast()
}

// admissible is the admission predicate; m.mu must be held.
func (m *Monitor) admissible(id, left, right int) bool {
	front, ok := m.queue.Front()
	return ok && front == id && m.free[left] && m.free[right]
}

// wakeAll broadcasts under the lock, so a waiter cannot miss a cancellation
// between checking its context and parking.
func (m *Monitor) wakeAll() {
	m.mu.Lock()
	m.cond.Broadcast()
	m.mu.Unlock()
}

func (m *Monitor) checkID(op string, id int) {
	if id < 1 || id > m.n {
		panic(violation(op, id, "philosopher id out of range [1, %d]", m.n))
	}
}

// report emits an event; m.mu must be held.
func (m *Monitor) report(kind report.Kind, id, left, right int) {
	m.reporter.Report(report.Event{Kind: kind, Agent: id, Left: left, Right: right, Time: m.now()})
}
