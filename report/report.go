// Package report carries observational events out of the monitor.
//
// Reporters are a side channel: nothing they do feeds back into the
// synchronisation state. A Reporter is invoked while the monitor lock is
// held, so it must not call back into the monitor.
package report // "github.com/nickng/chopsticks/report"

import (
	"fmt"
	"time"
)

// Kind is the kind of an Event.
type Kind int

const (
	Queued      Kind = iota // Philosopher joined the fairness queue.
	Acquired                // Philosopher picked up both chopsticks.
	Released                // Philosopher put down both chopsticks.
	Cancelled               // Philosopher gave up waiting for chopsticks.
	TalkStarted             // Philosopher was granted the talk slot.
	TalkEnded               // Philosopher gave the talk slot back.
)

func (k Kind) String() string {
	switch k {
	case Queued:
		return "queued"
	case Acquired:
		return "acquired"
	case Released:
		return "released"
	case Cancelled:
		return "cancelled"
	case TalkStarted:
		return "talk-started"
	case TalkEnded:
		return "talk-ended"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a single observable monitor transition.
//
// Left and Right are 0-based chopstick indices. They are only meaningful for
// chopstick events.
type Event struct {
	Kind  Kind      `json:"kind"`
	Agent int       `json:"philosopher"`
	Left  int       `json:"left"`
	Right int       `json:"right"`
	Time  time.Time `json:"time"`
}

// MarshalText lets Kind show up as a word in JSON output.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// String renders the event with 1-based chopstick numbers.
func (e Event) String() string {
	switch e.Kind {
	case Queued:
		return fmt.Sprintf("Philosopher %d is waiting for chopsticks %d and %d", e.Agent, e.Left+1, e.Right+1)
	case Acquired:
		return fmt.Sprintf("Philosopher %d picked up chopsticks %d and %d", e.Agent, e.Left+1, e.Right+1)
	case Released:
		return fmt.Sprintf("Philosopher %d put down chopsticks %d and %d", e.Agent, e.Left+1, e.Right+1)
	case Cancelled:
		return fmt.Sprintf("Philosopher %d stopped waiting for chopsticks %d and %d", e.Agent, e.Left+1, e.Right+1)
	case TalkStarted:
		return fmt.Sprintf("Philosopher %d started talking", e.Agent)
	case TalkEnded:
		return fmt.Sprintf("Philosopher %d stopped talking", e.Agent)
	}
	return fmt.Sprintf("Philosopher %d: %s", e.Agent, e.Kind)
}

// Reporter receives monitor events.
type Reporter interface {
	Report(Event)
}

// Func adapts a function to a Reporter.
type Func func(Event)

// Report calls f(e).
func (f Func) Report(e Event) { f(e) }

// Nop discards every event.
type Nop struct{}

// Report does nothing.
func (Nop) Report(Event) {}

// Multi forwards each event to all of its reporters in order.
type Multi []Reporter

// NewMulti combines reporters, skipping nil ones.
func NewMulti(reporters ...Reporter) Multi {
	m := make(Multi, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			m = append(m, r)
		}
	}
	return m
}

// Report forwards e.
func (m Multi) Report(e Event) {
	for _, r := range m {
		r.Report(e)
	}
}
