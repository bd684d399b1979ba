// Package model renders the dinner protocol for external tools.
//
// The seating plan and the live wait-for relation are written as Graphviz
// dot, and the philosopher/monitor protocol as communicating finite state
// machines and MiGo types, the input formats of the usual deadlock checkers.
package model // "github.com/nickng/chopsticks/model"

import (
	"fmt"
	"io"

	"github.com/awalterschulze/gographviz"
	"github.com/nickng/chopsticks/monitor"
)

// Dot is a Graphviz graph of a table.
type Dot struct {
	Graph *gographviz.Escape
}

func newDot(name string) (*Dot, error) {
	graph := gographviz.NewEscape()
	if err := graph.SetDir(true); err != nil {
		return nil, err
	}
	if err := graph.SetName(name); err != nil {
		return nil, err
	}
	return &Dot{Graph: graph}, nil
}

func philosopherNode(id int) string { return fmt.Sprintf("P%d", id) }

// chopstickNode names 0-based chopstick c with its 1-based number.
func chopstickNode(c int) string { return fmt.Sprintf("C%d", c+1) }

// NewTableDot draws the seating plan of n philosophers: every philosopher
// points at its left and right chopstick.
func NewTableDot(n int) (*Dot, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: table of %d", monitor.ErrInvalidConfiguration, n)
	}
	dot, err := newDot("table")
	if err != nil {
		return nil, err
	}
	g := dot.Graph
	for c := 0; c < n; c++ {
		if err := g.AddNode("table", chopstickNode(c), map[string]string{
			"label": fmt.Sprintf("Chopstick %d", c+1),
			"shape": "box",
		}); err != nil {
			return nil, err
		}
	}
	for id := 1; id <= n; id++ {
		if err := g.AddNode("table", philosopherNode(id), map[string]string{
			"label": fmt.Sprintf("Philosopher %d", id),
			"shape": "ellipse",
		}); err != nil {
			return nil, err
		}
		left, right := monitor.Left(id), monitor.Right(id, n)
		if err := g.AddEdge(philosopherNode(id), chopstickNode(left), true, map[string]string{"label": "left"}); err != nil {
			return nil, err
		}
		if err := g.AddEdge(philosopherNode(id), chopstickNode(right), true, map[string]string{"label": "right"}); err != nil {
			return nil, err
		}
	}
	return dot, nil
}

// Node colours of NewWaitForDot.
const (
	colourEating  = "palegreen"
	colourWaiting = "orange"
	colourTalking = "lightblue"
	colourIdle    = "white"
)

// NewWaitForDot draws who waits for whom in a snapshot.
//
// Each queued philosopher points at the philosophers holding the chopsticks
// it needs, and a dashed chain follows the fairness queue from its front.
func NewWaitForDot(s monitor.Snapshot) (*Dot, error) {
	dot, err := newDot("waitfor")
	if err != nil {
		return nil, err
	}
	g := dot.Graph
	for id := 1; id <= s.Size; id++ {
		colour, status := colourIdle, "idle"
		switch {
		case s.Eating(id):
			colour, status = colourEating, "eating"
		case s.Waiting(id):
			colour, status = colourWaiting, "waiting"
		}
		if s.Talker == id {
			colour, status = colourTalking, status+", talking"
		}
		if err := g.AddNode("waitfor", philosopherNode(id), map[string]string{
			"label":     fmt.Sprintf("Philosopher %d (%s)", id, status),
			"style":     "filled",
			"fillcolor": colour,
		}); err != nil {
			return nil, err
		}
	}
	for _, id := range s.Queue {
		for _, holder := range s.Blockers(id) {
			if err := g.AddEdge(philosopherNode(id), philosopherNode(holder), true, map[string]string{
				"label": "waits for",
				"color": "red",
			}); err != nil {
				return nil, err
			}
		}
	}
	for i := 1; i < len(s.Queue); i++ {
		if err := g.AddEdge(philosopherNode(s.Queue[i]), philosopherNode(s.Queue[i-1]), true, map[string]string{
			"label": "behind",
			"style": "dashed",
		}); err != nil {
			return nil, err
		}
	}
	return dot, nil
}

// WriteTo implements io.WriterTo.
func (d *Dot) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.Graph.String())
	return int64(n), err
}

func (d *Dot) String() string { return d.Graph.String() }
