package model

import (
	"fmt"
	"io"

	"github.com/nickng/cfsm"
	"github.com/nickng/chopsticks/monitor"
)

// Messages exchanged between a philosopher and the monitor.
const (
	MsgAcquire     = "acquire"
	MsgGranted     = "granted"
	MsgRelease     = "release"
	MsgTalk        = "talk"
	MsgTalkGranted = "talkgranted"
	MsgEndTalk     = "endtalk"
)

// CFSMs is the dinner protocol as a system of communicating finite state
// machines: one machine for the monitor, one per philosopher.
type CFSMs struct {
	Sys          *cfsm.System
	Monitor      *cfsm.CFSM
	Philosophers []*cfsm.CFSM // Indexed by philosopher id - 1.
}

// NewCFSMs builds the protocol for n philosophers.
func NewCFSMs(n int) (*CFSMs, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: table of %d", monitor.ErrInvalidConfiguration, n)
	}
	sys := &CFSMs{Sys: cfsm.NewSystem()}
	sys.Monitor = sys.Sys.NewMachine()
	sys.Monitor.Comment = "monitor"
	for id := 1; id <= n; id++ {
		m := sys.Sys.NewMachine()
		m.Comment = fmt.Sprintf("philosopher %d", id)
		sys.Philosophers = append(sys.Philosophers, m)
	}
	for _, m := range sys.Philosophers {
		sys.philosopherToMachine(m)
	}
	sys.monitorToMachine()
	return sys, nil
}

// philosopherToMachine writes the loop of one philosopher:
//
//	q0 -!acquire-> q1 -?granted-> q2 -!release-> q3
//	q3 -!talk-> q4 -?talkgranted-> q5 -!endtalk-> q0
func (sys *CFSMs) philosopherToMachine(m *cfsm.CFSM) {
	steps := []struct {
		send bool
		msg  string
	}{
		{true, MsgAcquire},
		{false, MsgGranted},
		{true, MsgRelease},
		{true, MsgTalk},
		{false, MsgTalkGranted},
		{true, MsgEndTalk},
	}
	q0 := m.NewState()
	m.Start = q0
	q := q0
	for i, step := range steps {
		next := q0
		if i < len(steps)-1 {
			next = m.NewState()
		}
		if step.send {
			tr := cfsm.NewSend(sys.Monitor, step.msg)
			tr.SetNext(next)
			q.AddTransition(tr)
		} else {
			tr := cfsm.NewRecv(sys.Monitor, step.msg)
			tr.SetNext(next)
			q.AddTransition(tr)
		}
		q = next
	}
}

// monitorToMachine writes the monitor: from its idle state it accepts any
// philosopher's request and answers the blocking ones.
func (sys *CFSMs) monitorToMachine() {
	m := sys.Monitor
	q0 := m.NewState()
	m.Start = q0
	for _, p := range sys.Philosophers {
		// q0 -- ?acquire --> qGrant -- !granted --> q0
		qGrant := m.NewState()
		tr0 := cfsm.NewRecv(p, MsgAcquire)
		tr0.SetNext(qGrant)
		q0.AddTransition(tr0)
		tr1 := cfsm.NewSend(p, MsgGranted)
		tr1.SetNext(q0)
		qGrant.AddTransition(tr1)

		// q0 -- ?release --> q0
		tr2 := cfsm.NewRecv(p, MsgRelease)
		tr2.SetNext(q0)
		q0.AddTransition(tr2)

		// q0 -- ?talk --> qTalk -- !talkgranted --> q0
		qTalk := m.NewState()
		tr3 := cfsm.NewRecv(p, MsgTalk)
		tr3.SetNext(qTalk)
		q0.AddTransition(tr3)
		tr4 := cfsm.NewSend(p, MsgTalkGranted)
		tr4.SetNext(q0)
		qTalk.AddTransition(tr4)

		// q0 -- ?endtalk --> q0
		tr5 := cfsm.NewRecv(p, MsgEndTalk)
		tr5.SetNext(q0)
		q0.AddTransition(tr5)
	}
}

// WriteTo implements io.WriterTo.
func (sys *CFSMs) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write([]byte(sys.Sys.String()))
	return int64(n), err
}

// PrintSummary lists the machines of the system.
func (sys *CFSMs) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "Total of %d CFSMs\n", len(sys.Philosophers)+1)
	fmt.Fprintf(w, "\t%d\t= %s\n", sys.Monitor.ID, sys.Monitor.Comment)
	for _, m := range sys.Philosophers {
		fmt.Fprintf(w, "\t%d\t= %s\n", m.ID, m.Comment)
	}
}
