package model

import (
	"fmt"
	"io"

	"github.com/nickng/chopsticks/monitor"
	"github.com/nickng/migo/v3"
	"github.com/nickng/migo/v3/migoutil"
)

// chanVar is a channel name used as a MiGo parameter.
type chanVar string

func (c chanVar) Name() string   { return string(c) }
func (c chanVar) String() string { return string(c) }

// Channels of philosopher id: requests and replies for chopsticks and for
// the talk slot.
func eatChan(id int) string    { return fmt.Sprintf("eat%d", id) }
func eatOkChan(id int) string  { return fmt.Sprintf("eatok%d", id) }
func talkChan(id int) string   { return fmt.Sprintf("talk%d", id) }
func talkOkChan(id int) string { return fmt.Sprintf("talkok%d", id) }

func philosopherChans(id int) []string {
	return []string{eatChan(id), eatOkChan(id), talkChan(id), talkOkChan(id)}
}

func params(names []string) []*migo.Parameter {
	ps := make([]*migo.Parameter, len(names))
	for i, name := range names {
		ps[i] = &migo.Parameter{Caller: chanVar(name), Callee: chanVar(name)}
	}
	return ps
}

// Migo is the dinner as a MiGo program.
//
// main.main creates the channels, spawns one recursive philosopher process
// per seat and runs the monitor, which serves one request at a time:
//
//	philosopherN: send eatN; recv eatokN; send eatN;
//	              send talkN; recv talkokN; send talkN; call philosopherN
type Migo struct {
	Prog *migo.Program
}

// NewMigo builds the MiGo program for n philosophers.
func NewMigo(n int) (*Migo, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: table of %d", monitor.ErrInvalidConfiguration, n)
	}
	prog := migo.NewProgram()
	var all []string

	mainFn := migo.NewFunction("main.main")
	for id := 1; id <= n; id++ {
		for _, ch := range philosopherChans(id) {
			mainFn.AddStmts(&migo.NewChanStatement{Name: chanVar(ch), Chan: ch, Size: 0})
			all = append(all, ch)
		}
	}
	for id := 1; id <= n; id++ {
		mainFn.AddStmts(&migo.SpawnStatement{Name: philosopherFn(id), Params: params(philosopherChans(id))})
	}
	mainFn.AddStmts(&migo.CallStatement{Name: "monitor", Params: params(all)})
	prog.AddFunction(mainFn)

	for id := 1; id <= n; id++ {
		prog.AddFunction(newPhilosopherFn(id))
	}
	prog.AddFunction(newMonitorFn(n, all))
	return &Migo{Prog: prog}, nil
}

func philosopherFn(id int) string { return fmt.Sprintf("philosopher%d", id) }

func newPhilosopherFn(id int) *migo.Function {
	chans := philosopherChans(id)
	fn := migo.NewFunction(philosopherFn(id))
	fn.AddParams(params(chans)...)
	fn.AddStmts(
		&migo.SendStatement{Chan: eatChan(id)},
		&migo.RecvStatement{Chan: eatOkChan(id)},
		&migo.SendStatement{Chan: eatChan(id)},
		&migo.SendStatement{Chan: talkChan(id)},
		&migo.RecvStatement{Chan: talkOkChan(id)},
		&migo.SendStatement{Chan: talkChan(id)},
		&migo.CallStatement{Name: philosopherFn(id), Params: params(chans)},
	)
	return fn
}

// newMonitorFn serves a whole meal or talk per select branch, so meals run
// one at a time: fewer interleavings than the monitor, which lets
// philosophers with disjoint chopsticks eat together.
func newMonitorFn(n int, all []string) *migo.Function {
	fn := migo.NewFunction("monitor")
	fn.AddParams(params(all)...)
	var cases [][]migo.Statement
	for id := 1; id <= n; id++ {
		cases = append(cases,
			[]migo.Statement{
				&migo.RecvStatement{Chan: eatChan(id)},
				&migo.SendStatement{Chan: eatOkChan(id)},
				&migo.RecvStatement{Chan: eatChan(id)},
			},
			[]migo.Statement{
				&migo.RecvStatement{Chan: talkChan(id)},
				&migo.SendStatement{Chan: talkOkChan(id)},
				&migo.RecvStatement{Chan: talkChan(id)},
			},
		)
	}
	fn.AddStmts(
		&migo.SelectStatement{Cases: cases},
		&migo.CallStatement{Name: "monitor", Params: params(all)},
	)
	return fn
}

// Simplify removes redundant functions and statements.
func (m *Migo) Simplify() { migoutil.SimplifyProgram(m.Prog) }

// WriteTo implements io.WriterTo.
func (m *Migo) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.Prog.String())
	return int64(n), err
}
