// Command chopsticks runs the dining philosophers around a fair monitor.
//
// The monitor hands out both chopsticks of a philosopher atomically and in
// strict arrival order, so no philosopher starves, and keeps a single talk
// slot so that at most one philosopher talks at a time. The command can run
// a dinner, serve its live state over HTTP, and write the protocol as
// Graphviz, CFSM or MiGo files for external deadlock checkers.
package main
