package monitor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned by New for a non-positive number
	// of philosophers.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	ErrQueueFull      = errors.New("queue: full")
	ErrQueueEmpty     = errors.New("queue: empty")
	ErrQueueDuplicate = errors.New("queue: duplicate entry")
)

// ContractViolation is the panic value for calls that break the monitor's
// calling contract, such as releasing chopsticks that were never picked up.
type ContractViolation struct {
	Op     string // Monitor operation.
	Agent  int    // Calling philosopher.
	Reason string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("monitor: %s(%d): %s", e.Op, e.Agent, e.Reason)
}

func violation(op string, id int, format string, args ...interface{}) *ContractViolation {
	return &ContractViolation{Op: op, Agent: id, Reason: fmt.Sprintf(format, args...)}
}
