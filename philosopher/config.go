package philosopher

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid table configuration")

// Config describes a dinner.
type Config struct {
	Philosophers int           // Number of philosophers (and chopsticks).
	Iterations   int           // Meals per philosopher, 0 to dine until cancelled.
	Think        time.Duration // Upper bound of a random thinking pause.
	Eat          time.Duration // Upper bound of a random eating pause.
	Talk         time.Duration // Upper bound of a random talking pause.
	TalkChance   float64       // Probability of talking after a meal, in [0, 1].
	Seed         int64         // Seed for the pauses; philosopher i uses Seed+i.
}

// DefaultConfig returns the configuration of the classic five philosophers.
func DefaultConfig() Config {
	return Config{
		Philosophers: 5,
		Think:        100 * time.Millisecond,
		Eat:          100 * time.Millisecond,
		Talk:         50 * time.Millisecond,
		TalkChance:   0.5,
		Seed:         1,
	}
}

// Validate checks that the configuration can be used for a dinner.
func (c Config) Validate() error {
	switch {
	case c.Philosophers <= 0:
		return fmt.Errorf("%w: need at least one philosopher, got %d", ErrInvalidConfig, c.Philosophers)
	case c.Iterations < 0:
		return fmt.Errorf("%w: negative iterations %d", ErrInvalidConfig, c.Iterations)
	case c.Think < 0 || c.Eat < 0 || c.Talk < 0:
		return fmt.Errorf("%w: negative pause (think=%s eat=%s talk=%s)", ErrInvalidConfig, c.Think, c.Eat, c.Talk)
	case c.TalkChance < 0 || c.TalkChance > 1:
		return fmt.Errorf("%w: talk chance %g outside [0, 1]", ErrInvalidConfig, c.TalkChance)
	}
	return nil
}
