package logwriter

import (
	"io"
	"sync"
)

// lockedWriter serialises writes from the reporter and the philosophers,
// which share one bufio.Writer but use separate loggers.
type lockedWriter struct {
	sync.Mutex
	w io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.Lock()
	defer l.Unlock()
	return l.w.Write(p)
}
