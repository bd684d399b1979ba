// Package logwriter wraps a io.Writer for chopsticks logging.
//
// A Writer decides where simulation output goes (stdout, a buffered log file
// or nowhere) and whether it is coloured.
package logwriter // "github.com/nickng/chopsticks/logwriter"

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

// Writer is a log writer and its configurations.
type Writer struct {
	io.Writer

	LogFile       string
	EnableLogging bool
	EnableColour  bool
	Cleanup       func()
}

// NewFile creates a new writer logging to logfile, or stdout if empty.
func NewFile(logfile string, enableLogging, enableColour bool) *Writer {
	return &Writer{
		LogFile:       logfile,
		EnableLogging: enableLogging,
		EnableColour:  enableColour,
	}
}

// New creates a new log writer on top of w.
func New(w io.Writer, enableLogging, enableColour bool) *Writer {
	return &Writer{
		Writer:        w,
		EnableLogging: enableLogging,
		EnableColour:  enableColour,
	}
}

// Create initialises the writer. Cleanup must be called when done.
func (w *Writer) Create() error {
	color.NoColor = !w.EnableColour
	w.Cleanup = func() {}
	switch {
	case !w.EnableLogging:
		w.Writer = io.Discard
	case w.Writer != nil:
	case w.LogFile != "":
		f, err := os.Create(w.LogFile)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		bufWriter := bufio.NewWriter(f)
		locked := &lockedWriter{w: bufWriter}
		w.Writer = locked
		w.Cleanup = func() {
			locked.Lock()
			defer locked.Unlock()
			if err := bufWriter.Flush(); err != nil {
				log.Printf("flush: %s", err)
			}
			if err := f.Close(); err != nil {
				log.Printf("close: %s", err)
			}
		}
	default:
		w.Writer = os.Stdout
	}
	return nil
}

// Logger returns a logger writing to w with the given prefix.
func (w *Writer) Logger(prefix string) *log.Logger {
	out := w.Writer
	if out == nil {
		out = io.Discard
	}
	return log.New(out, prefix, log.Ltime|log.Lmicroseconds)
}
