package report

import (
	"io"
	"log"

	"github.com/fatih/color"
)

// Text writes one human readable line per event.
//
// Colour output follows color.NoColor, which logwriter sets from the
// --no-colour flag.
type Text struct {
	logger  *log.Logger
	verbose bool
}

// NewText creates a Text reporter writing to w.
//
// Queued and Cancelled events are only written when verbose is set; the
// default output shows acquisitions and releases only.
func NewText(w io.Writer, verbose bool) *Text {
	return &Text{logger: log.New(w, "", log.Ltime|log.Lmicroseconds), verbose: verbose}
}

// Report writes e.
func (t *Text) Report(e Event) {
	switch e.Kind {
	case Acquired:
		t.logger.Println(color.GreenString(e.String()))
	case Released:
		t.logger.Println(e.String())
	case TalkStarted:
		t.logger.Println(color.CyanString(e.String()))
	case TalkEnded:
		t.logger.Println(e.String())
	case Queued:
		if t.verbose {
			t.logger.Println(color.YellowString(e.String()))
		}
	case Cancelled:
		if t.verbose {
			t.logger.Println(color.RedString(e.String()))
		}
	}
}
