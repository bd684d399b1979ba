package report

import "sync"

// Recorder keeps the most recent events in memory.
type Recorder struct {
	sync.Mutex
	events []Event
	limit  int
	total  int
}

// NewRecorder creates a Recorder keeping at most limit events.
// A limit <= 0 keeps everything.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Report appends e, dropping the oldest event when full.
func (r *Recorder) Report(e Event) {
	r.Lock()
	defer r.Unlock()
	r.total++
	if r.limit > 0 && len(r.events) == r.limit {
		copy(r.events, r.events[1:])
		r.events[len(r.events)-1] = e
		return
	}
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events, oldest first.
func (r *Recorder) Events() []Event {
	r.Lock()
	defer r.Unlock()
	events := make([]Event, len(r.events))
	copy(events, r.events)
	return events
}

// Filter returns the recorded events of the given kinds, oldest first.
func (r *Recorder) Filter(kinds ...Kind) []Event {
	var out []Event
	for _, e := range r.Events() {
		for _, k := range kinds {
			if e.Kind == k {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Total returns the number of events seen, including dropped ones.
func (r *Recorder) Total() int {
	r.Lock()
	defer r.Unlock()
	return r.total
}
