package monitor

// Snapshot is a consistent copy of the monitor state.
type Snapshot struct {
	Size          int    `json:"size"`
	Free          []bool `json:"free"`    // Chopstick availability.
	Holders       []int  `json:"holders"` // Philosopher holding each chopstick, 0 if free.
	Queue         []int  `json:"queue"`   // Fairness queue, front first.
	Talker        int    `json:"talker"`  // 0 if nobody is talking.
	Meals         []int  `json:"meals"`   // Indexed by philosopher id - 1.
	Talks         []int  `json:"talks"`
	Cancellations []int  `json:"cancellations"`
}

// Snapshot copies the current state under the monitor lock.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Size:          m.n,
		Free:          append([]bool(nil), m.free...),
		Holders:       append([]int(nil), m.holders...),
		Queue:         m.queue.Slice(),
		Talker:        m.talker,
		Meals:         append([]int(nil), m.meals...),
		Talks:         append([]int(nil), m.talks...),
		Cancellations: append([]int(nil), m.cancels...),
	}
}

// Eating returns true if philosopher id holds its chopsticks.
func (s Snapshot) Eating(id int) bool {
	left, right := Left(id), Right(id, s.Size)
	return s.Holders[left] == id && s.Holders[right] == id
}

// Waiting returns true if philosopher id is in the fairness queue.
func (s Snapshot) Waiting(id int) bool {
	for _, q := range s.Queue {
		if q == id {
			return true
		}
	}
	return false
}

// Blockers returns the philosophers holding chopsticks that id needs.
// A philosopher is listed once even if it holds both.
func (s Snapshot) Blockers(id int) []int {
	var blockers []int
	for _, c := range []int{Left(id), Right(id, s.Size)} {
		h := s.Holders[c]
		if h == 0 || h == id {
			continue
		}
		if len(blockers) == 0 || blockers[0] != h {
			blockers = append(blockers, h)
		}
	}
	return blockers
}

// TotalMeals sums the meals of every philosopher.
func (s Snapshot) TotalMeals() int {
	total := 0
	for _, n := range s.Meals {
		total += n
	}
	return total
}
