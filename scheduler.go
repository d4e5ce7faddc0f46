package awesomemap

import "time"

// Timer is a pending callback created by a Scheduler.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it had already fired or been stopped.
	Stop() bool
}

// Scheduler runs deferred callbacks. Implementations must call fn on the same
// goroutine that drives the map; nothing in this package is safe for
// concurrent use.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// FrameScheduler is a Scheduler driven by an explicit clock. Call Advance once
// per frame (Map.Update does this) to fire the timers that became due.
type FrameScheduler struct {
	now    time.Duration
	timers []*frameTimer
	seq    uint64
}

type frameTimer struct {
	at   time.Duration
	seq  uint64
	fn   func()
	done bool
}

func (t *frameTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

// NewFrameScheduler creates a scheduler whose clock starts at zero.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// Now returns the scheduler's current time.
func (s *FrameScheduler) Now() time.Duration {
	return s.now
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (s *FrameScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.seq++
	t := &frameTimer{at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (s *FrameScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt, firing due timers in deadline order
// (ties in creation order). Timers created by a callback fire in the same
// call if they fall within the window.
func (s *FrameScheduler) Advance(dt time.Duration) {
	end := s.now + dt
	for {
		next := s.nextDue(end)
		if next == nil {
			break
		}
		next.done = true
		s.now = next.at
		next.fn()
	}
	s.now = end
	s.compact()
}

func (s *FrameScheduler) nextDue(end time.Duration) *frameTimer {
	var best *frameTimer
	for _, t := range s.timers {
		if t.done || t.at > end {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// compact drops finished timers. The entry is removed from the slice to avoid
// nil iteration waste.
func (s *FrameScheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}
