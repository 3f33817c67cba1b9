package threadcore

// Start runs the round-robin scheduler loop on the calling goroutine
// (spec §4.3's do_scheduler / start_scheduler). It returns once a full
// pass finds no schedulable thread; when Config.ExitWhenNoThreads is
// true it first calls Halter.Exit(0), matching the original's
// process-level exit, and returns only if the Halter does. This loop is the only
// place a thread is ever dispatched by table position — YieldTo and
// YieldNext switch directly to their target and never touch it.
func (t *Table) Start() {
	// The calling goroutine's own baton identity is the scheduler slot:
	// every thread's yield hands control back by sending on
	// scheduler.resume, so this goroutine must be the one parked on it.
	t.current = &t.scheduler
	t.logEvent(&t.dummy, "starting scheduler")

	for {
		tid := t.findNext()
		if tid == freeID {
			t.schedulerLog("all threads finished")
			if t.cfg.ExitWhenNoThreads {
				t.halt.Exit(0)
			}
			return
		}

		slot := &t.slots[tid]
		if slot.ID != tid {
			t.logEvent(&t.scheduler, "thread ID and position inconsistent!")
			t.halt.Exit(1)
			return
		}

		t.schedulerLog("scheduling new thread")
		t.stats.SchedulerPasses++
		t.switcher.SwitchTo(slot)
		t.schedulerLog("thread yielded")
	}
}

// findNext scans ascending from cursor+1, wrapping, for the next
// schedulable slot (spec §4.2's strict round robin). Returns -1 when
// nothing is schedulable.
func (t *Table) findNext() int {
	for i := 1; i <= MaxThreads; i++ {
		idx := (t.cursor + i) % MaxThreads
		if t.canSchedule(idx) {
			t.cursor = idx
			return idx
		}
	}
	return freeID
}

// directSwitch suspends s, logs its own "yielding"/"resuming" bracket
// (a thread's own events are never suppressed, spec §6), and switches
// straight into target (the scheduler slot for Yield, a peer slot for
// YieldTo/YieldNext) without emitting any schedulerLog line itself.
func (t *Table) directSwitch(s *Slot, target *Slot) {
	s.State = StateSuspended
	t.stats.Yields++
	t.logEvent(s, "yielding")
	t.switcher.SwitchTo(target)
	t.logEvent(t.current, "resuming")
}

// Yield suspends the calling thread and switches to the scheduler, which
// resumes it later in round-robin order (spec §4.3's yield()).
func (t *Table) Yield() {
	s := t.current
	if !t.checkGuard(s) {
		return
	}
	t.directSwitch(s, &t.scheduler)
}

// YieldTo succeeds iff tid is schedulable and is not the caller itself,
// in which case it context-switches directly to tid without ever going
// through the scheduler's dispatch loop — the caller's own state is left
// suspended (still schedulable) so the scheduler revisits it on a later
// pass. Returns false without switching, logging, or touching state when
// tid is the caller or is not schedulable (original's yield_to).
func (t *Table) YieldTo(tid int) bool {
	if tid == t.GetThreadID() || !t.canSchedule(tid) {
		return false
	}
	s := t.current
	if !t.checkGuard(s) {
		return false
	}
	t.directSwitch(s, &t.slots[tid])
	return true
}

// YieldNext scans for the next schedulable slot starting at
// (current id + 1), skipping the caller itself, and on a hit
// direct-switches to it exactly like YieldTo. On a miss — only the
// caller itself is schedulable — it returns false immediately without
// switching, logging, or touching state; the caller just keeps running
// (original's yield_next).
func (t *Table) YieldNext() bool {
	id := t.GetThreadID()
	for i := 1; i < MaxThreads; i++ {
		idx := (id + i) % MaxThreads
		if t.canSchedule(idx) {
			s := t.current
			if !t.checkGuard(s) {
				return false
			}
			t.directSwitch(s, &t.slots[idx])
			return true
		}
	}
	return false
}

// ThreadWait suspends the calling thread in the waiting state. Unlike
// Yield, it never logs (spec §6): a waiting thread only becomes
// schedulable again via ThreadWake, never by the scheduler's own scan.
func (t *Table) ThreadWait() {
	s := t.current
	if !t.checkGuard(s) {
		return
	}
	s.State = StateWaiting
	t.switcher.SwitchTo(&t.scheduler)
}

// ThreadJoin yields repeatedly until tid finishes or is cancelled,
// writing its terminal state to out when out is non-nil. Returns false
// if tid was never a valid thread.
func (t *Table) ThreadJoin(tid int, out *State) bool {
	if !t.IsValidThread(tid) {
		return false
	}
	for {
		st := t.slots[tid].State
		if st == StateFinished || st == StateCancelled {
			if out != nil {
				*out = st
			}
			return true
		}
		t.Yield()
	}
}
