package threadcore

import "runtime"

// checkGuard validates s's canary words (spec §4.6). It returns true when
// the scratch region is intact and the caller should proceed with a
// normal switch. When corruption is found it fully handles the
// configured policy itself (abort the process, or invalidate the slot
// and switch away for good) and never returns — the calling goroutine's
// stack unwinds via runtime.Goexit so no corrupted thread ever resumes.
func (t *Table) checkGuard(s *Slot) bool {
	underflow := s.bottomCanary != StackCanary
	overflow := s.topCanary != StackCanary
	if !underflow && !overflow {
		return true
	}

	t.stats.StackGuardTrips++
	s.ID = freeID
	s.Name = ""

	if underflow {
		t.logEvent(s, "Stack underflow!")
	}
	if overflow {
		t.logEvent(s, "Stack overflow!")
	}

	if !t.cfg.DestroyOnStackErr {
		t.halt.Exit(1)
		runtime.Goexit()
	}

	// Redirect through the dummy, the safe context-switch sink, exactly
	// as the original's check_stack does before jumping back to the
	// scheduler — then abandon this goroutine for good.
	t.dummy.resetCanaries()
	t.current = &t.dummy
	t.switcher.SwitchFinal(&t.scheduler)
	runtime.Goexit()
	return false
}

// SimulateStackCorruption is a test hook: it scribbles one of tid's
// canary words so the next yield trips the guard. Production code has no
// way to reach this from user threads (Go has no raw pointer writes past
// a byte array's bounds); it exists so the stack-guard policy itself is
// exercised under test, per spec §8 scenario 5.
func (t *Table) SimulateStackCorruption(tid int, overflow bool) {
	if !t.IsValidThread(tid) {
		return
	}
	if overflow {
		t.slots[tid].topCanary = 0
	} else {
		t.slots[tid].bottomCanary = 0
	}
}
