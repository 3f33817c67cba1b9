package threadcore

// logEvent writes the exact wire format spec §6 mandates:
//
//	Thread {NAME}: {event}\n
//
// where NAME is right-aligned in a field NameSize wide (left-padded with
// spaces), using the same name already shown by Slot.displayName. The
// line bypasses obslog's own leveled/field formatting via Raw so the
// format is never reinterpreted.
func (t *Table) logEvent(s *Slot, event string) {
	t.log.Raw("Thread " + padName(s.displayName()) + ": " + event + "\n")
}

func padName(name string) string {
	if len(name) >= NameSize {
		return name
	}
	pad := NameSize - len(name)
	buf := make([]byte, pad, NameSize)
	for i := range buf {
		buf[i] = ' '
	}
	return string(buf) + name
}

// LogEvent writes a user-level event line tagged with the calling
// thread's own name (log_event), for a Work function to narrate its own
// progress the way the original demos' workers do.
func (t *Table) LogEvent(event string) {
	t.logEvent(t.current, event)
}

// schedulerLog emits the scheduler's own wrapper messages ("scheduling
// new thread" / "thread yielded" / "all threads finished"), gated solely
// by Config.LogScheduler (spec §6): these describe the scheduler's own
// activity, not a thread's, so a thread's own id never enters into it.
func (t *Table) schedulerLog(event string) {
	if !t.cfg.LogScheduler {
		return
	}
	t.logEvent(&t.scheduler, event)
}
