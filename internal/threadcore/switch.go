package threadcore

// ContextSwitcher is the architecture-specific host collaborator spec §6
// names (thread_switch / thread_switch_initial). A bare-metal port swaps
// this one file for assembly; the rest of the runtime never changes.
//
// goroutineSwitcher is this module's hosted implementation: the direct
// Go translation of the teacher's original pthread fallback
// (original_source/src/thread.c's `#ifdef linux` path), where a thread's
// goroutine parks on a channel instead of spinning on
// `next_thread != current_thread()`.
type ContextSwitcher interface {
	// SwitchTo hands control to target and blocks the caller until it is
	// resumed again (thread_switch).
	SwitchTo(target *Slot)
	// SwitchFinal hands control to target without blocking; the caller's
	// goroutine never runs again (thread_switch_initial).
	SwitchFinal(target *Slot)
}

type goroutineSwitcher struct {
	t *Table
}

func newGoroutineSwitcher(t *Table) *goroutineSwitcher {
	return &goroutineSwitcher{t: t}
}

func (g *goroutineSwitcher) ensureStarted(target *Slot) {
	if target == &g.t.scheduler || target == &g.t.dummy {
		return // the scheduler runs on the calling goroutine; dummy never runs
	}
	if target.started {
		return
	}
	target.started = true
	go g.t.trampoline(target)
}

func (g *goroutineSwitcher) SwitchTo(target *Slot) {
	outgoing := g.t.current
	g.ensureStarted(target)
	g.t.next = target
	g.t.current = target
	target.resume <- struct{}{}
	<-outgoing.resume
}

func (g *goroutineSwitcher) SwitchFinal(target *Slot) {
	g.t.next = target
	g.t.current = target
	target.resume <- struct{}{}
}

// trampoline is the goroutine body every occupied slot (other than the
// scheduler and dummy singletons) runs. It parks waiting for its first
// dispatch, invokes Work, then finalizes the slot and hands control back
// to the scheduler for good (spec §4.2's trampoline: "calls work(args)
// then marks the slot finished and switches to the scheduler").
func (t *Table) trampoline(s *Slot) {
	<-s.resume

	s.Work(s.Args.A1, s.Args.A2, s.Args.A3, s.Args.A4)

	s.State = StateFinished
	t.stats.ThreadsFinished++
	t.logEvent(s, "exiting")
	t.switcher.SwitchFinal(&t.scheduler)
}
