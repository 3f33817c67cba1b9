// Package demos ports original_source/demos/*.c to the Go runtime, one
// setup() function per scenario, selectable by cmd/cothread-demo.
package demos

import (
	"fmt"

	"github.com/nmxmxh/cothread/internal/threadcore"
)

// Yielding mirrors demos/yielding.c: one thread yields forever logging
// "working", the other logs "working" twice then exits the process.
func Yielding(tbl *threadcore.Table) {
	tbl.AddThread(func(int, int, int, int) {
		for {
			tbl.LogEvent("working")
			tbl.Yield()
		}
	})
	tbl.AddThread(func(int, int, int, int) {
		for i := 0; ; i++ {
			if i == 2 {
				tbl.LogEvent("exiting")
				tbl.Exit(0)
				return
			}
			tbl.LogEvent("working")
			tbl.Yield()
		}
	})
}

// ExYielding mirrors demos/exyielding.c: explicit YieldTo/YieldNext
// targeting, including the two calls that report no switch happened
// (YieldNext once only the caller itself is schedulable, and YieldTo a
// thread that has already finished).
func ExYielding(tbl *threadcore.Table) {
	yieldToSecond := func(int, int, int, int) {
		tbl.YieldTo(1)
	}

	tbl.AddNamedThread(yieldToSecond, "first")
	tbl.AddNamedThread(func(int, int, int, int) {
		tbl.YieldTo(0)
		// "last" reuses the same body as "first": once dispatched it
		// immediately yields straight back to this thread.
		tbl.AddNamedThread(yieldToSecond, "last")
		tbl.YieldNext() // switch to "last"
		tbl.YieldNext() // switch back to "last"
		if tbl.YieldNext() {
			panic("yielding to self should report no switch")
		}
		if tbl.YieldTo(0) {
			panic("yielding to a finished thread should report no switch")
		}
	}, "second")
}

// Message mirrors demos/message.c: a sender sends one message per turn
// while a spammer floods the same bounded mailbox; the receiver discards
// spam and exits once it hears from the real sender.
func Message(tbl *threadcore.Table) {
	tbl.ConfigRef().LogScheduler = false

	tbl.AddNamedThread(func(int, int, int, int) {
		for {
			if tbl.SendMessage(2, 99) {
				tbl.LogEvent("sent a message")
			} else {
				tbl.LogEvent("message box was full")
			}
			tbl.Yield()
		}
	}, "sender")

	tbl.AddNamedThread(func(int, int, int, int) {
		for i := 0; ; i++ {
			if i == 2 {
				tbl.SendMessage(2, -1)
				tbl.LogEvent("not spamming")
			} else {
				for tbl.SendMessage(2, -1) {
				}
				tbl.LogEvent("spammed")
			}
			tbl.Yield()
		}
	}, "spammer")

	tbl.AddNamedThread(func(int, int, int, int) {
		for {
			for {
				msg, ok := tbl.ReceiveMessage()
				if !ok {
					break
				}
				if msg.Src == 0 {
					tbl.LogEvent("got message from sender")
					tbl.Exit(0)
					return
				}
				tbl.LogEvent("discarded spam message")
			}
			tbl.Yield()
		}
	}, "receiver")
}

// Exit mirrors demos/exit.c: two worker threads yield a fixed number of
// times then finish; a counter thread joins every thread added before it.
func Exit(tbl *threadcore.Table) {
	tbl.ConfigRef().LogScheduler = false

	work := func(a1, a2, a3, a4 int) {
		for i := 0; i < a1; i++ {
			tbl.Yield()
		}
	}

	tbl.AddNamedThreadWithArgs(work, "", threadcore.Args{A1: 2})
	tbl.AddNamedThreadWithArgs(work, "", threadcore.Args{A1: 4})

	tbl.AddThread(func(int, int, int, int) {
		ourID := tbl.GetThreadID()
		for i := 0; i < ourID; i++ {
			var state threadcore.State
			tbl.ThreadJoin(i, &state)
			if state != threadcore.StateFinished {
				panic("joined thread did not finish")
			}
			tbl.LogEvent("a thread exited")
		}
	})
}

// PrintThreadName mirrors demos/printthreadname.c: exercises Sink
// formatting directly (bypassing the "Thread NAME: event" line format),
// then fills the table to exhaustion to exercise name-cutoff and the
// <HIDDEN>/decimal-id fallback rendering.
func PrintThreadName(tbl *threadcore.Table) {
	tbl.ConfigRef().LogScheduler = false

	out := tbl.SinkWriter()
	fmt.Fprintf(out, "%% Print Demo %%\n")
	fmt.Fprintf(out, "Sprintf hex: 0x%X 0x%X\n", 0xABAB, uint64(0xCAFEF00DDEADBEEF))

	noop := func(int, int, int, int) {}

	const padding = 8
	for i := 0; i < padding; i++ {
		id := tbl.AddThread(noop)
		tbl.ThreadCancel(id)
	}
	fmt.Fprintf(out, "Added then cancelled %d threads.\n", padding)

	tbl.AddNamedThread(noop, "name_that_gets_cut_off")

	for {
		if tbl.AddThread(noop) == -1 {
			break
		}
	}
}
