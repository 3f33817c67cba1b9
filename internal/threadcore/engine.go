package threadcore

import "github.com/nmxmxh/cothread/internal/obslog"

// Table is the single owning aggregate for the runtime's global mutable
// state (spec §3/§9: the thread table, current/next pointers, and
// config, deliberately process-global and never behind a lock — the
// baton-passing ContextSwitcher already guarantees only one goroutine
// touches this state at a time).
type Table struct {
	slots     [MaxThreads]Slot
	scheduler Slot // singleton, id == -1, name "<scheduler>"
	dummy     Slot // singleton, id == -1, safe context-switch sink

	current *Slot
	next    *Slot

	cursor int // last-dispatched index; round-robin resumes at cursor+1

	cfg      Config
	log      *obslog.Logger
	sink     Sink
	halt     Halter
	switcher ContextSwitcher

	stats Stats
}

// Stats are plain counters a caller (e.g. internal/telemetry) can read
// after the fact; the core never branches on them.
type Stats struct {
	Yields          uint64
	SchedulerPasses uint64
	ThreadsFinished uint64
	ThreadsCancel   uint64
	MailboxSends    uint64
	MailboxDrops    uint64
	StackGuardTrips uint64
}

// New builds a Table with every slot invalidated, the scheduler and dummy
// singletons initialized, and the given collaborators wired in — the Go
// port of entry()'s invalidation loop (spec §4.5).
func New(cfg Config, log *obslog.Logger, sink Sink, halt Halter) *Table {
	t := &Table{cfg: cfg, log: log, sink: sink, halt: halt}
	for i := range t.slots {
		t.slots[i].ID = freeID
	}
	t.initSlot(&t.dummy, freeID, nil, "", Args{})
	t.dummy.resume = make(chan struct{})
	t.initSlot(&t.scheduler, freeID, nil, "<scheduler>", Args{})
	t.scheduler.resume = make(chan struct{})
	t.switcher = newGoroutineSwitcher(t)
	t.current = &t.dummy
	t.cursor = MaxThreads - 1 // first scan starts at index 0
	return t
}

// ConfigRef returns the runtime's live configuration. Callers may mutate
// the returned pointer's fields during setup(), before Start is called.
func (t *Table) ConfigRef() *Config { return &t.cfg }

// StatsSnapshot returns a snapshot of the runtime's counters.
func (t *Table) StatsSnapshot() Stats { return t.stats }

// Exit halts the process via the configured Halter (the original's
// exit() call from inside a thread body, e.g. demos/yielding.c and
// demos/message.c).
func (t *Table) Exit(code int) { t.halt.Exit(code) }

// SinkWriter exposes the configured print Sink for demo/user code that
// wants to printf-style narrate outside the "Thread NAME: event" format
// (demos/printthreadname.c's direct printf/sprintf calls).
func (t *Table) SinkWriter() Sink { return t.sink }
