package threadcore

// Slot is one element of the fixed thread table (spec §3). Index in the
// table equals ID whenever the slot is occupied — the discipline the
// teacher's registry.ModuleRegistry uses for its own inline module slots,
// here enforced on a fixed array instead of a growable map since dynamic
// allocation is a non-goal.
type Slot struct {
	ID    int
	State State
	Name  string
	Work  WorkFunc
	Args  Args

	Mailbox Mailbox

	bottomCanary uint64
	scratch      [ScratchSize]byte
	topCanary    uint64

	started bool          // trampoline goroutine launched at least once
	resume  chan struct{} // baton: wakes the goroutine parked on this slot
}

func (s *Slot) resetCanaries() {
	s.bottomCanary = StackCanary
	s.topCanary = StackCanary
}

// displayName implements spec §6's log-name rules: ≤12 visible chars,
// truncated if longer; a nameless user slot renders as its decimal id;
// a nameless hidden slot (scheduler/dummy, id == -1) renders <HIDDEN>.
func (s *Slot) displayName() string {
	if s.Name != "" {
		name := s.Name
		if len(name) > NameSize {
			name = name[:NameSize]
		}
		return name
	}
	if s.ID == freeID {
		return "<HIDDEN>"
	}
	return itoa(s.ID)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// AddThread registers a Work function with no name and zero args.
// Returns the assigned thread id, or -1 if the table is full.
func (t *Table) AddThread(work WorkFunc) int {
	return t.AddNamedThreadWithArgs(work, "", Args{})
}

// AddNamedThread registers a named Work function with zero args.
func (t *Table) AddNamedThread(work WorkFunc, name string) int {
	return t.AddNamedThreadWithArgs(work, name, Args{})
}

// AddNamedThreadWithArgs is the one routine the add_* family delegates
// to (spec §4.1): scan for the first free slot, initialize it, return its
// index, or -1 when the table is full.
func (t *Table) AddNamedThreadWithArgs(work WorkFunc, name string, args Args) int {
	for i := range t.slots {
		if t.slots[i].ID == freeID {
			t.initSlot(&t.slots[i], i, work, name, args)
			return i
		}
	}
	return -1
}

func (t *Table) initSlot(s *Slot, id int, work WorkFunc, name string, args Args) {
	s.ID = id
	s.State = StateInit
	s.Name = name
	s.Work = work
	s.Args = args
	s.Mailbox.reset()
	s.resetCanaries()
	s.started = false
	s.resume = make(chan struct{})
}

// IsValidThread reports tid ∈ [0, MaxThreads) ∧ slot[tid].ID != -1.
func (t *Table) IsValidThread(tid int) bool {
	return tid >= 0 && tid < MaxThreads && t.slots[tid].ID != freeID
}

func (t *Table) canSchedule(tid int) bool {
	return t.IsValidThread(tid) && t.slots[tid].State.schedulable()
}

// GetThreadID returns the id of the currently running thread, or -1 when
// called from the scheduler or the dummy.
func (t *Table) GetThreadID() int {
	return t.current.ID
}

// GetThreadName returns the name of the currently running thread using
// the same rendering rules as log events.
func (t *Table) GetThreadName() string {
	return t.current.displayName()
}

func (t *Table) setState(tid int, state State) bool {
	if !t.IsValidThread(tid) {
		return false
	}
	t.slots[tid].State = state
	return true
}

// ThreadWake sets tid's state to suspended. Ignores invalid ids.
func (t *Table) ThreadWake(tid int) bool { return t.setState(tid, StateSuspended) }

// ThreadCancel sets tid's state to cancelled. Ignores invalid ids. This
// overwrites a finished thread's state too (last writer wins) — the
// open question in spec §9 is preserved as-is, not rejected.
func (t *Table) ThreadCancel(tid int) bool {
	ok := t.setState(tid, StateCancelled)
	if ok {
		t.stats.ThreadsCancel++
	}
	return ok
}

// SendMessage enqueues content into tid's mailbox, tagged with the
// calling thread's own id as sender (send_msg). Returns false when tid
// is invalid or its mailbox ring is already full.
func (t *Table) SendMessage(tid, content int) bool {
	if !t.IsValidThread(tid) {
		return false
	}
	ok := t.slots[tid].Mailbox.send(t.GetThreadID(), content)
	if ok {
		t.stats.MailboxSends++
	} else {
		t.stats.MailboxDrops++
	}
	return ok
}

// ReceiveMessage dequeues the oldest message from the calling thread's
// own mailbox (get_msg). Returns false when the mailbox is empty, or
// when the dequeued message fails its checksum (see Mailbox.receive).
func (t *Table) ReceiveMessage() (Message, bool) {
	return t.current.Mailbox.receive()
}

// ThreadInfo reports a slot's externally-visible state for inspection
// tooling (e.g. internal/snapshot), without exposing the Slot type
// itself outside the package.
func (t *Table) ThreadInfo(tid int) (name string, state State, mailboxDepth int, ok bool) {
	if !t.IsValidThread(tid) {
		return "", 0, 0, false
	}
	s := &t.slots[tid]
	return s.displayName(), s.State, s.Mailbox.count(), true
}
