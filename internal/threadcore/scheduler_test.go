package threadcore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RoundRobinOrder(t *testing.T) {
	tbl, _, _ := newTestTable(t, WithExitWhenNoThreads(true))
	var order []int

	tbl.Entry(func(tbl *Table) {
		tbl.AddNamedThread(func(int, int, int, int) {
			order = append(order, 0)
			tbl.Yield()
			order = append(order, 0)
		}, "t0")
		tbl.AddNamedThread(func(int, int, int, int) {
			order = append(order, 1)
			tbl.Yield()
			order = append(order, 1)
		}, "t1")
	})

	assert.Equal(t, []int{0, 1, 0, 1}, order)
	assert.Equal(t, StateFinished, tbl.slots[0].State)
	assert.Equal(t, StateFinished, tbl.slots[1].State)
}

func TestScheduler_YieldTo_SkipsAhead(t *testing.T) {
	tbl, _, _ := newTestTable(t, WithExitWhenNoThreads(true))
	var order []int

	tbl.Entry(func(tbl *Table) {
		tbl.AddNamedThread(func(int, int, int, int) {
			order = append(order, 0)
			tbl.YieldTo(2)
			order = append(order, 0)
		}, "t0")
		tbl.AddNamedThread(func(int, int, int, int) {
			order = append(order, 1)
			tbl.Yield()
			order = append(order, 1)
		}, "t1")
		tbl.AddNamedThread(func(int, int, int, int) {
			order = append(order, 2)
			tbl.Yield()
			order = append(order, 2)
		}, "t2")
	})

	require.GreaterOrEqual(t, len(order), 2)
	assert.Equal(t, 0, order[0])
	assert.Equal(t, 2, order[1], "YieldTo(2) should dispatch thread 2 next, skipping thread 1")
}

func TestScheduler_ThreadWait_NeverLogs(t *testing.T) {
	tbl, buf, _ := newTestTable(t, WithExitWhenNoThreads(true))

	tbl.Entry(func(tbl *Table) {
		tbl.AddNamedThread(func(int, int, int, int) {
			tbl.ThreadWait()
		}, "waiter")
	})

	assert.NotContains(t, buf.String(), "waiter: yielding")
	assert.NotContains(t, buf.String(), "waiter: resuming")
}

func TestScheduler_ThreadWake_ResumesWaiter(t *testing.T) {
	tbl, _, _ := newTestTable(t, WithExitWhenNoThreads(true))
	woke := false

	tbl.Entry(func(tbl *Table) {
		waiterID := tbl.AddNamedThread(func(int, int, int, int) {
			tbl.ThreadWait()
			woke = true
		}, "waiter")
		tbl.AddNamedThread(func(int, int, int, int) {
			tbl.ThreadWake(waiterID)
		}, "waker")
	})

	assert.True(t, woke)
}

func TestScheduler_ThreadJoin_WaitsForFinish(t *testing.T) {
	tbl, _, _ := newTestTable(t, WithExitWhenNoThreads(true))
	joined := false
	var finalState State

	tbl.Entry(func(tbl *Table) {
		workerID := tbl.AddNamedThread(func(int, int, int, int) {
			tbl.Yield()
		}, "worker")
		tbl.AddNamedThread(func(int, int, int, int) {
			tbl.ThreadJoin(workerID, &finalState)
			joined = true
		}, "joiner")
	})

	assert.True(t, joined)
	assert.Equal(t, StateFinished, finalState)
}

func TestScheduler_ExitWhenNoThreads_CallsHalter(t *testing.T) {
	tbl, _, exitCode := newTestTable(t, WithExitWhenNoThreads(true))
	tbl.Start()
	assert.Equal(t, 0, *exitCode)
}

func TestScheduler_YieldTo_BypassesSchedulerDispatch(t *testing.T) {
	tbl, buf, _ := newTestTable(t, WithExitWhenNoThreads(true))

	tbl.Entry(func(tbl *Table) {
		tbl.AddNamedThread(func(int, int, int, int) {
			tbl.YieldTo(1)
		}, "caller")
		tbl.AddNamedThread(func(int, int, int, int) {}, "callee")
	})

	out := buf.String()
	yieldIdx := strings.Index(out, "caller: yielding")
	require.GreaterOrEqual(t, yieldIdx, 0, "caller must log its own yielding event")

	after := out[yieldIdx+len("caller: yielding\n"):]
	nextEvent := strings.SplitN(after, "\n", 2)[0]
	assert.Contains(t, nextEvent, "callee: exiting",
		"YieldTo must switch straight into its target's next event, not the scheduler's")
	assert.NotContains(t, nextEvent, "scheduling new thread",
		"a direct switch must never be mediated by the scheduler's own dispatch loop")

	assert.Equal(t, 2, strings.Count(out, "scheduling new thread"),
		"only caller's own two scheduler-mediated dispatches (initial, and after the direct hop returns) go through Start's loop")
}

func TestScheduler_YieldNext_BypassesSchedulerDispatch(t *testing.T) {
	tbl, buf, _ := newTestTable(t, WithExitWhenNoThreads(true))

	tbl.Entry(func(tbl *Table) {
		tbl.AddNamedThread(func(int, int, int, int) {
			tbl.YieldNext()
		}, "caller")
		tbl.AddNamedThread(func(int, int, int, int) {}, "callee")
	})

	out := buf.String()
	yieldIdx := strings.Index(out, "caller: yielding")
	require.GreaterOrEqual(t, yieldIdx, 0)

	after := out[yieldIdx+len("caller: yielding\n"):]
	nextEvent := strings.SplitN(after, "\n", 2)[0]
	assert.Contains(t, nextEvent, "callee: exiting")
	assert.NotContains(t, nextEvent, "scheduling new thread")
}

func TestScheduler_YieldTo_MissReturnsFalseWithNoSwitchOrLog(t *testing.T) {
	tbl, buf, _ := newTestTable(t, WithExitWhenNoThreads(true))
	var result bool

	tbl.Entry(func(tbl *Table) {
		tbl.AddNamedThread(func(int, int, int, int) {
			result = tbl.YieldTo(99) // no such thread: always unschedulable
		}, "solo")
	})

	assert.False(t, result)
	out := buf.String()
	assert.NotContains(t, out, "solo: yielding", "a miss never switches, so it never logs yielding/resuming")
	assert.NotContains(t, out, "solo: resuming")
}

func TestScheduler_LogScheduler_SuppressesWrapperMessages(t *testing.T) {
	tbl, buf, _ := newTestTable(t, WithExitWhenNoThreads(true), WithLogScheduler(false))

	tbl.Entry(func(tbl *Table) {
		tbl.AddNamedThread(func(int, int, int, int) {
			tbl.Yield()
		}, "solo")
	})

	out := buf.String()
	assert.Contains(t, out, "solo: yielding", "a thread's own events always log")
	assert.Contains(t, out, "solo: resuming")
	assert.False(t, strings.Contains(out, "scheduling new thread"))
	assert.False(t, strings.Contains(out, "thread yielded"))
	assert.False(t, strings.Contains(out, "all threads finished"))
}
