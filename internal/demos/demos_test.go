package demos

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmxmxh/cothread/internal/obslog"
	"github.com/nmxmxh/cothread/internal/threadcore"
)

func newTable(t *testing.T) (*threadcore.Table, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := obslog.New(obslog.Config{Output: &buf})
	tbl := threadcore.New(threadcore.DefaultConfig(), log, &buf, threadcore.HalterFunc(func(int) {}))
	return tbl, &buf
}

// runBriefly starts a demo whose worker threads may never all finish by
// design (the original demos run forever on bare metal) and gives the
// scheduler a short window to make progress before the test moves on.
func runBriefly(tbl *threadcore.Table, setup func(*threadcore.Table)) {
	go tbl.Entry(setup)
	time.Sleep(20 * time.Millisecond)
}

func TestYielding_LogsWorkingAndExits(t *testing.T) {
	tbl, buf := newTable(t)
	runBriefly(tbl, Yielding)

	out := buf.String()
	assert.Contains(t, out, "working")
	assert.Contains(t, out, "exiting")
}

func TestExYielding_RunsToCompletion(t *testing.T) {
	tbl, _ := newTable(t)
	tbl.Entry(ExYielding)

	for tid := 0; tid < 3; tid++ {
		_, state, _, ok := tbl.ThreadInfo(tid)
		if ok {
			assert.Equal(t, threadcore.StateFinished, state)
		}
	}
}

func TestExYielding_DirectYieldsBypassSchedulerLogging(t *testing.T) {
	tbl, buf := newTable(t)
	tbl.Entry(ExYielding)

	out := buf.String()
	for _, marker := range []string{"first: yielding", "second: yielding"} {
		idx := strings.Index(out, marker)
		require.GreaterOrEqual(t, idx, 0, marker)
		after := out[idx+len(marker+"\n"):]
		nextLine := strings.SplitN(after, "\n", 2)[0]
		assert.NotContains(t, nextLine, "scheduling new thread",
			marker+" is a direct YieldTo/YieldNext hop, never mediated by the scheduler's dispatch loop")
	}
}

func TestMessage_ReceiverExitsOnSenderMessage(t *testing.T) {
	tbl, buf := newTable(t)
	runBriefly(tbl, Message)

	assert.Contains(t, buf.String(), "got message from sender")
}

func TestExit_JoinsPriorThreads(t *testing.T) {
	tbl, buf := newTable(t)
	tbl.Entry(Exit)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "a thread exited"))
}

func TestPrintThreadName_FillsTableAndCancels(t *testing.T) {
	tbl, buf := newTable(t)
	tbl.Entry(PrintThreadName)

	out := buf.String()
	assert.Contains(t, out, "Print Demo")
	assert.Contains(t, out, "Sprintf hex: 0xABAB 0xCAFEF00DDEADBEEF")
	assert.Contains(t, out, "Added then cancelled 8 threads.")

	_, state, _, ok := tbl.ThreadInfo(0)
	require.True(t, ok, "a cancelled slot stays occupied, it is never freed")
	assert.Equal(t, threadcore.StateCancelled, state)
}
