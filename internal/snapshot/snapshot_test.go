package snapshot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmxmxh/cothread/internal/obslog"
	"github.com/nmxmxh/cothread/internal/threadcore"
)

func TestEncodeDecode_RoundTrips(t *testing.T) {
	views := []ThreadView{
		{ID: 0, Name: "worker", State: threadcore.StateSuspended, MailboxDepth: 2},
		{ID: 3, Name: "", State: threadcore.StateInit, MailboxDepth: 0},
	}

	wire := Encode(views, nil)
	got, err := Decode(wire)
	require.NoError(t, err)
	assert.Equal(t, views, got)
}

func TestEncode_Empty(t *testing.T) {
	wire := Encode(nil, nil)
	got, err := Decode(wire)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFromTable(t *testing.T) {
	var buf bytes.Buffer
	log := obslog.New(obslog.Config{Output: &buf})
	tbl := threadcore.New(threadcore.DefaultConfig(), log, &buf, threadcore.HalterFunc(func(int) {}))
	tbl.AddNamedThread(func(int, int, int, int) {}, "alpha")

	views := FromTable(tbl)
	require.Len(t, views, 1)
	assert.Equal(t, 0, views[0].ID)
	assert.Equal(t, "alpha", views[0].Name)
	assert.Equal(t, threadcore.StateInit, views[0].State)
}
