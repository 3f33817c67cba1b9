package snapshot

import "github.com/nmxmxh/cothread/internal/threadcore"

// FromTable builds the ThreadView list for every occupied slot in tbl,
// in ascending id order, ready for Encode.
func FromTable(tbl *threadcore.Table) []ThreadView {
	var views []ThreadView
	for tid := 0; tid < threadcore.MaxThreads; tid++ {
		name, state, depth, ok := tbl.ThreadInfo(tid)
		if !ok {
			continue
		}
		views = append(views, ThreadView{ID: tid, Name: name, State: state, MailboxDepth: depth})
	}
	return views
}
