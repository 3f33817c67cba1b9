package threadcore

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Mailbox is a fixed-size ring of (sender, content) messages, the Go port
// of the teacher's foundation.MessageQueue ring-over-SAB design scaled
// down to a plain in-memory array (spec §4.4).
type Mailbox struct {
	messages [MsgQueueSize]Message
	next     int // oldest unread
	end      int // next write position
	full     bool
}

func checksumOf(src, content int) uint64 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], uint64(int64(src)))
	binary.LittleEndian.PutUint64(b[8:16], uint64(int64(content)))
	return xxhash.Sum64(b[:])
}

// reset empties the mailbox. Called when a slot is (re)initialized.
func (m *Mailbox) reset() {
	*m = Mailbox{}
}

// count returns the number of unread messages, always in [0, MsgQueueSize].
func (m *Mailbox) count() int {
	if m.full {
		return MsgQueueSize
	}
	if m.end >= m.next {
		return m.end - m.next
	}
	return MsgQueueSize - m.next + m.end
}

// send enqueues (src, content). Returns false iff the ring is already full.
func (m *Mailbox) send(src, content int) bool {
	if m.full {
		return false
	}
	m.messages[m.end] = Message{Src: src, Content: content, checksum: checksumOf(src, content)}
	m.end = (m.end + 1) % MsgQueueSize
	m.full = m.end == m.next
	return true
}

// receive dequeues the oldest message. Returns false when the ring is
// empty. It also returns false on a checksum mismatch (corruption of the
// ring's backing array): the message is then still dequeued and
// returned, but ok is false so the caller can tell something is wrong.
func (m *Mailbox) receive() (msg Message, ok bool) {
	if m.next == m.end && !m.full {
		return Message{}, false
	}
	msg = m.messages[m.next]
	m.next = (m.next + 1) % MsgQueueSize
	m.full = false
	if msg.checksum != checksumOf(msg.Src, msg.Content) {
		return msg, false
	}
	return msg, true
}
