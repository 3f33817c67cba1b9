// Package snapshot encodes a point-in-time view of a thread table as a
// length-prefixed protobuf wire message, for an external inspector —
// the generalized form of cmd/inos-node/main.go's "marshal a packet,
// hand it to a collaborator" shape, built directly on
// encoding/protowire instead of a generated schema.
package snapshot

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/nmxmxh/cothread/internal/threadcore"
)

// Wire field numbers for one ThreadView entry.
const (
	fieldID           = 1
	fieldName         = 2
	fieldState        = 3
	fieldMailboxDepth = 4
)

// ThreadView is one slot's externally-visible state.
type ThreadView struct {
	ID           int
	Name         string
	State        threadcore.State
	MailboxDepth int
}

// Encode appends views as a sequence of length-delimited ThreadView
// submessages (field 1 of the implicit Snapshot message) to dst and
// returns the result.
func Encode(views []ThreadView, dst []byte) []byte {
	for _, v := range views {
		var entry []byte
		entry = protowire.AppendTag(entry, fieldID, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(int64(v.ID)))
		entry = protowire.AppendTag(entry, fieldName, protowire.BytesType)
		entry = protowire.AppendString(entry, v.Name)
		entry = protowire.AppendTag(entry, fieldState, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(v.State))
		entry = protowire.AppendTag(entry, fieldMailboxDepth, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(v.MailboxDepth))

		dst = protowire.AppendTag(dst, 1, protowire.BytesType)
		dst = protowire.AppendBytes(dst, entry)
	}
	return dst
}

// Decode parses bytes produced by Encode back into ThreadViews.
func Decode(data []byte) ([]ThreadView, error) {
	var views []ThreadView
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("snapshot: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		if num != 1 || typ != protowire.BytesType {
			return nil, fmt.Errorf("snapshot: unexpected field %d wire type %d", num, typ)
		}
		entry, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, fmt.Errorf("snapshot: bad entry: %w", protowire.ParseError(n))
		}
		data = data[n:]

		v, err := decodeEntry(entry)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func decodeEntry(entry []byte) (ThreadView, error) {
	var v ThreadView
	for len(entry) > 0 {
		num, typ, n := protowire.ConsumeTag(entry)
		if n < 0 {
			return v, fmt.Errorf("snapshot: bad entry tag: %w", protowire.ParseError(n))
		}
		entry = entry[n:]
		switch num {
		case fieldID:
			x, n := protowire.ConsumeVarint(entry)
			if n < 0 {
				return v, fmt.Errorf("snapshot: bad id: %w", protowire.ParseError(n))
			}
			v.ID = int(int64(x))
			entry = entry[n:]
		case fieldName:
			s, n := protowire.ConsumeString(entry)
			if n < 0 {
				return v, fmt.Errorf("snapshot: bad name: %w", protowire.ParseError(n))
			}
			v.Name = s
			entry = entry[n:]
		case fieldState:
			x, n := protowire.ConsumeVarint(entry)
			if n < 0 {
				return v, fmt.Errorf("snapshot: bad state: %w", protowire.ParseError(n))
			}
			v.State = threadcore.State(x)
			entry = entry[n:]
		case fieldMailboxDepth:
			x, n := protowire.ConsumeVarint(entry)
			if n < 0 {
				return v, fmt.Errorf("snapshot: bad mailbox depth: %w", protowire.ParseError(n))
			}
			v.MailboxDepth = int(x)
			entry = entry[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, entry)
			if n < 0 {
				return v, fmt.Errorf("snapshot: skip unknown field %d: %w", num, protowire.ParseError(n))
			}
			entry = entry[n:]
		}
	}
	return v, nil
}
