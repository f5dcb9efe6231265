// Package display defines the bounded producer/consumer protocol between the
// ingester and the (out-of-scope) view: a closed set of messages carried
// over a single channel, shaped like a reference streaming client's
// subscription-event envelope (a Type/Kind tag plus a payload) rather than a
// lock-guarded shared buffer, so the §5 ordering guarantees hold for free.
package display

import "fmt"

// DefaultCapacity is the typical bound for the display channel.
const DefaultCapacity = 100

// Kind distinguishes the four message variants. The zero value is never
// sent; Message constructors always set it explicitly.
type Kind int

const (
	KindFullUpdate Kind = iota + 1
	KindPartialUpdate
	KindBatchPartialUpdate
	KindShutdown
)

// Row is one rendered line of the view.
type Row struct {
	Rank       int
	Pair       string
	Dex        string
	Price      string
	Liquidity  string
	LastUpdate string
}

// RowUpdate replaces a single row by position; applying it against an
// out-of-range index is a no-op, not an error.
type RowUpdate struct {
	Index int
	Row   Row
}

// Message is the closed sum type sent over the display channel.
type Message struct {
	Kind  Kind
	Rows  []Row
	Row   RowUpdate
	Batch []RowUpdate
}

// FullUpdate replaces the entire view state with rows.
func FullUpdate(rows []Row) Message {
	return Message{Kind: KindFullUpdate, Rows: rows}
}

// PartialUpdate replaces a single row by position.
func PartialUpdate(index int, row Row) Message {
	return Message{Kind: KindPartialUpdate, Row: RowUpdate{Index: index, Row: row}}
}

// BatchPartialUpdate applies an ordered sequence of row replacements.
func BatchPartialUpdate(updates []RowUpdate) Message {
	return Message{Kind: KindBatchPartialUpdate, Batch: updates}
}

// Shutdown terminates the consumer loop.
func Shutdown() Message {
	return Message{Kind: KindShutdown}
}

func (m Message) String() string {
	switch m.Kind {
	case KindFullUpdate:
		return fmt.Sprintf("FullUpdate(%d rows)", len(m.Rows))
	case KindPartialUpdate:
		return fmt.Sprintf("PartialUpdate(index=%d)", m.Row.Index)
	case KindBatchPartialUpdate:
		return fmt.Sprintf("BatchPartialUpdate(%d updates)", len(m.Batch))
	case KindShutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}
