package display

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dexgraph/arbiscan/pair"
)

// RowFromRecord converts a pair record into a display row, deriving Price
// from §4.1's forward rate and falling back to a placeholder string on
// failure so one bad pair never blocks the rest of a FullUpdate/BatchPartialUpdate.
func RowFromRecord(rank int, rec pair.Record) Row {
	row := Row{
		Rank:       rank,
		Pair:       rec.Token0.Symbol + "/" + rec.Token1.Symbol,
		Dex:        rec.Dex,
		Liquidity:  formatLiquidity(rec.ReserveUSD),
		LastUpdate: time.Now().UTC().Format("15:04:05"),
	}

	rate, err := pair.ForwardRate(rec)
	if err != nil {
		row.Price = "-"
		return row
	}
	row.Price = rate.StringFixed(8)
	return row
}

func formatLiquidity(reserveUSD string) string {
	d, err := decimal.NewFromString(reserveUSD)
	if err != nil {
		return "-"
	}
	return d.StringFixed(2)
}

// View is a minimal reference consumer of the display-message protocol: it
// holds the current ordered rows and applies messages strictly in arrival
// order. It is not a renderer; the terminal UI the protocol ultimately feeds
// is out of scope here.
type View struct {
	rows []Row
}

// Apply applies one message to the view and reports whether the consumer
// loop should stop (true only for Shutdown).
func (v *View) Apply(msg Message) (stop bool) {
	switch msg.Kind {
	case KindFullUpdate:
		v.rows = append([]Row(nil), msg.Rows...)
	case KindPartialUpdate:
		v.applyOne(msg.Row)
	case KindBatchPartialUpdate:
		for _, u := range msg.Batch {
			v.applyOne(u)
		}
	case KindShutdown:
		return true
	}
	return false
}

func (v *View) applyOne(u RowUpdate) {
	if u.Index < 0 || u.Index >= len(v.rows) {
		return
	}
	v.rows[u.Index] = u.Row
}

// Rows returns a snapshot of the current view state.
func (v *View) Rows() []Row {
	out := make([]Row, len(v.rows))
	copy(out, v.rows)
	return out
}

// Consume drains ch, applying every message until Shutdown or the channel is
// closed. Producers must treat a failed send on ch as a terminal signal that
// this loop has exited — see §5 backpressure.
func Consume(ch <-chan Message) []Row {
	var v View
	for msg := range ch {
		if v.Apply(msg) {
			break
		}
	}
	return v.Rows()
}
