package datasource

import (
	"tickforge/pkg/bus"
	"tickforge/pkg/common"
)

type TickSource interface {
	GetNext() (common.Tick, error)
}

// CreateTickDispatcher pumps ticks from the source onto the router one at a
// time, stamping each with its position in the stream. That index is the
// simulation clock: every latency and timeout computation counts in it, so
// the same source always produces the same clock.
func CreateTickDispatcher(r *bus.Router, ds TickSource) func() error {
	var index int64
	return func() error {
		tick, err := ds.GetNext()
		if err != nil {
			return err
		}

		tick.Index = index
		index++

		return r.Post(bus.TickEvent, tick)
	}
}
