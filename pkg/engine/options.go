package engine

import (
	"tickforge/pkg/bus"
	"tickforge/pkg/common"
	"tickforge/pkg/engine/latency"
	"tickforge/pkg/utility/fixed"
)

const defaultPendingTimeoutTicks = 5000

// Config carries the immutable per-scenario inputs: account currency and
// starting balance plus the latency seeds. Seeds are fixed for the
// scenario's lifetime; re-running with the same config and tick sequence
// reproduces the run exactly.
type Config struct {
	Currency     string
	StartBalance fixed.Point
	Latency      latency.Config
}

type Option func(*Executor)

// WithRouter posts position, order, trade, balance and equity events to the
// given router. Without it the executor stays silent.
func WithRouter(router *bus.Router) Option {
	return func(e *Executor) {
		e.router = router
	}
}

// WithPendingTimeout overrides how many ticks an order may stay in flight
// before it is flagged as timed out.
func WithPendingTimeout(ticks int64) Option {
	return func(e *Executor) {
		e.timeoutTicks = ticks
	}
}

// WithEnabledOrderTypes restricts which order types submissions may use.
// Orders of any other type are rejected at validation. All types are
// enabled when the option is absent.
func WithEnabledOrderTypes(types ...common.OrderType) Option {
	return func(e *Executor) {
		e.enabledTypes = make(map[common.OrderType]bool, len(types))
		for _, t := range types {
			e.enabledTypes[t] = true
		}
	}
}
