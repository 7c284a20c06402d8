package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tickforge/pkg/common"
)

type event struct {
	id   EventId
	data interface{}
}

type Router struct {
	done   chan error
	events chan event

	TickHandler            TickEventHandler
	BarHandler             BarEventHandler
	EquityHandler          EquityEventHandler
	BalanceHandler         BalanceEventHandler
	PositionOpenHandler    PositionOpenEventHandler
	PositionCloseHandler   PositionCloseEventHandler
	PositionUpdateHandler  PositionUpdateEventHandler
	OrderHandler           OrderEventHandler
	OrderAcceptanceHandler OrderAcceptanceEventHandler
	OrderRejectionHandler  OrderRejectionEventHandler
	TradeHandler           TradeEventHandler

	runTime       time.Duration
	postCount     uint64
	postFails     uint64
	dispatchCount uint64
	dispatchFails uint64
}

func NewRouter(eventCapacity int) *Router {
	return &Router{
		done:   make(chan error, 1),
		events: make(chan event, eventCapacity),
	}
}

func (r *Router) Post(id EventId, data interface{}) error {
	select {
	case r.events <- event{id, data}:
		r.postCount++
		return nil
	default:
		r.postFails++
		return errors.New("event capacity reached")
	}
}

// ExecLoop drains queued events first and invokes doOnceCb whenever the
// queue is empty. The callback drives the simulation forward one step, so
// dispatch order stays deterministic for a given tick sequence.
func (r *Router) ExecLoop(ctx context.Context, doOnceCb func() error) {
	r.resetStatistics()

	start := time.Now()
	defer func() {
		r.runTime += time.Since(start)
	}()

	for {
		select {
		case <-ctx.Done():
			r.done <- ctx.Err()
			return
		case ev := <-r.events:
			r.dispatchCount++
			if err := r.dispatch(ctx, ev); err != nil {
				r.dispatchFails++
				slog.Warn("dispatch failed", "error", err, "event_id", ev.id)
			}
		default:
			if err := doOnceCb(); err != nil {
				r.drain(ctx)
				r.done <- err
				return
			}
		}
	}
}

func (r *Router) Exec(ctx context.Context) {
	r.resetStatistics()

	start := time.Now()
	defer func() {
		r.runTime += time.Since(start)
	}()

	for {
		select {
		case <-ctx.Done():
			r.done <- ctx.Err()
			return
		case ev := <-r.events:
			r.dispatchCount++
			if err := r.dispatch(ctx, ev); err != nil {
				r.dispatchFails++
				slog.Warn("dispatch failed", "error", err, "event_id", ev.id)
			}
		}
	}
}

func (r *Router) Done() <-chan error {
	return r.done
}

func (r *Router) Statistics() Statistics {
	throughput := 0.0
	if r.runTime > 0 {
		throughput = float64(r.postCount) / r.runTime.Seconds()
	}
	return Statistics{
		RunTime:       r.runTime,
		PostCount:     r.postCount,
		PostFails:     r.postFails,
		DispatchCount: r.dispatchCount,
		DispatchFails: r.dispatchFails,
		Throughput:    throughput,
	}
}

func (r *Router) resetStatistics() {
	r.runTime = 0
	r.postCount = 0
	r.postFails = 0
	r.dispatchCount = 0
	r.dispatchFails = 0
}

func (r *Router) drain(ctx context.Context) {
	for {
		select {
		case ev := <-r.events:
			r.dispatchCount++
			if err := r.dispatch(ctx, ev); err != nil {
				r.dispatchFails++
				slog.Warn("dispatch failed", "error", err, "event_id", ev.id)
			}
		default:
			return
		}
	}
}

func (r *Router) dispatch(ctx context.Context, ev event) error {
	switch ev.id {
	case TickEvent:
		return dispatchTo[common.Tick](ctx, ev, r.TickHandler)
	case BarEvent:
		return dispatchTo[common.Bar](ctx, ev, r.BarHandler)
	case EquityEvent:
		return dispatchTo[common.Equity](ctx, ev, r.EquityHandler)
	case BalanceEvent:
		return dispatchTo[common.Balance](ctx, ev, r.BalanceHandler)
	case PositionOpenEvent:
		return dispatchTo[common.Position](ctx, ev, r.PositionOpenHandler)
	case PositionCloseEvent:
		return dispatchTo[common.Position](ctx, ev, r.PositionCloseHandler)
	case PositionUpdateEvent:
		return dispatchTo[common.Position](ctx, ev, r.PositionUpdateHandler)
	case OrderEvent:
		return dispatchTo[common.Order](ctx, ev, r.OrderHandler)
	case OrderAcceptanceEvent:
		return dispatchTo[common.OrderAccepted](ctx, ev, r.OrderAcceptanceHandler)
	case OrderRejectionEvent:
		return dispatchTo[common.OrderRejected](ctx, ev, r.OrderRejectionHandler)
	case TradeEvent:
		return dispatchTo[common.TradeRecord](ctx, ev, r.TradeHandler)
	default:
		return fmt.Errorf("unsupported event id: %v", ev.id)
	}
}

func dispatchTo[T any](ctx context.Context, ev event, handler EventHandler[T]) error {
	data, ok := ev.data.(T)
	if !ok {
		return fmt.Errorf("invalid type assertion for event id %v", ev.id)
	}
	if handler == nil {
		slog.Debug("handler is nil", "event_id", ev.id)
		return nil
	}
	handler(ctx, data)
	return nil
}
