package engine

import (
	"errors"

	"tickforge/pkg/common"
	"tickforge/pkg/utility/fixed"
)

var ErrOrderNotPending = errors.New("order is not pending")

// PendingOrder is one in-flight submission. The tracker owns it
// exclusively: it is removed on fill, rejection or explicit cancel, and a
// terminal outcome is emitted exactly once.
type PendingOrder struct {
	OrderId   common.OrderId
	BrokerRef string
	Action    common.OrderAction
	Order     common.Order

	SubmittedTick int64
	// ReadyTick is the first tick the fill pipeline may resolve the order:
	// submitted tick plus the seeded api and execution delays.
	ReadyTick int64
	// TimeoutTick is when the order counts as stuck. Detection only; a
	// flagged order still resolves normally if the broker answers late.
	TimeoutTick int64

	// BrokerComplete is set once the adapter reported the order filled on
	// its side.
	BrokerComplete bool
	// TimedOut marks orders flagged by CheckTimeouts.
	TimedOut bool
}

// ClearedOutcome pairs a swept order with its terminal status at teardown.
type ClearedOutcome struct {
	Order  PendingOrder
	Status common.OrderStatus
	Reason string
}

// PendingTracker stores in-flight orders by internal id with a secondary
// index by broker reference, because broker responses arrive keyed by the
// broker's reference, not ours. Iteration follows submission order so
// resolution stays deterministic.
type PendingTracker struct {
	byId    map[common.OrderId]*PendingOrder
	byRef   map[string]common.OrderId
	ordered []common.OrderId
}

func NewPendingTracker() *PendingTracker {
	return &PendingTracker{
		byId:  make(map[common.OrderId]*PendingOrder),
		byRef: make(map[string]common.OrderId),
	}
}

func (t *PendingTracker) Submit(order PendingOrder) {
	stored := order
	t.byId[order.OrderId] = &stored
	if order.BrokerRef != "" {
		t.byRef[order.BrokerRef] = order.OrderId
	}
	t.ordered = append(t.ordered, order.OrderId)
}

func (t *PendingTracker) Get(id common.OrderId) (*PendingOrder, bool) {
	order, ok := t.byId[id]
	return order, ok
}

func (t *PendingTracker) GetByRef(brokerRef string) (*PendingOrder, bool) {
	id, ok := t.byRef[brokerRef]
	if !ok {
		return nil, false
	}
	return t.byId[id], true
}

// MarkFilled consumes the order for the given broker reference. Returns
// false when the reference is unknown, which callers treat as an already
// resolved order, never an error.
func (t *PendingTracker) MarkFilled(brokerRef string) (PendingOrder, bool) {
	return t.consumeRef(brokerRef)
}

func (t *PendingTracker) MarkRejected(brokerRef string) (PendingOrder, bool) {
	return t.consumeRef(brokerRef)
}

// Remove consumes the order by internal id (cancel path).
func (t *PendingTracker) Remove(id common.OrderId) (PendingOrder, bool) {
	order, ok := t.byId[id]
	if !ok {
		return PendingOrder{}, false
	}
	t.removeLocked(order)
	return *order, true
}

// CheckTimeouts flags every order past its timeout tick and returns the
// newly flagged ones. Detection only: flagged orders stay tracked, so a
// fill arriving on the same tick still wins over the timeout.
func (t *PendingTracker) CheckTimeouts(currentTick int64) []PendingOrder {
	var flagged []PendingOrder
	for _, id := range t.ordered {
		order, ok := t.byId[id]
		if !ok || order.TimedOut {
			continue
		}
		if currentTick >= order.TimeoutTick {
			order.TimedOut = true
			flagged = append(flagged, *order)
		}
	}
	return flagged
}

// IsPendingClose reports whether a close order for the position is in
// flight.
func (t *PendingTracker) IsPendingClose(positionId common.PositionId) bool {
	for _, id := range t.ordered {
		order, ok := t.byId[id]
		if !ok {
			continue
		}
		if order.Action == common.OrderActionClose && order.Order.PositionId == positionId {
			return true
		}
	}
	return false
}

// Pending returns the live orders in submission order.
func (t *PendingTracker) Pending() []*PendingOrder {
	orders := make([]*PendingOrder, 0, len(t.byId))
	for _, id := range t.ordered {
		if order, ok := t.byId[id]; ok {
			orders = append(orders, order)
		}
	}
	return orders
}

func (t *PendingTracker) Len() int {
	return len(t.byId)
}

// ClearPending sweeps every outstanding order at scenario teardown. Orders
// already flagged as timed out resolve as timed-out, the rest as
// force-closed; both carry the sweep reason for post-hoc analysis.
func (t *PendingTracker) ClearPending(reason string) []ClearedOutcome {
	var cleared []ClearedOutcome
	for _, id := range t.ordered {
		order, ok := t.byId[id]
		if !ok {
			continue
		}
		status := common.OrderStatusForceClosed
		if order.TimedOut {
			status = common.OrderStatusTimedOut
		}
		cleared = append(cleared, ClearedOutcome{
			Order:  *order,
			Status: status,
			Reason: reason,
		})
	}
	t.byId = make(map[common.OrderId]*PendingOrder)
	t.byRef = make(map[string]common.OrderId)
	t.ordered = nil
	return cleared
}

// ConvertToLimit replaces a triggered stop-limit's payload with a resting
// limit order at the configured level. The order keeps its id, broker
// reference and timeout.
func (t *PendingTracker) ConvertToLimit(id common.OrderId, limitPrice fixed.Point) error {
	order, ok := t.byId[id]
	if !ok {
		return ErrOrderNotPending
	}
	converted := order.Order
	converted.Type = common.OrderTypeLimit
	converted.Price = limitPrice
	order.Order = converted
	return nil
}

func (t *PendingTracker) consumeRef(brokerRef string) (PendingOrder, bool) {
	id, ok := t.byRef[brokerRef]
	if !ok {
		return PendingOrder{}, false
	}
	order := t.byId[id]
	t.removeLocked(order)
	return *order, true
}

func (t *PendingTracker) removeLocked(order *PendingOrder) {
	delete(t.byId, order.OrderId)
	if order.BrokerRef != "" {
		delete(t.byRef, order.BrokerRef)
	}
	for idx, id := range t.ordered {
		if id == order.OrderId {
			t.ordered = append(t.ordered[:idx], t.ordered[idx+1:]...)
			return
		}
	}
}
