package simulation

import (
	"time"

	"tickforge/pkg/bus"
	"tickforge/pkg/common"
	"tickforge/pkg/utility"
)

const aggregatorComponentName = "simulation.aggregator"

// Aggregator folds the tick stream into fixed-period OHLC bars and posts
// them on the bus. A tick landing outside the current bar's window flushes
// the bar first, so gaps in the feed never stretch a bar.
type Aggregator struct {
	interval   time.Duration
	router     *bus.Router
	currentBar *common.Bar
}

func NewAggregator(interval time.Duration, router *bus.Router) *Aggregator {
	return &Aggregator{
		interval: interval,
		router:   router,
	}
}

func (a *Aggregator) OnTick(tick common.Tick) error {
	barTS := tick.TimeStamp.Truncate(a.interval)
	price := tick.Average()
	volume := tick.AggregatedVolume()

	if a.currentBar != nil && !barTS.Equal(a.currentBar.TimeStamp) {
		if err := a.router.Post(bus.BarEvent, *a.currentBar); err != nil {
			return err
		}
		a.currentBar = nil
	}

	if a.currentBar == nil {
		a.currentBar = &common.Bar{
			Source:      aggregatorComponentName,
			Symbol:      tick.Symbol,
			ExecutionId: utility.GetExecutionID(),
			TraceID:     utility.CreateTraceID(),
			TimeStamp:   barTS,
			Period:      a.interval,
			Open:        price,
			High:        price,
			Low:         price,
			Close:       price,
			Volume:      volume,
		}
	} else {
		if price.Gt(a.currentBar.High) {
			a.currentBar.High = price
		}
		if price.Lt(a.currentBar.Low) {
			a.currentBar.Low = price
		}
		a.currentBar.Close = price
		a.currentBar.Volume = a.currentBar.Volume.Add(volume)
	}

	return nil
}

// Flush posts the bar under construction, if any. Call at end of stream so
// the final partial bar is not lost.
func (a *Aggregator) Flush() error {
	if a.currentBar != nil {
		err := a.router.Post(bus.BarEvent, *a.currentBar)
		a.currentBar = nil
		return err
	}
	return nil
}
