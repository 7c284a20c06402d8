package common

import (
	"time"

	"tickforge/pkg/utility"
	"tickforge/pkg/utility/fixed"
)

// Tick is one discrete market update. Index is the simulation clock; all
// latency and timeout accounting is tick-count based, never wall-clock.
type Tick struct {
	Index     int64       `json:"index"`
	Ask       fixed.Point `json:"ask"`
	Bid       fixed.Point `json:"bid"`
	AskVolume fixed.Point `json:"ask_volume"`
	BidVolume fixed.Point `json:"bid_volume"`

	Source      string              `json:"src,omitempty"`
	Symbol      string              `json:"symbol,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

func (t Tick) Average() fixed.Point {
	return t.Ask.Add(t.Bid).DivInt64(2)
}

func (t Tick) Spread() fixed.Point {
	return t.Ask.Sub(t.Bid)
}

func (t Tick) AggregatedVolume() fixed.Point {
	return t.AskVolume.Add(t.BidVolume)
}
