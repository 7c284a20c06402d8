package historical

import (
	"errors"
	"fmt"
	"time"

	"tickforge/pkg/common"
	"tickforge/pkg/utility"
	"tickforge/pkg/utility/fixed"
)

const (
	invalidIndex            = -1
	tickReaderComponentName = "datasource.historical.reader"
)

// BinaryTick is the on-disk record layout. Timestamps are unix
// nanoseconds; the layout must stay in sync with whatever produced the
// dump file.
type BinaryTick struct {
	TimeStamp int64
	Bid       float64
	Ask       float64
	BidVolume float64
	AskVolume float64
}

func (b BinaryTick) toTick(tick *common.Tick) {
	tick.TimeStamp = time.Unix(0, b.TimeStamp)
	tick.Ask = fixed.FromFloat64(b.Ask)
	tick.Bid = fixed.FromFloat64(b.Bid)
	tick.AskVolume = fixed.FromFloat64(b.AskVolume)
	tick.BidVolume = fixed.FromFloat64(b.BidVolume)
}

// TickReader replays a time range from a binary tick dump. The start index
// is located with a binary search over the timestamp-ordered file, so
// seeking into a multi-year dump stays cheap.
type TickReader struct {
	source *Source[BinaryTick]

	symbol string
	from   int64
	to     int64
	idx    int64
}

func NewTickReader(source *Source[BinaryTick], symbol string, from, to time.Time) *TickReader {
	return &TickReader{
		source: source,
		symbol: symbol,
		from:   from.UnixNano(),
		to:     to.UnixNano(),
		idx:    invalidIndex,
	}
}

func (t *TickReader) GetNext() (common.Tick, error) {
	var tick common.Tick
	var entry BinaryTick

	if t.idx == invalidIndex {
		if err := t.seekStart(); err != nil {
			return tick, err
		}
	}

	if err := t.source.Read(t.idx, &entry); err != nil {
		if errors.Is(err, ErrEof) {
			return tick, ErrEof
		}
		return tick, fmt.Errorf("error reading entry at index %d: %w", t.idx, err)
	}
	t.idx++

	if entry.TimeStamp < t.from {
		return tick, fmt.Errorf("timestamp is not from the proposed range")
	}
	if entry.TimeStamp > t.to {
		return tick, ErrEof
	}

	entry.toTick(&tick)

	tick.Source = tickReaderComponentName
	tick.Symbol = t.symbol
	tick.ExecutionId = utility.GetExecutionID()
	tick.TraceID = utility.CreateTraceID()

	return tick, nil
}

// seekStart binary-searches for the first entry at or after the range
// start.
func (t *TickReader) seekStart() error {
	entryCount, err := t.source.EntryCount()
	if err != nil {
		return fmt.Errorf("error getting entry count: %w", err)
	}
	if entryCount == 0 {
		return fmt.Errorf("entry count is zero")
	}

	var entry BinaryTick

	low := int64(0)
	high := entryCount - 1

	for low <= high {
		mid := (low + high) / 2

		if err := t.source.Read(mid, &entry); err != nil {
			return fmt.Errorf("error reading entry at index %d: %w", mid, err)
		}

		if entry.TimeStamp < t.from {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	if low >= entryCount {
		return fmt.Errorf("no entry found with timestamp >= from")
	}

	t.idx = low
	return nil
}
