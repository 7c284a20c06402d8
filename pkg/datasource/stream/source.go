package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"tickforge/pkg/common"
	"tickforge/pkg/utility"
	"tickforge/pkg/utility/fixed"
)

const tickSourceComponentName = "datasource.stream.source"

var ErrEof = errors.New("EOF")

type subscribeRequest struct {
	Op     string `json:"op"`
	Symbol string `json:"symbol"`
}

type wireTick struct {
	TimeStamp int64   `json:"ts"`
	Bid       float64 `json:"bid"`
	Ask       float64 `json:"ask"`
	BidVolume float64 `json:"bid_volume"`
	AskVolume float64 `json:"ask_volume"`
}

// TickSource consumes a live tick feed over a websocket. It is meant for
// forward-testing against a real quote stream with the same engine wiring
// a backtest uses; a closed connection surfaces as ErrEof, transport
// failures as errors.
type TickSource struct {
	conn   *websocket.Conn
	symbol string

	readTimeout time.Duration
}

func Dial(ctx context.Context, url, symbol string, readTimeout time.Duration) (*TickSource, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to dial tick stream %q: %w", url, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err := conn.WriteJSON(subscribeRequest{Op: "subscribe", Symbol: symbol}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("unable to subscribe to %q: %w", symbol, err)
	}

	return &TickSource{
		conn:        conn,
		symbol:      symbol,
		readTimeout: readTimeout,
	}, nil
}

func (t *TickSource) GetNext() (common.Tick, error) {
	var tick common.Tick
	var wire wireTick

	if t.readTimeout > 0 {
		if err := t.conn.SetReadDeadline(time.Now().Add(t.readTimeout)); err != nil {
			return tick, fmt.Errorf("unable to set read deadline: %w", err)
		}
	}

	if err := t.conn.ReadJSON(&wire); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return tick, ErrEof
		}
		return tick, fmt.Errorf("error reading tick frame: %w", err)
	}

	tick.TimeStamp = time.Unix(0, wire.TimeStamp)
	tick.Bid = fixed.FromFloat64(wire.Bid)
	tick.Ask = fixed.FromFloat64(wire.Ask)
	tick.BidVolume = fixed.FromFloat64(wire.BidVolume)
	tick.AskVolume = fixed.FromFloat64(wire.AskVolume)

	tick.Source = tickSourceComponentName
	tick.Symbol = t.symbol
	tick.ExecutionId = utility.GetExecutionID()
	tick.TraceID = utility.CreateTraceID()

	return tick, nil
}

func (t *TickSource) Close() error {
	_ = t.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return t.conn.Close()
}
