package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"tickforge/pkg/common"
	"tickforge/pkg/utility"
	"tickforge/pkg/utility/fixed"
)

const tickReaderComponentName = "datasource.duckdb.reader"

var ErrEof = errors.New("EOF")

// TickReader streams a time range out of a DuckDB tick table ordered by
// timestamp. The expected schema is (ts TIMESTAMP, bid DOUBLE, ask DOUBLE,
// bid_volume DOUBLE, ask_volume DOUBLE).
type TickReader struct {
	db     *sql.DB
	rows   *sql.Rows
	symbol string
}

func OpenTickReader(ctx context.Context, path, table, symbol string, from, to time.Time) (*TickReader, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open duckdb database %q: %w", path, err)
	}

	query := fmt.Sprintf(
		"SELECT ts, bid, ask, bid_volume, ask_volume FROM %s WHERE ts >= ? AND ts <= ? ORDER BY ts",
		table)
	rows, err := db.QueryContext(ctx, query, from, to)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to query tick table %q: %w", table, err)
	}

	return &TickReader{
		db:     db,
		rows:   rows,
		symbol: symbol,
	}, nil
}

func (t *TickReader) GetNext() (common.Tick, error) {
	var tick common.Tick

	if !t.rows.Next() {
		if err := t.rows.Err(); err != nil {
			return tick, fmt.Errorf("error iterating tick rows: %w", err)
		}
		return tick, ErrEof
	}

	var (
		ts                   time.Time
		bid, ask             float64
		bidVolume, askVolume float64
	)
	if err := t.rows.Scan(&ts, &bid, &ask, &bidVolume, &askVolume); err != nil {
		return tick, fmt.Errorf("error scanning tick row: %w", err)
	}

	tick.TimeStamp = ts
	tick.Bid = fixed.FromFloat64(bid)
	tick.Ask = fixed.FromFloat64(ask)
	tick.BidVolume = fixed.FromFloat64(bidVolume)
	tick.AskVolume = fixed.FromFloat64(askVolume)

	tick.Source = tickReaderComponentName
	tick.Symbol = t.symbol
	tick.ExecutionId = utility.GetExecutionID()
	tick.TraceID = utility.CreateTraceID()

	return tick, nil
}

func (t *TickReader) Close() error {
	rowsErr := t.rows.Close()
	dbErr := t.db.Close()
	if rowsErr != nil {
		return rowsErr
	}
	return dbErr
}
