package historical

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var readerTestStart = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

func writeTickDump(t *testing.T, entries []BinaryTick) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ticks.bin")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	size := unsafe.Sizeof(BinaryTick{})
	for i := range entries {
		buffer := unsafe.Slice((*byte)(unsafe.Pointer(&entries[i])), size) // #nosec G103
		_, err := f.Write(buffer)
		require.NoError(t, err)
	}
	return path
}

func dumpEntries(count int) []BinaryTick {
	entries := make([]BinaryTick, 0, count)
	for i := 0; i < count; i++ {
		ts := readerTestStart.Add(time.Duration(i) * time.Second)
		entries = append(entries, BinaryTick{
			TimeStamp: ts.UnixNano(),
			Bid:       1.10000 + float64(i)*0.00001,
			Ask:       1.10002 + float64(i)*0.00001,
			BidVolume: 1,
			AskVolume: 1,
		})
	}
	return entries
}

func TestTickReader_ReplaysRangeInOrder(t *testing.T) {
	path := writeTickDump(t, dumpEntries(10))

	source, err := Open[BinaryTick](path)
	require.NoError(t, err)
	defer func() { _ = source.Close() }()

	reader := NewTickReader(source, "EURUSD",
		readerTestStart.Add(3*time.Second), readerTestStart.Add(6*time.Second))

	var stamps []int64
	for {
		tick, err := reader.GetNext()
		if err != nil {
			require.ErrorIs(t, err, ErrEof)
			break
		}
		assert.Equal(t, "EURUSD", tick.Symbol)
		stamps = append(stamps, tick.TimeStamp.UnixNano())
	}

	require.Len(t, stamps, 4)
	assert.Equal(t, readerTestStart.Add(3*time.Second).UnixNano(), stamps[0])
	assert.Equal(t, readerTestStart.Add(6*time.Second).UnixNano(), stamps[3])
}

func TestTickReader_EofAtFileEnd(t *testing.T) {
	path := writeTickDump(t, dumpEntries(3))

	source, err := Open[BinaryTick](path)
	require.NoError(t, err)
	defer func() { _ = source.Close() }()

	reader := NewTickReader(source, "EURUSD",
		readerTestStart, readerTestStart.Add(time.Hour))

	for i := 0; i < 3; i++ {
		_, err := reader.GetNext()
		require.NoError(t, err)
	}
	_, err = reader.GetNext()
	assert.ErrorIs(t, err, ErrEof)
}

func TestSource_EntryCountMatchesFileSize(t *testing.T) {
	path := writeTickDump(t, dumpEntries(7))

	source, err := Open[BinaryTick](path)
	require.NoError(t, err)
	defer func() { _ = source.Close() }()

	count, err := source.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
