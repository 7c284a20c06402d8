package historical

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"unsafe"

	"golang.org/x/exp/mmap"
)

var ErrEof = errors.New("EOF")

// Source is a memory-mapped file of fixed-size binary entries, read by
// index. Reads are safe for concurrent use; the scratch buffers are pooled
// so random access does not allocate.
type Source[T any] struct {
	path      string
	reader    *mmap.ReaderAt
	entrySize int64
	pool      *sync.Pool
}

func Open[T any](path string) (*Source[T], error) {
	var entry T
	entrySize := int64(unsafe.Sizeof(entry))
	if entrySize == 0 {
		return nil, fmt.Errorf("entry size of %q is zero", path)
	}

	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open data source %q: %w", path, err)
	}

	return &Source[T]{
		path:      path,
		reader:    reader,
		entrySize: entrySize,
		pool: &sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, entrySize)
				return &buffer
			},
		},
	}, nil
}

func (s *Source[T]) Close() error {
	return s.reader.Close()
}

func (s *Source[T]) Read(index int64, out *T) error {
	buffer := s.pool.Get().(*[]byte)
	defer s.pool.Put(buffer)

	n, err := s.reader.ReadAt(*buffer, index*s.entrySize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("unable to read %q at index %d: %w", s.path, index, err)
	}
	if int64(n) < s.entrySize {
		return ErrEof
	}

	*out = *(*T)(unsafe.Pointer(&(*buffer)[0])) // #nosec G103
	return nil
}

func (s *Source[T]) EntryCount() (int64, error) {
	total := int64(s.reader.Len())
	if total%s.entrySize != 0 {
		return 0, fmt.Errorf("size of %q is not a multiple of the entry size", s.path)
	}
	return total / s.entrySize, nil
}
