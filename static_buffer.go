package transferbuf

import (
	"errors"

	"github.com/cespare/xxhash/v2"
)

// StaticBuffer is a TransferBuffer backed by a single contiguous,
// fixed-capacity array supplied by the caller. It never touches the block
// pool; reads and writes are plain bounds-checked slice copies.
type StaticBuffer struct {
	data        []byte
	maxWritePos int
}

// NewStaticBuffer creates a static buffer over the caller's storage.
// It panics if storage is empty.
func NewStaticBuffer(storage []byte) *StaticBuffer {
	if len(storage) == 0 {
		panic(errors.New("static buffer storage cannot be empty"))
	}
	return &StaticBuffer{data: storage}
}

// Size returns the buffer's fixed capacity, in bytes.
func (b *StaticBuffer) Size() int {
	return len(b.data)
}

// MaxWritePos returns the high-water mark: the highest offset successfully
// written so far.
func (b *StaticBuffer) MaxWritePos() int {
	return b.maxWritePos
}

// Read implements TransferBuffer.
func (b *StaticBuffer) Read(offset int, p []byte) (int, error) {
	if offset < 0 || offset >= len(b.data) {
		return 0, ErrOffsetOutOfBounds
	}
	n := min(len(p), b.maxWritePos-offset)
	if n <= 0 {
		return 0, nil
	}
	copy(p, b.data[offset:offset+n])
	return n, nil
}

// Write implements TransferBuffer. Writes past capacity are truncated and
// report a short count.
func (b *StaticBuffer) Write(offset int, p []byte) (int, error) {
	if offset < 0 || offset >= len(b.data) {
		return 0, ErrOffsetOutOfBounds
	}
	n := copy(b.data[offset:], p)
	if offset+n > b.maxWritePos {
		b.maxWritePos = offset + n
	}
	return n, nil
}

// Sum64 implements TransferBuffer.
func (b *StaticBuffer) Sum64() uint64 {
	return xxhash.Sum64(b.data[:b.maxWritePos])
}

// Reset clears the payload. The storage itself is retained.
func (b *StaticBuffer) Reset() {
	b.maxWritePos = 0
}

// staticEntry is one pre-reserved manager slot: a key plus its static
// storage. An empty key marks the slot unused.
type staticEntry struct {
	key Key
	buf StaticBuffer
}

func (e *staticEntry) isEmpty() bool {
	return e.key.IsEmpty()
}

// reset clears the payload and re-keys the slot in one step.
func (e *staticEntry) reset(key Key) {
	e.key = key
	e.buf.Reset()
}

// migrateFrom copies a dynamic entry's written prefix into the slot's
// storage and takes over its key. It reports false, leaving the slot
// unchanged, when the content does not fit.
func (e *staticEntry) migrateFrom(src *dynamicEntry) bool {
	written := src.buf.MaxWritePos()
	if written > e.buf.Size() {
		return false
	}
	if written > 0 {
		n, err := src.buf.Read(0, e.buf.data[:written])
		if err != nil || n != written {
			return false
		}
	}
	e.buf.maxWritePos = written
	e.key = src.key
	return true
}
