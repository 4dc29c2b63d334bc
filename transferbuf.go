// Package transferbuf implements reassembly buffers for multi-frame transfers
// received over a frame-size-limited bus.
//
// A transfer's payload fragments can arrive interleaved with other transfers
// and at out-of-order offsets. Each in-flight transfer is identified by a
// [Key] and accumulates into a [TransferBuffer]: either a pre-reserved
// contiguous static slot, or a chain of fixed-size blocks drawn on demand
// from a shared [BlockPooler]. The [Manager] multiplexes both storage kinds
// across the active keys and migrates dynamic entries into static slots as
// they free up, keeping pool pressure low.
//
// The package performs no locking of its own; the surrounding transport layer
// is expected to serialize all calls into one manager. The block pool is the
// only shared resource and is safe to share across subsystems.
package transferbuf

import "errors"

var (
	ErrOffsetOutOfBounds = errors.New("offset is out of bounds")
	ErrPoolExhausted     = errors.New("block pool is exhausted")
	ErrKeyEmpty          = errors.New("key cannot be empty")
)

// TransferBuffer is offset-addressed storage for one in-flight transfer
// payload of a priori unknown, but bounded, length.
//
// Writes may arrive in any offset order. Byte ranges below the high-water
// mark that were never covered by a Write have unspecified contents; the
// buffer does not zero-fill gaps, so callers must only read ranges they have
// written.
type TransferBuffer interface {
	// Read copies up to len(p) bytes of the written prefix starting at
	// offset into p. It returns a short count when the request runs past
	// the high-water mark, and ErrOffsetOutOfBounds when offset is at or
	// beyond the buffer's capacity. Read never allocates.
	Read(offset int, p []byte) (n int, err error)

	// Write copies p into the buffer starting at offset, truncated to the
	// buffer's capacity, and advances the high-water mark over the written
	// range. It returns ErrOffsetOutOfBounds when offset is at or beyond
	// capacity, and ErrPoolExhausted together with the retained partial
	// count when backing storage could not be grown.
	Write(offset int, p []byte) (n int, err error)

	// Sum64 returns the xxhash digest of the written prefix. It lets the
	// transport layer checksum an assembled payload without materializing
	// it into a contiguous scratch buffer first.
	Sum64() uint64
}
