package transferbuf

import "github.com/cespare/xxhash/v2"

// DynamicBuffer is a TransferBuffer backed by an ordered chain of fixed-size
// blocks drawn from a shared pool. The chain grows lazily at the tail as
// writes reach higher offsets, so a block at chain position i always covers
// byte offsets [i*BlockSize, (i+1)*BlockSize). Growth is driven by writes
// only and capped at the configured maximum size; reads never allocate.
//
// Writes may arrive in any offset order, including strictly descending: a
// write beyond the current chain length realizes every missing block up to
// and including the one covering its last byte.
type DynamicBuffer struct {
	pool        BlockPooler
	blocks      [][]byte
	maxWritePos int
	maxSize     int
}

// NewDynamicBuffer creates an empty dynamic buffer capped at maxSize bytes.
// No blocks are drawn until the first write.
func NewDynamicBuffer(pool BlockPooler, maxSize int) *DynamicBuffer {
	return &DynamicBuffer{pool: pool, maxSize: maxSize}
}

// MaxSize returns the buffer's capacity cap, in bytes.
func (b *DynamicBuffer) MaxSize() int {
	return b.maxSize
}

// MaxWritePos returns the high-water mark: the highest offset successfully
// written so far.
func (b *DynamicBuffer) MaxWritePos() int {
	return b.maxWritePos
}

// NumBlocks returns the current chain length.
func (b *DynamicBuffer) NumBlocks() int {
	return len(b.blocks)
}

// Read implements TransferBuffer. It walks the chain copying the overlap of
// each block with the requested range, an O(chain length) operation; chains
// are short since they are bounded by maxSize/BlockSize.
func (b *DynamicBuffer) Read(offset int, p []byte) (int, error) {
	if offset < 0 || offset >= b.maxSize {
		return 0, ErrOffsetOutOfBounds
	}
	n := min(len(p), b.maxWritePos-offset)
	if n <= 0 {
		return 0, nil
	}
	blockSize := b.pool.BlockSize()
	read := 0
	for read < n {
		idx := (offset + read) / blockSize
		pos := (offset + read) % blockSize
		read += copy(p[read:n], b.blocks[idx][pos:blockSize])
	}
	return n, nil
}

// Write implements TransferBuffer, growing the chain as needed.
//
// If the pool runs dry partway, the bytes already copied into existing and
// just-allocated blocks are retained, the high-water mark covers only that
// contiguous prefix, and Write returns the partial count with
// ErrPoolExhausted. Already-allocated blocks are not rolled back; callers
// should treat the failure as loss of the buffer's reliability and reset it.
func (b *DynamicBuffer) Write(offset int, p []byte) (int, error) {
	if offset < 0 || offset >= b.maxSize {
		return 0, ErrOffsetOutOfBounds
	}
	n := min(len(p), b.maxSize-offset) // Truncate to capacity.
	if n == 0 {
		return 0, nil
	}
	blockSize := b.pool.BlockSize()
	written := 0
	for written < n {
		idx := (offset + written) / blockSize

		// Grow the chain at the tail until it covers the target block.
		// Indices are realized in ascending order regardless of the
		// caller's write offset order.
		for len(b.blocks) <= idx {
			blk := b.pool.Get()
			if blk == nil {
				b.advance(offset, written)
				return written, ErrPoolExhausted
			}
			b.blocks = append(b.blocks, blk)
		}

		pos := (offset + written) % blockSize
		written += copy(b.blocks[idx][pos:blockSize], p[written:n])
	}
	b.advance(offset, n)
	return n, nil
}

func (b *DynamicBuffer) advance(offset, n int) {
	if n > 0 && offset+n > b.maxWritePos {
		b.maxWritePos = offset + n
	}
}

// Sum64 implements TransferBuffer. The written prefix is streamed block by
// block through the digest, so no contiguous copy of the payload is made.
func (b *DynamicBuffer) Sum64() uint64 {
	d := xxhash.New()
	remaining := b.maxWritePos
	for _, blk := range b.blocks {
		if remaining <= 0 {
			break
		}
		n := min(remaining, len(blk))
		d.Write(blk[:n])
		remaining -= n
	}
	return d.Sum64()
}

// Reset releases every block in the chain back to the pool and zeroes the
// high-water mark. Safe to call on an already-empty chain.
func (b *DynamicBuffer) Reset() {
	for i, blk := range b.blocks {
		b.pool.Put(blk)
		b.blocks[i] = nil
	}
	b.blocks = b.blocks[:0]
	b.maxWritePos = 0
}

// dynamicEntry is a pool-backed manager entry. The manager keeps dynamic
// entries in insertion order; the oldest is the first migration candidate.
type dynamicEntry struct {
	key Key
	buf *DynamicBuffer
}
