package transferbuf

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// BlockPooler defines the contract for the fixed-size block allocator shared
// by all dynamic buffers of a manager. A block returned by Get is owned
// exclusively by the caller until it is handed back with Put.
type BlockPooler interface {
	BlockSize() int // Size of every block, in bytes.
	Get() []byte    // Get retrieves a free block, or nil when the pool is exhausted.
	Put(b []byte)   // Put returns a block to the pool.
	NumFree() int   // Number of free blocks remaining.
}

// BlockPool is a bounded pool of fixed-size memory blocks carved from a
// single arena allocated at construction. The arena is mmap'd outside the Go
// heap so reassembly storage never adds GC scan pressure, and the pool never
// grows: once the free list is empty, Get returns nil until blocks are
// released.
//
// The pool is safe for concurrent use, since it may be shared by multiple
// subsystems beyond one buffer manager.
type BlockPool struct {
	mu        sync.Mutex
	arena     []byte
	blockSize int
	free      [][]byte
}

// NewBlockPool creates a pool of numBlocks blocks of blockSize bytes each.
// The entire arena is allocated up front; Close releases it.
func NewBlockPool(blockSize, numBlocks int) (*BlockPool, error) {
	if blockSize <= 0 {
		return nil, errors.New("block size must be positive")
	}
	if numBlocks < 0 {
		return nil, errors.New("number of blocks cannot be negative")
	}
	p := &BlockPool{blockSize: blockSize}
	if numBlocks == 0 {
		return p, nil
	}

	// Allocate virtual memory that is not part of the Go heap.
	data, err := unix.Mmap(-1, 0, blockSize*numBlocks,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot allocate %d bytes via mmap: %w", blockSize*numBlocks, err)
	}
	p.arena = data

	// Slice the arena into blocks and seed the free list.
	p.free = make([][]byte, 0, numBlocks)
	for len(data) > 0 {
		p.free = append(p.free, data[:blockSize:blockSize])
		data = data[blockSize:]
	}
	return p, nil
}

// BlockSize returns the size of every block in the pool, in bytes.
func (p *BlockPool) BlockSize() int {
	return p.blockSize
}

// Get retrieves a free block, or nil when the pool is exhausted.
func (p *BlockPool) Get() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.free) - 1
	if n < 0 {
		return nil
	}
	blk := p.free[n]
	p.free[n] = nil
	p.free = p.free[:n]
	return blk
}

// Put returns a block to the pool.
// It does nothing if b is nil or not of the pool's block size.
func (p *BlockPool) Put(b []byte) {
	if b == nil || cap(b) != p.blockSize {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, b[:p.blockSize])
}

// NumFree returns the number of free blocks remaining in the pool.
func (p *BlockPool) NumFree() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Close unmaps the arena and empties the free list. Blocks handed out by Get
// must not be used after Close.
func (p *BlockPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.free = nil
	if p.arena == nil {
		return nil
	}
	err := unix.Munmap(p.arena)
	p.arena = nil
	return err
}
