package testutils

import "sync/atomic"

// MockBlockPool is a counting, capacity-bounded block pool for tests.
// A capacity of 0 makes every Get fail, which is useful for testing pool
// exhaustion deterministically.
type MockBlockPool struct {
	blockSize int
	capacity  int
	getCalls  atomic.Int64
	putCalls  atomic.Int64
}

func NewMockBlockPool(blockSize, capacity int) *MockBlockPool {
	return &MockBlockPool{blockSize: blockSize, capacity: capacity}
}

// BlockSize returns the size of every block, in bytes.
func (p *MockBlockPool) BlockSize() int {
	return p.blockSize
}

// Get returns a fresh zeroed block, or nil once the capacity is in use.
func (p *MockBlockPool) Get() []byte {
	if p.NumFree() <= 0 {
		return nil
	}
	p.getCalls.Add(1)
	return make([]byte, p.blockSize)
}

func (p *MockBlockPool) Put(b []byte) {
	if b != nil {
		p.putCalls.Add(1)
	}
}

// NumFree returns the capacity not currently handed out.
func (p *MockBlockPool) NumFree() int {
	return p.capacity - int(p.BlocksInUse())
}

func (p *MockBlockPool) GetCalls() int64 {
	return p.getCalls.Load()
}

func (p *MockBlockPool) PutCalls() int64 {
	return p.putCalls.Load()
}

func (p *MockBlockPool) BlocksInUse() int64 {
	return p.GetCalls() - p.PutCalls()
}

func (p *MockBlockPool) Reset() {
	p.getCalls.Store(0)
	p.putCalls.Store(0)
}
