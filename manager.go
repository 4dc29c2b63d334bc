package transferbuf

import "log/slog"

// Manager multiplexes transfer buffers across the active transfer keys. It
// owns a fixed table of static slots and an insertion-ordered set of dynamic
// entries drawn from the block pool. A non-empty key resolves to at most one
// entry across both.
//
// Placement routes by required size: a static slot is used only when it can
// hold a whole transfer of the configured maximum size, otherwise entries go
// dynamic. Whenever a static slot frees up, the oldest dynamic entry is
// migrated into it and its block chain returned to the pool.
type Manager struct {
	logger  *slog.Logger
	pool    BlockPooler
	config  Config
	static  []staticEntry
	dynamic []*dynamicEntry
}

// NewManager creates a manager with all static slots empty. The slot storage
// is carved from a single backing array allocated here, the only allocation
// the manager makes up front.
// It panics if the config is invalid.
func NewManager(pool BlockPooler, logger *slog.Logger, config Config) *Manager {
	if err := config.Validate(pool); err != nil {
		panic(err)
	}
	m := &Manager{
		logger: logger,
		pool:   pool,
		config: config,
		static: make([]staticEntry, config.NumStaticSlots),
	}
	storage := make([]byte, config.NumStaticSlots*config.StaticSlotSize)
	for i := range m.static {
		m.static[i].buf.data = storage[i*config.StaticSlotSize : (i+1)*config.StaticSlotSize]
	}
	return m
}

// staticEligible reports whether static slots can hold a whole transfer.
func (m *Manager) staticEligible() bool {
	return m.config.NumStaticSlots > 0 && m.config.StaticSlotSize >= m.config.MaxBufferSize
}

func (m *Manager) findStatic(key Key) *staticEntry {
	for i := range m.static {
		if m.static[i].key == key {
			return &m.static[i]
		}
	}
	return nil
}

func (m *Manager) findDynamic(key Key) (int, *dynamicEntry) {
	for i, e := range m.dynamic {
		if e.key == key {
			return i, e
		}
	}
	return -1, nil
}

func (m *Manager) firstEmptyStatic() *staticEntry {
	for i := range m.static {
		if m.static[i].isEmpty() {
			return &m.static[i]
		}
	}
	return nil
}

// Access returns the buffer for key if one exists. It is read-only with
// respect to placement.
func (m *Manager) Access(key Key) (TransferBuffer, bool) {
	if key.IsEmpty() {
		return nil, false
	}
	if e := m.findStatic(key); e != nil {
		return &e.buf, true
	}
	if _, e := m.findDynamic(key); e != nil {
		return e.buf, true
	}
	return nil, false
}

// Create returns a buffer for key, placing a new entry if none exists.
// Creating an already-present key is idempotent and returns the live entry
// unchanged, never a duplicate.
//
// It returns ErrKeyEmpty for the empty key, and ErrPoolExhausted when
// dynamic placement is needed but the pool has no free block; no partial
// entry is left behind in that case.
func (m *Manager) Create(key Key) (TransferBuffer, error) {
	if key.IsEmpty() {
		return nil, ErrKeyEmpty
	}
	if buf, ok := m.Access(key); ok {
		return buf, nil
	}

	if m.staticEligible() {
		if e := m.firstEmptyStatic(); e != nil {
			e.reset(key)
			m.optimizeStorage()
			return &e.buf, nil
		}
	}

	if m.pool.NumFree() == 0 {
		m.logger.Warn("cannot create transfer buffer, block pool is exhausted", "key", key)
		return nil, ErrPoolExhausted
	}
	e := &dynamicEntry{key: key, buf: NewDynamicBuffer(m.pool, m.config.MaxBufferSize)}
	m.dynamic = append(m.dynamic, e)
	m.optimizeStorage()
	return e.buf, nil
}

// Remove resets the entry for key, releasing any dynamic blocks back to the
// pool, and frees its slot. It is a no-op when the key is absent.
func (m *Manager) Remove(key Key) {
	if key.IsEmpty() {
		return
	}
	if e := m.findStatic(key); e != nil {
		e.reset(Key{})
		m.optimizeStorage()
		return
	}
	if i, e := m.findDynamic(key); e != nil {
		e.buf.Reset()
		m.dynamic = append(m.dynamic[:i], m.dynamic[i+1:]...)
	}
}

// optimizeStorage migrates dynamic entries into freed static slots. Static
// slots carry no per-block pool pressure and are a scarce pre-reserved
// resource, so they are preferred as soon as they free up. The oldest
// dynamic entry (insertion order) moves first, into the lowest-index free
// slot.
func (m *Manager) optimizeStorage() {
	if !m.staticEligible() {
		return
	}
	for len(m.dynamic) > 0 {
		slot := m.firstEmptyStatic()
		if slot == nil {
			return
		}
		e := m.dynamic[0]
		if !slot.migrateFrom(e) {
			// Content exceeds the slot; leave the entry dynamic.
			return
		}
		e.buf.Reset() // Return the chain to the pool.
		m.dynamic = append(m.dynamic[:0], m.dynamic[1:]...)
		m.logger.Debug("migrated dynamic buffer to static storage",
			"key", slot.key,
			"bytes", slot.buf.MaxWritePos(),
		)
	}
}

// IsEmpty reports whether no entries exist, static or dynamic.
func (m *Manager) IsEmpty() bool {
	for i := range m.static {
		if !m.static[i].isEmpty() {
			return false
		}
	}
	return len(m.dynamic) == 0
}

// NumStaticBuffers returns the number of occupied static slots.
func (m *Manager) NumStaticBuffers() int {
	n := 0
	for i := range m.static {
		if !m.static[i].isEmpty() {
			n++
		}
	}
	return n
}

// NumDynamicBuffers returns the number of live dynamic entries.
func (m *Manager) NumDynamicBuffers() int {
	return len(m.dynamic)
}

// Reset removes every entry and returns all dynamic block chains to the
// pool, leaving the manager empty but usable.
func (m *Manager) Reset() {
	for i := range m.static {
		m.static[i].reset(Key{})
	}
	for _, e := range m.dynamic {
		e.buf.Reset()
	}
	m.dynamic = nil
}
