package transferbuf

// Accessor binds a manager and a fixed key so transfer reception logic does
// not repeat key plumbing on every call. It holds no state of its own beyond
// the binding.
type Accessor struct {
	mgr *Manager
	key Key
}

// NewAccessor creates an accessor bound to key.
// It panics if the key is empty.
func NewAccessor(mgr *Manager, key Key) Accessor {
	if key.IsEmpty() {
		panic(ErrKeyEmpty)
	}
	return Accessor{mgr: mgr, key: key}
}

// Key returns the bound key.
func (a Accessor) Key() Key {
	return a.key
}

// Access forwards to Manager.Access with the bound key.
func (a Accessor) Access() (TransferBuffer, bool) {
	return a.mgr.Access(a.key)
}

// Create forwards to Manager.Create with the bound key.
func (a Accessor) Create() (TransferBuffer, error) {
	return a.mgr.Create(a.key)
}

// Remove forwards to Manager.Remove with the bound key.
func (a Accessor) Remove() {
	a.mgr.Remove(a.key)
}
