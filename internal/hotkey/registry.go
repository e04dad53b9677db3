package hotkey

import "sync"

type entry struct {
	hotkey   Hotkey
	callback Callback
}

// Registry maps native grab ids to the hotkey and callback registered for
// them. It is shared by the Listener and its worker; every method holds the
// lock for its whole duration.
type Registry struct {
	mu      sync.Mutex
	entries map[NativeID]entry
	closed  bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[NativeID]entry)}
}

// Insert stores hk and cb under id. It stores nothing and returns false when
// id already has an entry or the registry was closed.
func (r *Registry) Insert(id NativeID, hk Hotkey, cb Callback) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	if _, ok := r.entries[id]; ok {
		return false
	}
	r.entries[id] = entry{hotkey: hk, callback: cb}
	return true
}

// Remove deletes the entry for id and hands its callback back to the caller.
func (r *Registry) Remove(id NativeID) (Callback, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	delete(r.entries, id)
	return e.callback, true
}

// Lookup returns the native id whose entry holds a hotkey equal to hk.
func (r *Registry) Lookup(hk Hotkey) (NativeID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.entries {
		if e.hotkey == hk {
			return id, true
		}
	}
	return NativeID{}, false
}

// Callback returns the callback stored for id.
func (r *Registry) Callback(id NativeID) (Callback, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e.callback, ok
}

// Hotkeys lists the registered hotkeys in no particular order.
func (r *Registry) Hotkeys() []Hotkey {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Hotkey, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.hotkey)
	}
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close clears the registry and makes every later Insert fail.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.entries = make(map[NativeID]entry)
}
