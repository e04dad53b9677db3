package hotkey

import (
	"sync"
)

// Native error codes reported by FakeBackend, matching the X11 protocol.
const (
	FakeBadValue  = 2
	FakeBadAccess = 10
)

// FakeBackend is an in-memory Backend for tests and headless runs. Press
// simulates a key release for a grabbed combination; the Fail methods make
// the next native call fail.
type FakeBackend struct {
	mu      sync.Mutex
	opened  bool
	closed  bool
	nextID  uint32
	grabs   map[NativeID]Hotkey
	events  []Event
	openErr error

	failGrab   int
	failUngrab int
	failPoll   error
}

// NewFakeBackend returns a FakeBackend with no grabs.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{grabs: make(map[NativeID]Hotkey)}
}

// FailOpen makes Open return err.
func (f *FakeBackend) FailOpen(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openErr = err
}

// FailNextGrab makes the next Grab fail with the native code.
func (f *FakeBackend) FailNextGrab(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGrab = code
}

// FailNextUngrab makes the next Ungrab fail with the native code.
func (f *FakeBackend) FailNextUngrab(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failUngrab = code
}

// FailNextPoll makes the next Poll return err.
func (f *FakeBackend) FailNextPoll(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPoll = err
}

// Press queues a trigger for hk. It reports false when hk is not grabbed.
func (f *FakeBackend) Press(hk Hotkey) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, grabbed := range f.grabs {
		if grabbed == hk {
			f.events = append(f.events, Event{ID: id})
			return true
		}
	}
	return false
}

// Grabbed lists the combinations currently grabbed.
func (f *FakeBackend) Grabbed() []Hotkey {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Hotkey, 0, len(f.grabs))
	for _, hk := range f.grabs {
		out = append(out, hk)
	}
	return out
}

// Closed reports whether Close has been called.
func (f *FakeBackend) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *FakeBackend) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = true
	return nil
}

func (f *FakeBackend) Grab(mods Modifier, key Key) (NativeID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code := f.failGrab; code != 0 {
		f.failGrab = 0
		return NativeID{}, &APIError{Op: "GrabKey", Code: code}
	}
	hk := New(mods, key)
	for _, grabbed := range f.grabs {
		if grabbed == hk {
			return NativeID{}, &APIError{Op: "GrabKey", Code: FakeBadAccess}
		}
	}
	f.nextID++
	id := NativeID{Code: f.nextID, Mods: uint32(mods)}
	f.grabs[id] = hk
	return id, nil
}

func (f *FakeBackend) Ungrab(id NativeID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code := f.failUngrab; code != 0 {
		f.failUngrab = 0
		return &APIError{Op: "UngrabKey", Code: code}
	}
	if _, ok := f.grabs[id]; !ok {
		return &APIError{Op: "UngrabKey", Code: FakeBadValue}
	}
	delete(f.grabs, id)
	return nil
}

func (f *FakeBackend) Poll() (Event, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failPoll; err != nil {
		f.failPoll = nil
		return Event{}, false, err
	}
	if len(f.events) == 0 {
		return Event{}, false, nil
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, true, nil
}

func (f *FakeBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.grabs = make(map[NativeID]Hotkey)
	return nil
}
