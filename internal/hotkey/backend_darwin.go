//go:build darwin

package hotkey

import (
	"errors"
	"fmt"

	xhotkey "golang.design/x/hotkey"
)

// darwinBackend registers Carbon hotkeys through golang.design/x/hotkey. The
// library needs the process main thread, so the binary's main must run
// through golang.design/x/hotkey/mainthread.
type darwinBackend struct {
	nextID uint32
	grabs  map[uint32]*darwinGrab
	events chan NativeID
}

type darwinGrab struct {
	hk   *xhotkey.Hotkey
	stop chan struct{}
}

func newNativeBackend() Backend {
	return &darwinBackend{
		grabs:  make(map[uint32]*darwinGrab),
		events: make(chan NativeID, queueSize),
	}
}

func (b *darwinBackend) Open() error { return nil }

func (b *darwinBackend) Grab(mods Modifier, key Key) (NativeID, error) {
	if key == keyUnavailable {
		return NativeID{}, &APIError{Op: "RegisterEventHotKey", Err: errors.New("key has no Carbon key code")}
	}

	hk := xhotkey.New(splitModifiers(mods), xhotkey.Key(key))
	if err := hk.Register(); err != nil {
		return NativeID{}, &APIError{Op: "RegisterEventHotKey", Err: err}
	}

	b.nextID++
	id := NativeID{Code: b.nextID}
	g := &darwinGrab{hk: hk, stop: make(chan struct{})}
	b.grabs[id.Code] = g
	go b.forward(id, g)
	return id, nil
}

// forward turns key-up notifications into events for Poll. Triggers that
// arrive while the queue is full are dropped.
func (b *darwinBackend) forward(id NativeID, g *darwinGrab) {
	for {
		select {
		case <-g.stop:
			return
		case _, ok := <-g.hk.Keyup():
			if !ok {
				return
			}
			select {
			case b.events <- id:
			default:
			}
		}
	}
}

func (b *darwinBackend) Ungrab(id NativeID) error {
	g, ok := b.grabs[id.Code]
	if !ok {
		return &APIError{Op: "UnregisterEventHotKey", Err: fmt.Errorf("no hotkey with id %d", id.Code)}
	}
	close(g.stop)
	delete(b.grabs, id.Code)
	if err := g.hk.Unregister(); err != nil {
		return &APIError{Op: "UnregisterEventHotKey", Err: err}
	}
	return nil
}

func (b *darwinBackend) Poll() (Event, bool, error) {
	select {
	case id := <-b.events:
		return Event{ID: id}, true, nil
	default:
		return Event{}, false, nil
	}
}

func (b *darwinBackend) Close() error {
	var errs []error
	for code := range b.grabs {
		if err := b.Ungrab(NativeID{Code: code}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func splitModifiers(mods Modifier) []xhotkey.Modifier {
	var out []xhotkey.Modifier
	for bit := Modifier(1); bit != 0; bit <<= 1 {
		if mods&bit != 0 {
			out = append(out, xhotkey.Modifier(bit))
		}
	}
	return out
}
