package action

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/petems/hotkeyd/internal/config"
)

func TestRunLogAction(t *testing.T) {
	r := New(zerolog.Nop())
	err := r.Run(context.Background(), config.Binding{Hotkey: "ctrl+l", Action: config.ActionLog})
	if err != nil {
		t.Errorf("Run(log) error = %v", err)
	}
}

func TestRunUnknownAction(t *testing.T) {
	r := New(zerolog.Nop())
	err := r.Run(context.Background(), config.Binding{Hotkey: "ctrl+l", Action: "beep"})
	if err == nil || !strings.Contains(err.Error(), "unknown action") {
		t.Errorf("Run(beep) error = %v, want unknown action", err)
	}
}

func TestRunExec(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	r := New(zerolog.Nop())

	tests := []struct {
		name    string
		binding config.Binding
		wantErr string
	}{
		{
			name:    "success",
			binding: config.Binding{Name: "ok", Action: config.ActionExec, Command: []string{"sh", "-c", "echo hi"}},
		},
		{
			name:    "failure quotes output",
			binding: config.Binding{Name: "bad", Action: config.ActionExec, Command: []string{"sh", "-c", "echo broken >&2; exit 3"}},
			wantErr: "broken",
		},
		{
			name: "timeout",
			binding: config.Binding{
				Name:    "slow",
				Action:  config.ActionExec,
				Command: []string{"sleep", "5"},
				Timeout: config.Duration(50 * time.Millisecond),
			},
			wantErr: "timed out",
		},
		{
			name:    "missing binary",
			binding: config.Binding{Name: "gone", Action: config.ActionExec, Command: []string{"hotkeyd-no-such-binary"}},
			wantErr: "gone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Run(context.Background(), tt.binding)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Run() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Run() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRunClipboard(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard utility available")
	}
	var got string
	r := &runner{
		log:            zerolog.Nop(),
		writeClipboard: func(s string) error { got = s; return nil },
	}

	b := config.Binding{Action: config.ActionClipboard, Text: "2026-01-01"}
	if err := r.Run(context.Background(), b); err != nil {
		t.Fatalf("Run(clipboard) error = %v", err)
	}
	if got != "2026-01-01" {
		t.Errorf("clipboard = %q, want 2026-01-01", got)
	}

	r.writeClipboard = func(string) error { return errors.New("denied") }
	if err := r.Run(context.Background(), b); err == nil {
		t.Error("Run(clipboard) succeeded with a failing clipboard")
	}
}

func TestRunNotify(t *testing.T) {
	var title, message string
	r := &runner{
		log: zerolog.Nop(),
		notify: func(ti, m, _ string) error {
			title, message = ti, m
			return nil
		},
	}

	b := config.Binding{Name: "standup", Hotkey: "ctrl+alt+s", Action: config.ActionNotify, Text: "Stand-up in 5 minutes"}
	if err := r.Run(context.Background(), b); err != nil {
		t.Fatalf("Run(notify) error = %v", err)
	}
	if title != "standup" || message != "Stand-up in 5 minutes" {
		t.Errorf("notification = %q / %q", title, message)
	}

	r.notify = func(string, string, string) error { return errors.New("no notification daemon") }
	if err := r.Run(context.Background(), b); err == nil || !strings.Contains(err.Error(), "notification") {
		t.Errorf("Run(notify) error = %v, want notification failure", err)
	}
}

type recordingRunner struct {
	mu    sync.Mutex
	ran   []string
	block chan struct{}
	seen  chan struct{}
}

func (r *recordingRunner) Run(ctx context.Context, b config.Binding) error {
	r.mu.Lock()
	r.ran = append(r.ran, b.Label())
	r.mu.Unlock()
	if r.seen != nil {
		r.seen <- struct{}{}
	}
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (r *recordingRunner) labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ran...)
}

func TestDispatcherRunsInOrder(t *testing.T) {
	rr := &recordingRunner{seen: make(chan struct{}, 3)}
	d := NewDispatcher(rr, zerolog.Nop(), 4)
	defer d.Stop(context.Background())

	for _, name := range []string{"one", "two", "three"} {
		if !d.Submit(config.Binding{Name: name, Action: config.ActionLog}) {
			t.Fatalf("Submit(%s) rejected", name)
		}
	}
	for i := 0; i < 3; i++ {
		select {
		case <-rr.seen:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for actions")
		}
	}

	got := rr.labels()
	want := []string{"one", "two", "three"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ran %v, want %v", got, want)
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	rr := &recordingRunner{block: make(chan struct{}), seen: make(chan struct{}, 1)}
	d := NewDispatcher(rr, zerolog.Nop(), 1)
	defer d.Stop(context.Background())

	d.Submit(config.Binding{Name: "running", Action: config.ActionLog})
	select {
	case <-rr.seen:
	case <-time.After(2 * time.Second):
		t.Fatal("first action never started")
	}

	if !d.Submit(config.Binding{Name: "queued", Action: config.ActionLog}) {
		t.Fatal("Submit rejected with a free slot")
	}
	if d.Submit(config.Binding{Name: "dropped", Action: config.ActionLog}) {
		t.Error("Submit accepted with a full queue")
	}
	close(rr.block)
}

func TestDispatcherStop(t *testing.T) {
	rr := &recordingRunner{block: make(chan struct{}), seen: make(chan struct{}, 1)}
	d := NewDispatcher(rr, zerolog.Nop(), 2)

	d.Submit(config.Binding{Name: "stuck", Action: config.ActionLog})
	<-rr.seen

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if d.Submit(config.Binding{Name: "late", Action: config.ActionLog}) {
		t.Error("Submit accepted after Stop")
	}
}
