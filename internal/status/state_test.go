package status

import (
	"testing"
	"time"

	"github.com/matheus3301/zapdesk/internal/bus"
)

func TestTransitions(t *testing.T) {
	m := NewMachine(nil)
	if m.Current() != Starting {
		t.Fatalf("initial = %s", m.Current())
	}
	if err := m.Transition(Live); err != nil {
		t.Fatalf("starting->live: %v", err)
	}
	if err := m.Transition(Reconnecting); err != nil {
		t.Fatalf("live->reconnecting: %v", err)
	}
	if err := m.Transition(Live); err != nil {
		t.Fatalf("reconnecting->live: %v", err)
	}
	if err := m.Transition(Starting); err == nil {
		t.Fatal("live->starting should be rejected")
	}
}

func TestTransitionSelfIsNoop(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("status.", 4)
	defer unsub()

	m := NewMachine(b)
	if err := m.Transition(Live); err != nil {
		t.Fatal(err)
	}
	if err := m.Transition(Live); err != nil {
		t.Fatalf("same-state transition should be accepted: %v", err)
	}

	select {
	case evt := <-ch:
		change := evt.Payload.(Change)
		if change.From != Starting || change.To != Live {
			t.Fatalf("change = %+v", change)
		}
	case <-time.After(time.Second):
		t.Fatal("no change event published")
	}
	select {
	case evt := <-ch:
		t.Fatalf("unexpected second event: %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTrackFollowsAdminSocket(t *testing.T) {
	b := bus.New()
	m := NewMachine(b)
	unsub := Track(m, b)
	defer unsub()

	publish := func(kind, name string) {
		b.Publish(bus.Event{Kind: kind, Timestamp: time.Now(), Payload: name})
	}
	waitFor := func(want State) {
		t.Helper()
		deadline := time.After(time.Second)
		for m.Current() != want {
			select {
			case <-deadline:
				t.Fatalf("state = %s, want %s", m.Current(), want)
			case <-time.After(5 * time.Millisecond):
			}
		}
	}

	publish(bus.KindSocketUp, "admin")
	waitFor(Live)
	publish(bus.KindSocketDown, "admin")
	waitFor(Reconnecting)
	// Per-conversation sockets do not drive the machine.
	publish(bus.KindSocketUp, "thread:5511999999999")
	time.Sleep(20 * time.Millisecond)
	if m.Current() != Reconnecting {
		t.Fatalf("thread socket should be ignored, state = %s", m.Current())
	}
	publish(bus.KindSocketUp, "admin")
	waitFor(Live)
}
