package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestExpiryRegistrySchedulesAndFires(t *testing.T) {
	reg := NewExpiryRegistry()
	defer reg.Stop()

	fired := make(chan struct{})
	reg.Schedule("delete_challenge_1", time.Now().Add(10*time.Millisecond), func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("scheduled function did not fire")
	}

	// Once fired, the timer is gone and cannot be cancelled.
	if reg.Cancel("delete_challenge_1") {
		t.Error("Cancel returned true for an already-fired timer")
	}
}

func TestExpiryRegistryCancel(t *testing.T) {
	reg := NewExpiryRegistry()
	defer reg.Stop()

	var fired int32
	reg.Schedule("delete_challenge_2", time.Now().Add(50*time.Millisecond), func() {
		atomic.AddInt32(&fired, 1)
	})

	if !reg.Cancel("delete_challenge_2") {
		t.Fatal("Cancel returned false for a pending timer")
	}

	time.Sleep(100 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Error("cancelled timer still fired")
	}
}

func TestExpiryRegistryCancelUnknown(t *testing.T) {
	reg := NewExpiryRegistry()
	defer reg.Stop()

	if reg.Cancel("no_such_timer") {
		t.Error("Cancel returned true for an unknown ID")
	}
}

func TestExpiryRegistryReplace(t *testing.T) {
	reg := NewExpiryRegistry()
	defer reg.Stop()

	var first, second int32
	reg.Schedule("delete_challenge_3", time.Now().Add(20*time.Millisecond), func() {
		atomic.AddInt32(&first, 1)
	})
	reg.Schedule("delete_challenge_3", time.Now().Add(20*time.Millisecond), func() {
		atomic.AddInt32(&second, 1)
	})

	time.Sleep(100 * time.Millisecond)
	if atomic.LoadInt32(&first) != 0 {
		t.Error("replaced timer still fired")
	}
	if atomic.LoadInt32(&second) != 1 {
		t.Error("replacement timer did not fire")
	}
}

func TestExpiryRegistryPastTimeFiresImmediately(t *testing.T) {
	reg := NewExpiryRegistry()
	defer reg.Stop()

	fired := make(chan struct{})
	reg.Schedule("delete_challenge_4", time.Now().Add(-time.Minute), func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("past-time schedule did not fire immediately")
	}
}
