package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestAddTimer_FiresOnce(t *testing.T) {
	manager := NewManager()
	defer manager.Stop()

	var fired int32
	manager.AddTimer(50*time.Millisecond, 0, func() {
		atomic.AddInt32(&fired, 1)
	})

	time.Sleep(400 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("Expected one-shot timer to fire once, fired %d times", got)
	}
}

func TestAddTimer_IntervalRepeats(t *testing.T) {
	manager := NewManager()
	defer manager.Stop()

	var fired int32
	id := manager.AddTimer(50*time.Millisecond, 100*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})

	time.Sleep(450 * time.Millisecond)
	manager.RemoveTimer(id)
	if got := atomic.LoadInt32(&fired); got < 2 {
		t.Errorf("Expected interval timer to fire repeatedly, fired %d times", got)
	}
}

func TestRemoveTimer_CancelsPendingTask(t *testing.T) {
	manager := NewManager()
	defer manager.Stop()

	var fired int32
	id := manager.AddTimer(200*time.Millisecond, 0, func() {
		atomic.AddInt32(&fired, 1)
	})
	manager.RemoveTimer(id)

	time.Sleep(500 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 0 {
		t.Errorf("Removed timer must not fire, fired %d times", got)
	}
}

func TestRemoveTimer_UnknownIDIsNoOp(t *testing.T) {
	manager := NewManager()
	defer manager.Stop()

	manager.RemoveTimer(42)

	var fired int32
	manager.AddTimer(50*time.Millisecond, 0, func() {
		atomic.AddInt32(&fired, 1)
	})
	time.Sleep(400 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 1 {
		t.Error("Queue should still work after removing an unknown id")
	}
}

func TestTimersFireInDeadlineOrder(t *testing.T) {
	manager := NewManager()
	defer manager.Stop()

	order := make(chan string, 2)
	manager.AddTimer(250*time.Millisecond, 0, func() { order <- "late" })
	manager.AddTimer(50*time.Millisecond, 0, func() { order <- "early" })

	first := <-order
	second := <-order
	if first != "early" || second != "late" {
		t.Errorf("Expected early before late, got %s then %s", first, second)
	}
}
