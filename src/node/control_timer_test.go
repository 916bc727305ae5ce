package node

import (
	"testing"
	"time"
)

func TestControlTimerTicks(t *testing.T) {
	timer := NewControlTimer(func(d time.Duration) <-chan time.Time {
		return time.After(d)
	})

	go timer.Run(time.Millisecond)
	defer timer.Shutdown()

	for i := 0; i < 3; i++ {
		select {
		case <-timer.tickCh:
		case <-time.After(time.Second):
			t.Fatalf("no tick %d within a second", i)
		}
		timer.reset(time.Millisecond)
	}
}

func TestControlTimerReset(t *testing.T) {
	timer := NewControlTimer(func(d time.Duration) <-chan time.Time {
		return time.After(d)
	})

	go timer.Run(time.Hour)
	defer timer.Shutdown()

	// The hour-long initial interval is preempted by a short reset.
	timer.reset(time.Millisecond)

	select {
	case <-timer.tickCh:
	case <-time.After(time.Second):
		t.Fatal("reset interval did not fire")
	}
}

func TestControlTimerShutdownUnblocksTick(t *testing.T) {
	timer := NewControlTimer(func(d time.Duration) <-chan time.Time {
		return time.After(d)
	})

	done := make(chan struct{})
	go func() {
		// Nobody consumes tickCh; Shutdown must still unblock the loop.
		timer.Run(time.Millisecond)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	timer.Shutdown()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not exit after Shutdown")
	}
}
