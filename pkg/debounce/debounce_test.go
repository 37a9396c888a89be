package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCallCollapsesBurst(t *testing.T) {
	var calls atomic.Int32
	var last atomic.Int32
	d := New(30 * time.Millisecond)
	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Call(func() {
			calls.Add(1)
			last.Store(v)
		})
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if calls.Load() != 1 {
		t.Errorf("Expected 1 call, got %d", calls.Load())
	}
	if last.Load() != 5 {
		t.Errorf("Expected last scheduled function to run, got %d", last.Load())
	}
	if d.Pending() {
		t.Errorf("Expected nothing pending after firing")
	}
}

func TestCancel(t *testing.T) {
	var calls atomic.Int32
	d := New(20 * time.Millisecond)
	d.Call(func() { calls.Add(1) })
	if !d.Pending() {
		t.Fatalf("Expected pending call")
	}
	d.Cancel()
	time.Sleep(60 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("Expected cancelled call not to run, got %d", calls.Load())
	}
}

func TestSeparatedCallsBothRun(t *testing.T) {
	var calls atomic.Int32
	fn := Func(func() { calls.Add(1) }, 10*time.Millisecond)
	fn()
	time.Sleep(50 * time.Millisecond)
	fn()
	time.Sleep(50 * time.Millisecond)
	if calls.Load() != 2 {
		t.Errorf("Expected 2 calls, got %d", calls.Load())
	}
}
