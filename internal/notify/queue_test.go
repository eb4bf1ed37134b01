package notify

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnqueue_AppendsInOrder(t *testing.T) {
	q := New(time.Minute, testLogger())

	before := q.Len()
	id1 := q.Enqueue("first", SeverityInfo)
	if q.Len() != before+1 {
		t.Fatalf("Len() = %d, want %d", q.Len(), before+1)
	}

	id2 := q.Enqueue("second", SeverityError)

	items := q.List()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID != id1 || items[0].Message != "first" || items[0].Severity != SeverityInfo {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].ID != id2 || items[1].Message != "second" || items[1].Severity != SeverityError {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}

func TestEnqueue_IDsUniqueAndMonotonic(t *testing.T) {
	q := New(time.Minute, testLogger())

	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 100; i++ {
		id := q.Enqueue("msg", SeverityInfo)
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		if id <= prev {
			t.Fatalf("ids not monotonic: %q after %q", id, prev)
		}
		prev = id
	}
}

func TestEnqueue_UnknownSeverityCoerced(t *testing.T) {
	q := New(time.Minute, testLogger())
	q.Enqueue("odd", Severity("fatal"))

	items := q.List()
	if items[0].Severity != SeverityInfo {
		t.Errorf("Severity = %q, want coerced info", items[0].Severity)
	}
}

func TestDismiss_RemovesExactlyOne(t *testing.T) {
	q := New(time.Minute, testLogger())

	id1 := q.Enqueue("one", SeverityInfo)
	id2 := q.Enqueue("two", SeverityInfo)
	id3 := q.Enqueue("three", SeverityInfo)

	q.Dismiss(id2)

	items := q.List()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID != id1 || items[1].ID != id3 {
		t.Errorf("wrong entries survived: %+v", items)
	}

	// Dismissing again must be a silent no-op.
	q.Dismiss(id2)
	if q.Len() != 2 {
		t.Errorf("repeat dismiss changed the queue: Len() = %d", q.Len())
	}

	q.Dismiss("01ARZ3NDEKTSV4RRFFQ69G5FAV") // never enqueued
	if q.Len() != 2 {
		t.Errorf("dismiss of unknown id changed the queue: Len() = %d", q.Len())
	}
}

func TestAutoExpiry(t *testing.T) {
	q := New(20*time.Millisecond, testLogger())
	q.Enqueue("ephemeral", SeveritySuccess)

	deadline := time.After(2 * time.Second)
	for q.Len() != 0 {
		select {
		case <-deadline:
			t.Fatal("notification never expired")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestDismissBeforeExpiry_NoDoubleRemoval(t *testing.T) {
	q := New(20*time.Millisecond, testLogger())

	id := q.Enqueue("gone early", SeveritySuccess)
	q.Enqueue("stays", SeverityInfo)
	q.Dismiss(id)

	// Let the cancelled timer's window pass; firing anyway must be harmless.
	time.Sleep(60 * time.Millisecond)

	items := q.List()
	for _, n := range items {
		if n.ID == id {
			t.Errorf("dismissed notification came back: %+v", n)
		}
	}
}

func TestFlush_DrainsAndCancels(t *testing.T) {
	q := New(20*time.Millisecond, testLogger())

	q.Enqueue("a", SeverityInfo)
	q.Enqueue("b", SeverityWarning)

	items := q.Flush()
	if len(items) != 2 {
		t.Fatalf("Flush() returned %d items, want 2", len(items))
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d after flush, want 0", q.Len())
	}

	// Expiry timers were cancelled; nothing should fire or panic.
	time.Sleep(60 * time.Millisecond)
	if q.Len() != 0 {
		t.Errorf("queue changed after flush: Len() = %d", q.Len())
	}
}

func TestSeverityHelpers(t *testing.T) {
	q := New(time.Minute, testLogger())

	q.Success("s")
	q.Error("e")
	q.Info("i")
	q.Warn("w")

	items := q.List()
	want := []Severity{SeveritySuccess, SeverityError, SeverityInfo, SeverityWarning}
	if len(items) != len(want) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(want))
	}
	for i, sev := range want {
		if items[i].Severity != sev {
			t.Errorf("items[%d].Severity = %q, want %q", i, items[i].Severity, sev)
		}
	}
}
