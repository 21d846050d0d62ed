package queue

import "testing"

func TestAddAssignsIDAndTimestamp(t *testing.T) {
	q := New()

	e := q.Add(Entry{ParticipantID: "guest-1", Kind: KindInput, Body: "need a cot"})

	if e.ID == "" {
		t.Fatal("expected generated id")
	}
	if e.ReceivedAt.IsZero() {
		t.Fatal("expected timestamp")
	}
}

func TestEntriesPreservesOrder(t *testing.T) {
	q := New()
	q.Add(Entry{ParticipantID: "a", Kind: KindInput, Body: "first"})
	q.Add(Entry{ParticipantID: "b", Kind: KindWaiting, Body: "second"})

	got := q.Entries()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Body != "first" || got[1].Body != "second" {
		t.Fatalf("entries out of order: %v", got)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	q := New()
	q.Add(Entry{ParticipantID: "a", Body: "original"})

	snapshot := q.Entries()
	snapshot[0].Body = "mutated"

	if q.Entries()[0].Body != "original" {
		t.Fatal("snapshot mutation leaked into the queue")
	}
}
