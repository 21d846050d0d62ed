package session

import (
	"sync"
	"testing"
	"time"

	"github.com/ricacasa/concierge/internal/model/conversation"
)

func TestCreateStartsAtMainMenu(t *testing.T) {
	store := NewStore(DefaultTimeout)

	sess := store.Create("guest-1", "Ada")

	if sess.State != conversation.StateMainMenu {
		t.Fatalf("unexpected state: %s", sess.State)
	}
	if len(sess.Context) != 0 {
		t.Fatalf("expected empty context, got %v", sess.Context)
	}
	if sess.DisplayName != "Ada" {
		t.Fatalf("unexpected display name: %s", sess.DisplayName)
	}
}

func TestCreateOverwritesExisting(t *testing.T) {
	store := NewStore(DefaultTimeout)

	store.Create("guest-1", "Ada")
	store.UpdateState("guest-1", conversation.StateAwaitingInput, map[string]string{conversation.ContextInputType: "general_question"})

	sess := store.Create("guest-1", "Ada")
	if sess.State != conversation.StateMainMenu {
		t.Fatalf("recreate kept old state: %s", sess.State)
	}
	if len(sess.Context) != 0 {
		t.Fatalf("recreate kept old context: %v", sess.Context)
	}
}

func TestGetRefreshesActivity(t *testing.T) {
	store := NewStore(DefaultTimeout)
	base := time.Now()
	store.now = func() time.Time { return base }

	store.Create("guest-1", "Ada")

	later := base.Add(10 * time.Minute)
	store.now = func() time.Time { return later }

	sess, ok := store.Get("guest-1")
	if !ok {
		t.Fatal("expected session")
	}
	if !sess.LastActivity.Equal(later) {
		t.Fatalf("activity not refreshed: %v", sess.LastActivity)
	}
}

func TestGetEvictsExpired(t *testing.T) {
	store := NewStore(30 * time.Minute)
	base := time.Now()
	store.now = func() time.Time { return base }

	store.Create("guest-1", "Ada")

	store.now = func() time.Time { return base.Add(30*time.Minute + time.Millisecond) }

	if _, ok := store.Get("guest-1"); ok {
		t.Fatal("expected expired session to be absent")
	}
	// The entry must be physically gone as well.
	if _, ok := store.Peek("guest-1"); ok {
		t.Fatal("expected expired session to be evicted")
	}
}

func TestPeekDoesNotRefresh(t *testing.T) {
	store := NewStore(30 * time.Minute)
	base := time.Now()
	store.now = func() time.Time { return base }

	store.Create("guest-1", "Ada")

	store.now = func() time.Time { return base.Add(10 * time.Minute) }
	sess, ok := store.Peek("guest-1")
	if !ok {
		t.Fatal("expected session")
	}
	if !sess.LastActivity.Equal(base) {
		t.Fatalf("peek refreshed activity: %v", sess.LastActivity)
	}

	// A peek-only client must not keep the session alive.
	store.now = func() time.Time { return base.Add(30*time.Minute + time.Second) }
	if _, ok := store.Peek("guest-1"); ok {
		t.Fatal("expected session to expire despite earlier peek")
	}
}

func TestUpdateStateMergesContext(t *testing.T) {
	store := NewStore(DefaultTimeout)
	store.Create("guest-1", "Ada")

	store.UpdateState("guest-1", conversation.StateAwaitingInput, map[string]string{
		conversation.ContextInputType:      "special_request",
		conversation.ContextSelectedOption: "special_occasion",
	})
	sess, ok := store.UpdateState("guest-1", conversation.StateMainMenu, map[string]string{
		conversation.ContextInputType: "general_question",
	})
	if !ok {
		t.Fatal("expected session")
	}

	if sess.State != conversation.StateMainMenu {
		t.Fatalf("unexpected state: %s", sess.State)
	}
	if sess.Context[conversation.ContextInputType] != "general_question" {
		t.Fatalf("patch did not overwrite key: %v", sess.Context)
	}
	if sess.Context[conversation.ContextSelectedOption] != "special_occasion" {
		t.Fatalf("unrelated key lost: %v", sess.Context)
	}
}

func TestUpdateStateMissingSessionIsNoop(t *testing.T) {
	store := NewStore(DefaultTimeout)

	if _, ok := store.UpdateState("ghost", conversation.StateMainMenu, nil); ok {
		t.Fatal("expected no-op for missing session")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := NewStore(DefaultTimeout)
	store.Create("guest-1", "Ada")

	store.Delete("guest-1")
	store.Delete("guest-1")

	if _, ok := store.Peek("guest-1"); ok {
		t.Fatal("expected session gone")
	}
}

func TestSweepSkipsRefreshedSession(t *testing.T) {
	store := NewStore(30 * time.Minute)
	base := time.Now()
	store.now = func() time.Time { return base }

	store.Create("guest-1", "Ada")

	// Guest stays active, then the timer scheduled at create fires.
	store.now = func() time.Time { return base.Add(20 * time.Minute) }
	if _, ok := store.Get("guest-1"); !ok {
		t.Fatal("expected session")
	}

	store.now = func() time.Time { return base.Add(30 * time.Minute) }
	store.sweep("guest-1")

	if _, ok := store.Peek("guest-1"); !ok {
		t.Fatal("sweep evicted a session the guest kept alive")
	}
}

func TestSweepEvictsIdleSession(t *testing.T) {
	store := NewStore(30 * time.Minute)
	base := time.Now()
	store.now = func() time.Time { return base }

	store.Create("guest-1", "Ada")

	store.now = func() time.Time { return base.Add(30 * time.Minute) }
	store.sweep("guest-1")

	if _, ok := store.Peek("guest-1"); ok {
		t.Fatal("expected idle session to be swept")
	}
}

func TestCreateCopyIsDetachedFromStore(t *testing.T) {
	store := NewStore(DefaultTimeout)

	created := store.Create("guest-1", "Ada")
	store.UpdateState("guest-1", conversation.StateAwaitingInput, map[string]string{conversation.ContextInputType: "general_question"})

	if created.State != conversation.StateMainMenu {
		t.Fatalf("returned copy mutated by later update: %s", created.State)
	}
	if len(created.Context) != 0 {
		t.Fatalf("returned copy shares context with store: %v", created.Context)
	}
}

func TestConcurrentSameIDOperations(t *testing.T) {
	store := NewStore(DefaultTimeout)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Create("guest-1", "Ada")
		}()
		go func() {
			defer wg.Done()
			store.UpdateState("guest-1", conversation.StateAwaitingInput, map[string]string{conversation.ContextInputType: "general_question"})
		}()
	}
	wg.Wait()

	if _, ok := store.Peek("guest-1"); !ok {
		t.Fatal("session missing after concurrent operations")
	}
}

func TestAllSkipsExpired(t *testing.T) {
	store := NewStore(30 * time.Minute)
	base := time.Now()
	store.now = func() time.Time { return base }

	store.Create("guest-1", "Ada")
	store.now = func() time.Time { return base.Add(20 * time.Minute) }
	store.Create("guest-2", "Grace")

	store.now = func() time.Time { return base.Add(40 * time.Minute) }
	sessions := store.All()

	if len(sessions) != 1 {
		t.Fatalf("expected one live session, got %d", len(sessions))
	}
	if sessions[0].ID != "guest-2" {
		t.Fatalf("unexpected survivor: %s", sessions[0].ID)
	}
}
