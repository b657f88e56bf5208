package memory

import "testing"

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	session := store.GetOrCreate("conn-1")
	if session == nil {
		t.Fatalf("expected session")
	}
	if again := store.GetOrCreate("conn-1"); again != session {
		t.Fatalf("expected same session instance")
	}
	if _, ok := store.Get("conn-1"); !ok {
		t.Fatalf("expected session present")
	}

	store.Delete("conn-1")
	if _, ok := store.Get("conn-1"); ok {
		t.Fatalf("expected session removed")
	}
}
