package main

import (
	"testing"

	"github.com/chatline/relay/server/store/types"
)

func TestPresenceFirstAndLast(t *testing.T) {
	pr := NewPresenceRegistry()
	uid := types.Uid(1)
	s1 := newTestSession(uid)
	s2 := newTestSession(uid)

	if !pr.Register(uid, s1) {
		t.Error("First session must report the user coming online")
	}
	if pr.Register(uid, s2) {
		t.Error("Second session must not report the user coming online")
	}
	if !pr.IsOnline(uid) {
		t.Error("User with two sessions must be online")
	}

	if pr.Unregister(uid, s1) {
		t.Error("Dropping one of two sessions must not report the user offline")
	}
	if !pr.IsOnline(uid) {
		t.Error("User must still be online on the remaining session")
	}
	if !pr.Unregister(uid, s2) {
		t.Error("Dropping the last session must report the user offline")
	}
	if pr.IsOnline(uid) {
		t.Error("User with no sessions must be offline")
	}
}

func TestPresenceUnknownHandle(t *testing.T) {
	pr := NewPresenceRegistry()
	uid := types.Uid(1)
	s1 := newTestSession(uid)
	s2 := newTestSession(uid)

	if pr.Unregister(uid, s1) {
		t.Error("Unregistering a never-registered session must be a no-op")
	}

	pr.Register(uid, s1)
	if pr.Unregister(uid, s2) {
		t.Error("Unregistering a foreign handle must not affect the user")
	}
	if !pr.IsOnline(uid) {
		t.Error("User must still be online")
	}
	// Double unregister of the same handle.
	pr.Unregister(uid, s1)
	if pr.Unregister(uid, s1) {
		t.Error("Second unregister of the same handle must be a no-op")
	}
}

func TestPresenceSessionsFor(t *testing.T) {
	pr := NewPresenceRegistry()
	uid := types.Uid(1)
	other := types.Uid(2)
	s1 := newTestSession(uid)
	s2 := newTestSession(uid)
	pr.Register(uid, s1)
	pr.Register(uid, s2)

	sessions := pr.SessionsFor(uid)
	if len(sessions) != 2 {
		t.Fatalf("SessionsFor: expected 2 sessions, got %d", len(sessions))
	}
	if pr.SessionsFor(other) != nil {
		t.Error("SessionsFor must return nil for an offline user")
	}
}
