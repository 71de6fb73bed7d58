package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUidTextRoundTrip(t *testing.T) {
	uids := []Uid{1, 0xABCDEF0123456789, 9999999}
	for _, uid := range uids {
		s := uid.String()
		if len(s) != uidBase64Unpadded {
			t.Errorf("Uid(%d).String(): expected %d characters, got %q", uid, uidBase64Unpadded, s)
		}
		if parsed := ParseUid(s); parsed != uid {
			t.Errorf("ParseUid(%q): expected %d, got %d", s, uid, parsed)
		}
	}
}

func TestUidParseInvalid(t *testing.T) {
	for _, s := range []string{"", "short", "waytoolongtobeauid", "***********"} {
		if parsed := ParseUid(s); !parsed.IsZero() {
			t.Errorf("ParseUid(%q): expected zero, got %d", s, parsed)
		}
	}
}

func TestUidJSONRoundTrip(t *testing.T) {
	uid := Uid(112233445566)
	raw, err := json.Marshal(uid)
	if err != nil {
		t.Fatal(err)
	}
	var parsed Uid
	if err = json.Unmarshal(raw, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed != uid {
		t.Errorf("JSON round trip: expected %d, got %d", uid, parsed)
	}
}

func TestP2PNameOrderIndependent(t *testing.T) {
	a := Uid(12345)
	b := Uid(67890)

	ab := a.P2PName(b)
	ba := b.P2PName(a)
	if ab == "" {
		t.Fatal("P2PName returned empty name for valid uids")
	}
	if ab != ba {
		t.Errorf("channel name depends on argument order: %q vs %q", ab, ba)
	}
}

func TestP2PNameZeroUid(t *testing.T) {
	if name := ZeroUid.P2PName(Uid(1)); name != "" {
		t.Errorf("expected empty name with zero uid, got %q", name)
	}
	if name := Uid(1).P2PName(ZeroUid); name != "" {
		t.Errorf("expected empty name with zero peer, got %q", name)
	}
}

func TestParseP2P(t *testing.T) {
	a := Uid(911)
	b := Uid(777)

	u1, u2, err := ParseP2P(a.P2PName(b))
	if err != nil {
		t.Fatal("ParseP2P:", err)
	}
	if (u1 != a || u2 != b) && (u1 != b || u2 != a) {
		t.Errorf("ParseP2P: expected {%d, %d}, got {%d, %d}", a, b, u1, u2)
	}

	if _, _, err = ParseP2P("grp12345"); err == nil {
		t.Error("expected error for non-p2p name")
	}
	if _, _, err = ParseP2P("p2pgarbage"); err == nil {
		t.Error("expected error for malformed name")
	}
}

func TestObjHeaderInitTimes(t *testing.T) {
	var h ObjHeader
	before := TimeNow()
	h.InitTimes()
	after := TimeNow()

	if h.CreatedAt.Before(before) || h.CreatedAt.After(after) {
		t.Errorf("CreatedAt out of range: %v", h.CreatedAt)
	}
	if !h.UpdatedAt.Equal(h.CreatedAt) {
		t.Errorf("UpdatedAt must match CreatedAt on init: %v vs %v", h.UpdatedAt, h.CreatedAt)
	}

	// A second call must not move CreatedAt.
	created := h.CreatedAt
	time.Sleep(2 * time.Millisecond)
	h.InitTimes()
	if !h.CreatedAt.Equal(created) {
		t.Error("InitTimes moved CreatedAt on a second call")
	}
}

func TestChatMessageVisibleTo(t *testing.T) {
	sender := Uid(100)
	receiver := Uid(200)
	msg := ChatMessage{
		Sender:   UserSnapshot{Id: sender.String()},
		Receiver: UserSnapshot{Id: receiver.String()},
	}

	if !msg.VisibleTo(sender) || !msg.VisibleTo(receiver) {
		t.Error("message must be visible to both participants")
	}
	if msg.VisibleTo(Uid(300)) {
		t.Error("message must not be visible to a third party")
	}

	msg.DeletedBySender = true
	if msg.VisibleTo(sender) {
		t.Error("message deleted by sender must not be visible to the sender")
	}
	if !msg.VisibleTo(receiver) {
		t.Error("sender-side deletion must not affect the receiver")
	}
}
