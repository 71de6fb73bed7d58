package store

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/chatline/relay/server/concurrency"
	"github.com/chatline/relay/server/db/mock_adapter"
	t "github.com/chatline/relay/server/store/types"
)

// setupMapperTest swaps the registered adapter for a mock and initializes the
// facade internals the mappers rely on.
func setupMapperTest(tst *testing.T) (*gomock.Controller, *mock_adapter.MockAdapter, func()) {
	ctrl := gomock.NewController(tst)
	a := mock_adapter.NewMockAdapter(ctrl)
	adp = a

	var err error
	if enc, err = NewEncryptionService(testEncryptionKey(32)); err != nil {
		tst.Fatalf("Failed to create encryption service: %v", err)
	}
	if err = uGen.Init(1, testEncryptionKey(16)); err != nil {
		tst.Fatalf("Failed to init uid generator: %v", err)
	}
	cryptoPool = concurrency.NewGoRoutinePool(4)

	return ctrl, a, func() {
		cryptoPool.Stop()
		cryptoPool = nil
		enc = nil
		adp = nil
		ctrl.Finish()
	}
}

func TestMessagesSendEncryptsBeforeSave(tst *testing.T) {
	_, a, teardown := setupMapperTest(tst)
	defer teardown()

	sender := t.UserSnapshot{Id: t.Uid(1).String(), Email: "alice@example.com"}
	receiver := t.UserSnapshot{Id: t.Uid(2).String(), Email: "bob@example.com"}
	plaintext := "hello there"

	var persisted *t.ChatMessage
	a.EXPECT().MessageSave(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, msg *t.ChatMessage) {
			persisted = msg
		}).Return(nil)

	saved, err := Messages.Send(context.Background(), sender, receiver, plaintext)
	if err != nil {
		tst.Fatalf("Send failed: %v", err)
	}

	if persisted == nil {
		tst.Fatal("Send must persist the message")
	}
	if len(persisted.Content.Data) == 0 || len(persisted.Content.Nonce) == 0 {
		tst.Fatal("Persisted content must be sealed")
	}
	if bytes.Contains(persisted.Content.Data, []byte(plaintext)) {
		tst.Error("Ciphertext must not contain the plaintext")
	}
	if plain, err := enc.Decrypt(persisted.Content); err != nil || plain != plaintext {
		tst.Errorf("Persisted content must decrypt to the original: %q, %v", plain, err)
	}

	if saved.Plain != plaintext {
		tst.Errorf("Returned record must echo plaintext, got %q", saved.Plain)
	}
	if saved.Id == "" {
		tst.Error("Saved message must have an id assigned")
	}
	if saved.CreatedAt.IsZero() {
		tst.Error("Saved message must have creation time set")
	}
	if saved.Read {
		tst.Error("New message must be unread")
	}
}

func TestMessagesListDecryptsAndMarksRead(tst *testing.T) {
	_, a, teardown := setupMapperTest(tst)
	defer teardown()

	user := t.Uid(1)
	peer := t.Uid(2)

	seal := func(plain string) t.EncryptedValue {
		content, err := enc.Encrypt(plain)
		if err != nil {
			tst.Fatalf("Failed to seal test content: %v", err)
		}
		return content
	}
	stored := []t.ChatMessage{
		{
			ObjHeader: t.ObjHeader{Id: "m2"},
			Sender:    t.UserSnapshot{Id: peer.String()},
			Receiver:  t.UserSnapshot{Id: user.String()},
			Content:   seal("unread from peer"),
		},
		{
			ObjHeader: t.ObjHeader{Id: "m1"},
			Sender:    t.UserSnapshot{Id: user.String()},
			Receiver:  t.UserSnapshot{Id: peer.String()},
			Content:   seal("own message"),
			Read:      true,
		},
	}

	a.EXPECT().MessageGetBetween(gomock.Any(), user, peer, 1, 20).Return(stored, nil)
	// Bulk mark-read runs in the peer->user direction only.
	a.EXPECT().MessageMarkRead(gomock.Any(), peer, user, gomock.Any()).Return(int64(1), nil)

	msgs, err := Messages.List(context.Background(), user, peer, 1, 20)
	if err != nil {
		tst.Fatalf("List failed: %v", err)
	}
	if len(msgs) != 2 {
		tst.Fatalf("List: expected 2 messages, got %d", len(msgs))
	}

	if msgs[0].Plain != "unread from peer" || msgs[1].Plain != "own message" {
		tst.Errorf("List must decrypt content, got %q, %q", msgs[0].Plain, msgs[1].Plain)
	}
	if !msgs[0].Read || msgs[0].ReadAt == nil {
		tst.Error("Peer's message must be returned as read")
	}
}

func TestMessagesListRetriesTransient(tst *testing.T) {
	_, a, teardown := setupMapperTest(tst)
	defer teardown()

	user := t.Uid(1)
	peer := t.Uid(2)

	gomock.InOrder(
		a.EXPECT().MessageGetBetween(gomock.Any(), user, peer, 1, 20).
			Return(nil, errors.New("connection reset")),
		a.EXPECT().MessageGetBetween(gomock.Any(), user, peer, 1, 20).
			Return([]t.ChatMessage{}, nil),
	)
	a.EXPECT().MessageMarkRead(gomock.Any(), peer, user, gomock.Any()).Return(int64(0), nil)

	if _, err := Messages.List(context.Background(), user, peer, 1, 20); err != nil {
		tst.Fatalf("List must succeed after a transient failure: %v", err)
	}
}

func TestMessagesListTerminalErrorNotRetried(tst *testing.T) {
	_, a, teardown := setupMapperTest(tst)
	defer teardown()

	user := t.Uid(1)
	peer := t.Uid(2)

	// Exactly one call: sentinel errors are terminal.
	a.EXPECT().MessageGetBetween(gomock.Any(), user, peer, 1, 20).
		Return(nil, t.ErrNotFound).Times(1)

	if _, err := Messages.List(context.Background(), user, peer, 1, 20); !errors.Is(err, t.ErrNotFound) {
		tst.Fatalf("List must surface the sentinel error, got %v", err)
	}
}

func TestMessagesDeleteForEveryoneSenderOnly(tst *testing.T) {
	_, a, teardown := setupMapperTest(tst)
	defer teardown()

	sender := t.Uid(1)
	receiver := t.Uid(2)
	stored := &t.ChatMessage{
		ObjHeader: t.ObjHeader{Id: "m1"},
		Sender:    t.UserSnapshot{Id: sender.String()},
		Receiver:  t.UserSnapshot{Id: receiver.String()},
	}

	// The receiver may not delete for everyone; no flags are touched.
	a.EXPECT().MessageGet(gomock.Any(), "m1").Return(stored, nil)
	if _, err := Messages.DeleteForEveryone(context.Background(), "m1", receiver); !errors.Is(err, t.ErrPermissionDenied) {
		tst.Fatalf("DeleteForEveryone by receiver: expected permission error, got %v", err)
	}

	a.EXPECT().MessageGet(gomock.Any(), "m1").Return(stored, nil)
	a.EXPECT().MessageSetDeleted(gomock.Any(), "m1", true, true).Return(nil)
	deleted, err := Messages.DeleteForEveryone(context.Background(), "m1", sender)
	if err != nil {
		tst.Fatalf("DeleteForEveryone by sender failed: %v", err)
	}
	if !deleted.DeletedBySender || !deleted.DeletedByReceiver {
		tst.Error("Both delete flags must be set")
	}
}

func TestMessagesDeleteForMeFlipsOwnFlagOnly(tst *testing.T) {
	_, a, teardown := setupMapperTest(tst)
	defer teardown()

	sender := t.Uid(1)
	receiver := t.Uid(2)
	stored := &t.ChatMessage{
		ObjHeader: t.ObjHeader{Id: "m1"},
		Sender:    t.UserSnapshot{Id: sender.String()},
		Receiver:  t.UserSnapshot{Id: receiver.String()},
	}

	a.EXPECT().MessageGet(gomock.Any(), "m1").Return(stored, nil)
	a.EXPECT().MessageSetDeleted(gomock.Any(), "m1", false, true).Return(nil)
	if err := Messages.DeleteForMe(context.Background(), "m1", receiver); err != nil {
		tst.Fatalf("DeleteForMe failed: %v", err)
	}

	// A third party cannot touch the message at all.
	a.EXPECT().MessageGet(gomock.Any(), "m1").Return(stored, nil)
	if err := Messages.DeleteForMe(context.Background(), "m1", t.Uid(3)); !errors.Is(err, t.ErrNotFound) {
		tst.Fatalf("DeleteForMe by outsider: expected not-found, got %v", err)
	}
}

func TestMessagesChatsDecryptsLastMessage(tst *testing.T) {
	_, a, teardown := setupMapperTest(tst)
	defer teardown()

	user := t.Uid(1)
	peer := t.Uid(2)

	content, err := enc.Encrypt("see you tomorrow")
	if err != nil {
		tst.Fatalf("Failed to seal test content: %v", err)
	}
	summaries := []t.ChatSummary{{
		Peer: t.UserSnapshot{Id: peer.String()},
		LastMessage: &t.ChatMessage{
			ObjHeader: t.ObjHeader{Id: "m1"},
			Content:   content,
		},
		UnreadCount: 2,
	}}

	a.EXPECT().FollowMutual(gomock.Any(), user).Return([]t.Uid{peer}, nil)
	a.EXPECT().MessageChats(gomock.Any(), user, []t.Uid{peer}).Return(summaries, nil)

	chats, err := Messages.Chats(context.Background(), user)
	if err != nil {
		tst.Fatalf("Chats failed: %v", err)
	}
	if len(chats) != 1 {
		tst.Fatalf("Chats: expected 1 summary, got %d", len(chats))
	}
	if chats[0].LastMessage.Plain != "see you tomorrow" {
		tst.Errorf("Last message must be decrypted, got %q", chats[0].LastMessage.Plain)
	}
	if chats[0].UnreadCount != 2 {
		tst.Errorf("Unread count: expected 2, got %d", chats[0].UnreadCount)
	}
}

func TestMessagesChatsNoMutualPeers(tst *testing.T) {
	_, a, teardown := setupMapperTest(tst)
	defer teardown()

	user := t.Uid(1)
	// No MessageChats expectation: with no mutual peers the adapter is not queried.
	a.EXPECT().FollowMutual(gomock.Any(), user).Return(nil, nil)

	chats, err := Messages.Chats(context.Background(), user)
	if err != nil {
		tst.Fatalf("Chats failed: %v", err)
	}
	if chats != nil {
		tst.Errorf("Chats with no mutual peers must be empty, got %v", chats)
	}
}

func TestNotificationsRecipientScoped(tst *testing.T) {
	_, a, teardown := setupMapperTest(tst)
	defer teardown()

	user := t.Uid(2)
	ctx := context.Background()

	// Every query and update runs with the recipient's own uid; there is no
	// way to address another user's notifications through the mapper.
	a.EXPECT().NotifGetAll(gomock.Any(), user, 1, 20).Return([]t.Notification{{}}, nil)
	if notifs, err := Notifications.ListForUser(ctx, user, 1, 20); err != nil || len(notifs) != 1 {
		tst.Fatalf("ListForUser: got %d notifications, err %v", len(notifs), err)
	}

	a.EXPECT().NotifMarkRead(gomock.Any(), user, []string{"n1", "n2"}, gomock.Any()).Return(int64(2), nil)
	if count, err := Notifications.MarkRead(ctx, user, []string{"n1", "n2"}); err != nil || count != 2 {
		tst.Fatalf("MarkRead: got %d, err %v", count, err)
	}

	a.EXPECT().NotifMarkAllRead(gomock.Any(), user, gomock.Any()).Return(int64(3), nil)
	if count, err := Notifications.MarkAllRead(ctx, user); err != nil || count != 3 {
		tst.Fatalf("MarkAllRead: got %d, err %v", count, err)
	}

	a.EXPECT().NotifUnreadCount(gomock.Any(), user).Return(5, nil)
	if count, err := Notifications.UnreadCount(ctx, user); err != nil || count != 5 {
		tst.Fatalf("UnreadCount: got %d, err %v", count, err)
	}
}

func TestNotificationsDeleteForeignNotFound(tst *testing.T) {
	_, a, teardown := setupMapperTest(tst)
	defer teardown()

	user := t.Uid(2)

	// The recipient-scoped filter reports another user's notification as
	// missing rather than revealing its existence.
	a.EXPECT().NotifDelete(gomock.Any(), user, "n9").Return(t.ErrNotFound)
	if err := Notifications.Delete(context.Background(), user, "n9"); !errors.Is(err, t.ErrNotFound) {
		tst.Fatalf("Delete of a foreign notification: expected not-found, got %v", err)
	}

	a.EXPECT().NotifDelete(gomock.Any(), user, "n1").Return(nil)
	if err := Notifications.Delete(context.Background(), user, "n1"); err != nil {
		tst.Fatalf("Delete of own notification failed: %v", err)
	}
}

func TestNotificationsCreatePersistsFirst(tst *testing.T) {
	_, a, teardown := setupMapperTest(tst)
	defer teardown()

	recipient := t.UserRef{Id: t.Uid(2).String(), Email: "bob@example.com"}
	sender := t.UserSnapshot{Id: t.Uid(1).String(), Email: "alice@example.com"}

	var persisted *t.Notification
	a.EXPECT().NotifSave(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, notif *t.Notification) {
			persisted = notif
		}).Return(nil)

	notif, err := Notifications.Create(context.Background(), recipient, sender,
		t.NotifMessage, "hello", t.NotifMetadata{ItemId: "m1", ItemType: "message"})
	if err != nil {
		tst.Fatalf("Create failed: %v", err)
	}

	if persisted != notif {
		tst.Fatal("Create must return the persisted record")
	}
	if notif.Id == "" || notif.CreatedAt.IsZero() {
		tst.Error("Notification must have id and creation time assigned")
	}
	if notif.Recipient != recipient || notif.Type != t.NotifMessage {
		tst.Errorf("Notification fields mismatch: %+v", notif)
	}
	if notif.Read {
		tst.Error("New notification must be unread")
	}
	if notif.Priority != "normal" {
		tst.Errorf("Default priority must be 'normal', got %q", notif.Priority)
	}

	// Storage failure fails the call: nothing to deliver without the record.
	a.EXPECT().NotifSave(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
	if _, err = Notifications.Create(context.Background(), recipient, sender,
		t.NotifMessage, "hello", t.NotifMetadata{}); err == nil {
		tst.Fatal("Create must fail when persistence fails")
	}
}
