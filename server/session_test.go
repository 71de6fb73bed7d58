package main

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/chatline/relay/server/auth"
	"github.com/chatline/relay/server/auth/mock_auth"
	"github.com/chatline/relay/server/store"
	"github.com/chatline/relay/server/store/mock_store"
	"github.com/chatline/relay/server/store/types"
)

// Responses collects everything queued on a session's send channel.
type Responses struct {
	messages []interface{}
}

func (s *Session) testWriteLoop(results *Responses, wg *sync.WaitGroup) {
	for msg := range s.send {
		results.messages = append(results.messages, msg)
	}
	wg.Done()
}

func newTestSession(uid types.Uid) *Session {
	s := &Session{
		sid:    "test-sid-" + uid.String(),
		send:   make(chan interface{}, 10),
		detach: make(chan string, 10),
		subs:   make(map[string]bool),
		uid:    uid,
	}
	if !uid.IsZero() {
		s.authLvl = auth.LevelAuth
		snap := types.UserSnapshot{Id: uid.String(), Email: uid.String() + "@example.com"}
		s.user = &snap
	}
	return s
}

func resetGlobals() {
	globals.sessionStore = NewSessionStore()
	globals.presence = NewPresenceRegistry()
	globals.router = NewChannelRouter()
}

func restoreMappers() {
	store.Users = store.UsersObjMapper{}
	store.Follows = store.FollowsObjMapper{}
	store.Messages = store.MessagesObjMapper{}
	store.Notifications = store.NotificationsObjMapper{}
}

func verifyResponseCodes(r *Responses, codes []int, t *testing.T) {
	t.Helper()
	if len(r.messages) != len(codes) {
		t.Fatalf("responses: expected %d, received %d.", len(codes), len(r.messages))
	}
	for i := 0; i < len(codes); i++ {
		resp := r.messages[i].(*ServerComMessage)
		if resp.Ctrl == nil {
			t.Fatalf("Response %d must contain a ctrl message.", i)
		}
		if resp.Ctrl.Code != codes[i] {
			t.Errorf("Response code: expected %d, got %d", codes[i], resp.Ctrl.Code)
		}
	}
}

func TestDispatchUnauthenticated(t *testing.T) {
	resetGlobals()
	s := newTestSession(types.ZeroUid)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{
		Pub: &MsgClientPub{Id: "1", User: types.Uid(2).String(), Content: "hi"},
	})
	close(s.send)
	wg.Wait()
	verifyResponseCodes(&r, []int{http.StatusUnauthorized}, t)
}

func TestDispatchUnknownPacket(t *testing.T) {
	resetGlobals()
	s := newTestSession(types.Uid(1))
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{})
	close(s.send)
	wg.Wait()
	verifyResponseCodes(&r, []int{http.StatusBadRequest}, t)
}

func TestDispatchLogin(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	uu := mock_store.NewMockUsersPersistenceInterface(ctrl)
	mm := mock_store.NewMockMessagesPersistenceInterface(ctrl)
	aa := mock_auth.NewMockAuthHandler(ctrl)

	uid := types.Uid(1)
	peer := types.Uid(2)
	store.Users = uu
	store.Messages = mm
	globals.auth = aa
	defer func() {
		restoreMappers()
		globals.auth = nil
		ctrl.Finish()
	}()

	token := "<==auth-token==>"
	authRec := &auth.Rec{
		Uid:       uid,
		AuthLevel: auth.LevelAuth,
		Lifetime:  time.Hour,
	}
	aa.EXPECT().Authenticate([]byte(token)).Return(authRec, nil)
	uu.EXPECT().Get(gomock.Any(), uid).Return(&types.User{
		ObjHeader: types.ObjHeader{Id: uid.String()},
		Email:     "alice@example.com",
	}, nil)
	mm.EXPECT().Peers(gomock.Any(), uid).Return([]types.UserSnapshot{
		{Id: peer.String(), Email: "bob@example.com"},
	}, nil)

	s := newTestSession(types.ZeroUid)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Login: &MsgClientLogin{Id: "123", Token: token}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusAccepted}, t)
	resp := r.messages[0].(*ServerComMessage)
	if resp.Ctrl.Id != "123" {
		t.Errorf("Response id: expected '123', found '%s'", resp.Ctrl.Id)
	}
	p := resp.Ctrl.Params.(map[string]interface{})
	if p["user"] != uid.String() {
		t.Errorf("Response user: expected '%s', found '%v'", uid.String(), p["user"])
	}

	if s.uid != uid {
		t.Errorf("Session uid: expected %d, got %d", uid, s.uid)
	}
	if !globals.presence.IsOnline(uid) {
		t.Error("User must be online after login")
	}
	// Channel membership is restored from durable history.
	ch := uid.P2PName(peer)
	if !s.getSub(ch) {
		t.Errorf("Session must be re-subscribed to %s", ch)
	}
	if len(globals.router.Members(ch)) != 2 {
		t.Errorf("Channel %s must have both participants", ch)
	}
}

func TestDispatchLoginBadToken(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	aa := mock_auth.NewMockAuthHandler(ctrl)
	globals.auth = aa
	defer func() {
		globals.auth = nil
		ctrl.Finish()
	}()

	aa.EXPECT().Authenticate(gomock.Any()).Return(nil, types.ErrFailed)

	s := newTestSession(types.ZeroUid)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Login: &MsgClientLogin{Id: "1", Token: "garbage"}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusUnauthorized}, t)
	if !s.uid.IsZero() {
		t.Error("Session must remain anonymous after failed login")
	}
	if globals.presence.IsOnline(s.uid) {
		t.Error("Failed login must not touch presence")
	}
}

func TestDispatchInitNotMutual(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	uu := mock_store.NewMockUsersPersistenceInterface(ctrl)
	ff := mock_store.NewMockFollowsPersistenceInterface(ctrl)

	uid := types.Uid(1)
	peer := types.Uid(2)
	store.Users = uu
	store.Follows = ff
	defer func() {
		restoreMappers()
		ctrl.Finish()
	}()

	uu.EXPECT().Get(gomock.Any(), peer).Return(&types.User{
		ObjHeader: types.ObjHeader{Id: peer.String()},
	}, nil)
	// One-way follow is not enough.
	ff.EXPECT().Exists(gomock.Any(), uid, peer).Return(true, nil)
	ff.EXPECT().Exists(gomock.Any(), peer, uid).Return(false, nil)

	s := newTestSession(uid)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Init: &MsgClientInit{Id: "42", User: peer.String()}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusForbidden}, t)
	resp := r.messages[0].(*ServerComMessage)
	if resp.Ctrl.Text != "not mutual followers" {
		t.Errorf("Response text: expected 'not mutual followers', got '%s'", resp.Ctrl.Text)
	}
	if len(globals.router.Members(uid.P2PName(peer))) != 0 {
		t.Error("Rejected init must not create a channel")
	}
}

func TestDispatchInitUserNotFound(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	uu := mock_store.NewMockUsersPersistenceInterface(ctrl)

	peer := types.Uid(2)
	store.Users = uu
	defer func() {
		restoreMappers()
		ctrl.Finish()
	}()

	uu.EXPECT().Get(gomock.Any(), peer).Return(nil, types.ErrNotFound)

	s := newTestSession(types.Uid(1))
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Init: &MsgClientInit{Id: "42", User: peer.String()}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusNotFound}, t)
	resp := r.messages[0].(*ServerComMessage)
	if resp.Ctrl.Text != "user not found" {
		t.Errorf("Response text: expected 'user not found', got '%s'", resp.Ctrl.Text)
	}
}

func TestDispatchInitMutual(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	uu := mock_store.NewMockUsersPersistenceInterface(ctrl)
	ff := mock_store.NewMockFollowsPersistenceInterface(ctrl)

	uid := types.Uid(1)
	peer := types.Uid(2)
	store.Users = uu
	store.Follows = ff
	defer func() {
		restoreMappers()
		ctrl.Finish()
	}()

	uu.EXPECT().Get(gomock.Any(), peer).Return(&types.User{
		ObjHeader: types.ObjHeader{Id: peer.String()},
	}, nil)
	ff.EXPECT().Exists(gomock.Any(), uid, peer).Return(true, nil)
	ff.EXPECT().Exists(gomock.Any(), peer, uid).Return(true, nil)

	// The peer is online on one session; it must inherit the subscription.
	psess := newTestSession(peer)
	globals.presence.Register(peer, psess)

	s := newTestSession(uid)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Init: &MsgClientInit{Id: "42", User: peer.String()}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	resp := r.messages[0].(*ServerComMessage)
	p := resp.Ctrl.Params.(map[string]interface{})
	ch := uid.P2PName(peer)
	if p["channel"] != ch {
		t.Errorf("Response channel: expected '%s', got '%v'", ch, p["channel"])
	}
	if p["online"] != true {
		t.Error("Peer must be reported online")
	}
	if !s.getSub(ch) || !psess.getSub(ch) {
		t.Error("Both participants' sessions must be subscribed")
	}
}

func TestDispatchPublishOfflineReceiver(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	uu := mock_store.NewMockUsersPersistenceInterface(ctrl)
	ff := mock_store.NewMockFollowsPersistenceInterface(ctrl)
	mm := mock_store.NewMockMessagesPersistenceInterface(ctrl)
	nn := mock_store.NewMockNotificationsPersistenceInterface(ctrl)

	uid := types.Uid(1)
	peer := types.Uid(2)
	store.Users = uu
	store.Follows = ff
	store.Messages = mm
	store.Notifications = nn
	defer func() {
		restoreMappers()
		ctrl.Finish()
	}()

	receiver := &types.User{
		ObjHeader: types.ObjHeader{Id: peer.String()},
		Email:     "bob@example.com",
	}
	uu.EXPECT().Get(gomock.Any(), peer).Return(receiver, nil)
	ff.EXPECT().Exists(gomock.Any(), uid, peer).Return(true, nil)
	ff.EXPECT().Exists(gomock.Any(), peer, uid).Return(true, nil)

	now := types.TimeNow()
	saved := &types.ChatMessage{
		ObjHeader: types.ObjHeader{Id: "msg-id-1", CreatedAt: now},
		Sender:    types.UserSnapshot{Id: uid.String()},
		Receiver:  receiver.Snapshot(),
		Plain:     "hello there",
	}
	mm.EXPECT().Send(gomock.Any(), gomock.Any(), receiver.Snapshot(), "hello there").Return(saved, nil)
	// Notification is persisted even though the receiver is offline. Its
	// text names the sender, never the message body.
	nn.EXPECT().Create(gomock.Any(), receiver.Ref(), gomock.Any(), types.NotifMessage,
		"New message from Alice", types.NotifMetadata{ItemId: "msg-id-1", ItemType: "message"}).
		Return(&types.Notification{}, nil)

	s := newTestSession(uid)
	s.user.Name = "Alice"
	globals.presence.Register(uid, s)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Pub: &MsgClientPub{Id: "7", User: peer.String(), Content: "hello there"}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	resp := r.messages[0].(*ServerComMessage)
	p := resp.Ctrl.Params.(map[string]interface{})
	if p["status"] != "sent" {
		t.Errorf("Delivery status: expected 'sent', got '%v'", p["status"])
	}
	if p["id"] != "msg-id-1" {
		t.Errorf("Message id: expected 'msg-id-1', got '%v'", p["id"])
	}
}

func TestDispatchPublishNotificationExcludesBody(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	uu := mock_store.NewMockUsersPersistenceInterface(ctrl)
	ff := mock_store.NewMockFollowsPersistenceInterface(ctrl)
	mm := mock_store.NewMockMessagesPersistenceInterface(ctrl)
	nn := mock_store.NewMockNotificationsPersistenceInterface(ctrl)

	uid := types.Uid(1)
	peer := types.Uid(2)
	store.Users = uu
	store.Follows = ff
	store.Messages = mm
	store.Notifications = nn
	defer func() {
		restoreMappers()
		ctrl.Finish()
	}()

	const plaintext = "attack at dawn"

	receiver := &types.User{ObjHeader: types.ObjHeader{Id: peer.String()}}
	uu.EXPECT().Get(gomock.Any(), peer).Return(receiver, nil)
	ff.EXPECT().Exists(gomock.Any(), uid, peer).Return(true, nil)
	ff.EXPECT().Exists(gomock.Any(), peer, uid).Return(true, nil)

	saved := &types.ChatMessage{
		ObjHeader: types.ObjHeader{Id: "msg-id-5", CreatedAt: types.TimeNow()},
		Sender:    types.UserSnapshot{Id: uid.String()},
		Receiver:  receiver.Snapshot(),
		Plain:     plaintext,
	}
	mm.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), plaintext).Return(saved, nil)

	var noticed string
	nn.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), types.NotifMessage,
		gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, _ types.UserRef, _ types.UserSnapshot, _, content string, _ types.NotifMetadata) {
			noticed = content
		}).Return(&types.Notification{}, nil)

	s := newTestSession(uid)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Pub: &MsgClientPub{Id: "7", User: peer.String(), Content: plaintext}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	if strings.Contains(noticed, plaintext) {
		t.Errorf("Durable notification must not carry the message body, got %q", noticed)
	}
	if noticed == "" {
		t.Error("Notification text must not be empty")
	}
}

func TestDispatchPublishDelivered(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	uu := mock_store.NewMockUsersPersistenceInterface(ctrl)
	ff := mock_store.NewMockFollowsPersistenceInterface(ctrl)
	mm := mock_store.NewMockMessagesPersistenceInterface(ctrl)
	nn := mock_store.NewMockNotificationsPersistenceInterface(ctrl)

	uid := types.Uid(1)
	peer := types.Uid(2)
	store.Users = uu
	store.Follows = ff
	store.Messages = mm
	store.Notifications = nn
	defer func() {
		restoreMappers()
		ctrl.Finish()
	}()

	receiver := &types.User{ObjHeader: types.ObjHeader{Id: peer.String()}}
	uu.EXPECT().Get(gomock.Any(), peer).Return(receiver, nil)
	ff.EXPECT().Exists(gomock.Any(), uid, peer).Return(true, nil)
	ff.EXPECT().Exists(gomock.Any(), peer, uid).Return(true, nil)

	saved := &types.ChatMessage{
		ObjHeader: types.ObjHeader{Id: "msg-id-2", CreatedAt: types.TimeNow()},
		Sender:    types.UserSnapshot{Id: uid.String()},
		Receiver:  receiver.Snapshot(),
		Plain:     "ping",
	}
	mm.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), "ping").Return(saved, nil)
	nn.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), types.NotifMessage,
		gomock.Any(), gomock.Any()).Return(&types.Notification{}, nil)

	// Receiver online on two devices: both must get a copy.
	p1 := newTestSession(peer)
	p2 := newTestSession(peer)
	globals.presence.Register(peer, p1)
	globals.presence.Register(peer, p2)

	s := newTestSession(uid)
	globals.presence.Register(uid, s)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Pub: &MsgClientPub{Id: "7", User: peer.String(), Content: "ping"}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	resp := r.messages[0].(*ServerComMessage)
	p := resp.Ctrl.Params.(map[string]interface{})
	if p["status"] != "delivered" {
		t.Errorf("Delivery status: expected 'delivered', got '%v'", p["status"])
	}

	for i, psess := range []*Session{p1, p2} {
		select {
		case raw := <-psess.send:
			data := raw.(*ServerComMessage)
			if data.Data == nil {
				t.Fatalf("Receiver session %d: expected {data}", i)
			}
			if data.Data.MsgId != "msg-id-2" || data.Data.Content != "ping" {
				t.Errorf("Receiver session %d: wrong payload %+v", i, data.Data)
			}
		default:
			t.Errorf("Receiver session %d got no message", i)
		}
	}
}

func TestDispatchPublishNotMutualWritesNothing(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	uu := mock_store.NewMockUsersPersistenceInterface(ctrl)
	ff := mock_store.NewMockFollowsPersistenceInterface(ctrl)
	mm := mock_store.NewMockMessagesPersistenceInterface(ctrl)

	uid := types.Uid(1)
	peer := types.Uid(2)
	store.Users = uu
	store.Follows = ff
	// No Send expectation: a write would fail the test.
	store.Messages = mm
	defer func() {
		restoreMappers()
		ctrl.Finish()
	}()

	uu.EXPECT().Get(gomock.Any(), peer).Return(&types.User{
		ObjHeader: types.ObjHeader{Id: peer.String()},
	}, nil)
	ff.EXPECT().Exists(gomock.Any(), uid, peer).Return(false, nil)

	s := newTestSession(uid)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Pub: &MsgClientPub{Id: "9", User: peer.String(), Content: "blocked"}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusForbidden}, t)
}

func TestDispatchReadReceipt(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	mm := mock_store.NewMockMessagesPersistenceInterface(ctrl)

	uid := types.Uid(1)
	peer := types.Uid(2)
	store.Messages = mm
	defer func() {
		restoreMappers()
		ctrl.Finish()
	}()

	mm.EXPECT().MarkRead(gomock.Any(), uid, peer).Return(int64(3), nil)

	psess := newTestSession(peer)
	globals.presence.Register(peer, psess)

	s := newTestSession(uid)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Read: &MsgClientRead{Id: "5", User: peer.String()}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	resp := r.messages[0].(*ServerComMessage)
	p := resp.Ctrl.Params.(map[string]interface{})
	if p["count"] != int64(3) {
		t.Errorf("Read count: expected 3, got %v", p["count"])
	}

	select {
	case raw := <-psess.send:
		info := raw.(*ServerComMessage)
		if info.Info == nil || info.Info.What != "read" {
			t.Errorf("Peer must get {info what=read}, got %+v", info)
		}
	default:
		t.Error("Peer session got no read report")
	}
}

func TestDispatchDeleteForEveryoneByReceiverRejected(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	mm := mock_store.NewMockMessagesPersistenceInterface(ctrl)

	uid := types.Uid(2) // the receiver of the message
	store.Messages = mm
	defer func() {
		restoreMappers()
		ctrl.Finish()
	}()

	mm.EXPECT().DeleteForEveryone(gomock.Any(), "msg-id-3", uid).
		Return(nil, types.ErrPermissionDenied)

	s := newTestSession(uid)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Del: &MsgClientDel{Id: "6", What: "msgall", Msg: "msg-id-3"}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusForbidden}, t)
}

func TestDispatchDeleteForEveryoneNotifiesPeer(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	mm := mock_store.NewMockMessagesPersistenceInterface(ctrl)

	uid := types.Uid(1)
	peer := types.Uid(2)
	store.Messages = mm
	defer func() {
		restoreMappers()
		ctrl.Finish()
	}()

	deleted := &types.ChatMessage{
		ObjHeader:         types.ObjHeader{Id: "msg-id-4"},
		Sender:            types.UserSnapshot{Id: uid.String()},
		Receiver:          types.UserSnapshot{Id: peer.String()},
		DeletedBySender:   true,
		DeletedByReceiver: true,
	}
	mm.EXPECT().DeleteForEveryone(gomock.Any(), "msg-id-4", uid).Return(deleted, nil)

	psess := newTestSession(peer)
	globals.presence.Register(peer, psess)

	s := newTestSession(uid)
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Del: &MsgClientDel{Id: "6", What: "msgall", Msg: "msg-id-4"}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)

	select {
	case raw := <-psess.send:
		info := raw.(*ServerComMessage)
		if info.Info == nil || info.Info.What != "del" || info.Info.MsgId != "msg-id-4" {
			t.Errorf("Peer must get {info what=del}, got %+v", info)
		}
	default:
		t.Error("Peer session got no deletion report")
	}
}

func TestDispatchDeleteConversationDetachesSessions(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	mm := mock_store.NewMockMessagesPersistenceInterface(ctrl)

	uid := types.Uid(1)
	peer := types.Uid(2)
	ch := uid.P2PName(peer)
	store.Messages = mm
	defer func() {
		restoreMappers()
		ctrl.Finish()
	}()

	mm.EXPECT().DeleteConversation(gomock.Any(), uid, peer).Return(nil)

	s := newTestSession(uid)
	s2 := newTestSession(uid)
	globals.presence.Register(uid, s)
	globals.presence.Register(uid, s2)
	globals.router.Subscribe(ch, uid, peer)
	s.addSub(ch)
	s2.addSub(ch)

	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Del: &MsgClientDel{Id: "6", What: "conv", User: peer.String()}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	if s.getSub(ch) {
		t.Error("Deleter's session must drop the channel")
	}
	select {
	case detached := <-s2.detach:
		if detached != ch {
			t.Errorf("Sibling session must be detached from %s, got %s", ch, detached)
		}
	default:
		t.Error("Sibling session got no detach request")
	}
	members := globals.router.Members(ch)
	if len(members) != 1 || members[0] != peer {
		t.Errorf("Channel must retain only the peer, got %v", members)
	}
}

func TestResubscribeSkipsInvalidPeers(t *testing.T) {
	resetGlobals()
	ctrl := gomock.NewController(t)
	mm := mock_store.NewMockMessagesPersistenceInterface(ctrl)

	uid := types.Uid(1)
	peer := types.Uid(2)
	store.Messages = mm
	globals.statsUpdate = make(chan *varUpdate, 16)
	defer func() {
		restoreMappers()
		globals.statsUpdate = nil
		ctrl.Finish()
	}()

	// One valid peer plus a snapshot with an unparsable id.
	mm.EXPECT().Peers(gomock.Any(), uid).Return([]types.UserSnapshot{
		{Id: peer.String()},
		{Id: ""},
	}, nil)

	s := newTestSession(uid)
	if err := s.resubscribe(); err != nil {
		t.Fatalf("resubscribe failed: %v", err)
	}

	if subs := s.channelsSnapshot(); len(subs) != 1 || subs[0] != uid.P2PName(peer) {
		t.Errorf("Expected a single valid subscription, got %v", subs)
	}

	found := false
	for len(globals.statsUpdate) > 0 {
		upd := <-globals.statsUpdate
		if upd.varname == "LiveSubscriptions" {
			found = true
			if upd.count != 1 || !upd.inc {
				t.Errorf("LiveSubscriptions increment: expected 1, got %+v", upd)
			}
		}
	}
	if !found {
		t.Error("Resubscribe must report the subscription count")
	}
}

func TestDispatchLeave(t *testing.T) {
	resetGlobals()
	uid := types.Uid(1)
	peer := types.Uid(2)
	ch := uid.P2PName(peer)

	s := newTestSession(uid)
	globals.presence.Register(uid, s)
	globals.router.Subscribe(ch, uid, peer)
	s.addSub(ch)

	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Leave: &MsgClientLeave{Id: "8", Channel: ch}})
	close(s.send)
	wg.Wait()

	verifyResponseCodes(&r, []int{http.StatusOK}, t)
	if s.getSub(ch) {
		t.Error("Session must be unsubscribed after leave")
	}
	members := globals.router.Members(ch)
	if len(members) != 1 || members[0] != peer {
		t.Errorf("Channel must retain only the peer, got %v", members)
	}
}

func TestDispatchLeaveNotSubscribed(t *testing.T) {
	resetGlobals()
	s := newTestSession(types.Uid(1))
	wg := sync.WaitGroup{}
	r := Responses{}
	wg.Add(1)
	go s.testWriteLoop(&r, &wg)

	s.dispatch(&ClientComMessage{Leave: &MsgClientLeave{Id: "8", Channel: "p2pnosuchchannel"}})
	close(s.send)
	wg.Wait()
	verifyResponseCodes(&r, []int{http.StatusNotFound}, t)
}
