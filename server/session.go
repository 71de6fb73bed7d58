/******************************************************************************
 *
 *  Description :
 *
 *    Handling of user sessions/connections. One user may have multiple
 *    sessions. Each session may be subscribed to multiple channels.
 *
 *****************************************************************************/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chatline/relay/server/auth"
	"github.com/chatline/relay/server/logs"
	"github.com/chatline/relay/server/push"
	"github.com/chatline/relay/server/store"
	"github.com/chatline/relay/server/store/types"
)

const (
	// Maximum number of queued outbound messages before the session is
	// considered stuck and dropped.
	sendQueueLimit = 128

	// Idle timeout of a websocket connection. Pong must arrive within it.
	idleSessionTimeout = 55 * time.Second
)

// Session represents a single WS connection. A user may have multiple sessions.
type Session struct {
	// Websocket connection.
	ws *websocket.Conn

	// IP address of the client.
	remoteAddr string

	// ID of the current user or 0.
	uid types.Uid

	// Snapshot of the user's directory record, cached at login.
	user *types.UserSnapshot

	// Authentication level - NONE (unset), ANON, AUTH, ROOT.
	authLvl auth.Level

	// Time when the session received any packet from client.
	lastAction time.Time

	// Outbound messages, buffered.
	// The content must be serialized in format suitable for the session.
	send chan interface{}

	// Channel for shutting down the session, buffer 1.
	// Content in the same format as for 'send'.
	stop chan interface{}

	// detach - channel for detaching session from a channel, buffered.
	detach chan string

	// Set of channel subscriptions, indexed by channel name.
	// Don't access directly. Use getters/setters.
	subs map[string]bool
	// Mutex for subs access: fanout and network goroutines access subs
	// concurrently.
	subsLock sync.RWMutex

	// Session ID.
	sid string
}

func (s *Session) addSub(channel string) {
	s.subsLock.Lock()
	defer s.subsLock.Unlock()

	s.subs[channel] = true
}

func (s *Session) getSub(channel string) bool {
	s.subsLock.RLock()
	defer s.subsLock.RUnlock()

	return s.subs[channel]
}

func (s *Session) delSub(channel string) {
	s.subsLock.Lock()
	defer s.subsLock.Unlock()

	delete(s.subs, channel)
}

func (s *Session) channelsSnapshot() []string {
	s.subsLock.RLock()
	defer s.subsLock.RUnlock()

	channels := make([]string, 0, len(s.subs))
	for ch := range s.subs {
		channels = append(channels, ch)
	}
	return channels
}

// queueOut attempts to send a ServerComMessage to a session; if the send
// buffer is full, timeout is 50 usec.
func (s *Session) queueOut(msg *ServerComMessage) bool {
	if s == nil {
		return true
	}
	if msg.Ctrl != nil {
		statsInc(ctrlCodeToStat(msg.Ctrl.Code), 1)
	}

	select {
	case s.send <- msg:
	case <-time.After(time.Microsecond * 50):
		logs.Err.Println("s.queueOut: timeout", s.sid)
		return false
	}
	return true
}

func (s *Session) serialize(msg *ServerComMessage) interface{} {
	out, _ := json.Marshal(msg)
	return out
}

// cleanUp is called when the session is terminated for any reason.
func (s *Session) cleanUp() {
	globals.sessionStore.Delete(s)

	if !s.uid.IsZero() {
		statsInc("LiveSubscriptions", -len(s.channelsSnapshot()))
		if last := globals.presence.Unregister(s.uid, s); last {
			presenceNotifyPeers(s.uid, "off")
			for _, ch := range s.channelsSnapshot() {
				globals.router.Leave(ch, s.uid)
			}
		}
	}
}

// dispatchRaw: message received, convert bytes to ClientComMessage and dispatch.
func (s *Session) dispatchRaw(raw []byte) {
	var msg ClientComMessage

	toLog := raw
	truncated := ""
	if len(raw) > 512 {
		toLog = raw[:512]
		truncated = "<...>"
	}
	logs.Info.Printf("in: '%s%s' ip='%s' sid='%s' uid='%s'", toLog, truncated, s.remoteAddr, s.sid, s.uid)

	if err := json.Unmarshal(raw, &msg); err != nil {
		logs.Warn.Println("s.dispatch", err, s.sid)
		s.queueOut(ErrMalformed("", "", types.TimeNow()))
		return
	}

	s.dispatch(&msg)
}

func (s *Session) dispatch(msg *ClientComMessage) {
	s.lastAction = types.TimeNow()
	msg.Timestamp = s.lastAction
	msg.AsUser = s.uid.String()
	msg.AuthLvl = int(s.authLvl)

	// Check if user is logged in.
	checkUser := func(m *ClientComMessage, handler func(*ClientComMessage)) func(*ClientComMessage) {
		return func(m *ClientComMessage) {
			if s.uid.IsZero() {
				s.queueOut(ErrAuthRequired(m.Id, "", m.Timestamp))
				return
			}
			handler(m)
		}
	}

	var handler func(*ClientComMessage)
	switch {
	case msg.Login != nil:
		handler = s.login
		msg.Id = msg.Login.Id

	case msg.Init != nil:
		handler = checkUser(msg, s.chatInit)
		msg.Id = msg.Init.Id

	case msg.Pub != nil:
		handler = checkUser(msg, s.publish)
		msg.Id = msg.Pub.Id

	case msg.Read != nil:
		handler = checkUser(msg, s.readReceipt)
		msg.Id = msg.Read.Id

	case msg.Del != nil:
		handler = checkUser(msg, s.delMessage)
		msg.Id = msg.Del.Id

	case msg.Leave != nil:
		handler = checkUser(msg, s.leave)
		msg.Id = msg.Leave.Id

	default:
		// Unknown message.
		s.queueOut(ErrMalformed("", "", msg.Timestamp))
		logs.Warn.Println("s.dispatch: unknown message", s.sid)
		return
	}

	handler(msg)
}

// login authenticates the bearer token, registers presence and re-subscribes
// the session to the channels derived from durable message history.
func (s *Session) login(msg *ClientComMessage) {
	if !s.uid.IsZero() {
		s.queueOut(ErrAlreadyAuthenticated(msg.Id, "", msg.Timestamp))
		return
	}
	if msg.Login.Token == "" {
		s.queueOut(ErrMalformed(msg.Id, "", msg.Timestamp))
		return
	}

	rec, err := globals.auth.Authenticate([]byte(msg.Login.Token))
	if err != nil {
		logs.Warn.Println("s.login: failed", err, s.sid)
		s.queueOut(ErrAuthFailed(msg.Id, "", msg.Timestamp))
		return
	}

	user, err := store.Users.Get(context.Background(), rec.Uid)
	if err != nil {
		// The token is valid but the account is gone.
		logs.Warn.Println("s.login: account unavailable", err, s.sid)
		if errors.Is(err, types.ErrNotFound) {
			s.queueOut(ErrAuthFailed(msg.Id, "", msg.Timestamp))
		} else {
			s.queueOut(decodeStoreError(err, msg.Id, "", msg.Timestamp))
		}
		return
	}

	s.uid = rec.Uid
	s.authLvl = rec.AuthLevel
	snap := user.Snapshot()
	s.user = &snap

	if first := globals.presence.Register(s.uid, s); first {
		presenceNotifyPeers(s.uid, "on")
	}

	// Channel membership is derived from durable history, never from the
	// ephemeral map: a crashed relay must not lose subscriptions.
	if err := s.resubscribe(); err != nil {
		logs.Err.Println("s.login: resubscribe failed", err, s.sid)
	}

	params := map[string]interface{}{
		"user":    s.uid.String(),
		"authlvl": s.authLvl.String(),
	}
	if rec.Lifetime > 0 {
		params["expires"] = msg.Timestamp.Add(rec.Lifetime)
	}
	s.queueOut(NoErrAccepted(msg.Id, "", msg.Timestamp, params))
}

// resubscribe joins the session to a channel per peer present in the user's
// message history.
func (s *Session) resubscribe() error {
	peers, err := store.Messages.Peers(context.Background(), s.uid)
	if err != nil {
		return err
	}

	subscribed := 0
	for i := range peers {
		peer := peers[i].Uid()
		if peer.IsZero() {
			continue
		}
		ch := s.uid.P2PName(peer)
		globals.router.Subscribe(ch, s.uid, peer)
		s.addSub(ch)
		subscribed++
	}
	statsInc("LiveSubscriptions", subscribed)
	return nil
}

// chatInit opens a peer-to-peer channel. The mutual-consent gate runs before
// any subscription or fanout: a one-way follow fails synchronously.
func (s *Session) chatInit(msg *ClientComMessage) {
	peer := types.ParseUid(msg.Init.User)
	if peer.IsZero() || peer == s.uid {
		s.queueOut(ErrMalformed(msg.Id, "", msg.Timestamp))
		return
	}

	if _, err := store.Users.Get(context.Background(), peer); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			s.queueOut(ErrUserNotFound(msg.Id, "", msg.Timestamp))
		} else {
			s.queueOut(decodeStoreError(err, msg.Id, "", msg.Timestamp))
		}
		return
	}

	ok, err := MayExchange(context.Background(), s.uid, peer)
	if err != nil {
		logs.Err.Println("s.chatInit: consent check failed", err, s.sid)
		s.queueOut(ErrUnknown(msg.Id, "", msg.Timestamp))
		return
	}
	if !ok {
		s.queueOut(ErrNotMutual(msg.Id, "", msg.Timestamp))
		return
	}

	ch := s.uid.P2PName(peer)
	globals.router.Subscribe(ch, s.uid, peer)
	s.addSub(ch)
	for _, psess := range globals.presence.SessionsFor(peer) {
		psess.addSub(ch)
	}

	s.queueOut(NoErrParams(msg.Id, ch, msg.Timestamp, map[string]interface{}{
		"channel": ch,
		"online":  globals.presence.IsOnline(peer),
	}))
}

// publish persists one chat message and fans it out: notification record
// first, then live delivery to the receiver's sessions, then an out-of-band
// push receipt. The {ctrl} reply carries delivery status.
func (s *Session) publish(msg *ClientComMessage) {
	peer := types.ParseUid(msg.Pub.User)
	if peer.IsZero() || peer == s.uid || msg.Pub.Content == "" {
		s.queueOut(ErrMalformed(msg.Id, "", msg.Timestamp))
		return
	}
	ch := s.uid.P2PName(peer)

	receiver, err := store.Users.Get(context.Background(), peer)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			s.queueOut(ErrUserNotFound(msg.Id, ch, msg.Timestamp))
		} else {
			s.queueOut(decodeStoreError(err, msg.Id, ch, msg.Timestamp))
		}
		return
	}

	ok, err := MayExchange(context.Background(), s.uid, peer)
	if err != nil {
		logs.Err.Println("s.publish: consent check failed", err, s.sid)
		s.queueOut(ErrUnknown(msg.Id, ch, msg.Timestamp))
		return
	}
	if !ok {
		s.queueOut(ErrNotMutual(msg.Id, ch, msg.Timestamp))
		return
	}

	saved, err := store.Messages.Send(context.Background(), *s.user, receiver.Snapshot(), msg.Pub.Content)
	if err != nil {
		logs.Err.Println("s.publish: save failed", err, s.sid)
		s.queueOut(decodeStoreError(err, msg.Id, ch, msg.Timestamp))
		return
	}
	statsInc("ChatMessagesPersistedTotal", 1)

	globals.router.Subscribe(ch, s.uid, peer)
	s.addSub(ch)

	// Durable notification precedes any live delivery attempt: a dropped
	// connection must not lose the record. Notifications are stored in the
	// clear, so the text is built from the sender's identity; the message
	// body stays in the encrypted store and reaches the two participants
	// only through {data}.
	notice := notifText(s.user)
	if _, err := store.Notifications.Create(context.Background(), receiver.Ref(), *s.user,
		types.NotifMessage, notice,
		types.NotifMetadata{ItemId: saved.Id, ItemType: "message"}); err != nil {
		logs.Err.Println("s.publish: notification save failed", err, s.sid)
	} else {
		statsInc("NotificationsPersistedTotal", 1)
	}

	data := &ServerComMessage{Data: &MsgServerData{
		Topic:     ch,
		From:      s.uid.String(),
		MsgId:     saved.Id,
		Timestamp: saved.CreatedAt,
		Content:   saved.Plain,
	}}
	delivered := deliverToUser(peer, data)
	// Echo to the sender's other sessions so all devices converge.
	data.SkipSid = s.sid
	deliverToUser(s.uid, data)

	push.Push(&push.Receipt{
		To: map[types.Uid]push.Recipient{peer: {Delivered: delivered}},
		Payload: push.Payload{
			What:      "msg",
			From:      s.uid.String(),
			Content:   clipContent(notice),
			ItemId:    saved.Id,
			Timestamp: saved.CreatedAt,
		},
	})

	status := "sent"
	if delivered > 0 {
		status = "delivered"
	}
	s.queueOut(NoErrParams(msg.Id, ch, msg.Timestamp, map[string]interface{}{
		"id":     saved.Id,
		"status": status,
	}))
}

// readReceipt bulk-marks a peer's messages as read and reports the change to
// the peer's live sessions.
func (s *Session) readReceipt(msg *ClientComMessage) {
	peer := types.ParseUid(msg.Read.User)
	if peer.IsZero() || peer == s.uid {
		s.queueOut(ErrMalformed(msg.Id, "", msg.Timestamp))
		return
	}
	ch := s.uid.P2PName(peer)

	count, err := store.Messages.MarkRead(context.Background(), s.uid, peer)
	if err != nil {
		logs.Err.Println("s.readReceipt: failed", err, s.sid)
		s.queueOut(decodeStoreError(err, msg.Id, ch, msg.Timestamp))
		return
	}

	if count > 0 {
		deliverToUser(peer, &ServerComMessage{Info: &MsgServerInfo{
			Topic: ch,
			From:  s.uid.String(),
			What:  "read",
		}})
	}
	s.queueOut(NoErrParams(msg.Id, ch, msg.Timestamp, map[string]interface{}{"count": count}))
}

// delMessage handles the {del} message variants.
func (s *Session) delMessage(msg *ClientComMessage) {
	switch msg.Del.What {
	case "msg":
		if msg.Del.Msg == "" {
			s.queueOut(ErrMalformed(msg.Id, "", msg.Timestamp))
			return
		}
		if err := store.Messages.DeleteForMe(context.Background(), msg.Del.Msg, s.uid); err != nil {
			s.queueOut(decodeStoreError(err, msg.Id, "", msg.Timestamp))
			return
		}
		s.queueOut(NoErr(msg.Id, "", msg.Timestamp))

	case "msgall":
		if msg.Del.Msg == "" {
			s.queueOut(ErrMalformed(msg.Id, "", msg.Timestamp))
			return
		}
		deleted, err := store.Messages.DeleteForEveryone(context.Background(), msg.Del.Msg, s.uid)
		if err != nil {
			s.queueOut(decodeStoreError(err, msg.Id, "", msg.Timestamp))
			return
		}
		// Tell the other participant to reconcile its local copy.
		peer := deleted.Receiver.Uid()
		if peer == s.uid {
			peer = deleted.Sender.Uid()
		}
		deliverToUser(peer, &ServerComMessage{Info: &MsgServerInfo{
			Topic: s.uid.P2PName(peer),
			From:  s.uid.String(),
			What:  "del",
			MsgId: deleted.Id,
		}})
		s.queueOut(NoErr(msg.Id, "", msg.Timestamp))

	case "conv":
		peer := types.ParseUid(msg.Del.User)
		if peer.IsZero() || peer == s.uid {
			s.queueOut(ErrMalformed(msg.Id, "", msg.Timestamp))
			return
		}
		if err := store.Messages.DeleteConversation(context.Background(), s.uid, peer); err != nil {
			s.queueOut(decodeStoreError(err, msg.Id, "", msg.Timestamp))
			return
		}
		// Close the deleter's side of the live channel on all their devices.
		// Other sessions drop the subscription on their own write loop.
		ch := s.uid.P2PName(peer)
		s.delSub(ch)
		for _, sess := range globals.presence.SessionsFor(s.uid) {
			if sess != s && sess.getSub(ch) {
				sess.detach <- ch
			}
		}
		globals.router.Leave(ch, s.uid)
		s.queueOut(NoErr(msg.Id, ch, msg.Timestamp))

	default:
		s.queueOut(ErrMalformed(msg.Id, "", msg.Timestamp))
	}
}

// leave unsubscribes the session from a channel. Other sessions of the same
// user are unaffected.
func (s *Session) leave(msg *ClientComMessage) {
	ch := msg.Leave.Channel
	if !s.getSub(ch) {
		s.queueOut(ErrNotFound(msg.Id, ch, msg.Timestamp))
		return
	}

	s.delSub(ch)
	// Drop channel membership only when no other session of the user holds it.
	stillSubscribed := false
	for _, other := range globals.presence.SessionsFor(s.uid) {
		if other.getSub(ch) {
			stillSubscribed = true
			break
		}
	}
	if !stillSubscribed {
		globals.router.Leave(ch, s.uid)
	}
	s.queueOut(NoErr(msg.Id, ch, msg.Timestamp))
}

// decodeStoreError translates a storage error into a {ctrl} response.
func decodeStoreError(err error, id, topic string, ts time.Time) *ServerComMessage {
	var serr types.StoreError
	if !errors.As(err, &serr) {
		return ErrUnknown(id, topic, ts)
	}

	switch serr {
	case types.ErrNotFound:
		return ErrNotFound(id, topic, ts)
	case types.ErrPermissionDenied:
		return ErrPermissionDenied(id, topic, ts)
	case types.ErrMalformed:
		return ErrMalformed(id, topic, ts)
	default:
		return ErrUnknown(id, topic, ts)
	}
}

// notifText builds the user-facing text of a message notification. The
// message body itself is never used: it exists outside the encrypted store
// only at point of delivery to the two participants.
func notifText(sender *types.UserSnapshot) string {
	name := sender.Name
	if name == "" {
		name = sender.Email
	}
	return "New message from " + name
}

// clipContent trims notification payload to the push size limit.
func clipContent(content string) string {
	if len(content) > push.MaxPayloadLength {
		return content[:push.MaxPayloadLength]
	}
	return content
}

func ctrlCodeToStat(code int) string {
	switch {
	case code < 400:
		return "CtrlCodesTotal2xx"
	case code < 500:
		return "CtrlCodesTotal4xx"
	default:
		return "CtrlCodesTotal5xx"
	}
}
