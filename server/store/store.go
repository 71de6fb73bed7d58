// Package store provides methods for registering and accessing database adapters.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/chatline/relay/server/concurrency"
	adapter "github.com/chatline/relay/server/db"
	t "github.com/chatline/relay/server/store/types"
)

var adp adapter.Adapter
var availableAdapters = make(map[string]adapter.Adapter)

// Unique ID generator.
var uGen t.UidGenerator

// Content encryption at rest.
var enc *EncryptionService

// Bounded worker pool for bulk decryption so CPU-bound work stays off the
// connection-handling goroutines.
var cryptoPool *concurrency.GoRoutinePool

const (
	// Timeout of a single storage or social-graph round trip.
	storeTimeout = 3 * time.Second
	// How many times an idempotent read is re-issued on transient failure.
	// Writes are never blindly retried: a retried message insert without a
	// dedup key would produce duplicate sends.
	maxReadAttempts = 3
	// Number of goroutines in the decryption pool.
	cryptoWorkers = 16
)

type configType struct {
	// 16-byte XTEA key used to initialize types.UidGenerator.
	UidKey []byte `json:"uid_key"`
	// AES key (16, 24 or 32 bytes) for message content encryption at rest.
	EncryptionKey []byte `json:"encryption_key"`
	// Maximum number of results to return from adapter.
	MaxResults int `json:"max_results"`
	// DB adapter name to use. Should be one of those specified in `Adapters`.
	UseAdapter string `json:"use_adapter"`
	// Configurations for individual adapters.
	Adapters map[string]json.RawMessage `json:"adapters"`
}

func openAdapter(workerId int, jsonconf json.RawMessage) error {
	var config configType
	if err := json.Unmarshal(jsonconf, &config); err != nil {
		return errors.New("store: failed to parse config: " + err.Error() + "(" + string(jsonconf) + ")")
	}

	if adp == nil {
		if len(config.UseAdapter) > 0 {
			// Adapter name specified explicitly.
			if ad, ok := availableAdapters[config.UseAdapter]; ok {
				adp = ad
			} else {
				return errors.New("store: " + config.UseAdapter + " adapter is not available in this binary")
			}
		} else if len(availableAdapters) == 1 {
			// Default to the only entry in availableAdapters.
			for _, v := range availableAdapters {
				adp = v
			}
		} else {
			return errors.New("store: db adapter is not specified. Please set `store_config.use_adapter` in the config file")
		}
	}

	if adp.IsOpen() {
		return errors.New("store: connection is already opened")
	}

	// Initialize snowflake.
	if workerId < 0 || workerId > 1023 {
		return errors.New("store: invalid worker ID")
	}
	if err := uGen.Init(uint(workerId), config.UidKey); err != nil {
		return errors.New("store: failed to init snowflake: " + err.Error())
	}

	var err error
	if enc, err = NewEncryptionService(config.EncryptionKey); err != nil {
		return errors.New("store: " + err.Error())
	}

	if err = adp.SetMaxResults(config.MaxResults); err != nil {
		return err
	}

	var adapterConfig json.RawMessage
	if config.Adapters != nil {
		adapterConfig = config.Adapters[adp.GetName()]
	}

	return adp.Open(adapterConfig)
}

// PersistentStorageInterface defines methods used for interaction with persistent storage.
type PersistentStorageInterface interface {
	Open(workerId int, jsonconf json.RawMessage) error
	Close() error
	IsOpen() bool
	GetAdapterName() string
	InitDb(jsonconf json.RawMessage, reset bool) error
	GetUid() t.Uid
	GetUidString() string
	DbStats() func() interface{}
}

// Store is the main object for interacting with persistent storage.
var Store PersistentStorageInterface

type storeObj struct{}

// Open initializes the persistence system. Adapter holds a connection pool
// for a database instance.
//
//	workerId - snowflake worker id of this process
//	jsonconf - configuration string
func (storeObj) Open(workerId int, jsonconf json.RawMessage) error {
	if err := openAdapter(workerId, jsonconf); err != nil {
		return err
	}
	cryptoPool = concurrency.NewGoRoutinePool(cryptoWorkers)
	return nil
}

// Close terminates connection to persistent storage.
func (storeObj) Close() error {
	if cryptoPool != nil {
		cryptoPool.Stop()
		cryptoPool = nil
	}
	if adp.IsOpen() {
		return adp.Close()
	}
	return nil
}

// IsOpen checks if persistent storage connection has been initialized.
func (storeObj) IsOpen() bool {
	if adp != nil {
		return adp.IsOpen()
	}
	return false
}

// GetAdapterName returns the name of the current adapter.
func (storeObj) GetAdapterName() string {
	if adp != nil {
		return adp.GetName()
	}
	return ""
}

// InitDb creates and configures a new database instance.
func (s storeObj) InitDb(jsonconf json.RawMessage, reset bool) error {
	if !s.IsOpen() {
		if err := openAdapter(1, jsonconf); err != nil {
			return err
		}
	}
	return adp.CreateDb(reset)
}

// GetUid generates a unique ID suitable for use as a primary key.
func (storeObj) GetUid() t.Uid {
	return uGen.Get()
}

// GetUidString generates a unique ID in string format.
func (storeObj) GetUidString() string {
	return uGen.GetStr()
}

// DbStats returns a callback returning db connection stats object.
func (s storeObj) DbStats() func() interface{} {
	if !s.IsOpen() {
		return nil
	}
	return func() interface{} {
		return adp.Stats()
	}
}

// RegisterAdapter makes a persistence adapter available.
// If Register is called twice or if the adapter is nil, it panics.
func RegisterAdapter(a adapter.Adapter) {
	if a == nil {
		panic("store: Register adapter is nil")
	}

	adapterName := a.GetName()
	if _, ok := availableAdapters[adapterName]; ok {
		panic("store: adapter '" + adapterName + "' is already registered")
	}
	availableAdapters[adapterName] = a
}

// withTimeout derives a deadline-bound context for one storage round trip.
func withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, storeTimeout)
}

// isTransient tells a transient storage failure (timeout, broken connection)
// from a terminal one. Sentinel store errors are terminal by definition.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var serr t.StoreError
	return !errors.As(err, &serr)
}

// readRetry re-issues an idempotent read a bounded number of times on
// transient failure.
func readRetry(fn func() error) error {
	var err error
	for i := 0; i < maxReadAttempts; i++ {
		if err = fn(); !isTransient(err) {
			break
		}
	}
	return err
}

// UsersPersistenceInterface is an interface which defines read access to the
// external user directory.
type UsersPersistenceInterface interface {
	Get(ctx context.Context, uid t.Uid) (*t.User, error)
	GetByEmail(ctx context.Context, email string) (*t.User, error)
}

// UsersObjMapper is a read-only mapper of the external user directory.
type UsersObjMapper struct{}

// Users is a singleton ancor object for the user directory.
var Users UsersPersistenceInterface

// Get loads a user record by id.
func (UsersObjMapper) Get(ctx context.Context, uid t.Uid) (*t.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user *t.User
	err := readRetry(func() error {
		var err error
		user, err = adp.UserGet(ctx, uid)
		return err
	})
	return user, err
}

// GetByEmail loads a user record by email, case-insensitive.
func (UsersObjMapper) GetByEmail(ctx context.Context, email string) (*t.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user *t.User
	err := readRetry(func() error {
		var err error
		user, err = adp.UserGetByEmail(ctx, email)
		return err
	})
	return user, err
}

// FollowsPersistenceInterface is an interface which defines read access to the
// external social graph.
type FollowsPersistenceInterface interface {
	Exists(ctx context.Context, follower, following t.Uid) (bool, error)
	Mutual(ctx context.Context, user t.Uid) ([]t.Uid, error)
}

// FollowsObjMapper is a read-only mapper of the external social graph.
type FollowsObjMapper struct{}

// Follows is a singleton ancor object for the social graph.
var Follows FollowsPersistenceInterface

// Exists checks for a directed follow edge follower->following.
func (FollowsObjMapper) Exists(ctx context.Context, follower, following t.Uid) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var ok bool
	err := readRetry(func() error {
		var err error
		ok, err = adp.FollowExists(ctx, follower, following)
		return err
	})
	return ok, err
}

// Mutual returns ids of the user's mutual-follow peers.
func (FollowsObjMapper) Mutual(ctx context.Context, user t.Uid) ([]t.Uid, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var peers []t.Uid
	err := readRetry(func() error {
		var err error
		peers, err = adp.FollowMutual(ctx, user)
		return err
	})
	return peers, err
}

// MessagesPersistenceInterface is an interface which defines methods for
// persistent storage of messages.
type MessagesPersistenceInterface interface {
	Send(ctx context.Context, sender, receiver t.UserSnapshot, plaintext string) (*t.ChatMessage, error)
	List(ctx context.Context, user, peer t.Uid, page, pageSize int) ([]t.ChatMessage, error)
	MarkRead(ctx context.Context, user, peer t.Uid) (int64, error)
	DeleteForMe(ctx context.Context, msgId string, user t.Uid) error
	DeleteForEveryone(ctx context.Context, msgId string, user t.Uid) (*t.ChatMessage, error)
	DeleteConversation(ctx context.Context, user, peer t.Uid) error
	Peers(ctx context.Context, user t.Uid) ([]t.UserSnapshot, error)
	Chats(ctx context.Context, user t.Uid) ([]t.ChatSummary, error)
}

// MessagesObjMapper is a mapper for the encrypted message store.
type MessagesObjMapper struct{}

// Messages is a singleton ancor object for message persistence.
var Messages MessagesPersistenceInterface

// Send encrypts plaintext and persists it as a single message record. Callers
// must have already verified consent between the two participants. The
// returned record carries ciphertext only; plaintext is echoed back in the
// transient Plain field for delivery to the participants.
func (MessagesObjMapper) Send(ctx context.Context, sender, receiver t.UserSnapshot, plaintext string) (*t.ChatMessage, error) {
	content, err := enc.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}

	msg := &t.ChatMessage{
		Sender:   sender,
		Receiver: receiver,
		Content:  content,
	}
	msg.SetUid(Store.GetUid())
	msg.InitTimes()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// Single transactional write, no retry: re-issuing the insert would
	// duplicate the message.
	if err = adp.MessageSave(ctx, msg); err != nil {
		return nil, err
	}

	msg.Plain = plaintext
	return msg, nil
}

// List returns one page of messages between user and peer which the user has
// not deleted, newest first, decrypted. As a side effect, all unread messages
// flowing peer->user are marked read in a single round trip.
func (MessagesObjMapper) List(ctx context.Context, user, peer t.Uid, page, pageSize int) ([]t.ChatMessage, error) {
	rctx, cancel := withTimeout(ctx)
	defer cancel()

	var msgs []t.ChatMessage
	err := readRetry(func() error {
		var err error
		msgs, err = adp.MessageGetBetween(rctx, user, peer, page, pageSize)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err = decryptAll(msgs); err != nil {
		return nil, err
	}

	// Bulk read-marking is idempotent, safe to re-issue on transient failure.
	now := t.TimeNow()
	wctx, cancel2 := withTimeout(ctx)
	defer cancel2()
	if _, err = adp.MessageMarkRead(wctx, peer, user, now); err != nil {
		return nil, err
	}
	for i := range msgs {
		if msgs[i].Sender.Id == peer.String() && !msgs[i].Read {
			msgs[i].Read = true
			msgs[i].ReadAt = &now
		}
	}

	return msgs, nil
}

// MarkRead marks all unread messages sent by peer to user as read. Returns
// the number of messages updated.
func (MessagesObjMapper) MarkRead(ctx context.Context, user, peer t.Uid) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return adp.MessageMarkRead(ctx, peer, user, t.TimeNow())
}

// DeleteForMe flips the caller's soft-delete flag of a single message. The
// other participant's view of the message is unaffected.
func (m MessagesObjMapper) DeleteForMe(ctx context.Context, msgId string, user t.Uid) error {
	msg, err := m.get(ctx, msgId)
	if err != nil {
		return err
	}

	us := user.String()
	var forSender, forReceiver bool
	switch us {
	case msg.Sender.Id:
		forSender = true
	case msg.Receiver.Id:
		forReceiver = true
	default:
		return t.ErrNotFound
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return adp.MessageSetDeleted(ctx, msgId, forSender, forReceiver)
}

// DeleteForEveryone flips both soft-delete flags. Only the sender may do this.
// Returns the affected message so the caller can notify the receiver.
func (m MessagesObjMapper) DeleteForEveryone(ctx context.Context, msgId string, user t.Uid) (*t.ChatMessage, error) {
	msg, err := m.get(ctx, msgId)
	if err != nil {
		return nil, err
	}

	if msg.Sender.Id != user.String() {
		return nil, t.ErrPermissionDenied
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()
	if err = adp.MessageSetDeleted(ctx, msgId, true, true); err != nil {
		return nil, err
	}

	msg.DeletedBySender = true
	msg.DeletedByReceiver = true
	return msg, nil
}

// DeleteConversation flips the caller's delete flag across the whole
// user<->peer thread.
func (MessagesObjMapper) DeleteConversation(ctx context.Context, user, peer t.Uid) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return adp.MessageDeleteConversation(ctx, user, peer)
}

// Peers returns snapshots of everyone the user has durable message history
// with. Channel re-subscription on reconnect is derived from this, never from
// ephemeral state.
func (MessagesObjMapper) Peers(ctx context.Context, user t.Uid) ([]t.UserSnapshot, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var peers []t.UserSnapshot
	err := readRetry(func() error {
		var err error
		peers, err = adp.MessagePeers(ctx, user)
		return err
	})
	return peers, err
}

// Chats returns conversation summaries for each of the user's mutual-follow
// peers: latest message (decrypted) plus unread count.
func (MessagesObjMapper) Chats(ctx context.Context, user t.Uid) ([]t.ChatSummary, error) {
	mutual, err := Follows.Mutual(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(mutual) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var chats []t.ChatSummary
	err = readRetry(func() error {
		var err error
		chats, err = adp.MessageChats(ctx, user, mutual)
		return err
	})
	if err != nil {
		return nil, err
	}

	for i := range chats {
		if last := chats[i].LastMessage; last != nil {
			if last.Plain, err = enc.Decrypt(last.Content); err != nil {
				return nil, err
			}
		}
	}
	return chats, nil
}

// get is a single-message fetch shared by the delete operations.
func (MessagesObjMapper) get(ctx context.Context, msgId string) (*t.ChatMessage, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var msg *t.ChatMessage
	err := readRetry(func() error {
		var err error
		msg, err = adp.MessageGet(ctx, msgId)
		return err
	})
	return msg, err
}

// decryptAll runs per-message decryption on the shared bounded pool and
// waits for completion. The first failure wins.
func decryptAll(msgs []t.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	wg.Add(len(msgs))
	for i := range msgs {
		msg := &msgs[i]
		cryptoPool.Schedule(func() {
			defer wg.Done()
			plain, err := enc.Decrypt(msg.Content)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			msg.Plain = plain
		})
	}
	wg.Wait()

	return firstErr
}

// NotificationsPersistenceInterface is an interface which defines methods for
// persistent storage of notifications.
type NotificationsPersistenceInterface interface {
	Create(ctx context.Context, recipient t.UserRef, sender t.UserSnapshot,
		notifType, content string, meta t.NotifMetadata) (*t.Notification, error)
	ListForUser(ctx context.Context, user t.Uid, page, pageSize int) ([]t.Notification, error)
	MarkRead(ctx context.Context, user t.Uid, ids []string) (int64, error)
	MarkAllRead(ctx context.Context, user t.Uid) (int64, error)
	Delete(ctx context.Context, user t.Uid, id string) error
	UnreadCount(ctx context.Context, user t.Uid) (int, error)
}

// NotificationsObjMapper is a mapper for durable notifications.
type NotificationsObjMapper struct{}

// Notifications is a singleton ancor object for notification persistence.
var Notifications NotificationsPersistenceInterface

// Create persists a new notification record. Persistence always precedes any
// live-delivery attempt: a failed push must never lose the record.
func (NotificationsObjMapper) Create(ctx context.Context, recipient t.UserRef, sender t.UserSnapshot,
	notifType, content string, meta t.NotifMetadata) (*t.Notification, error) {

	notif := &t.Notification{
		Recipient: recipient,
		Sender:    sender,
		Type:      notifType,
		Content:   content,
		Metadata:  meta,
		Priority:  "normal",
	}
	notif.SetUid(Store.GetUid())
	notif.InitTimes()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := adp.NotifSave(ctx, notif); err != nil {
		return nil, err
	}
	return notif, nil
}

// ListForUser returns one page of the recipient's notifications, newest first.
func (NotificationsObjMapper) ListForUser(ctx context.Context, user t.Uid, page, pageSize int) ([]t.Notification, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var notifs []t.Notification
	err := readRetry(func() error {
		var err error
		notifs, err = adp.NotifGetAll(ctx, user, page, pageSize)
		return err
	})
	return notifs, err
}

// MarkRead marks the listed notifications read. Ids belonging to other
// recipients are silently skipped by the recipient-scoped filter.
func (NotificationsObjMapper) MarkRead(ctx context.Context, user t.Uid, ids []string) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return adp.NotifMarkRead(ctx, user, ids, t.TimeNow())
}

// MarkAllRead marks every unread notification of the recipient as read.
func (NotificationsObjMapper) MarkAllRead(ctx context.Context, user t.Uid) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return adp.NotifMarkAllRead(ctx, user, t.TimeNow())
}

// Delete removes a notification owned by the recipient. Deleting another
// user's notification fails with ErrNotFound.
func (NotificationsObjMapper) Delete(ctx context.Context, user t.Uid, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return adp.NotifDelete(ctx, user, id)
}

// UnreadCount returns the number of the recipient's unread notifications.
func (NotificationsObjMapper) UnreadCount(ctx context.Context, user t.Uid) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	err := readRetry(func() error {
		var err error
		count, err = adp.NotifUnreadCount(ctx, user)
		return err
	})
	return count, err
}

func init() {
	Store = storeObj{}
	Users = UsersObjMapper{}
	Follows = FollowsObjMapper{}
	Messages = MessagesObjMapper{}
	Notifications = NotificationsObjMapper{}
}
