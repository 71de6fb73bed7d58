// Package adapter contains the interfaces to be implemented by the database adapter.
package adapter

import (
	"context"
	"encoding/json"
	"time"

	t "github.com/chatline/relay/server/store/types"
)

// Adapter is the interface that must be implemented by a database adapter.
// The current schema supports a single connection by database type.
//
// The user directory and the social graph are owned by external
// collaborators: the relay only ever reads them.
type Adapter interface {
	// General

	// Open and configure the adapter.
	Open(config json.RawMessage) error
	// Close the adapter.
	Close() error
	// IsOpen checks if the adapter is ready for use.
	IsOpen() bool
	// GetName returns the name of the adapter.
	GetName() string
	// SetMaxResults configures how many results can be returned in a single DB call.
	SetMaxResults(val int) error
	// CreateDb initializes the database: creates indexes, optionally dropping
	// an existing database first.
	CreateDb(reset bool) error
	// Stats returns a DB connection stats object.
	Stats() interface{}

	// User directory, read-only.

	// UserGet fetches a single user by user id.
	UserGet(ctx context.Context, uid t.Uid) (*t.User, error)
	// UserGetByEmail fetches a single user by email, case-insensitive.
	UserGetByEmail(ctx context.Context, email string) (*t.User, error)

	// Social graph, read-only.

	// FollowExists checks if a directed follow edge follower->following exists.
	FollowExists(ctx context.Context, follower, following t.Uid) (bool, error)
	// FollowMutual returns ids of users who follow the given user and are
	// followed back by them.
	FollowMutual(ctx context.Context, user t.Uid) ([]t.Uid, error)

	// Messages.

	// MessageSave persists a single message. The content must already be encrypted.
	MessageSave(ctx context.Context, msg *t.ChatMessage) error
	// MessageGet fetches a single message by id.
	MessageGet(ctx context.Context, msgId string) (*t.ChatMessage, error)
	// MessageGetBetween returns messages exchanged between two users which the
	// requester has not soft-deleted, newest first.
	MessageGetBetween(ctx context.Context, user, peer t.Uid, page, pageSize int) ([]t.ChatMessage, error)
	// MessageMarkRead marks all unread messages sent by 'sender' to 'receiver'
	// as read at the given time. Idempotent. Returns the number of messages updated.
	MessageMarkRead(ctx context.Context, sender, receiver t.Uid, at time.Time) (int64, error)
	// MessageSetDeleted flips soft-delete flags of a single message.
	// Flags already set are left set.
	MessageSetDeleted(ctx context.Context, msgId string, forSender, forReceiver bool) error
	// MessageDeleteConversation flips the caller-side delete flag on every
	// message of the user<->peer thread.
	MessageDeleteConversation(ctx context.Context, user, peer t.Uid) error
	// MessagePeers returns snapshots of all users the given user has message
	// history with, regardless of soft-delete flags.
	MessagePeers(ctx context.Context, user t.Uid) ([]t.UserSnapshot, error)
	// MessageChats returns per-peer conversation summaries (latest visible
	// message, unread count) for peers in 'within', newest conversation first.
	MessageChats(ctx context.Context, user t.Uid, within []t.Uid) ([]t.ChatSummary, error)

	// Notifications.

	// NotifSave persists a single notification.
	NotifSave(ctx context.Context, notif *t.Notification) error
	// NotifGetAll returns the recipient's notifications, newest first.
	NotifGetAll(ctx context.Context, recipient t.Uid, page, pageSize int) ([]t.Notification, error)
	// NotifMarkRead marks the listed notifications as read, scoped to the
	// recipient. Returns the number of notifications updated.
	NotifMarkRead(ctx context.Context, recipient t.Uid, ids []string, at time.Time) (int64, error)
	// NotifMarkAllRead marks all of the recipient's unread notifications as read.
	NotifMarkAllRead(ctx context.Context, recipient t.Uid, at time.Time) (int64, error)
	// NotifDelete removes a single notification owned by the recipient.
	NotifDelete(ctx context.Context, recipient t.Uid, id string) error
	// NotifUnreadCount returns the number of unread notifications of the recipient.
	NotifUnreadCount(ctx context.Context, recipient t.Uid) (int, error)
}
