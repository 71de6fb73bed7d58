// Package mongodb is a database adapter for MongoDB.
package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/chatline/relay/server/store"
	t "github.com/chatline/relay/server/store/types"
	b "go.mongodb.org/mongo-driver/bson"
	mdb "go.mongodb.org/mongo-driver/mongo"
	mdbopts "go.mongodb.org/mongo-driver/mongo/options"
)

// adapter holds MongoDB connection data.
type adapter struct {
	conn       *mdb.Client
	db         *mdb.Database
	dbName     string
	maxResults int
}

const (
	defaultHost     = "localhost:27017"
	defaultDatabase = "relay"

	adapterName = "mongodb"

	defaultMaxResults = 1024
)

// See https://godoc.org/go.mongodb.org/mongo-driver/mongo/options#ClientOptions for explanations.
type configType struct {
	Addresses      interface{} `json:"addresses,omitempty"`
	ConnectTimeout int         `json:"timeout,omitempty"`

	// Options separate from ClientOptions (custom options):
	Database   string `json:"database,omitempty"`
	ReplicaSet string `json:"replica_set,omitempty"`

	AuthSource string `json:"auth_source,omitempty"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
}

// Open initializes a mongodb session.
func (a *adapter) Open(jsonconfig json.RawMessage) error {
	if a.conn != nil {
		return errors.New("adapter mongodb is already connected")
	}

	var err error
	var config configType
	if err = json.Unmarshal(jsonconfig, &config); err != nil {
		return errors.New("adapter mongodb failed to parse config: " + err.Error())
	}

	var opts mdbopts.ClientOptions

	if config.Addresses == nil {
		opts.SetHosts([]string{defaultHost})
	} else if host, ok := config.Addresses.(string); ok {
		opts.SetHosts([]string{host})
	} else if hosts, ok := config.Addresses.([]string); ok {
		opts.SetHosts(hosts)
	} else {
		return errors.New("adapter mongodb failed to parse config.Addresses")
	}

	if config.Database == "" {
		a.dbName = defaultDatabase
	} else {
		a.dbName = config.Database
	}

	if config.ReplicaSet != "" {
		opts.SetReplicaSet(config.ReplicaSet)
	}

	if config.Username != "" {
		var passwordSet bool
		if config.AuthSource == "" {
			config.AuthSource = "admin"
		}
		if config.Password != "" {
			passwordSet = true
		}
		opts.SetAuth(
			mdbopts.Credential{
				AuthMechanism: "SCRAM-SHA-256",
				AuthSource:    config.AuthSource,
				Username:      config.Username,
				Password:      config.Password,
				PasswordSet:   passwordSet,
			})
	}

	if a.maxResults <= 0 {
		a.maxResults = defaultMaxResults
	}

	ctx := context.Background()
	if config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(config.ConnectTimeout)*time.Second)
		defer cancel()
	}

	a.conn, err = mdb.Connect(ctx, &opts)
	if err != nil {
		return err
	}
	a.db = a.conn.Database(a.dbName)

	return nil
}

// Close the adapter.
func (a *adapter) Close() error {
	var err error
	if a.conn != nil {
		err = a.conn.Disconnect(context.Background())
		a.conn = nil
	}
	return err
}

// IsOpen checks if the adapter is ready for use.
func (a *adapter) IsOpen() bool {
	return a.conn != nil
}

// GetName returns the name of the adapter.
func (a *adapter) GetName() string {
	return adapterName
}

// SetMaxResults configures how many results can be returned in a single DB call.
func (a *adapter) SetMaxResults(val int) error {
	if val <= 0 {
		a.maxResults = defaultMaxResults
	} else {
		a.maxResults = val
	}
	return nil
}

// CreateDb creates the database: sets up indexes, optionally dropping an
// existing database first. Collections do not need to be explicitly created
// since MongoDB creates them with the first write operation.
func (a *adapter) CreateDb(reset bool) error {
	ctx := context.Background()
	if reset {
		if err := a.db.Drop(ctx); err != nil {
			return err
		}
	}

	indexes := []struct {
		Collection string
		Field      string
		IndexOpts  mdb.IndexModel
	}{
		// Users: unique email for case-normalized lookups.
		{
			Collection: "users",
			IndexOpts: mdb.IndexModel{
				Keys:    b.M{"email": 1},
				Options: mdbopts.Index().SetUnique(true),
			},
		},

		// Follow edges: unique per ordered pair, plus reverse lookup.
		{
			Collection: "follows",
			IndexOpts: mdb.IndexModel{
				Keys:    b.D{{Key: "follower.id", Value: 1}, {Key: "following.id", Value: 1}},
				Options: mdbopts.Index().SetUnique(true),
			},
		},
		{
			Collection: "follows",
			Field:      "following.id",
		},

		// Messages: (participant id, createdat) for reverse-chronological pagination.
		{
			Collection: "messages",
			IndexOpts:  mdb.IndexModel{Keys: b.D{{Key: "sender.id", Value: 1}, {Key: "createdat", Value: -1}}},
		},
		{
			Collection: "messages",
			IndexOpts:  mdb.IndexModel{Keys: b.D{{Key: "receiver.id", Value: 1}, {Key: "createdat", Value: -1}}},
		},

		// Notifications: (recipient id, createdat) and the unread counter.
		{
			Collection: "notifications",
			IndexOpts:  mdb.IndexModel{Keys: b.D{{Key: "recipient.id", Value: 1}, {Key: "createdat", Value: -1}}},
		},
		{
			Collection: "notifications",
			IndexOpts:  mdb.IndexModel{Keys: b.D{{Key: "recipient.id", Value: 1}, {Key: "read", Value: 1}}},
		},
	}

	var err error
	for _, idx := range indexes {
		if idx.Field != "" {
			_, err = a.db.Collection(idx.Collection).Indexes().CreateOne(ctx, mdb.IndexModel{Keys: b.M{idx.Field: 1}})
		} else {
			_, err = a.db.Collection(idx.Collection).Indexes().CreateOne(ctx, idx.IndexOpts)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// Stats returns a db connection stats object.
func (a *adapter) Stats() interface{} {
	if a.db == nil {
		return nil
	}
	var result b.M
	if err := a.db.RunCommand(context.Background(), b.D{{Key: "serverStatus", Value: 1}},
		mdbopts.RunCmd()).Decode(&result); err != nil {
		return nil
	}
	return result["connections"]
}

// UserGet fetches a single user by user id.
func (a *adapter) UserGet(ctx context.Context, uid t.Uid) (*t.User, error) {
	var user t.User
	if err := a.db.Collection("users").FindOne(ctx, b.M{"_id": uid.String()}).Decode(&user); err != nil {
		if err == mdb.ErrNoDocuments {
			return nil, t.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UserGetByEmail fetches a single user by email. Emails are stored lowercased
// by the directory; the lookup normalizes the argument the same way.
func (a *adapter) UserGetByEmail(ctx context.Context, email string) (*t.User, error) {
	var user t.User
	filter := b.M{"email": strings.ToLower(email)}
	if err := a.db.Collection("users").FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mdb.ErrNoDocuments {
			return nil, t.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FollowExists checks if a directed follow edge follower->following exists.
func (a *adapter) FollowExists(ctx context.Context, follower, following t.Uid) (bool, error) {
	filter := b.M{"follower.id": follower.String(), "following.id": following.String()}
	err := a.db.Collection("follows").FindOne(ctx, filter,
		mdbopts.FindOne().SetProjection(b.M{"_id": 1})).Err()
	if err == mdb.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FollowMutual returns ids of users with follow edges in both directions
// relative to the given user.
func (a *adapter) FollowMutual(ctx context.Context, user t.Uid) ([]t.Uid, error) {
	us := user.String()

	// Whom the user follows.
	cur, err := a.db.Collection("follows").Find(ctx, b.M{"follower.id": us},
		mdbopts.Find().SetProjection(b.M{"following.id": 1}))
	if err != nil {
		return nil, err
	}
	following := make(map[string]bool)
	for cur.Next(ctx) {
		var edge t.FollowEdge
		if err = cur.Decode(&edge); err != nil {
			cur.Close(ctx)
			return nil, err
		}
		following[edge.Following.Id] = true
	}
	if err = cur.Close(ctx); err != nil {
		return nil, err
	}

	// Who follows the user back.
	cur, err = a.db.Collection("follows").Find(ctx, b.M{"following.id": us},
		mdbopts.Find().SetProjection(b.M{"follower.id": 1}))
	if err != nil {
		return nil, err
	}
	var mutual []t.Uid
	for cur.Next(ctx) {
		var edge t.FollowEdge
		if err = cur.Decode(&edge); err != nil {
			cur.Close(ctx)
			return nil, err
		}
		if following[edge.Follower.Id] {
			mutual = append(mutual, t.ParseUid(edge.Follower.Id))
		}
	}
	return mutual, cur.Close(ctx)
}

// MessageSave saves a message to the database.
func (a *adapter) MessageSave(ctx context.Context, msg *t.ChatMessage) error {
	_, err := a.db.Collection("messages").InsertOne(ctx, msg)
	return err
}

// MessageGet fetches a single message by id.
func (a *adapter) MessageGet(ctx context.Context, msgId string) (*t.ChatMessage, error) {
	var msg t.ChatMessage
	if err := a.db.Collection("messages").FindOne(ctx, b.M{"_id": msgId}).Decode(&msg); err != nil {
		if err == mdb.ErrNoDocuments {
			return nil, t.ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// MessageGetBetween returns messages exchanged between two users which the
// requester has not soft-deleted, newest first.
func (a *adapter) MessageGetBetween(ctx context.Context, user, peer t.Uid, page, pageSize int) ([]t.ChatMessage, error) {
	if pageSize <= 0 || pageSize > a.maxResults {
		pageSize = a.maxResults
	}
	if page < 0 {
		page = 0
	}

	us, ps := user.String(), peer.String()
	filter := b.M{"$or": b.A{
		b.M{"sender.id": ps, "receiver.id": us, "deletedbyreceiver": false},
		b.M{"sender.id": us, "receiver.id": ps, "deletedbysender": false},
	}}
	findOpts := mdbopts.Find().
		SetSort(b.M{"createdat": -1}).
		SetSkip(int64(page * pageSize)).
		SetLimit(int64(pageSize))

	cur, err := a.db.Collection("messages").Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}

	var msgs []t.ChatMessage
	if err = cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MessageMarkRead marks all unread sender->receiver messages as read in a
// single bulk update. Idempotent.
func (a *adapter) MessageMarkRead(ctx context.Context, sender, receiver t.Uid, at time.Time) (int64, error) {
	filter := b.M{
		"sender.id":   sender.String(),
		"receiver.id": receiver.String(),
		"read":        false,
	}
	update := b.M{"$set": b.M{"read": true, "readat": at, "updatedat": at}}
	res, err := a.db.Collection("messages").UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// MessageSetDeleted flips soft-delete flags of a single message.
func (a *adapter) MessageSetDeleted(ctx context.Context, msgId string, forSender, forReceiver bool) error {
	set := b.M{"updatedat": t.TimeNow()}
	if forSender {
		set["deletedbysender"] = true
	}
	if forReceiver {
		set["deletedbyreceiver"] = true
	}

	res, err := a.db.Collection("messages").UpdateOne(ctx, b.M{"_id": msgId}, b.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return t.ErrNotFound
	}
	return nil
}

// MessageDeleteConversation flips the caller-side delete flag across the
// whole user<->peer thread: one bulk update per message direction.
func (a *adapter) MessageDeleteConversation(ctx context.Context, user, peer t.Uid) error {
	us, ps := user.String(), peer.String()
	now := t.TimeNow()

	if _, err := a.db.Collection("messages").UpdateMany(ctx,
		b.M{"sender.id": us, "receiver.id": ps},
		b.M{"$set": b.M{"deletedbysender": true, "updatedat": now}}); err != nil {
		return err
	}
	_, err := a.db.Collection("messages").UpdateMany(ctx,
		b.M{"sender.id": ps, "receiver.id": us},
		b.M{"$set": b.M{"deletedbyreceiver": true, "updatedat": now}})
	return err
}

// MessagePeers returns snapshots of all users the given user has message
// history with.
func (a *adapter) MessagePeers(ctx context.Context, user t.Uid) ([]t.UserSnapshot, error) {
	us := user.String()
	pipeline := b.A{
		b.M{"$match": b.M{"$or": b.A{
			b.M{"sender.id": us},
			b.M{"receiver.id": us},
		}}},
		b.M{"$project": b.M{"peer": b.M{"$cond": b.A{
			b.M{"$eq": b.A{"$sender.id", us}},
			"$receiver",
			"$sender",
		}}}},
		b.M{"$group": b.M{"_id": "$peer.id", "peer": b.M{"$first": "$peer"}}},
	}

	cur, err := a.db.Collection("messages").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var result []struct {
		Peer t.UserSnapshot `bson:"peer"`
	}
	if err = cur.All(ctx, &result); err != nil {
		return nil, err
	}

	peers := make([]t.UserSnapshot, len(result))
	for i, r := range result {
		peers[i] = r.Peer
	}
	return peers, nil
}

// MessageChats returns per-peer conversation summaries: the latest message
// the user has not deleted plus the count of unread messages from that peer.
func (a *adapter) MessageChats(ctx context.Context, user t.Uid, within []t.Uid) ([]t.ChatSummary, error) {
	us := user.String()
	peerIds := make(b.A, len(within))
	for i, uid := range within {
		peerIds[i] = uid.String()
	}

	pipeline := b.A{
		b.M{"$match": b.M{"$or": b.A{
			b.M{"sender.id": us, "deletedbysender": false, "receiver.id": b.M{"$in": peerIds}},
			b.M{"receiver.id": us, "deletedbyreceiver": false, "sender.id": b.M{"$in": peerIds}},
		}}},
		b.M{"$sort": b.M{"createdat": -1}},
		b.M{"$group": b.M{
			"_id": b.M{"$cond": b.A{
				b.M{"$eq": b.A{"$sender.id", us}},
				"$receiver.id",
				"$sender.id",
			}},
			"lastmessage": b.M{"$first": "$$ROOT"},
			"unreadcount": b.M{"$sum": b.M{"$cond": b.A{
				b.M{"$and": b.A{
					b.M{"$eq": b.A{"$receiver.id", us}},
					b.M{"$eq": b.A{"$read", false}},
				}},
				1,
				0,
			}}},
		}},
		b.M{"$project": b.M{
			"peer": b.M{"$cond": b.A{
				b.M{"$eq": b.A{"$lastmessage.sender.id", us}},
				"$lastmessage.receiver",
				"$lastmessage.sender",
			}},
			"lastmessage": 1,
			"unreadcount": 1,
		}},
		b.M{"$sort": b.M{"lastmessage.createdat": -1}},
	}

	cur, err := a.db.Collection("messages").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var chats []t.ChatSummary
	if err = cur.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// NotifSave saves a notification to the database.
func (a *adapter) NotifSave(ctx context.Context, notif *t.Notification) error {
	_, err := a.db.Collection("notifications").InsertOne(ctx, notif)
	return err
}

// NotifGetAll returns the recipient's notifications, newest first.
func (a *adapter) NotifGetAll(ctx context.Context, recipient t.Uid, page, pageSize int) ([]t.Notification, error) {
	if pageSize <= 0 || pageSize > a.maxResults {
		pageSize = a.maxResults
	}
	if page < 0 {
		page = 0
	}

	findOpts := mdbopts.Find().
		SetSort(b.M{"createdat": -1}).
		SetSkip(int64(page * pageSize)).
		SetLimit(int64(pageSize))

	cur, err := a.db.Collection("notifications").Find(ctx, b.M{"recipient.id": recipient.String()}, findOpts)
	if err != nil {
		return nil, err
	}

	var notifs []t.Notification
	if err = cur.All(ctx, &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

// NotifMarkRead marks the listed notifications read, scoped to the recipient.
func (a *adapter) NotifMarkRead(ctx context.Context, recipient t.Uid, ids []string, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	filter := b.M{
		"_id":          b.M{"$in": ids},
		"recipient.id": recipient.String(),
		"read":         false,
	}
	update := b.M{"$set": b.M{"read": true, "readat": at, "updatedat": at}}
	res, err := a.db.Collection("notifications").UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// NotifMarkAllRead marks all of the recipient's unread notifications as read.
func (a *adapter) NotifMarkAllRead(ctx context.Context, recipient t.Uid, at time.Time) (int64, error) {
	filter := b.M{"recipient.id": recipient.String(), "read": false}
	update := b.M{"$set": b.M{"read": true, "readat": at, "updatedat": at}}
	res, err := a.db.Collection("notifications").UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// NotifDelete removes a single notification owned by the recipient.
func (a *adapter) NotifDelete(ctx context.Context, recipient t.Uid, id string) error {
	res, err := a.db.Collection("notifications").DeleteOne(ctx,
		b.M{"_id": id, "recipient.id": recipient.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return t.ErrNotFound
	}
	return nil
}

// NotifUnreadCount returns the number of unread notifications of the recipient.
func (a *adapter) NotifUnreadCount(ctx context.Context, recipient t.Uid) (int, error) {
	count, err := a.db.Collection("notifications").CountDocuments(ctx,
		b.M{"recipient.id": recipient.String(), "read": false})
	return int(count), err
}

func init() {
	store.RegisterAdapter(&adapter{})
}
