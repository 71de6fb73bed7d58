// Package types contains data model types used in the relay and its storage adapters.
package types

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"
	"time"
)

// StoreError satisfies Error interface but allows constant values for
// direct comparison.
type StoreError string

// Error is required by error interface.
func (s StoreError) Error() string {
	return string(s)
}

const (
	// ErrInternal means DB or other internal failure.
	ErrInternal = StoreError("internal")
	// ErrMalformed means the input is malformed.
	ErrMalformed = StoreError("malformed")
	// ErrFailed means the operation failed for any other reason.
	ErrFailed = StoreError("failed")
	// ErrDuplicate means duplicate record.
	ErrDuplicate = StoreError("duplicate")
	// ErrUnsupported means an operation is not supported.
	ErrUnsupported = StoreError("unsupported")
	// ErrExpired means the credential has expired.
	ErrExpired = StoreError("expired")
	// ErrNotFound means the object was not found.
	ErrNotFound = StoreError("not found")
	// ErrPermissionDenied means the operation is not permitted.
	ErrPermissionDenied = StoreError("denied")
)

// Uid is a database-specific record id, suitable to be used as a primary key.
type Uid uint64

// ZeroUid is a constant representing uninitialized Uid.
const ZeroUid Uid = 0

const (
	uidBase64Unpadded = 11
	uidBase64Padded   = 12
)

// IsZero checks if Uid is uninitialized.
func (uid Uid) IsZero() bool {
	return uid == 0
}

// Compare returns 0 if uid is equal to u2, 1 if u2 is greater than uid, -1 if u2 is smaller.
func (uid Uid) Compare(u2 Uid) int {
	if uid < u2 {
		return -1
	} else if uid > u2 {
		return 1
	}
	return 0
}

// MarshalText converts Uid to base64 string represented as []byte.
func (uid Uid) MarshalText() ([]byte, error) {
	if uid == 0 {
		return []byte{}, nil
	}
	src := make([]byte, 8)
	dst := make([]byte, base64.URLEncoding.EncodedLen(8))
	binary.LittleEndian.PutUint64(src, uint64(uid))
	base64.URLEncoding.Encode(dst, src)
	return dst[0:uidBase64Unpadded], nil
}

// UnmarshalText reads Uid from its base64 representation.
func (uid *Uid) UnmarshalText(src []byte) error {
	if len(src) != uidBase64Unpadded {
		return errors.New("Uid.UnmarshalText: invalid length")
	}
	dec := make([]byte, base64.URLEncoding.DecodedLen(uidBase64Padded))
	for len(src) < uidBase64Padded {
		src = append(src, '=')
	}
	count, err := base64.URLEncoding.Decode(dec, src)
	if count < 8 {
		if err != nil {
			return errors.New("Uid.UnmarshalText: failed to decode " + err.Error())
		}
		return errors.New("Uid.UnmarshalText: failed to decode")
	}
	*uid = Uid(binary.LittleEndian.Uint64(dec))
	return nil
}

// MarshalJSON converts Uid to double quoted ("ajjj") string.
func (uid Uid) MarshalJSON() ([]byte, error) {
	dst, _ := uid.MarshalText()
	return append(append([]byte{'"'}, dst...), '"'), nil
}

// UnmarshalJSON reads Uid from a double quoted string.
func (uid *Uid) UnmarshalJSON(b []byte) error {
	size := len(b)
	if size != (uidBase64Unpadded + 2) {
		return errors.New("Uid.UnmarshalJSON: invalid length")
	} else if b[0] != '"' || b[size-1] != '"' {
		return errors.New("Uid.UnmarshalJSON: unrecognized")
	}
	return uid.UnmarshalText(b[1 : size-1])
}

// String converts Uid to its base64 string representation.
func (uid Uid) String() string {
	buf, _ := uid.MarshalText()
	return string(buf)
}

// ParseUid parses string NOT prefixed with anything.
func ParseUid(s string) Uid {
	var uid Uid
	uid.UnmarshalText([]byte(s))
	return uid
}

// TimeNow returns current wall time in UTC rounded to milliseconds.
func TimeNow() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}

// ObjHeader is the header shared by all stored objects.
type ObjHeader struct {
	// Using string to avoid rethinkdb-style problems with uint64.
	Id        string `bson:"_id"`
	id        Uid
	CreatedAt time.Time  `bson:"createdat"`
	UpdatedAt time.Time  `bson:"updatedat"`
	DeletedAt *time.Time `bson:"deletedat,omitempty"`
}

// Uid assigns and returns the Uid of the object.
func (h *ObjHeader) Uid() Uid {
	if h.id.IsZero() && h.Id != "" {
		h.id.UnmarshalText([]byte(h.Id))
	}
	return h.id
}

// SetUid assigns given Uid to the object.
func (h *ObjHeader) SetUid(uid Uid) {
	h.id = uid
	h.Id = uid.String()
}

// InitTimes initializes time.Time variables in the header to current time.
func (h *ObjHeader) InitTimes() {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = TimeNow()
	}
	h.UpdatedAt = h.CreatedAt
	h.DeletedAt = nil
}

// User is a denormalized record in the external user directory. The relay
// only ever reads it, or copies a snapshot of it into messages and
// notifications at creation time.
type User struct {
	ObjHeader `bson:",inline"`
	Email     string `bson:"email"`
	Name      string `bson:"name"`
	Picture   string `bson:"picture,omitempty"`
}

// Snapshot returns identity fields of the user for embedding. The copy is
// never updated retroactively.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		Id:      u.Id,
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.Picture,
	}
}

// Ref returns the short recipient reference of the user.
func (u *User) Ref() UserRef {
	return UserRef{Id: u.Id, Email: u.Email}
}

// UserSnapshot is a denormalized copy of identity fields embedded in
// messages and notifications.
type UserSnapshot struct {
	Id      string `bson:"id" json:"id"`
	Email   string `bson:"email" json:"email"`
	Name    string `bson:"name" json:"name"`
	Picture string `bson:"picture,omitempty" json:"picture,omitempty"`
}

// Uid returns the parsed id of the snapshot.
func (s *UserSnapshot) Uid() Uid {
	return ParseUid(s.Id)
}

// UserRef is a minimal user reference: notification recipients don't need
// the full snapshot.
type UserRef struct {
	Id    string `bson:"id" json:"id"`
	Email string `bson:"email" json:"email"`
}

// Uid returns the parsed id of the reference.
func (r *UserRef) Uid() Uid {
	return ParseUid(r.Id)
}

// FollowEdge is a directed follow relationship. Its lifecycle is owned by the
// social-graph service; the relay reads it only for the mutual-consent check.
type FollowEdge struct {
	ObjHeader `bson:",inline"`
	Follower  UserRef `bson:"follower"`
	Following UserRef `bson:"following"`
}

// EncryptedValue is a symmetric-cipher envelope around message content as it
// is held at rest: AEAD output plus the nonce it was sealed with.
type EncryptedValue struct {
	Data  []byte `bson:"data" json:"data"`
	Nonce []byte `bson:"nonce" json:"nonce"`
}

// ChatMessage is a single private message exchanged between two users.
// Content is stored encrypted and decrypted only at the read boundary: the
// decrypted text lives in the transient Plain field which is never persisted.
type ChatMessage struct {
	ObjHeader `bson:",inline"`
	Sender    UserSnapshot   `bson:"sender"`
	Receiver  UserSnapshot   `bson:"receiver"`
	Content   EncryptedValue `bson:"content"`
	// Decrypted content, transient.
	Plain             string     `bson:"-" json:"message,omitempty"`
	Read              bool       `bson:"read"`
	ReadAt            *time.Time `bson:"readat,omitempty"`
	DeletedBySender   bool       `bson:"deletedbysender"`
	DeletedByReceiver bool       `bson:"deletedbyreceiver"`
}

// VisibleTo checks whether the given participant has not soft-deleted the message.
func (m *ChatMessage) VisibleTo(user Uid) bool {
	switch user.String() {
	case m.Sender.Id:
		return !m.DeletedBySender
	case m.Receiver.Id:
		return !m.DeletedByReceiver
	}
	return false
}

// Notification types. The relay itself only produces "message"; the other
// values are written by collaborating producers through the same fanout.
const (
	NotifMessage = "message"
	NotifLike    = "like"
	NotifComment = "comment"
	NotifFollow  = "follow"
	NotifContent = "content"
	NotifShop    = "shop"
)

// NotifMetadata links a notification to the item which produced it.
type NotifMetadata struct {
	ItemId   string `bson:"itemid,omitempty" json:"itemId,omitempty"`
	ItemType string `bson:"itemtype,omitempty" json:"itemType,omitempty"`
}

// Notification is a durable notification record. It is created by a producing
// component, mutated only by read-state updates and deleted only by the
// recipient.
type Notification struct {
	ObjHeader `bson:",inline"`
	Recipient UserRef       `bson:"recipient"`
	Sender    UserSnapshot  `bson:"sender"`
	Type      string        `bson:"type"`
	Content   string        `bson:"content"`
	Metadata  NotifMetadata `bson:"metadata,omitempty"`
	Read      bool          `bson:"read"`
	ReadAt    *time.Time    `bson:"readat,omitempty"`
	Priority  string        `bson:"priority,omitempty"`
}

// ChatSummary is one entry of a user's conversation list: the latest visible
// message exchanged with a peer plus the count of unread messages from that peer.
type ChatSummary struct {
	Peer        UserSnapshot `bson:"peer" json:"peer"`
	LastMessage *ChatMessage `bson:"lastmessage" json:"lastMessage"`
	UnreadCount int          `bson:"unreadcount" json:"unreadCount"`
}

// P2PName generates a unique channel name for two users. The name is
// order-independent: either participant computes the same name without
// coordination.
func (uid Uid) P2PName(u2 Uid) string {
	if uid.IsZero() || u2.IsZero() {
		return ""
	}
	a, b := uid.String(), u2.String()
	if a > b {
		a, b = b, a
	}
	return "p2p" + a + "-" + b
}

// ParseP2P extracts uids from the name of a p2p channel.
func ParseP2P(p2p string) (uid1, uid2 Uid, err error) {
	if !strings.HasPrefix(p2p, "p2p") {
		return ZeroUid, ZeroUid, errors.New("ParseP2P: missing prefix")
	}
	parts := strings.SplitN(p2p[3:], "-", 2)
	if len(parts) != 2 {
		return ZeroUid, ZeroUid, errors.New("ParseP2P: invalid format")
	}
	uid1 = ParseUid(parts[0])
	uid2 = ParseUid(parts[1])
	if uid1.IsZero() || uid2.IsZero() {
		return ZeroUid, ZeroUid, errors.New("ParseP2P: invalid uid")
	}
	return uid1, uid2, nil
}
