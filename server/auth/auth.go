// Package auth provides interfaces and types for authentication of relay connections.
package auth

import (
	"encoding/json"
	"time"

	"github.com/chatline/relay/server/store/types"
)

// Level is the type for authentication levels.
type Level int

// Authentication levels.
const (
	// LevelNone is undefined/not authenticated.
	LevelNone Level = iota * 10
	// LevelAnon is anonymous user/light authentication.
	LevelAnon
	// LevelAuth is a fully authenticated user.
	LevelAuth
	// LevelRoot is a superuser.
	LevelRoot
)

// String implements Stringer interface for Level.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return ""
	case LevelAnon:
		return "anon"
	case LevelAuth:
		return "auth"
	case LevelRoot:
		return "root"
	default:
		return "unkn"
	}
}

// Rec is an authentication record: the verified identity claim attached to a
// connection after a successful login.
type Rec struct {
	// User who owns the record.
	Uid types.Uid `json:"uid,omitempty"`
	// AuthLevel is the authentication level.
	AuthLevel Level `json:"authlvl,omitempty"`
	// Lifetime of this record.
	Lifetime time.Duration `json:"lifetime,omitempty"`
}

// AuthHandler is the interface which auth providers must implement.
type AuthHandler interface {
	// Init initializes the handler taking config string and logical name as parameters.
	Init(jsonconf json.RawMessage, name string) error

	// Authenticate checks validity of a user-provided authentication secret
	// (such as a bearer token). Returns a verified identity claim or an error.
	Authenticate(secret []byte) (*Rec, error)

	// GenSecret generates a new secret (token) for the given identity, if supported.
	GenSecret(rec *Rec) ([]byte, time.Time, error)
}
