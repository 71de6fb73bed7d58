/******************************************************************************
 *
 *  Description :
 *
 *    Tracking of which users are online and on which sessions. A user with
 *    several devices has several sessions; the user is online while at least
 *    one of them is live.
 *
 *****************************************************************************/

package main

import (
	"sync"

	"github.com/chatline/relay/server/store/types"
)

// PresenceRegistry maps user ids to their live sessions.
type PresenceRegistry struct {
	lock sync.Mutex

	sessions map[types.Uid]map[*Session]bool
}

// NewPresenceRegistry initializes a presence registry.
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		sessions: make(map[types.Uid]map[*Session]bool),
	}
}

// Register adds a session handle to the user. Returns true if this is the
// user's first live session, i.e. the user just came online.
func (pr *PresenceRegistry) Register(uid types.Uid, s *Session) bool {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	handles := pr.sessions[uid]
	if handles == nil {
		handles = make(map[*Session]bool)
		pr.sessions[uid] = handles
	}
	handles[s] = true
	return len(handles) == 1
}

// Unregister removes a session handle from the user. Returns true if it was
// the user's last live session, i.e. the user just went offline. Unknown
// handles are ignored.
func (pr *PresenceRegistry) Unregister(uid types.Uid, s *Session) bool {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	handles := pr.sessions[uid]
	if handles == nil || !handles[s] {
		return false
	}
	delete(handles, s)
	if len(handles) == 0 {
		delete(pr.sessions, uid)
		return true
	}
	return false
}

// IsOnline reports whether the user has at least one live session.
func (pr *PresenceRegistry) IsOnline(uid types.Uid) bool {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	return len(pr.sessions[uid]) > 0
}

// SessionsFor returns a snapshot of the user's live sessions. Fanout iterates
// the snapshot outside the lock; a session lost to a concurrent disconnect
// degrades to store-only delivery.
func (pr *PresenceRegistry) SessionsFor(uid types.Uid) []*Session {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	handles := pr.sessions[uid]
	if len(handles) == 0 {
		return nil
	}
	out := make([]*Session, 0, len(handles))
	for s := range handles {
		out = append(out, s)
	}
	return out
}
