/******************************************************************************
 *
 *  Description :
 *
 *    Routing of peer-to-peer channels: which users belong to which channel.
 *    Channel names are order-independent, both participants compute the same
 *    name without coordination (types.Uid.P2PName).
 *
 *****************************************************************************/

package main

import (
	"sync"

	"github.com/chatline/relay/server/store/types"
)

// ChannelRouter maps channel names to member user ids. Membership here is
// ephemeral: the durable source of truth is message history, replayed through
// Session.resubscribe on every login.
type ChannelRouter struct {
	lock sync.RWMutex

	channels map[string]map[types.Uid]bool
}

// NewChannelRouter initializes a channel router.
func NewChannelRouter() *ChannelRouter {
	return &ChannelRouter{
		channels: make(map[string]map[types.Uid]bool),
	}
}

// Subscribe adds users to a channel, creating it if needed. Idempotent.
func (cr *ChannelRouter) Subscribe(channel string, uids ...types.Uid) {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	members := cr.channels[channel]
	if members == nil {
		members = make(map[types.Uid]bool)
		cr.channels[channel] = members
	}
	for _, uid := range uids {
		members[uid] = true
	}
}

// Leave removes a user from a channel. The channel is dropped when the last
// member leaves.
func (cr *ChannelRouter) Leave(channel string, uid types.Uid) {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	members := cr.channels[channel]
	if members == nil {
		return
	}
	delete(members, uid)
	if len(members) == 0 {
		delete(cr.channels, channel)
	}
}

// Members returns a snapshot of the channel's member ids.
func (cr *ChannelRouter) Members(channel string) []types.Uid {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	members := cr.channels[channel]
	if len(members) == 0 {
		return nil
	}
	out := make([]types.Uid, 0, len(members))
	for uid := range members {
		out = append(out, uid)
	}
	return out
}

// PeersOf returns the distinct users sharing at least one channel with the
// given user. Presence changes fan out to this set.
func (cr *ChannelRouter) PeersOf(uid types.Uid) []types.Uid {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	seen := make(map[types.Uid]bool)
	for _, members := range cr.channels {
		if !members[uid] {
			continue
		}
		for member := range members {
			if member != uid {
				seen[member] = true
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]types.Uid, 0, len(seen))
	for peer := range seen {
		out = append(out, peer)
	}
	return out
}
