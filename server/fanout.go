/******************************************************************************
 *
 *  Description :
 *
 *    Live delivery of server messages to user sessions: chat data, presence
 *    announcements and state-change reports. Every live session of a user
 *    gets a copy; clients deduplicate by message id.
 *
 *****************************************************************************/

package main

import (
	"github.com/chatline/relay/server/store/types"
)

// deliverToUser queues a message on every live session of the user, except
// the one named by msg.SkipSid. Returns the number of sessions reached.
func deliverToUser(uid types.Uid, msg *ServerComMessage) int {
	delivered := 0
	for _, sess := range globals.presence.SessionsFor(uid) {
		if msg.SkipSid != "" && sess.sid == msg.SkipSid {
			continue
		}
		if sess.queueOut(msg) {
			delivered++
		}
	}
	return delivered
}

// presenceNotifyPeers announces the user's state change to every online user
// sharing a channel with them.
func presenceNotifyPeers(uid types.Uid, what string) {
	pres := &ServerComMessage{Pres: &MsgServerPres{
		Src:       uid.String(),
		What:      what,
		Timestamp: types.TimeNow(),
	}}
	for _, peer := range globals.router.PeersOf(uid) {
		if globals.presence.IsOnline(peer) {
			deliverToUser(peer, pres)
		}
	}
}
