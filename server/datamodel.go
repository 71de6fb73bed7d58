/******************************************************************************
 *
 *  Description :
 *
 *    Definition of the relay wire protocol: messages accepted from clients,
 *    messages sent to clients, and constructors of {ctrl} acknowledgements.
 *
 *****************************************************************************/

package main

import (
	"net/http"
	"time"

	"github.com/chatline/relay/server/store/types"
)

// MsgClientLogin is a login {login} message.
type MsgClientLogin struct {
	// Message Id.
	Id string `json:"id,omitempty"`
	// Bearer token issued by the account service.
	Token string `json:"token"`
}

// MsgClientInit is a chat initiation {init} message: open a channel with a peer.
type MsgClientInit struct {
	Id string `json:"id,omitempty"`
	// Peer user id.
	User string `json:"user"`
}

// MsgClientPub is a client {pub} message: publish one chat message to a peer.
type MsgClientPub struct {
	Id string `json:"id,omitempty"`
	// Peer user id.
	User string `json:"user"`
	// Plaintext message content. Encrypted before it reaches storage.
	Content string `json:"content"`
}

// MsgClientRead is a {read} message: bulk mark-read of a peer's messages.
type MsgClientRead struct {
	Id string `json:"id,omitempty"`
	// Peer whose messages are being marked read.
	User string `json:"user"`
}

// MsgClientDel is a delete {del} message.
type MsgClientDel struct {
	Id string `json:"id,omitempty"`
	// What to delete:
	//  "msg" - one message for the requester only
	//  "msgall" - one message for both participants (sender only)
	//  "conv" - the whole conversation for the requester only
	What string `json:"what"`
	// Message id, for what="msg" or "msgall".
	Msg string `json:"msg,omitempty"`
	// Peer user id, for what="conv".
	User string `json:"user,omitempty"`
}

// MsgClientLeave is a request to unsubscribe from a channel {leave}.
type MsgClientLeave struct {
	Id string `json:"id,omitempty"`
	// Channel name returned by {init}.
	Channel string `json:"channel"`
}

// ClientComMessage is a wrapper for client messages.
type ClientComMessage struct {
	Login *MsgClientLogin `json:"login"`
	Init  *MsgClientInit  `json:"init"`
	Pub   *MsgClientPub   `json:"pub"`
	Read  *MsgClientRead  `json:"read"`
	Del   *MsgClientDel   `json:"del"`
	Leave *MsgClientLeave `json:"leave"`

	// Internal fields, not exposed on the wire.

	// Message Id denormalized.
	Id string `json:"-"`
	// Sender's UserId as string.
	AsUser string `json:"-"`
	// Sender's authentication level.
	AuthLvl int `json:"-"`
	// Timestamp when this message was received by the server.
	Timestamp time.Time `json:"-"`
}

// MsgServerCtrl is a server control message {ctrl}.
type MsgServerCtrl struct {
	Id     string      `json:"id,omitempty"`
	Topic  string      `json:"topic,omitempty"`
	Params interface{} `json:"params,omitempty"`

	Code      int       `json:"code"`
	Text      string    `json:"text,omitempty"`
	Timestamp time.Time `json:"ts"`
}

// MsgServerData is a chat message or a notification payload {data}.
type MsgServerData struct {
	// Channel or personal topic this message belongs to.
	Topic string `json:"topic"`
	// Id of the user who originated the message.
	From string `json:"from,omitempty"`
	// Server-issued message id.
	MsgId     string    `json:"id,omitempty"`
	Timestamp time.Time `json:"ts"`
	// Optional payload attributes (notification type, metadata).
	Head map[string]interface{} `json:"head,omitempty"`
	// Decrypted message content or notification text.
	Content string `json:"content"`
}

// MsgServerPres is a presence announcement {pres}.
type MsgServerPres struct {
	// User whose state changed.
	Src string `json:"src"`
	// "on" or "off".
	What      string    `json:"what"`
	Timestamp time.Time `json:"ts"`
}

// MsgServerInfo is the server-side copy of a state change {info}:
// "read" - peer marked messages read, "del" - message deleted for everyone.
type MsgServerInfo struct {
	Topic string `json:"topic"`
	// Id of the user who originated the change.
	From string `json:"from"`
	What string `json:"what"`
	// Message id being reported, for what="del".
	MsgId string `json:"msg,omitempty"`
}

// ServerComMessage is a wrapper for server-side messages.
type ServerComMessage struct {
	Ctrl *MsgServerCtrl `json:"ctrl,omitempty"`
	Data *MsgServerData `json:"data,omitempty"`
	Pres *MsgServerPres `json:"pres,omitempty"`
	Info *MsgServerInfo `json:"info,omitempty"`

	// Internal fields.

	// MsgServerData has no Id field, copying it here for use in {ctrl} acknowledgements.
	Id string `json:"-"`
	// User id affected by this message.
	uid types.Uid
	// Timestamp for consistency of timestamps in {ctrl} messages
	// (corresponds to originating client message receipt timestamp).
	Timestamp time.Time `json:"-"`
	// Session ID to skip when sending the packet to a user's sessions.
	// Used to skip sending to the originating session.
	SkipSid string `json:"-"`
}

// Generators of server-side error messages {ctrl}.

// NoErr indicates successful completion (200).
func NoErr(id, topic string, ts time.Time) *ServerComMessage {
	return NoErrParams(id, topic, ts, nil)
}

// NoErrParams indicates successful completion with parameters (200).
func NoErrParams(id, topic string, ts time.Time, params interface{}) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusOK, // 200
		Text:      "ok",
		Topic:     topic,
		Params:    params,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// NoErrAccepted indicates the request was accepted (202), used for login.
func NoErrAccepted(id, topic string, ts time.Time, params interface{}) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusAccepted, // 202
		Text:      "accepted",
		Topic:     topic,
		Params:    params,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// NoErrShutdown means the server is shutting down (205).
func NoErrShutdown(ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Code:      http.StatusResetContent, // 205
		Text:      "server shutdown",
		Timestamp: ts}, Timestamp: ts}
}

// ErrMalformed request malformed (400).
func ErrMalformed(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusBadRequest, // 400
		Text:      "malformed",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrAuthRequired authentication required (401).
func ErrAuthRequired(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusUnauthorized, // 401
		Text:      "authentication required",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrAuthFailed authentication failed (401).
func ErrAuthFailed(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusUnauthorized, // 401
		Text:      "authentication failed",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrAlreadyAuthenticated invalid attempt to authenticate an
// already authenticated session (409).
func ErrAlreadyAuthenticated(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusConflict, // 409
		Text:      "already authenticated",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrPermissionDenied user is not authorized to perform the action (403).
func ErrPermissionDenied(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusForbidden, // 403
		Text:      "permission denied",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrNotMutual two users are not mutual followers, message exchange
// is not permitted (403).
func ErrNotMutual(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusForbidden, // 403
		Text:      "not mutual followers",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrUserNotFound addressed user does not exist (404).
func ErrUserNotFound(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusNotFound, // 404
		Text:      "user not found",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrNotFound message or resource not found (404).
func ErrNotFound(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusNotFound, // 404
		Text:      "not found",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}

// ErrUnknown database or other server error (500).
func ErrUnknown(id, topic string, ts time.Time) *ServerComMessage {
	return &ServerComMessage{Ctrl: &MsgServerCtrl{
		Id:        id,
		Code:      http.StatusInternalServerError, // 500
		Text:      "internal error",
		Topic:     topic,
		Timestamp: ts}, Id: id, Timestamp: ts}
}
