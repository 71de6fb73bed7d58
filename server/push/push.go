// Package push contains interfaces to be implemented by push notification plugins.
package push

import (
	"encoding/json"
	"errors"
	"time"

	t "github.com/chatline/relay/server/store/types"
)

// MaxPayloadLength is the maximum length of push payload in multibyte characters.
const MaxPayloadLength = 128

// Recipient is a user targeted by the push.
type Recipient struct {
	// Count of user's connections that were live when the receipt was dispatched.
	Delivered int `json:"delivered"`
	// Unread count to include in the push.
	Unread int `json:"unread"`
}

// Receipt is the push payload with a list of recipients.
type Receipt struct {
	// List of individual recipients, including those who did not receive the
	// message live.
	To map[t.Uid]Recipient `json:"to"`
	// Actual content to be delivered to the client.
	Payload Payload `json:"payload"`
}

// Payload is the content of the push.
type Payload struct {
	// Notification type: message, like, comment, follow, etc.
	What string `json:"what"`
	// Id of the user who triggered the notification.
	From string `json:"from"`
	// Short human-readable notification text.
	Content string `json:"content,omitempty"`
	// Id of the item which produced the notification.
	ItemId string `json:"item,omitempty"`
	// Timestamp of the notification.
	Timestamp time.Time `json:"ts"`
}

// Handler is an interface which must be implemented by push handlers.
type Handler interface {
	// Init initializes the handler.
	Init(jsonconf json.RawMessage) (bool, error)

	// IsReady checks if the handler is initialized.
	IsReady() bool

	// Push returns a channel that the server will use to send receipts to.
	// The receipt will be dropped if the channel blocks.
	Push() chan<- *Receipt

	// Stop terminates the handler's worker and stops sending pushes.
	Stop()
}

type configType struct {
	Name   string          `json:"name"`
	Config json.RawMessage `json:"config"`
}

var handlers map[string]Handler

// Register a push handler.
func Register(name string, hnd Handler) {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}

	if hnd == nil {
		panic("Register: push handler is nil")
	}
	if _, dup := handlers[name]; dup {
		panic("Register: called twice for handler " + name)
	}
	handlers[name] = hnd
}

// Init initializes registered handlers.
func Init(jsconfig json.RawMessage) ([]string, error) {
	var config []configType

	if err := json.Unmarshal(jsconfig, &config); err != nil {
		return nil, errors.New("failed to parse config: " + err.Error())
	}

	var enabled []string
	for _, cc := range config {
		if hnd := handlers[cc.Name]; hnd != nil {
			if ok, err := hnd.Init(cc.Config); err != nil {
				return nil, err
			} else if ok {
				enabled = append(enabled, cc.Name)
			}
		}
	}

	return enabled, nil
}

// Push a single receipt to the registered handlers.
func Push(msg *Receipt) {
	if handlers == nil {
		return
	}

	for _, hnd := range handlers {
		if !hnd.IsReady() {
			continue
		}

		// Push without delay or skip.
		select {
		case hnd.Push() <- msg:
		default:
		}
	}
}

// Stop all pushes.
func Stop() {
	if handlers == nil {
		return
	}

	for _, hnd := range handlers {
		if hnd.IsReady() {
			// Will potentially block.
			hnd.Stop()
		}
	}
}
