// Package types holds the subset of the Bot API's domain value types needed
// to exercise the request/adaptor layer, the dispatcher, and the command
// parser: chat and user identifiers, updates and their payload variants, and
// a handful of small value types (RGB colors, files) whose encoding the spec
// calls out explicitly as testable boundary behavior.
//
// The full ~400-type domain model is out of scope per spec.md §1; only the
// types actually referenced by methods/, dispatch/, and command/ live here.
package types

import (
	"fmt"
	"strconv"
)

// ChatID identifies a chat: a group, supergroup, channel, or user private
// message. Bot API chat ids encode the chat's kind in their numeric range,
// mirroring the MTProto "marked peer id" scheme — see to_bare in
// teloxide-core's chat_id.rs, which this type's classification methods are
// ported from.
type ChatID int64

// Reserved id ranges the Bot API uses to mark a chat id's kind. Values
// outside all three ranges are malformed.
const (
	minMarkedChannelID int64 = -1997852516352
	maxMarkedChannelID int64 = -1000000000000
	minMarkedChatID          = maxMarkedChannelID + 1
	maxMarkedChatID    int64 = -1
	minUserID          int64 = 0
	maxUserID          int64 = (1 << 40) - 1
)

// ChatKind enumerates the three chat classifications a ChatID can fall into.
type ChatKind int

const (
	ChatKindInvalid ChatKind = iota
	ChatKindUser
	ChatKindGroup
	ChatKindChannelOrSupergroup
)

// Kind classifies the id. It panics on a malformed id that falls outside all
// three reserved ranges, matching the spec's "panic or error deterministically"
// boundary requirement — callers that want the non-panicking form should use
// KindOK.
func (c ChatID) Kind() ChatKind {
	k, ok := c.KindOK()
	if !ok {
		panic(fmt.Sprintf("types: malformed chat id: %d", int64(c)))
	}
	return k
}

// KindOK is the non-panicking form of Kind.
func (c ChatID) KindOK() (ChatKind, bool) {
	id := int64(c)
	switch {
	case id >= minMarkedChatID && id <= maxMarkedChatID:
		return ChatKindGroup, true
	case id >= minMarkedChannelID && id <= maxMarkedChannelID:
		return ChatKindChannelOrSupergroup, true
	case id >= minUserID && id <= maxUserID:
		return ChatKindUser, true
	default:
		return ChatKindInvalid, false
	}
}

func (c ChatID) IsUser() bool                  { k, ok := c.KindOK(); return ok && k == ChatKindUser }
func (c ChatID) IsGroup() bool                 { k, ok := c.KindOK(); return ok && k == ChatKindGroup }
func (c ChatID) IsChannelOrSupergroup() bool {
	k, ok := c.KindOK()
	return ok && k == ChatKindChannelOrSupergroup
}

func (c ChatID) String() string { return strconv.FormatInt(int64(c), 10) }

// UserID is the identifier of a user, distinct from ChatID so that a
// user-shaped chat id can't be mixed up with an arbitrary chat id at compile
// time. A UserID converts losslessly to a ChatID (private chats use the
// user's own id as chat id).
type UserID int64

func (u UserID) ChatID() ChatID { return ChatID(u) }
