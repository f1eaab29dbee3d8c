package types

import "hash/fnv"

// ChatKey is the admission key the throttle worker uses to scope its
// per-chat and per-group windows. It is either a raw chat id or a 64-bit
// hash of a channel @username. Per spec.md §3, two different spellings of
// the same channel username hash independently — documented, not fixed.
type ChatKey struct {
	id       int64
	hash     uint64
	byHash   bool
	group    bool // true for groups/supergroups/channels, subject to the per-minute window
}

// ChatKeyFromID builds an admission key from a numeric chat id, classifying
// it as a group/channel for the per-minute window using ChatID.Kind.
func ChatKeyFromID(id ChatID) ChatKey {
	kind, _ := id.KindOK()
	return ChatKey{
		id:    int64(id),
		group: kind == ChatKindGroup || kind == ChatKindChannelOrSupergroup,
	}
}

// ChatKeyFromUsername builds an admission key from a channel/supergroup
// "@username" reference. Usernames are always treated as group-scoped for
// the per-minute window, since only channels/supergroups are addressable by
// username in the Bot API.
func ChatKeyFromUsername(username string) ChatKey {
	h := fnv.New64a()
	_, _ = h.Write([]byte(username))
	return ChatKey{hash: h.Sum64(), byHash: true, group: true}
}

// IsGroupScoped reports whether this key is subject to the per-minute
// per-group window, as opposed to only the per-second per-chat window.
func (k ChatKey) IsGroupScoped() bool { return k.group }

// Equal reports whether two keys name the same admission bucket. Keys built
// from a numeric id and from a username hash never compare equal, even if
// they happen to refer to the same real chat — this is the documented
// imprecision from spec.md §9.
func (k ChatKey) Equal(other ChatKey) bool {
	if k.byHash != other.byHash {
		return false
	}
	if k.byHash {
		return k.hash == other.hash
	}
	return k.id == other.id
}
