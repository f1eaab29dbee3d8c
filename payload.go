package tgbotkit

import "tgbotkit/types"

// Payload describes one API call: a stable method name and whether it must
// be encoded as multipart/form-data (because one of its fields can carry an
// uploaded file) or as plain JSON. Every concrete payload in package methods
// implements this; the wire encoding is determined statically by the type,
// never by the field values at a given moment, per spec.md §3's invariant.
type Payload interface {
	// Method is the Bot API method name, e.g. "sendMessage".
	Method() string
	// Multipart reports whether this payload must be sent as
	// multipart/form-data rather than application/json.
	Multipart() bool
}

// ChatScoped is implemented by payloads that target a specific chat. The
// throttle adaptor uses it to compute the admission ChatKey; payloads that
// don't target a chat (getMe, getUpdates, ...) simply don't implement it and
// bypass chat-scoped throttling.
type ChatScoped interface {
	ChatKey() types.ChatKey
}

// ParseModeSetter is implemented by payloads carrying an optional parse-mode
// field. The default-parameter adaptor uses it to inject a default only when
// the caller hasn't already set one, which is how "inject at construction,
// but the caller may still override" is expressed without needing a
// per-method facade override (see adaptors.DefaultParseMode).
type ParseModeSetter interface {
	SetParseModeIfUnset(mode string)
}
