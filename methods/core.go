// Package methods holds the payload definitions for this module's
// representative slice of the Bot API's ~200 methods. Every type here
// implements tgbotkit.Payload's uniform contract: a constant method name, a
// static JSON-vs-multipart encoding, and a set of fields serializing to the
// appropriate wire format. They are hand-written in place of the codegen the
// spec calls for (spec.md §1, §9) since this module doesn't run the Go
// toolchain to generate code, but every type below follows the exact same
// shape so a generator could produce them mechanically.
package methods

// GetMe takes no parameters; its result identifies the bot itself. It is
// the method the cache adaptor memoizes (spec.md §4.4.1).
type GetMe struct{}

func (GetMe) Method() string  { return "getMe" }
func (GetMe) Multipart() bool { return false }

// MarshalJSON always emits "{}" since GetMe carries no fields — Telegram
// still expects a JSON body on the request.
func (GetMe) MarshalJSON() ([]byte, error) { return []byte("{}"), nil }

// GetUpdates is the long-polling listener's core method.
type GetUpdates struct {
	Offset         int64   `json:"offset,omitempty"`
	Limit          int     `json:"limit,omitempty"`
	TimeoutSeconds int     `json:"timeout,omitempty"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

func (*GetUpdates) Method() string  { return "getUpdates" }
func (*GetUpdates) Multipart() bool { return false }

// SetWebhook registers a webhook URL with the remote API. Certificate
// upload is out of scope (it would require multipart encoding for one
// optional field only used in self-signed-cert setups); DropPendingUpdates
// and SecretToken cover the cases this module's webhook listener needs.
type SetWebhook struct {
	URL                string   `json:"url"`
	MaxConnections     int      `json:"max_connections,omitempty"`
	AllowedUpdates     []string `json:"allowed_updates,omitempty"`
	DropPendingUpdates bool     `json:"drop_pending_updates,omitempty"`
	SecretToken        string   `json:"secret_token,omitempty"`
}

func (*SetWebhook) Method() string  { return "setWebhook" }
func (*SetWebhook) Multipart() bool { return false }

// DeleteWebhook removes any configured webhook, switching the bot back to
// polling-compatible mode. The long-polling listener issues this once
// before its first poll, per spec.md §4.6.
type DeleteWebhook struct {
	DropPendingUpdates bool `json:"drop_pending_updates,omitempty"`
}

func (*DeleteWebhook) Method() string  { return "deleteWebhook" }
func (*DeleteWebhook) Multipart() bool { return false }
