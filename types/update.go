package types

import "encoding/json"

// Chat is the minimal subset of the Bot API's Chat object the dispatcher and
// command parser need: enough to classify private/group/channel chats and
// carry a username for the command parser's bot-name matching and channel
// ChatKey hashing.
type Chat struct {
	ID       ChatID `json:"id"`
	Type     string `json:"type"` // "private", "group", "supergroup", "channel"
	Title    string `json:"title,omitempty"`
	Username string `json:"username,omitempty"`
}

// User is the minimal subset of the Bot API's User object.
type User struct {
	ID        UserID `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// MessageEntity marks a styled span of a message's text (bold, a mention, a
// bot command, ...), used by the command parser to find the /command prefix
// without relying on string scanning alone.
type MessageEntity struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// Dice is a thin wrapper the dispatcher's filter_map combinator commonly
// projects out of a Message (see ext.DiceValue), matching teloxide's
// Message::dice() accessor from filter_ext.rs.
type Dice struct {
	Emoji string `json:"emoji"`
	Value int    `json:"value"`
}

// Message is the minimal subset of the Bot API's Message object.
type Message struct {
	ID       int             `json:"message_id"`
	From     *User           `json:"from,omitempty"`
	Chat     Chat            `json:"chat"`
	Date     int64           `json:"date"`
	Text     string          `json:"text,omitempty"`
	Caption  string          `json:"caption,omitempty"`
	Entities []MessageEntity `json:"entities,omitempty"`
	Dice     *Dice           `json:"dice,omitempty"`
}

// CallbackQuery is the minimal subset needed to answer inline-keyboard
// button clicks.
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

// InlineQuery is the minimal subset needed to route @bot inline queries.
type InlineQuery struct {
	ID    string `json:"id"`
	From  User   `json:"from"`
	Query string `json:"query"`
}

// Kind enumerates the Update variants this module models. The Bot API has
// many more (edited_message, channel_post, poll, ...); only the ones
// exercised by the dispatcher's example handlers and tests are modeled,
// per spec.md §1's scoping of the ~400 domain types.
type Kind int

const (
	KindUnknown Kind = iota
	KindMessage
	KindEditedMessage
	KindCallbackQuery
	KindInlineQuery
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindEditedMessage:
		return "edited_message"
	case KindCallbackQuery:
		return "callback_query"
	case KindInlineQuery:
		return "inline_query"
	default:
		return "unknown"
	}
}

// Update is a tagged union over the update kinds this module models. Exactly
// one of the pointer fields matching Kind is non-nil.
type Update struct {
	ID            int64          `json:"update_id"`
	Kind          Kind           `json:"-"`
	Message       *Message       `json:"message,omitempty"`
	EditedMessage *Message       `json:"edited_message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
	InlineQuery   *InlineQuery   `json:"inline_query,omitempty"`
}

// UnmarshalJSON decodes the wire shape (a flat object with one of several
// optional fields present) and sets Kind to match whichever field the
// server actually sent, so callers never need to re-derive it themselves.
func (u *Update) UnmarshalJSON(data []byte) error {
	type alias Update
	aux := (*alias)(u)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	switch {
	case u.Message != nil:
		u.Kind = KindMessage
	case u.EditedMessage != nil:
		u.Kind = KindEditedMessage
	case u.CallbackQuery != nil:
		u.Kind = KindCallbackQuery
	case u.InlineQuery != nil:
		u.Kind = KindInlineQuery
	default:
		u.Kind = KindUnknown
	}
	return nil
}

// Chat returns the chat this update is scoped to, and whether one was found.
// The dispatcher uses this to compute the per-chat distribution key.
func (u Update) Chat() (Chat, bool) {
	switch u.Kind {
	case KindMessage, KindEditedMessage:
		if u.Message != nil {
			return u.Message.Chat, true
		}
	case KindCallbackQuery:
		if u.CallbackQuery != nil && u.CallbackQuery.Message != nil {
			return u.CallbackQuery.Message.Chat, true
		}
	}
	return Chat{}, false
}
