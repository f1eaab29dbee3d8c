package methods

import "tgbotkit/types"

// SendMessage sends a text message to a chat. It implements
// tgbotkit.ChatScoped (for the throttle adaptor) and
// tgbotkit.ParseModeSetter (for the default-parse-mode adaptor).
type SendMessage struct {
	ChatID                int64  `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
	ReplyToMessageID      int    `json:"reply_to_message_id,omitempty"`
}

func (*SendMessage) Method() string  { return "sendMessage" }
func (*SendMessage) Multipart() bool { return false }

func (p *SendMessage) ChatKey() types.ChatKey { return types.ChatKeyFromID(types.ChatID(p.ChatID)) }

func (p *SendMessage) SetParseModeIfUnset(mode string) {
	if p.ParseMode == "" {
		p.ParseMode = mode
	}
}

// SendDice sends an animated emoji whose outcome is chosen by the server.
type SendDice struct {
	ChatID int64  `json:"chat_id"`
	Emoji  string `json:"emoji,omitempty"`
}

func (*SendDice) Method() string             { return "sendDice" }
func (*SendDice) Multipart() bool            { return false }
func (p *SendDice) ChatKey() types.ChatKey    { return types.ChatKeyFromID(types.ChatID(p.ChatID)) }

// SendChatAction broadcasts a transient status ("typing", "upload_photo",
// ...); it is exempt from per-second throttling in real deployments, but
// this module throttles it the same as any other chat-scoped send for
// simplicity (see DESIGN.md).
type SendChatAction struct {
	ChatID int64  `json:"chat_id"`
	Action string `json:"action"`
}

func (*SendChatAction) Method() string          { return "sendChatAction" }
func (*SendChatAction) Multipart() bool         { return false }
func (p *SendChatAction) ChatKey() types.ChatKey { return types.ChatKeyFromID(types.ChatID(p.ChatID)) }

// AnswerCallbackQuery acknowledges a CallbackQuery, optionally showing a
// toast or alert to the user who clicked the button.
type AnswerCallbackQuery struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
	CacheTime       int    `json:"cache_time,omitempty"`
}

func (*AnswerCallbackQuery) Method() string  { return "answerCallbackQuery" }
func (*AnswerCallbackQuery) Multipart() bool { return false }

// EditMessageText edits the text of a previously sent message.
type EditMessageText struct {
	ChatID    int64  `json:"chat_id,omitempty"`
	MessageID int    `json:"message_id,omitempty"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

func (*EditMessageText) Method() string  { return "editMessageText" }
func (*EditMessageText) Multipart() bool { return false }

func (p *EditMessageText) ChatKey() types.ChatKey { return types.ChatKeyFromID(types.ChatID(p.ChatID)) }

func (p *EditMessageText) SetParseModeIfUnset(mode string) {
	if p.ParseMode == "" {
		p.ParseMode = mode
	}
}

// DeleteMessage removes a message the bot previously sent or has rights to
// delete.
type DeleteMessage struct {
	ChatID    int64 `json:"chat_id"`
	MessageID int   `json:"message_id"`
}

func (*DeleteMessage) Method() string          { return "deleteMessage" }
func (*DeleteMessage) Multipart() bool         { return false }
func (p *DeleteMessage) ChatKey() types.ChatKey { return types.ChatKeyFromID(types.ChatID(p.ChatID)) }

// CopyMessageResult is the result of CopyMessage: the id of the copy in the
// destination chat.
type CopyMessageResult struct {
	MessageID int `json:"message_id"`
}

// CopyMessage duplicates a message from one chat into another without
// attaching a "forwarded from" marker.
type CopyMessage struct {
	ChatID     int64 `json:"chat_id"`
	FromChatID int64 `json:"from_chat_id"`
	MessageID  int   `json:"message_id"`
}

func (*CopyMessage) Method() string          { return "copyMessage" }
func (*CopyMessage) Multipart() bool         { return false }
func (p *CopyMessage) ChatKey() types.ChatKey { return types.ChatKeyFromID(types.ChatID(p.ChatID)) }

// BanChatMember removes a user from a group/supergroup/channel, optionally
// until a given unix timestamp.
type BanChatMember struct {
	ChatID    int64 `json:"chat_id"`
	UserID    int64 `json:"user_id"`
	UntilDate int64 `json:"until_date,omitempty"`
}

func (*BanChatMember) Method() string          { return "banChatMember" }
func (*BanChatMember) Multipart() bool         { return false }
func (p *BanChatMember) ChatKey() types.ChatKey { return types.ChatKeyFromID(types.ChatID(p.ChatID)) }

// ChatMember is the minimal subset of the Bot API's ChatMember object.
type ChatMember struct {
	Status string     `json:"status"`
	User   types.User `json:"user"`
}

// GetChatMember looks up a chat member's status.
type GetChatMember struct {
	ChatID int64 `json:"chat_id"`
	UserID int64 `json:"user_id"`
}

func (*GetChatMember) Method() string  { return "getChatMember" }
func (*GetChatMember) Multipart() bool { return false }

// BotCommand is one entry registered via SetMyCommands.
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// SetMyCommands registers the bot's command list, shown by Telegram clients
// as a menu.
type SetMyCommands struct {
	Commands []BotCommand `json:"commands"`
}

func (*SetMyCommands) Method() string  { return "setMyCommands" }
func (*SetMyCommands) Multipart() bool { return false }

// GetFile resolves a file_id into a downloadable path (valid for at least
// one hour, per the Bot API's documented guarantee).
type GetFile struct {
	FileID string `json:"file_id"`
}

func (*GetFile) Method() string  { return "getFile" }
func (*GetFile) Multipart() bool { return false }
