package tgbotkit

import (
	"io"

	"tgbotkit/methods"
	"tgbotkit/types"
)

// GetMe identifies the bot itself. The cache adaptor memoizes this call's
// result for the lifetime of the Bot it decorates.
func (b Bot) GetMe() *Request[methods.GetMe, types.User] {
	return NewRequest[methods.GetMe, types.User](b.exec, methods.GetMe{})
}

// GetUpdates is the long-polling listener's underlying call; most callers
// should use a listener from package updates instead of calling this
// directly.
func (b Bot) GetUpdates(p *methods.GetUpdates) *Request[*methods.GetUpdates, []types.Update] {
	return NewRequest[*methods.GetUpdates, []types.Update](b.exec, p)
}

// SetWebhook registers a webhook URL; see package updates for the listener
// that manages the webhook lifecycle end to end.
func (b Bot) SetWebhook(p *methods.SetWebhook) *Request[*methods.SetWebhook, bool] {
	return NewRequest[*methods.SetWebhook, bool](b.exec, p)
}

// DeleteWebhook removes any configured webhook.
func (b Bot) DeleteWebhook(p *methods.DeleteWebhook) *Request[*methods.DeleteWebhook, bool] {
	return NewRequest[*methods.DeleteWebhook, bool](b.exec, p)
}

// SendMessage sends a text message to chatID.
func (b Bot) SendMessage(chatID int64, text string) *Request[*methods.SendMessage, types.Message] {
	p := &methods.SendMessage{ChatID: chatID, Text: text}
	return NewRequest[*methods.SendMessage, types.Message](b.exec, p)
}

// SendDice sends an animated emoji whose outcome the server chooses.
func (b Bot) SendDice(chatID int64) *Request[*methods.SendDice, types.Message] {
	p := &methods.SendDice{ChatID: chatID}
	return NewRequest[*methods.SendDice, types.Message](b.exec, p)
}

// SendChatAction broadcasts a transient status such as "typing".
func (b Bot) SendChatAction(chatID int64, action string) *Request[*methods.SendChatAction, bool] {
	p := &methods.SendChatAction{ChatID: chatID, Action: action}
	return NewRequest[*methods.SendChatAction, bool](b.exec, p)
}

// AnswerCallbackQuery acknowledges a CallbackQuery.
func (b Bot) AnswerCallbackQuery(callbackQueryID string) *Request[*methods.AnswerCallbackQuery, bool] {
	p := &methods.AnswerCallbackQuery{CallbackQueryID: callbackQueryID}
	return NewRequest[*methods.AnswerCallbackQuery, bool](b.exec, p)
}

// EditMessageText edits the text of a message previously sent by the bot.
func (b Bot) EditMessageText(chatID int64, messageID int, text string) *Request[*methods.EditMessageText, types.Message] {
	p := &methods.EditMessageText{ChatID: chatID, MessageID: messageID, Text: text}
	return NewRequest[*methods.EditMessageText, types.Message](b.exec, p)
}

// DeleteMessage removes a message the bot sent or has rights to delete.
func (b Bot) DeleteMessage(chatID int64, messageID int) *Request[*methods.DeleteMessage, bool] {
	p := &methods.DeleteMessage{ChatID: chatID, MessageID: messageID}
	return NewRequest[*methods.DeleteMessage, bool](b.exec, p)
}

// CopyMessage duplicates a message into another chat without a "forwarded
// from" marker.
func (b Bot) CopyMessage(chatID, fromChatID int64, messageID int) *Request[*methods.CopyMessage, methods.CopyMessageResult] {
	p := &methods.CopyMessage{ChatID: chatID, FromChatID: fromChatID, MessageID: messageID}
	return NewRequest[*methods.CopyMessage, methods.CopyMessageResult](b.exec, p)
}

// BanChatMember removes a user from a group, supergroup, or channel.
func (b Bot) BanChatMember(chatID, userID int64) *Request[*methods.BanChatMember, bool] {
	p := &methods.BanChatMember{ChatID: chatID, UserID: userID}
	return NewRequest[*methods.BanChatMember, bool](b.exec, p)
}

// GetChatMember looks up a chat member's status.
func (b Bot) GetChatMember(chatID, userID int64) *Request[*methods.GetChatMember, methods.ChatMember] {
	p := &methods.GetChatMember{ChatID: chatID, UserID: userID}
	return NewRequest[*methods.GetChatMember, methods.ChatMember](b.exec, p)
}

// SetMyCommands registers the bot's command menu.
func (b Bot) SetMyCommands(commands []methods.BotCommand) *Request[*methods.SetMyCommands, bool] {
	p := &methods.SetMyCommands{Commands: commands}
	return NewRequest[*methods.SetMyCommands, bool](b.exec, p)
}

// GetFile resolves a file_id into a downloadable path.
func (b Bot) GetFile(fileID string) *Request[*methods.GetFile, types.File] {
	p := &methods.GetFile{FileID: fileID}
	return NewRequest[*methods.GetFile, types.File](b.exec, p)
}

// SendPhotoFile uploads a local photo. Use SendPhotoID to re-send by
// file_id or URL instead.
func (b Bot) SendPhotoFile(chatID int64, fileName string, file io.Reader) *Request[*methods.SendPhoto, types.Message] {
	p := &methods.SendPhoto{ChatID: chatID, File: file, FileName: fileName}
	return NewRequest[*methods.SendPhoto, types.Message](b.exec, p)
}

// SendPhotoID re-sends a photo already known to Telegram by file_id or URL.
func (b Bot) SendPhotoID(chatID int64, photo string) *Request[*methods.SendPhoto, types.Message] {
	p := &methods.SendPhoto{ChatID: chatID, Photo: photo}
	return NewRequest[*methods.SendPhoto, types.Message](b.exec, p)
}

// SendDocumentFile uploads a local file as a document.
func (b Bot) SendDocumentFile(chatID int64, fileName string, file io.Reader) *Request[*methods.SendDocument, types.Message] {
	p := &methods.SendDocument{ChatID: chatID, File: file, FileName: fileName}
	return NewRequest[*methods.SendDocument, types.Message](b.exec, p)
}

// SendStickerID sends a sticker already known to Telegram by file_id.
func (b Bot) SendStickerID(chatID int64, sticker string) *Request[*methods.SendSticker, types.Message] {
	p := &methods.SendSticker{ChatID: chatID, Sticker: sticker}
	return NewRequest[*methods.SendSticker, types.Message](b.exec, p)
}
