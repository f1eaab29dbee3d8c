package tgbotkit

import (
	"tgbotkit/methods"
	"tgbotkit/types"
)

// Reply is the same as SendMessage, but takes in a Message to reply to
// instead of a bare chat id, mirroring teloxide's BotMessagesExt sugar.
func (b Bot) Reply(msg types.Message, text string) *Request[*methods.SendMessage, types.Message] {
	req := b.SendMessage(int64(msg.Chat.ID), text)
	req.Payload().ReplyToMessageID = msg.ID
	return req
}

// DeleteIncoming is the same as DeleteMessage, but takes in the Message to
// delete.
func (b Bot) DeleteIncoming(msg types.Message) *Request[*methods.DeleteMessage, bool] {
	return b.DeleteMessage(int64(msg.Chat.ID), msg.ID)
}

// EditText is the same as EditMessageText, but takes in the Message being
// edited instead of a bare chat id and message id.
func (b Bot) EditText(msg types.Message, text string) *Request[*methods.EditMessageText, types.Message] {
	return b.EditMessageText(int64(msg.Chat.ID), msg.ID, text)
}
