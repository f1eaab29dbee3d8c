package adaptors

import (
	"context"
	"io"

	"tgbotkit"
	"tgbotkit/methods"
	"tgbotkit/types"
)

// Future is the Go analogue of the spec's "every request is also a future"
// contract (spec.md §4.4.4). Go has no async/await, so AutoSend can't just
// make an existing Request type awaitable in place; instead it eagerly
// starts the call in a goroutine at construction time and returns a handle
// whose Await blocks for the result — observably the same "fire immediately,
// collect later" behavior the spec describes.
type Future[R any] struct {
	done chan struct{}
	val  R
	err  error
}

func newFuture[R any](ctx context.Context, send func(context.Context) (R, error)) *Future[R] {
	f := &Future[R]{done: make(chan struct{})}
	go func() {
		f.val, f.err = send(ctx)
		close(f.done)
	}()
	return f
}

// Await blocks until the underlying call completes and returns its result.
// Calling Await more than once returns the same result each time.
func (f *Future[R]) Await() (R, error) {
	<-f.done
	return f.val, f.err
}

// AutoSendBot exposes the same operations as tgbotkit.Bot, but each method
// starts its call immediately and returns a Future instead of a Request —
// the hand-written per-method variant the spec's own design notes sanction
// as the fallback where a language lacks blanket trait impls (spec.md §9).
// Because there's no Request to mutate before sending, payload construction
// must happen entirely at the call site; this mirrors the facade's
// positional-argument methods in facade.go one for one.
type AutoSendBot struct {
	bot tgbotkit.Bot
	ctx context.Context
}

// AutoSend binds b to ctx (the context every eagerly-started call will use)
// and returns an AutoSendBot.
func AutoSend(b tgbotkit.Bot, ctx context.Context) AutoSendBot {
	return AutoSendBot{bot: b, ctx: ctx}
}

func (a AutoSendBot) GetMe() *Future[types.User] {
	return newFuture(a.ctx, a.bot.GetMe().Send)
}

func (a AutoSendBot) SendMessage(chatID int64, text string) *Future[types.Message] {
	return newFuture(a.ctx, a.bot.SendMessage(chatID, text).Send)
}

func (a AutoSendBot) SendDice(chatID int64) *Future[types.Message] {
	return newFuture(a.ctx, a.bot.SendDice(chatID).Send)
}

func (a AutoSendBot) SendChatAction(chatID int64, action string) *Future[bool] {
	return newFuture(a.ctx, a.bot.SendChatAction(chatID, action).Send)
}

func (a AutoSendBot) AnswerCallbackQuery(callbackQueryID string) *Future[bool] {
	return newFuture(a.ctx, a.bot.AnswerCallbackQuery(callbackQueryID).Send)
}

func (a AutoSendBot) EditMessageText(chatID int64, messageID int, text string) *Future[types.Message] {
	return newFuture(a.ctx, a.bot.EditMessageText(chatID, messageID, text).Send)
}

func (a AutoSendBot) DeleteMessage(chatID int64, messageID int) *Future[bool] {
	return newFuture(a.ctx, a.bot.DeleteMessage(chatID, messageID).Send)
}

func (a AutoSendBot) CopyMessage(chatID, fromChatID int64, messageID int) *Future[methods.CopyMessageResult] {
	return newFuture(a.ctx, a.bot.CopyMessage(chatID, fromChatID, messageID).Send)
}

func (a AutoSendBot) BanChatMember(chatID, userID int64) *Future[bool] {
	return newFuture(a.ctx, a.bot.BanChatMember(chatID, userID).Send)
}

func (a AutoSendBot) GetChatMember(chatID, userID int64) *Future[methods.ChatMember] {
	return newFuture(a.ctx, a.bot.GetChatMember(chatID, userID).Send)
}

func (a AutoSendBot) SetMyCommands(commands []methods.BotCommand) *Future[bool] {
	return newFuture(a.ctx, a.bot.SetMyCommands(commands).Send)
}

func (a AutoSendBot) GetFile(fileID string) *Future[types.File] {
	return newFuture(a.ctx, a.bot.GetFile(fileID).Send)
}

func (a AutoSendBot) SendPhotoFile(chatID int64, fileName string, file io.Reader) *Future[types.Message] {
	return newFuture(a.ctx, a.bot.SendPhotoFile(chatID, fileName, file).Send)
}

func (a AutoSendBot) SendPhotoID(chatID int64, photo string) *Future[types.Message] {
	return newFuture(a.ctx, a.bot.SendPhotoID(chatID, photo).Send)
}

func (a AutoSendBot) SendDocumentFile(chatID int64, fileName string, file io.Reader) *Future[types.Message] {
	return newFuture(a.ctx, a.bot.SendDocumentFile(chatID, fileName, file).Send)
}

func (a AutoSendBot) SendStickerID(chatID int64, sticker string) *Future[types.Message] {
	return newFuture(a.ctx, a.bot.SendStickerID(chatID, sticker).Send)
}
