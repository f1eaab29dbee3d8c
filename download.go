package tgbotkit

import (
	"context"
	"errors"
	"io"
)

var errNoDownloader = errors.New("tgbotkit: bound executor doesn't support DownloadFile")

// fileDownloader is implemented by transport.Client. Adaptors that wrap a
// Client still satisfy Executor but not necessarily fileDownloader; Bot
// surfaces DownloadFile only when the bound Executor supports it.
type fileDownloader interface {
	DownloadFile(ctx context.Context, filePath string, w io.Writer) error
}

// DownloadFile streams the file at filePath (as returned by GetFile) into w.
// It reports ErrUnsupported-shaped behavior by returning a KindDecode Error
// if the bound Executor doesn't support downloading, which only happens if a
// caller built a Bot around a custom, non-transport Executor.
func (b Bot) DownloadFile(ctx context.Context, filePath string, w io.Writer) error {
	dl, ok := b.exec.(fileDownloader)
	if !ok {
		return &Error{Kind: KindDecode, Err: errNoDownloader}
	}
	return dl.DownloadFile(ctx, filePath, w)
}
