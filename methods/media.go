package methods

import (
	"io"
	"strconv"

	"tgbotkit/transport"
	"tgbotkit/types"
)

// SendPhoto uploads (or re-sends by file_id/URL) a photo. It implements
// transport.MultipartPayload since the Photo field may carry a local file.
type SendPhoto struct {
	ChatID    int64
	Photo     string // file_id or URL when File is nil
	File      io.Reader
	FileName  string
	Caption   string
	ParseMode string
}

func (*SendPhoto) Method() string  { return "sendPhoto" }
func (*SendPhoto) Multipart() bool { return true }

func (p *SendPhoto) ChatKey() types.ChatKey { return types.ChatKeyFromID(types.ChatID(p.ChatID)) }

func (p *SendPhoto) SetParseModeIfUnset(mode string) {
	if p.ParseMode == "" {
		p.ParseMode = mode
	}
}

func (p *SendPhoto) FormFields() map[string]string {
	fields := map[string]string{"chat_id": strconv.FormatInt(p.ChatID, 10)}
	if p.Caption != "" {
		fields["caption"] = p.Caption
	}
	if p.ParseMode != "" {
		fields["parse_mode"] = p.ParseMode
	}
	if p.File == nil && p.Photo != "" {
		fields["photo"] = p.Photo
	}
	return fields
}

func (p *SendPhoto) FormFiles() []transport.FormFile {
	if p.File == nil {
		return nil
	}
	return []transport.FormFile{{Field: "photo", Name: p.FileName, Body: p.File}}
}

// SendDocument uploads (or re-sends) an arbitrary file as a document.
type SendDocument struct {
	ChatID   int64
	Document string
	File     io.Reader
	FileName string
	Caption  string
}

func (*SendDocument) Method() string  { return "sendDocument" }
func (*SendDocument) Multipart() bool { return true }

func (p *SendDocument) ChatKey() types.ChatKey { return types.ChatKeyFromID(types.ChatID(p.ChatID)) }

func (p *SendDocument) FormFields() map[string]string {
	fields := map[string]string{"chat_id": strconv.FormatInt(p.ChatID, 10)}
	if p.Caption != "" {
		fields["caption"] = p.Caption
	}
	if p.File == nil && p.Document != "" {
		fields["document"] = p.Document
	}
	return fields
}

func (p *SendDocument) FormFiles() []transport.FormFile {
	if p.File == nil {
		return nil
	}
	return []transport.FormFile{{Field: "document", Name: p.FileName, Body: p.File}}
}

// SendSticker sends a sticker by file_id, URL, or uploaded .webp/.tgs file.
type SendSticker struct {
	ChatID   int64
	Sticker  string
	File     io.Reader
	FileName string
}

func (*SendSticker) Method() string  { return "sendSticker" }
func (*SendSticker) Multipart() bool { return true }

func (p *SendSticker) ChatKey() types.ChatKey { return types.ChatKeyFromID(types.ChatID(p.ChatID)) }

func (p *SendSticker) FormFields() map[string]string {
	fields := map[string]string{"chat_id": strconv.FormatInt(p.ChatID, 10)}
	if p.File == nil && p.Sticker != "" {
		fields["sticker"] = p.Sticker
	}
	return fields
}

func (p *SendSticker) FormFiles() []transport.FormFile {
	if p.File == nil {
		return nil
	}
	return []transport.FormFile{{Field: "sticker", Name: p.FileName, Body: p.File}}
}

