package broadcast

import tele "gopkg.in/telebot.v4"

// Kind is the content type of a broadcast message.
type Kind string

const (
	KindText        Kind = "text"
	KindPhoto       Kind = "photo"
	KindVideo       Kind = "video"
	KindDocument    Kind = "document"
	KindAnimation   Kind = "animation"
	KindVoice       Kind = "voice"
	KindVideoNote   Kind = "video_note"
	KindSticker     Kind = "sticker"
	KindUnsupported Kind = "unsupported"
)

// Message is the template replayed to every recipient. Media is referenced by
// the file id Telegram already holds, so nothing is uploaded again.
type Message struct {
	Kind    Kind
	Text    string
	FileID  string
	Caption string
}

// FromTelegram captures the admin's message as a broadcast template.
func FromTelegram(m *tele.Message) Message {
	switch {
	case m == nil:
		return Message{Kind: KindUnsupported}
	case m.Photo != nil:
		return Message{Kind: KindPhoto, FileID: m.Photo.FileID, Caption: m.Caption}
	case m.Video != nil:
		return Message{Kind: KindVideo, FileID: m.Video.FileID, Caption: m.Caption}
	case m.Animation != nil:
		return Message{Kind: KindAnimation, FileID: m.Animation.FileID, Caption: m.Caption}
	case m.Document != nil:
		return Message{Kind: KindDocument, FileID: m.Document.FileID, Caption: m.Caption}
	case m.Voice != nil:
		return Message{Kind: KindVoice, FileID: m.Voice.FileID, Caption: m.Caption}
	case m.VideoNote != nil:
		return Message{Kind: KindVideoNote, FileID: m.VideoNote.FileID}
	case m.Sticker != nil:
		return Message{Kind: KindSticker, FileID: m.Sticker.FileID}
	case m.Text != "":
		return Message{Kind: KindText, Text: m.Text}
	default:
		return Message{Kind: KindUnsupported}
	}
}

// sendable builds the telebot payload for the message, or nil when the kind
// cannot be broadcast.
func (m Message) sendable() any {
	file := tele.File{FileID: m.FileID}
	switch m.Kind {
	case KindText:
		if m.Text == "" {
			return nil
		}
		return m.Text
	case KindPhoto:
		return &tele.Photo{File: file, Caption: m.Caption}
	case KindVideo:
		return &tele.Video{File: file, Caption: m.Caption}
	case KindDocument:
		return &tele.Document{File: file, Caption: m.Caption}
	case KindAnimation:
		return &tele.Animation{File: file, Caption: m.Caption}
	case KindVoice:
		return &tele.Voice{File: file, Caption: m.Caption}
	case KindVideoNote:
		return &tele.VideoNote{File: file}
	case KindSticker:
		return &tele.Sticker{File: file}
	default:
		return nil
	}
}

// Supported reports whether the message can be broadcast.
func (m Message) Supported() bool {
	if m.Kind != KindText && m.FileID == "" {
		return false
	}
	return m.sendable() != nil
}
