// Package tgutils holds small helpers for working with the HTML message
// style (https://core.telegram.org/bots/api#html-style), ported from
// teloxide's utils/html.rs.
package tgutils

import (
	"fmt"
	"strings"

	"tgbotkit/types"
)

// Bold applies the bold style. s is not escaped, since it may carry nested
// markup.
func Bold(s string) string { return "<b>" + s + "</b>" }

// Blockquote applies the block quotation style. s is not escaped.
func Blockquote(s string) string { return "<blockquote>" + s + "</blockquote>" }

// Italic applies the italic style. s is not escaped.
func Italic(s string) string { return "<i>" + s + "</i>" }

// Underline applies the underline style. s is not escaped.
func Underline(s string) string { return "<u>" + s + "</u>" }

// Strike applies the strikethrough style. s is not escaped.
func Strike(s string) string { return "<s>" + s + "</s>" }

// Link builds an inline link; both url and text are escaped.
func Link(url, text string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, Escape(url), Escape(text))
}

// UserMention builds an inline mention link to userID.
func UserMention(userID types.UserID, text string) string {
	return Link(fmt.Sprintf("tg://user?id=%d", userID), text)
}

// CodeBlock formats code as a preformatted block, escaped.
func CodeBlock(code string) string {
	return "<pre>" + Escape(code) + "</pre>"
}

// CodeBlockWithLang formats code as a preformatted block tagged with a
// language for client-side syntax highlighting.
func CodeBlockWithLang(code, lang string) string {
	return fmt.Sprintf(`<pre><code class="language-%s">%s</code></pre>`,
		strings.ReplaceAll(Escape(lang), `"`, "&quot;"), Escape(code))
}

// CodeInline formats s as inline code, escaped.
func CodeInline(s string) string {
	return "<code>" + Escape(s) + "</code>"
}

// Escape escapes &, <, and > so s displays literally under the HTML message
// style. ' and " are deliberately left alone, since Telegram's HTML style
// doesn't require escaping them.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch c {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// UserMentionOrLink returns an @username mention when user has one, or an
// inline tg://user link to their full name otherwise.
func UserMentionOrLink(user types.User) string {
	if user.Username != "" {
		return "@" + user.Username
	}
	fullName := user.FirstName
	if user.LastName != "" {
		fullName += " " + user.LastName
	}
	return Link(fmt.Sprintf("tg://user/?id=%d", user.ID), fullName)
}
