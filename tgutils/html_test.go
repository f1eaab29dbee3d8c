package tgutils_test

import (
	"testing"

	"tgbotkit/tgutils"
	"tgbotkit/types"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"ampersand", "Fish & Chips", "Fish &amp; Chips"},
		{"angleBrackets", "<tag>", "&lt;tag&gt;"},
		{"quotesUntouched", `He said "hi" and 'bye'`, `He said "hi" and 'bye'`},
		{"plain", "nothing to escape", "nothing to escape"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tgutils.Escape(tc.in); got != tc.want {
				t.Fatalf("Escape(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStyleHelpers(t *testing.T) {
	t.Parallel()

	if got, want := tgutils.Bold("hi"), "<b>hi</b>"; got != want {
		t.Fatalf("Bold() = %q, want %q", got, want)
	}
	if got, want := tgutils.Italic("hi"), "<i>hi</i>"; got != want {
		t.Fatalf("Italic() = %q, want %q", got, want)
	}
	if got, want := tgutils.CodeInline(`<x>`), "<code>&lt;x&gt;</code>"; got != want {
		t.Fatalf("CodeInline() = %q, want %q", got, want)
	}
	if got, want := tgutils.Link("http://a.com/?x=1&y=2", "click"), `<a href="http://a.com/?x=1&amp;y=2">click</a>`; got != want {
		t.Fatalf("Link() = %q, want %q", got, want)
	}
}

func TestUserMentionOrLink(t *testing.T) {
	t.Parallel()

	withUsername := types.User{ID: 1, FirstName: "Ann", Username: "ann"}
	if got, want := tgutils.UserMentionOrLink(withUsername), "@ann"; got != want {
		t.Fatalf("UserMentionOrLink() = %q, want %q", got, want)
	}

	noUsername := types.User{ID: 2, FirstName: "Bob", LastName: "Jones"}
	got := tgutils.UserMentionOrLink(noUsername)
	want := `<a href="tg://user/?id=2">Bob Jones</a>`
	if got != want {
		t.Fatalf("UserMentionOrLink() = %q, want %q", got, want)
	}
}
