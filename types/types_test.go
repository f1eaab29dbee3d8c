package types_test

import (
	"encoding/json"
	"testing"

	"tgbotkit/types"
)

func TestChatIDKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		id   types.ChatID
		want types.ChatKind
	}{
		{"userZero", types.ChatID(0), types.ChatKindUser},
		{"userMax", types.ChatID((1 << 40) - 1), types.ChatKindUser},
		{"groupMin", types.ChatID(-999999999999), types.ChatKindGroup},
		{"groupMax", types.ChatID(-1), types.ChatKindGroup},
		{"channelMin", types.ChatID(-1997852516352), types.ChatKindChannelOrSupergroup},
		{"channelMax", types.ChatID(-1000000000000), types.ChatKindChannelOrSupergroup},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.id.Kind(); got != tc.want {
				t.Fatalf("Kind() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestChatIDKindPanicsOnMalformed(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("Kind() did not panic on a malformed id")
		}
	}()
	_ = types.ChatID(1 << 40).Kind()
}

func TestRGBRoundTrip(t *testing.T) {
	t.Parallel()

	c := types.RGB{R: 0x12, G: 0x34, B: 0x56}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got types.RGB
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != c {
		t.Fatalf("round trip = %#v, want %#v", got, c)
	}
}

func TestARGBRoundTrip(t *testing.T) {
	t.Parallel()

	c := types.ARGB{A: 0xAA, R: 0x12, G: 0x34, B: 0x56}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got types.ARGB
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != c {
		t.Fatalf("round trip = %#v, want %#v", got, c)
	}
}

func TestFileSizeSentinelWhenOmitted(t *testing.T) {
	t.Parallel()

	var f types.File
	if err := json.Unmarshal([]byte(`{"file_id":"x","file_unique_id":"y","file_path":"p"}`), &f); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if f.Size != 1<<32-1 {
		t.Fatalf("Size = %d, want sentinel max uint32", f.Size)
	}
}

func TestFileSizePreservedWhenPresent(t *testing.T) {
	t.Parallel()

	var f types.File
	if err := json.Unmarshal([]byte(`{"file_id":"x","file_unique_id":"y","file_path":"p","file_size":42}`), &f); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if f.Size != 42 {
		t.Fatalf("Size = %d, want 42", f.Size)
	}
}

func TestUpdateUnmarshalJSONDerivesKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want types.Kind
	}{
		{"message", `{"update_id":1,"message":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`, types.KindMessage},
		{"editedMessage", `{"update_id":1,"edited_message":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`, types.KindEditedMessage},
		{"callbackQuery", `{"update_id":1,"callback_query":{"id":"1","from":{"id":1,"is_bot":false,"first_name":"a"}}}`, types.KindCallbackQuery},
		{"inlineQuery", `{"update_id":1,"inline_query":{"id":"1","from":{"id":1,"is_bot":false,"first_name":"a"},"query":"q"}}`, types.KindInlineQuery},
		{"unknown", `{"update_id":1}`, types.KindUnknown},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var u types.Update
			if err := json.Unmarshal([]byte(tc.body), &u); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if u.Kind != tc.want {
				t.Fatalf("Kind = %v, want %v", u.Kind, tc.want)
			}
		})
	}
}
