package bot

import (
	"testing"

	"git.skobk.in/skobkin/telegram-summon-bot/storage"

	"github.com/stretchr/testify/assert"
)

func TestIsSummon(t *testing.T) {
	b := &Bot{username: "invocacion_bot"}

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"bare command", "/invocar", true},
		{"bare command with whitespace", "  /invocar \n", true},
		{"qualified command", "/invocar@invocacion_bot", true},
		{"other bot qualified", "/invocar@other_bot", false},
		{"everyone keyword", "hello @everyone", true},
		{"here keyword", "@here meeting in 5", true},
		{"keyword case insensitive", "wake up @EVERYONE", true},
		{"command with arguments", "/invocar now", false},
		{"plain chatter", "good morning", false},
		{"other command", "/count", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.isSummon(tt.text))
		})
	}
}

func TestNeedsRichMarkup(t *testing.T) {
	withHandles := []storage.User{
		{UserID: 1, FirstName: "Ana", Username: "ana"},
		{UserID: 2, FirstName: "Bob", Username: "bob"},
	}
	assert.False(t, needsRichMarkup(withHandles))

	mixed := []storage.User{
		{UserID: 1, FirstName: "Ana"},
		{UserID: 2, FirstName: "Bob", Username: "bob"},
	}
	assert.True(t, needsRichMarkup(mixed))

	assert.False(t, needsRichMarkup(nil))
}

func TestFormatMentionsPlain(t *testing.T) {
	users := []storage.User{
		{UserID: 1, FirstName: "Ana", Username: "a_b"},
		{UserID: 2, FirstName: "Bob", Username: "bob"},
	}

	assert.Equal(t, "@a_b @bob", formatMentions(users, false))
}

func TestFormatMentionsRichEscapesHandles(t *testing.T) {
	users := []storage.User{
		{UserID: 1, FirstName: "Ana", Username: "a_b"},
		{UserID: 2, FirstName: "Bob", Username: "bob"},
	}

	assert.Equal(t, `@a\_b @bob`, formatMentions(users, true))
}

func TestFormatMentionsLinkFallback(t *testing.T) {
	users := []storage.User{
		{UserID: 7, FirstName: "Ana"},
	}

	assert.True(t, needsRichMarkup(users))
	assert.Equal(t, "[Ana](tg://user?id=7)", formatMentions(users, true))
}

func TestFormatMentionsLinkNameEscaped(t *testing.T) {
	users := []storage.User{
		{UserID: 7, FirstName: "An_a"},
	}

	assert.Equal(t, `[An\_a](tg://user?id=7)`, formatMentions(users, true))
}

func TestEscapeStrict(t *testing.T) {
	assert.Equal(t, `Mr\. O\-Neil\!`, escapeStrict("Mr. O-Neil!"))
	assert.Equal(t, `@a\_b`, escapeStrict(`@a\_b`))
}
