package bot

import (
	"fmt"
	"strings"

	"git.skobk.in/skobkin/telegram-summon-bot/storage"
)

const summonCommand = "/invocar"

var broadcastKeywords = []string{"@everyone", "@here"}

// isSummon reports whether the message text asks for a roster mention:
// the summon command (bare or qualified with the bot's username), or a
// broadcast keyword anywhere in the text.
func (b *Bot) isSummon(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == summonCommand || trimmed == summonCommand+"@"+b.username {
		return true
	}

	lower := strings.ToLower(text)
	for _, keyword := range broadcastKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

// needsRichMarkup reports whether mentioning the roster requires MarkdownV2:
// users without a handle can only be mentioned through a profile link.
func needsRichMarkup(users []storage.User) bool {
	for _, user := range users {
		if user.Username == "" {
			return true
		}
	}

	return false
}

// formatMentions renders the roster as one space-joined mention line. In
// rich mode handles get their underscores escaped and handleless users
// become profile links; plain mode keeps handles literal.
func formatMentions(users []storage.User, rich bool) string {
	mentions := make([]string, 0, len(users))
	for _, user := range users {
		switch {
		case user.Username != "" && rich:
			mentions = append(mentions, "@"+escapeHandle(user.Username))
		case user.Username != "":
			mentions = append(mentions, "@"+user.Username)
		default:
			name := user.FirstName
			if rich {
				name = escapeHandle(name)
			}
			mentions = append(mentions, fmt.Sprintf("[%s](tg://user?id=%d)", name, user.UserID))
		}
	}

	return strings.Join(mentions, " ")
}

// escapeHandle escapes underscores so literal ones in a handle or name are
// not parsed as italics markup.
func escapeHandle(text string) string {
	return strings.ReplaceAll(text, "_", "\\_")
}

// escapeStrict escapes the punctuation MarkdownV2 additionally reserves.
// Only applied to text that will be sent with ParseMode MarkdownV2; plain
// sends must never pass through here.
func escapeStrict(text string) string {
	for _, char := range []string{".", "-", "!"} {
		text = strings.ReplaceAll(text, char, "\\"+char)
	}

	return text
}
