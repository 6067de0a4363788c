package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

const (
	noMembersMessage        = "No members in this group!"
	permissionDeniedMessage = "You are not allowed to use this command."
	databaseErrorMessage    = "Database error. Try again later."
)

// reply is an outgoing message computed by a handler. An empty parseMode
// means a plain-text send. fallback, when set, is retried as plain text if
// the formatted send is rejected by the API.
type reply struct {
	text      string
	parseMode string
	fallback  string
}

func (b *Bot) messageHandler(bot *telego.Bot, update telego.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	if r := b.processMessage(msg); r != nil {
		b.send(msg, r)
	}
}

func (b *Bot) countHandler(bot *telego.Bot, update telego.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	if r := b.processCount(msg); r != nil {
		b.send(msg, r)
	}
}

// processMessage decides the reply for a group text message. Tracking has
// already happened in the middleware; only the summon trigger is handled
// here. A nil reply means the message is ignored.
func (b *Bot) processMessage(msg *telego.Message) *reply {
	if !isGroupTextMessage(msg) {
		return nil
	}

	if !b.isSummon(msg.Text) {
		return nil
	}

	roster, err := b.storage.GroupRoster(msg.Chat.ID)
	if err != nil {
		slog.Error("bot: Failed to get group roster", "error", err, "chat_id", msg.Chat.ID)
		return nil
	}

	if len(roster) == 0 {
		return &reply{text: noMembersMessage}
	}

	if !needsRichMarkup(roster) {
		return &reply{text: formatMentions(roster, false)}
	}

	return &reply{
		text:      escapeStrict(formatMentions(roster, true)),
		parseMode: telego.ModeMarkdownV2,
		fallback:  formatMentions(roster, false),
	}
}

// processCount answers the admin-only /count command. Non-admin senders get
// a fixed denial without the counts ever being queried.
func (b *Bot) processCount(msg *telego.Message) *reply {
	if msg.From == nil {
		return nil
	}

	if msg.From.ID != b.adminID {
		slog.Info("bot: Denied /count", "user_id", msg.From.ID)
		return &reply{text: permissionDeniedMessage}
	}

	users, groups, err := b.storage.Counts()
	if err != nil {
		slog.Error("bot: Failed to get counts", "error", err)
		return &reply{text: databaseErrorMessage}
	}

	return &reply{text: fmt.Sprintf("Tracked users: %d\nTracked groups: %d", users, groups)}
}

// send delivers a reply to the message's chat, retrying a rejected rich
// send once as plain text when a fallback is available. A message that
// cannot be delivered at all is logged and dropped.
func (b *Bot) send(msg *telego.Message, r *reply) {
	params := tu.Message(tu.ID(msg.Chat.ID), r.text).
		WithReplyParameters(&telego.ReplyParameters{MessageID: msg.MessageID})
	if r.parseMode != "" {
		params = params.WithParseMode(r.parseMode)
	}

	err := b.trySend(params)
	if err != nil && r.fallback != "" {
		slog.Warn("bot: Formatted send rejected, retrying as plain text",
			"error", err, "chat_id", msg.Chat.ID)

		plain := tu.Message(tu.ID(msg.Chat.ID), r.fallback).
			WithReplyParameters(&telego.ReplyParameters{MessageID: msg.MessageID})
		err = b.trySend(plain)
	}
	if err != nil {
		slog.Error("bot: Failed to send message", "error", err,
			"chat_id", msg.Chat.ID, "text_length", len(r.text))
	}
}

// trySend performs one send, waiting out a rate limit once if the API
// reports a retry-after interval.
func (b *Bot) trySend(params *telego.SendMessageParams) error {
	_, err := b.api.SendMessage(params)
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "Too Many Requests") {
		// Error format: "... retry after 5\", migrate to chat ID: 0, retry after: 5"
		parts := strings.Split(err.Error(), "retry after: ")
		if len(parts) == 2 {
			var retryAfter int
			if _, _ = fmt.Sscanf(parts[1], "%d", &retryAfter); retryAfter > 0 {
				slog.Info("bot: Rate limit hit, waiting", "seconds", retryAfter)
				time.Sleep(time.Duration(retryAfter) * time.Second)

				_, err = b.api.SendMessage(params)
			}
		}
	}

	return err
}
