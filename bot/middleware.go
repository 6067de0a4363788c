package bot

import (
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// trackingMiddleware records the sender of every group text message before
// any handler runs. This is the only place new users and groups enter the
// database. A storage failure must not stop the update from being handled,
// nor the loop from seeing the next one.
func (b *Bot) trackingMiddleware(bot *telego.Bot, update telego.Update, next th.Handler) {
	if msg := update.Message; msg != nil && isGroupTextMessage(msg) {
		b.trackParticipation(msg)
	}

	next(bot, update)
}

func isGroupTextMessage(msg *telego.Message) bool {
	if msg.From == nil || msg.Text == "" {
		return false
	}

	return msg.Chat.Type == telego.ChatTypeGroup || msg.Chat.Type == telego.ChatTypeSupergroup
}

func (b *Bot) trackParticipation(msg *telego.Message) {
	err := b.storage.UpsertParticipation(
		msg.From.ID, msg.From.FirstName, msg.From.Username,
		msg.Chat.ID, msg.Chat.Title,
	)
	if err != nil {
		slog.Error("bot: Failed to track participation", "error", err,
			"user_id", msg.From.ID, "chat_id", msg.Chat.ID)
	}
}
