package bot

import (
	"errors"
	"log/slog"

	"git.skobk.in/skobkin/telegram-summon-bot/storage"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

var (
	ErrCreateAPI      = errors.New("cannot create api client")
	ErrGetMe          = errors.New("cannot retrieve api user")
	ErrUpdatesChannel = errors.New("cannot get updates channel")
	ErrHandlerInit    = errors.New("cannot initialize handler")
)

type Bot struct {
	api     *telego.Bot
	storage *storage.Storage
	adminID int64

	// Filled from GetMe on Start; used to match the chat-qualified
	// summon command.
	username string
}

// New creates a bot bound to the given API token and storage.
func New(token string, adminID int64, storage *storage.Storage) (*Bot, error) {
	api, err := telego.NewBot(token, telego.WithDefaultLogger(false, true))
	if err != nil {
		slog.Error("bot: Failed to create API client", "error", err)
		return nil, ErrCreateAPI
	}

	return &Bot{
		api:     api,
		storage: storage,
		adminID: adminID,
	}, nil
}

// Start begins long polling and dispatching updates. It returns after the
// handler loop has been launched.
func (b *Bot) Start() error {
	botUser, err := b.api.GetMe()
	if err != nil {
		slog.Error("bot: Cannot retrieve api user", "error", err)
		return ErrGetMe
	}

	b.username = botUser.Username

	slog.Info("bot: Running as", "id", botUser.ID, "username", botUser.Username,
		"name", botUser.FirstName)

	updates, err := b.api.UpdatesViaLongPolling(nil)
	if err != nil {
		slog.Error("bot: Cannot get update channel", "error", err)
		return ErrUpdatesChannel
	}

	bh, err := th.NewBotHandler(b.api, updates)
	if err != nil {
		slog.Error("bot: Cannot initialize bot handler", "error", err)
		return ErrHandlerInit
	}

	bh.Use(b.trackingMiddleware)

	bh.Handle(b.countHandler, th.CommandEqual("count"))
	bh.Handle(b.messageHandler, th.AnyMessage())

	go bh.Start()

	return nil
}
