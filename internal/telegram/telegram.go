// Package telegram hosts the Telegram client, update decoding, routing, and
// per-event workers.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"

	"keyword_pin_bot/internal/config"
	"keyword_pin_bot/internal/domain"
	"keyword_pin_bot/internal/logging"
	"keyword_pin_bot/internal/platform"
)

type botRunner interface {
	Start(ctx context.Context)
	GetMe(ctx context.Context) (*models.User, error)
}

var (
	defaultAllowedUpdates = bot.AllowedUpdates{
		"message",
		"callback_query",
	}

	createBot = func(token string, options ...bot.Option) (botRunner, error) {
		return bot.New(token, options...)
	}

	newPlatform = func(runner botRunner, timeout time.Duration) (platform.Client, error) {
		tgBot, ok := runner.(*bot.Bot)
		if !ok {
			return nil, fmt.Errorf("unsupported bot implementation %T", runner)
		}
		return platform.NewTelegram(tgBot, timeout)
	}
)

// Client wraps the Telegram bot instance, the platform adapter handed to
// handlers, and logging dependencies.
type Client struct {
	bot    botRunner
	api    platform.Client
	router *Router
	logger *logrus.Entry
	// username is the bot's own @username; commands suffixed with any other
	// bot's name are dropped during decoding.
	username string

	inflight sync.WaitGroup
}

// NewClient initializes the Telegram bot with long polling. Every decoded
// update is handed to router on its own goroutine.
func NewClient(cfg config.Config, router *Router, logger *logrus.Entry) (*Client, error) {
	if strings.TrimSpace(cfg.TelegramToken) == "" {
		return nil, errors.New("telegram token is required")
	}
	if router == nil {
		return nil, errors.New("router is required")
	}
	if logger == nil {
		logger = logging.Logger()
	}

	timeout := cfg.PlatformTimeout
	if timeout <= 0 {
		timeout = config.DefaultPlatformTimeout
	}

	client := &Client{
		router: router,
		logger: logger,
	}

	tgBot, err := createBot(cfg.TelegramToken,
		bot.WithAllowedUpdates(defaultAllowedUpdates),
		bot.WithDefaultHandler(client.handleUpdate),
		bot.WithErrorsHandler(errorHandler(logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot client: %w", err)
	}

	meCtx, cancel := context.WithTimeout(context.Background(), timeout)
	me, err := tgBot.GetMe(meCtx)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("resolve bot identity: %w", err)
	}
	if me == nil || me.Username == "" {
		return nil, errors.New("resolve bot identity: empty username")
	}

	api, err := newPlatform(tgBot, timeout)
	if err != nil {
		return nil, fmt.Errorf("init telegram platform client: %w", err)
	}

	client.bot = tgBot
	client.api = api
	client.username = me.Username

	return client, nil
}

// Start begins receiving updates via long polling until the context is
// canceled, then waits for handlers that are still running.
func (c *Client) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	c.logger.WithFields(logging.Fields{
		"event":           "telegram_listen",
		"allowed_updates": defaultAllowedUpdates,
	}).Info("starting telegram long polling")

	c.bot.Start(ctx)

	c.inflight.Wait()

	c.logger.WithField("event", "telegram_stopped").Info("telegram polling stopped")
}

// Ping checks that the Bot API answers getMe.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.bot == nil {
		return errors.New("telegram client is not initialized")
	}

	if _, err := c.bot.GetMe(ctx); err != nil {
		return fmt.Errorf("telegram getMe: %w", err)
	}

	return nil
}

func (c *Client) handleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update == nil {
		return
	}

	meta := extractUpdateMeta(update)
	fields := logging.Fields{
		"event":       "telegram_update",
		"update_type": meta.updateType,
	}
	if meta.userID != 0 {
		fields["user_id"] = meta.userID
	}
	if meta.chatID != 0 {
		fields["chat_id"] = meta.chatID
	}
	c.logger.WithFields(fields).Debug("telegram update received")

	event, ok := decodeUpdate(update, c.username)
	if !ok {
		return
	}

	c.dispatchAsync(ctx, event)
}

// dispatchAsync runs one event on its own goroutine. Handlers keep running
// after polling stops; each platform call is bounded by its own timeout.
func (c *Client) dispatchAsync(ctx context.Context, event domain.Event) {
	handlerCtx := context.WithoutCancel(ctx)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer func() {
			if rec := recover(); rec != nil {
				c.logger.WithFields(logging.Fields{
					"event":      "handler_panic",
					"panic":      fmt.Sprint(rec),
					"event_type": fmt.Sprintf("%T", event),
					"stack":      string(debug.Stack()),
				}).Error("recovered from handler panic")
			}
		}()

		c.router.Dispatch(handlerCtx, c.api, event)
	}()
}

type updateMeta struct {
	userID     int64
	chatID     int64
	updateType string
}

func extractUpdateMeta(update *models.Update) updateMeta {
	switch {
	case update.Message != nil:
		return updateMeta{
			userID:     userID(update.Message.From),
			chatID:     chatID(&update.Message.Chat),
			updateType: "message",
		}
	case update.CallbackQuery != nil:
		return updateMeta{
			userID:     userID(&update.CallbackQuery.From),
			chatID:     messageChatID(update.CallbackQuery.Message),
			updateType: "callback_query",
		}
	case update.EditedMessage != nil:
		return updateMeta{
			userID:     userID(update.EditedMessage.From),
			chatID:     chatID(&update.EditedMessage.Chat),
			updateType: "edited_message",
		}
	default:
		return updateMeta{updateType: "unknown"}
	}
}

func errorHandler(logger *logrus.Entry) bot.ErrorsHandler {
	if logger == nil {
		logger = logging.Logger()
	}

	return func(err error) {
		if err == nil {
			return
		}

		logger.WithField("event", "telegram_error").WithError(err).Error("telegram polling error")
	}
}

func userID(user *models.User) int64 {
	if user == nil {
		return 0
	}

	return user.ID
}

func chatID(chat *models.Chat) int64 {
	if chat == nil {
		return 0
	}

	return chat.ID
}

func messageChatID(msg models.MaybeInaccessibleMessage) int64 {
	switch msg.Type {
	case models.MaybeInaccessibleMessageTypeMessage:
		if msg.Message == nil {
			return 0
		}
		return chatID(&msg.Message.Chat)
	case models.MaybeInaccessibleMessageTypeInaccessibleMessage:
		if msg.InaccessibleMessage == nil {
			return 0
		}
		return chatID(&msg.InaccessibleMessage.Chat)
	default:
		return 0
	}
}

func messageID(msg models.MaybeInaccessibleMessage) int {
	switch msg.Type {
	case models.MaybeInaccessibleMessageTypeMessage:
		if msg.Message == nil {
			return 0
		}
		return msg.Message.ID
	case models.MaybeInaccessibleMessageTypeInaccessibleMessage:
		if msg.InaccessibleMessage == nil {
			return 0
		}
		return msg.InaccessibleMessage.MessageID
	default:
		return 0
	}
}
