package userbot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"

	"TgBridge/entity"
	"TgBridge/internal/config"
	"TgBridge/internal/lib/sl"
	"TgBridge/internal/service/normalizer"
)

// Forwarder delivers normalized records to the configured webhook.
type Forwarder interface {
	Enabled() bool
	Deliver(ctx context.Context, rec *entity.Record) error
}

// Bot is the Telegram userbot: it holds the authenticated MTProto
// connection, listens for new messages and hands each one to the
// normalize-and-forward pipeline.
type Bot struct {
	log        *slog.Logger
	conf       *config.Config
	client     *telegram.Client
	api        *tg.Client
	normalizer *normalizer.Normalizer
	forwarder  Forwarder
	connected  atomic.Bool
}

// NewUserBot creates the client with the session storage selected by
// configuration (portable string vs file backed).
func NewUserBot(conf *config.Config, log *slog.Logger) (*Bot, error) {
	bot := &Bot{
		log:  log.With(sl.Module("userbot")),
		conf: conf,
	}

	storage, err := newSessionStorage(conf)
	if err != nil {
		return nil, fmt.Errorf("session storage: %w", err)
	}

	dispatcher := tg.NewUpdateDispatcher()
	dispatcher.OnNewMessage(func(ctx context.Context, e tg.Entities, update *tg.UpdateNewMessage) error {
		return bot.handleMessage(ctx, e, update.Message)
	})
	dispatcher.OnNewChannelMessage(func(ctx context.Context, e tg.Entities, update *tg.UpdateNewChannelMessage) error {
		return bot.handleMessage(ctx, e, update.Message)
	})

	bot.client = telegram.NewClient(conf.Telegram.ApiID, conf.Telegram.ApiHash, telegram.Options{
		SessionStorage: storage,
		UpdateHandler:  dispatcher,
	})
	bot.api = bot.client.API()

	return bot, nil
}

// SetNormalizer sets the event normalizer for the bot.
func (b *Bot) SetNormalizer(n *normalizer.Normalizer) {
	b.normalizer = n
}

// SetForwarder sets the webhook forwarder for the bot.
func (b *Bot) SetForwarder(f Forwarder) {
	b.forwarder = f
}

// PhotoFetcher returns the profile photo fetcher bound to this client.
func (b *Bot) PhotoFetcher() normalizer.PhotoFetcher {
	return newPhotoFetcher(b.api, b.conf.Photos.Dir, b.log)
}

// Start connects, runs the interactive login when the persisted session
// is not authorized, and then listens for updates until ctx is done or
// the transport drops.
func (b *Bot) Start(ctx context.Context) error {
	return b.client.Run(ctx, func(ctx context.Context) error {
		b.connected.Store(true)
		defer b.connected.Store(false)

		if err := b.login(ctx); err != nil {
			return fmt.Errorf("login: %w", err)
		}

		b.log.Info("listening for messages")
		<-ctx.Done()
		return ctx.Err()
	})
}

func (b *Bot) handleMessage(ctx context.Context, e tg.Entities, msg tg.MessageClass) error {
	m, ok := msg.(*tg.Message)
	if !ok {
		// service messages carry no forwardable content
		return nil
	}

	ev := entity.InboundEvent{
		MessageID: int64(m.ID),
		Text:      m.Message,
		Date:      time.Unix(int64(m.Date), 0),
		Outgoing:  m.Out,
		Chat:      resolveChat(e, m.PeerID),
		Sender:    resolveSender(e, m),
	}

	rec, err := b.normalizer.Normalize(ctx, ev)
	if err != nil {
		b.log.With(
			slog.Int64("message_id", ev.MessageID),
			sl.Err(err),
		).Warn("event dropped")
		return nil
	}

	b.logMessage(ev)

	if b.forwarder != nil && b.forwarder.Enabled() {
		// fire and forget: a slow webhook stalls only its own
		// goroutine, never the update loop
		go func() {
			_ = b.forwarder.Deliver(context.Background(), rec)
		}()
	}

	return nil
}

func (b *Bot) logMessage(ev entity.InboundEvent) {
	direction := "in"
	if ev.Outgoing {
		direction = "out"
	}
	text := ev.Text
	if text == "" {
		text = "<no text>"
	}

	b.log.Info("message",
		slog.String("direction", direction),
		slog.String("from", ev.Sender.DisplayName()),
		slog.String("chat", ev.Chat.DisplayTitle()),
		slog.String("text", text),
	)
}

// WebhookEnabled reports whether forwarding is configured.
func (b *Bot) WebhookEnabled() bool {
	return b.conf.WebhookEnabled()
}

// TelegramConnected reports the cached connection state.
func (b *Bot) TelegramConnected() bool {
	return b.connected.Load()
}

// FileSession reports whether the session is file backed.
func (b *Bot) FileSession() bool {
	return b.conf.FileSession()
}

// SessionExists reports whether the session file is present on disk.
func (b *Bot) SessionExists() bool {
	path := b.conf.SessionPath()
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
