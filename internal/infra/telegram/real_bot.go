// File: internal/infra/telegram/real_bot.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-prayer-reminder/internal/config"
	"telegram-prayer-reminder/internal/domain"
	"telegram-prayer-reminder/internal/domain/ports/adapter"
	"telegram-prayer-reminder/internal/infra/logging"
)

var _ adapter.MessengerAdapter = (*BotAdapter)(nil)

// TextHandler consumes one inbound text message and returns the reply to
// forward, empty for silence.
type TextHandler interface {
	HandleText(ctx context.Context, userID, text string) (string, error)
}

// BotAdapter wraps tgbotapi long-polling. Recipients are chat IDs rendered as
// decimal strings, matching the user identifiers the rest of the system
// carries around.
type BotAdapter struct {
	bot *tgbotapi.BotAPI
	cfg *config.BotConfig
	log *zerolog.Logger
}

// NewBotAdapter authenticates against the Bot API. An invalid or revoked
// token fails here, which is the signal that re-authentication is required;
// transient network drops during polling are retried by the library.
func NewBotAdapter(cfg *config.BotConfig, logger *zerolog.Logger) (*BotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	compLog := logger.With().Str("component", "BotAdapter").Logger()
	compLog.Info().Str("bot", bot.Self.UserName).Msg("authorized")
	return &BotAdapter{bot: bot, cfg: cfg, log: &compLog}, nil
}

func (b *BotAdapter) SendMessage(ctx context.Context, recipient string, text string) error {
	chatID, err := strconv.ParseInt(recipient, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad recipient %q", domain.ErrSendFailure, recipient)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.bot.Send(msg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSendFailure, err)
	}
	return nil
}

// StartPolling consumes updates until ctx is cancelled. onReady fires once,
// after the update stream is established, so the caller can build the initial
// reminder schedule.
func (b *BotAdapter) StartPolling(ctx context.Context, handler TextHandler, onReady func(context.Context)) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	b.log.Info().Msg("connected, polling for updates")
	if onReady != nil {
		onReady(ctx)
	}

	workers := b.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	updateChan := make(chan tgbotapi.Update, 100)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for up := range updateChan {
				b.handleUpdate(ctx, handler, up)
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			b.bot.StopReceivingUpdates()
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

// handleUpdate drops malformed updates after logging, per the inbound-event
// contract: no message, no resolvable chat or no text means no reply.
func (b *BotAdapter) handleUpdate(ctx context.Context, handler TextHandler, up tgbotapi.Update) {
	ctx = logging.WithTraceID(ctx, uuid.NewString())

	msg := up.Message
	if msg == nil {
		b.log.Debug().Err(domain.ErrMalformedEvent).Msg("update without message, dropped")
		return
	}
	if msg.Chat == nil {
		b.log.Warn().Err(domain.ErrMalformedEvent).Msg("message without chat, dropped")
		return
	}
	userID := strconv.FormatInt(msg.Chat.ID, 10)
	ctx = logging.WithUserID(ctx, userID)
	log := logging.With(ctx, b.log)

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		log.Debug().Msg("message without text, dropped")
		return
	}

	reply, err := handler.HandleText(ctx, userID, text)
	if err != nil {
		log.Error().Err(err).Msg("command handling failed")
	}
	if reply == "" {
		return
	}
	if err := b.SendMessage(ctx, userID, reply); err != nil {
		log.Error().Err(err).Msg("reply send failed")
	}
}
