package telegram

import (
	"context"

	"github.com/gin-gonic/gin"

	"task-tracker-bot/internal/conversation"
	"task-tracker-bot/internal/metrics"
	"task-tracker-bot/internal/task"
	pkgLog "task-tracker-bot/pkg/log"
	"task-tracker-bot/pkg/ratelimit"
	pkgTelegram "task-tracker-bot/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	// HandleWebhook is the gin handler for POST /webhook/telegram.
	HandleWebhook(c *gin.Context)
	// HandleUpdate processes one update; used by both webhook and polling.
	HandleUpdate(ctx context.Context, update pkgTelegram.Update)
}

// Sender delivers bot replies.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendMessageWithMode(ctx context.Context, chatID int64, text string, parseMode string) error
}

type handler struct {
	l        pkgLog.Logger
	uc       task.UseCase
	dialogue conversation.Controller
	bot      Sender
	limiter  *ratelimit.Limiter
	metrics  *metrics.Metrics
}

// New creates a new Telegram delivery handler. limiter and m may be nil.
func New(
	l pkgLog.Logger,
	uc task.UseCase,
	dialogue conversation.Controller,
	bot Sender,
	limiter *ratelimit.Limiter,
	m *metrics.Metrics,
) Handler {
	return &handler{
		l:        l,
		uc:       uc,
		dialogue: dialogue,
		bot:      bot,
		limiter:  limiter,
		metrics:  m,
	}
}
