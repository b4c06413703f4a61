package telegram

import (
	"context"
	"time"

	pkgLog "task-tracker-bot/pkg/log"
	pkgTelegram "task-tracker-bot/pkg/telegram"
)

const pollRetryDelay = 3 * time.Second

// UpdateSource long-polls Telegram for updates.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]pkgTelegram.Update, error)
}

// Poll feeds updates from src into h one at a time until ctx is cancelled.
func Poll(ctx context.Context, l pkgLog.Logger, src UpdateSource, h Handler, timeout time.Duration) error {
	var offset int64
	l.Infof(ctx, "internal.task.delivery.telegram.Poll: polling for updates (timeout %s)", timeout)

	for {
		updates, err := src.GetUpdates(ctx, offset, timeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			l.Warnf(ctx, "internal.task.delivery.telegram.Poll: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, u := range updates {
			h.HandleUpdate(ctx, u)
			offset = u.UpdateID + 1
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}
