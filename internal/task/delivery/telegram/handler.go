package telegram

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"task-tracker-bot/internal/conversation"
	"task-tracker-bot/internal/model"
	pkgLog "task-tracker-bot/pkg/log"
	pkgResponse "task-tracker-bot/pkg/response"
	pkgTelegram "task-tracker-bot/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// Updates are processed before responding: Telegram waits for the 200 before
// delivering the user's next message, which keeps dialogue answers in order.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "%s: failed to parse update: %v", logPrefixWebhook, err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (edited messages, callbacks, etc.)
	if update.Message == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Keep going if Telegram drops the connection mid-update
	h.HandleUpdate(context.WithoutCancel(ctx), update)

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// HandleUpdate processes a single update and replies to its chat.
func (h *handler) HandleUpdate(ctx context.Context, update pkgTelegram.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return
	}

	if pkgLog.TraceID(ctx) == "" {
		ctx = pkgLog.WithTraceID(ctx, uuid.NewString())
	}

	if msg.From == nil {
		h.l.Warnf(ctx, "%s: update_id=%d: %v", logPrefixUpdate, update.UpdateID, errMissingSender)
		return
	}

	sc := model.Scope{
		UserID:   msg.From.ID,
		ChatID:   msg.Chat.ID,
		Username: msg.From.Username,
	}

	if err := h.limiter.Allow(sc.UserID); err != nil {
		h.metrics.RateLimited()
		h.l.Warnf(ctx, "%s: user_id=%d: %v", logPrefixUpdate, sc.UserID, err)
		h.send(ctx, sc.ChatID, msgRateLimited)
		return
	}

	command, args := parseCommand(msg.Text)
	label := command
	if label == "" {
		label = labelText
	}

	started := time.Now()
	if err := h.processMessage(ctx, sc, command, args, msg.Text); err != nil {
		h.l.Errorf(ctx, "%s: user_id=%d command=%s: %v", logPrefixUpdate, sc.UserID, label, err)
		h.send(ctx, sc.ChatID, errorMessage(err))
	}
	h.metrics.UpdateHandled(label, time.Since(started).Seconds())
}

// processMessage routes one message to its command or to the open dialogue.
func (h *handler) processMessage(ctx context.Context, sc model.Scope, command, args, text string) error {
	switch command {
	case cmdStart:
		return h.bot.SendMessage(ctx, sc.ChatID, msgWelcome)
	case cmdHelp:
		return h.bot.SendMessageWithMode(ctx, sc.ChatID, msgHelp, pkgTelegram.ParseModeMarkdown)
	case cmdAdd:
		_, err := h.addTask(ctx, sc)
		return err
	case cmdCancel:
		if h.dialogue.Cancel(ctx, sc) {
			return h.bot.SendMessage(ctx, sc.ChatID, msgCancelled)
		}
		return h.bot.SendMessage(ctx, sc.ChatID, msgNothingToCancel)
	case cmdList:
		return h.listTasks(ctx, sc)
	case cmdStats:
		return h.showStats(ctx, sc)
	case cmdFocus:
		return h.logFocus(ctx, sc, args)
	case "":
	default:
		return h.bot.SendMessage(ctx, sc.ChatID, msgUnknownCommand)
	}

	reply, handled, err := h.dialogue.Handle(ctx, sc, text)
	if err != nil {
		if reply.Stage == conversation.StagePriority {
			h.l.Errorf(ctx, "%s: user_id=%d: %v", logPrefixProcess, sc.UserID, err)
			return h.bot.SendMessage(ctx, sc.ChatID, msgSaveFailed+conversation.PromptPriority)
		}
		return err
	}
	if !handled {
		return h.bot.SendMessage(ctx, sc.ChatID, msgHint)
	}
	return h.bot.SendMessage(ctx, sc.ChatID, reply.Text)
}

// addTask opens the add-task dialogue and asks for the title.
func (h *handler) addTask(ctx context.Context, sc model.Scope) (conversation.Stage, error) {
	reply, err := h.dialogue.Start(ctx, sc)
	if err != nil {
		return reply.Stage, err
	}
	if err := h.bot.SendMessage(ctx, sc.ChatID, reply.Text); err != nil {
		return reply.Stage, err
	}
	return reply.Stage, nil
}

// send delivers a best-effort reply; failures are only logged.
func (h *handler) send(ctx context.Context, chatID int64, text string) {
	if err := h.bot.SendMessage(ctx, chatID, text); err != nil {
		h.l.Warnf(ctx, "%s: failed to send reply: %v", logPrefixUpdate, err)
	}
}

// parseCommand splits "/cmd@bot args" into "/cmd" and "args".
// Plain text yields an empty command.
func parseCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	command, args, _ := strings.Cut(text, " ")
	if at := strings.IndexByte(command, '@'); at >= 0 {
		command = command[:at]
	}
	return strings.ToLower(command), strings.TrimSpace(args)
}
