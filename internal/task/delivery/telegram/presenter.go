package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"task-tracker-bot/internal/model"
	"task-tracker-bot/internal/task"
	pkgTelegram "task-tracker-bot/pkg/telegram"
)

// listTasks sends the user's active tasks as one Markdown message.
// When user text breaks the markup the list is resent as plain text.
func (h *handler) listTasks(ctx context.Context, sc model.Scope) error {
	tasks, err := h.uc.ListActive(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "%s: user_id=%d: %v", logPrefixList, sc.UserID, err)
		return err
	}

	if len(tasks) == 0 {
		return h.bot.SendMessage(ctx, sc.ChatID, msgNoActiveTasks)
	}
	err = h.bot.SendMessageWithMode(ctx, sc.ChatID, formatTasks(tasks, msgTaskBlockFormat), pkgTelegram.ParseModeMarkdown)
	if pkgTelegram.IsParseEntitiesError(err) {
		h.l.Warnf(ctx, "%s: user_id=%d: markup rejected, sending plain: %v", logPrefixList, sc.UserID, err)
		return h.bot.SendMessage(ctx, sc.ChatID, formatTasks(tasks, msgTaskBlockPlain))
	}
	return err
}

// formatTasks renders one block per task separated by a blank line.
// User text is sent as typed.
func formatTasks(tasks []model.Task, format string) string {
	blocks := make([]string, 0, len(tasks))
	for _, t := range tasks {
		blocks = append(blocks, fmt.Sprintf(format, t.Title, t.Description, t.Deadline, t.Priority))
	}
	return strings.Join(blocks, "\n\n")
}

func (h *handler) showStats(ctx context.Context, sc model.Scope) error {
	out, err := h.uc.Activity(ctx, sc)
	if err != nil {
		return err
	}
	text := fmt.Sprintf(msgStatsFormat, out.TasksWeek, out.TasksMonth, out.TasksAllTime, out.FocusMinutes)
	return h.bot.SendMessageWithMode(ctx, sc.ChatID, text, pkgTelegram.ParseModeMarkdown)
}

func (h *handler) logFocus(ctx context.Context, sc model.Scope, args string) error {
	minutes, err := parseMinutes(args)
	if err != nil {
		return h.bot.SendMessage(ctx, sc.ChatID, msgFocusUsage)
	}
	if err := h.uc.LogFocus(ctx, sc, task.LogFocusInput{Minutes: minutes}); err != nil {
		if errors.Is(err, task.ErrInvalidFocus) {
			return h.bot.SendMessage(ctx, sc.ChatID, msgFocusUsage)
		}
		return err
	}
	return h.bot.SendMessage(ctx, sc.ChatID, fmt.Sprintf(msgFocusLogged, minutes))
}

func parseMinutes(args string) (int, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, errNoMinutes
	}
	return strconv.Atoi(fields[0])
}
