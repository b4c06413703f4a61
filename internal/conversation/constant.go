package conversation

import "task-tracker-bot/internal/task"

// Prompts
const (
	PromptTitle       = "Введите название задачи:"
	PromptDescription = "Введите описание задачи:"
	PromptDeadline    = "Введите дедлайн в формате ДД.ММ.ГГГГ ЧЧ:ММ:"
	PromptPriority    = "Введите приоритет от 1 до 5:"
)

// Replies
const (
	MsgEmptyTitle      = "Название не может быть пустым. " + PromptTitle
	MsgTitleTooLong    = "Название слишком длинное (максимум 256 символов). " + PromptTitle
	MsgDescTooLong     = "Описание слишком длинное (максимум 4000 символов). " + PromptDescription
	MsgInvalidDeadline = "Неверный формат даты. " + PromptDeadline
	MsgInvalidPriority = "Приоритет должен быть числом от 1 до 5. " + PromptPriority
	MsgAlreadyAdding   = "Вы уже добавляете задачу. Продолжите или отправьте /cancel."
	MsgTaskSavedFormat = "✅ Задача «%s» добавлена!"
)

// Limits
const (
	MaxTitleLength       = task.MaxTitleLength
	MaxDescriptionLength = task.MaxDescriptionLength
	MinPriority    = 1
	MaxPriority    = 5
)

// Defaults
const (
	DefaultMaxSessions = 10000
)

// Log prefixes
const (
	LogPrefixStart  = "internal.conversation.Start"
	LogPrefixHandle = "internal.conversation.Handle"
)
