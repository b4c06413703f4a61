package telegram

// Commands
const (
	cmdStart  = "/start"
	cmdHelp   = "/help"
	cmdAdd    = "/add"
	cmdCancel = "/cancel"
	cmdList   = "/list"
	cmdStats  = "/stats"
	cmdFocus  = "/focus"

	// metric label for free text
	labelText = "text"
)

// User-facing messages
const (
	msgWelcome = "👋 Привет! Я помогу вести список задач.\n\n" +
		"/add - добавить задачу\n" +
		"/list - активные задачи\n" +
		"/stats - статистика\n" +
		"/focus N - записать N минут фокуса\n" +
		"/cancel - отменить добавление"
	msgHelp = "*Как пользоваться:*\n\n" +
		"1. Отправьте /add и ответьте на вопросы: название, описание, дедлайн (ДД.ММ.ГГГГ ЧЧ:ММ) и приоритет от 1 до 5.\n" +
		"2. /list покажет активные задачи.\n" +
		"3. /focus 25 запишет 25 минут работы без отвлечений.\n" +
		"4. /stats покажет активность за неделю, месяц и всё время."

	msgNoActiveTasks   = "У вас нет активных задач."
	msgTaskBlockFormat = "📌 *%s*\n📝 %s\n⏰ Дедлайн: %s\n🔥 Приоритет: %d"
	msgTaskBlockPlain  = "📌 %s\n📝 %s\n⏰ Дедлайн: %s\n🔥 Приоритет: %d"
	msgStatsFormat     = "📊 *Ваша активность*\n\n" +
		"Задач за неделю: %d\n" +
		"Задач за месяц: %d\n" +
		"Задач за всё время: %d\n" +
		"⏱ Минут фокуса: %d"

	msgFocusUsage  = "Укажите длительность в минутах от 1 до 600, например: /focus 25"
	msgFocusLogged = "✅ Записано минут фокуса: %d"

	msgCancelled       = "Добавление задачи отменено."
	msgNothingToCancel = "Нечего отменять."
	msgHint            = "Чтобы добавить задачу, отправьте /add. Список команд: /help"
	msgUnknownCommand  = "Неизвестная команда. Список команд: /help"
	msgRateLimited     = "Слишком много сообщений. Подождите немного."
	msgSaveFailed      = "Не удалось сохранить задачу. Попробуйте ещё раз.\n\n"
	msgInternalError   = "Произошла ошибка. Попробуйте позже."
)

// Log prefixes
const (
	logPrefixWebhook = "internal.task.delivery.telegram.HandleWebhook"
	logPrefixUpdate  = "internal.task.delivery.telegram.HandleUpdate"
	logPrefixProcess = "internal.task.delivery.telegram.processMessage"
	logPrefixList    = "internal.task.delivery.telegram.listTasks"
)
