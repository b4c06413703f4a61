package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"task-tracker-bot/internal/conversation"
	"task-tracker-bot/internal/model"
	"task-tracker-bot/internal/task"
	"task-tracker-bot/internal/task/delivery/telegram"
	"task-tracker-bot/pkg/ratelimit"
	pkgTelegram "task-tracker-bot/pkg/telegram"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type mockTaskUseCase struct {
	created   []task.CreateInput
	createErr error
	tasks     []model.Task
	listErr   error
	activity  task.ActivityOutput
	focus     []int
}

func (m *mockTaskUseCase) Create(ctx context.Context, sc model.Scope, input task.CreateInput) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, input)
	return nil
}
func (m *mockTaskUseCase) ListActive(ctx context.Context, sc model.Scope) ([]model.Task, error) {
	return m.tasks, m.listErr
}
func (m *mockTaskUseCase) Activity(ctx context.Context, sc model.Scope) (task.ActivityOutput, error) {
	return m.activity, nil
}
func (m *mockTaskUseCase) LogFocus(ctx context.Context, sc model.Scope, input task.LogFocusInput) error {
	if input.Minutes < 1 || input.Minutes > 600 {
		return task.ErrInvalidFocus
	}
	m.focus = append(m.focus, input.Minutes)
	return nil
}

// sentMessage is one sendMessage call seen by the fake Telegram API.
type sentMessage struct {
	ChatID    int64
	Text      string
	ParseMode string
}

type outbox struct {
	mu             sync.Mutex
	msgs           []sentMessage
	rejectMarkdown bool
}

func (o *outbox) setRejectMarkdown(v bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejectMarkdown = v
}

func (o *outbox) rejects(m sentMessage) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rejectMarkdown && m.ParseMode != ""
}

func (o *outbox) add(m sentMessage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = append(o.msgs, m)
}

func (o *outbox) all() []sentMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]sentMessage(nil), o.msgs...)
}

func (o *outbox) last(t *testing.T) sentMessage {
	t.Helper()
	msgs := o.all()
	if len(msgs) == 0 {
		t.Fatalf("no message was sent")
	}
	return msgs[len(msgs)-1]
}

// ── Test Helpers ───────────────────────────────────────────────────────────

type testEnv struct {
	engine  *gin.Engine
	handler telegram.Handler
	muc     *mockTaskUseCase
	sent    *outbox
}

func newTestEnv(t *testing.T, limiter *ratelimit.Limiter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sent := &outbox{}
	tgServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/sendMessage") {
			var payload pkgTelegram.SendMessageRequest
			json.NewDecoder(r.Body).Decode(&payload)
			m := sentMessage{ChatID: payload.ChatID, Text: payload.Text, ParseMode: payload.ParseMode}
			if sent.rejects(m) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "error_code": 400, "description": "Bad Request: can't parse entities: Can't find end of the entity starting at byte offset 7"}`))
				return
			}
			sent.add(m)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true, "result": {}}`))
	}))
	t.Cleanup(tgServer.Close)

	l := &mockLogger{}
	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(tgServer.URL)

	muc := &mockTaskUseCase{}
	dialogue := conversation.New(l, muc, conversation.Config{TTL: time.Hour, MaxSessions: 10}, nil)

	h := telegram.New(l, muc, dialogue, bot, limiter, nil)
	engine := gin.New()
	engine.POST("/webhook/telegram", h.HandleWebhook)

	return &testEnv{engine: engine, handler: h, muc: muc, sent: sent}
}

func sendWebhook(engine *gin.Engine, text string) *httptest.ResponseRecorder {
	update := pkgTelegram.Update{
		UpdateID: 1,
		Message: &pkgTelegram.Message{
			MessageID: 1,
			Chat:      &pkgTelegram.Chat{ID: 123},
			From:      &pkgTelegram.User{ID: 456},
			Text:      text,
		},
	}
	body, _ := json.Marshal(update)
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// say sends text through the webhook and returns the bot's last reply.
func (env *testEnv) say(t *testing.T, text string) sentMessage {
	t.Helper()
	if w := sendWebhook(env.engine, text); w.Code != http.StatusOK {
		t.Fatalf("webhook %q: expected 200, got %d", text, w.Code)
	}
	return env.sent.last(t)
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestHandleWebhook_InvalidJSON(t *testing.T) {
	env := newTestEnv(t, nil)

	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString("{bad json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHandleWebhook_NonMessageUpdate(t *testing.T) {
	env := newTestEnv(t, nil)

	body, _ := json.Marshal(pkgTelegram.Update{UpdateID: 1})
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if len(env.sent.all()) != 0 {
		t.Errorf("no reply expected for non-message update")
	}
}

func TestHandleStartAndHelp(t *testing.T) {
	env := newTestEnv(t, nil)

	if got := env.say(t, "/start"); !strings.Contains(got.Text, "/add") || got.ChatID != 123 {
		t.Errorf("/start reply = %+v", got)
	}
	if got := env.say(t, "/help"); got.ParseMode != "Markdown" || !strings.Contains(got.Text, "ДД.ММ.ГГГГ ЧЧ:ММ") {
		t.Errorf("/help reply = %+v", got)
	}
}

func TestAddTaskDialogue(t *testing.T) {
	env := newTestEnv(t, nil)

	steps := []struct{ in, want string }{
		{"/add", "Введите название задачи:"},
		{"Buy milk", "Введите описание задачи:"},
		{"2 liters", "Введите дедлайн в формате ДД.ММ.ГГГГ ЧЧ:ММ:"},
		{"tomorrow", "Неверный формат даты. Введите дедлайн в формате ДД.ММ.ГГГГ ЧЧ:ММ:"},
		{"01.12.2024 18:00", "Введите приоритет от 1 до 5:"},
		{"3", "✅ Задача «Buy milk» добавлена!"},
	}
	for _, s := range steps {
		if got := env.say(t, s.in); got.Text != s.want {
			t.Errorf("after %q: reply = %q, want %q", s.in, got.Text, s.want)
		}
	}

	if len(env.muc.created) != 1 {
		t.Fatalf("created %d tasks, want 1", len(env.muc.created))
	}
	if got := env.muc.created[0]; got.Deadline != "01.12.2024 18:00" || got.Priority != 3 || got.Description != "2 liters" {
		t.Errorf("created = %+v", got)
	}

	// Dialogue is over
	if got := env.say(t, "more text"); !strings.Contains(got.Text, "/add") {
		t.Errorf("after completion: reply = %q, want /add hint", got.Text)
	}
}

func TestAddTaskSaveFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.muc.createErr = errors.New("db down")

	for _, in := range []string{"/add", "T", "D", "01.01.2025 10:00"} {
		env.say(t, in)
	}
	got := env.say(t, "2")
	if !strings.Contains(got.Text, "Не удалось сохранить задачу") || !strings.HasSuffix(got.Text, "Введите приоритет от 1 до 5:") {
		t.Errorf("save failure reply = %q", got.Text)
	}

	env.muc.createErr = nil
	if got := env.say(t, "2"); !strings.HasPrefix(got.Text, "✅") {
		t.Errorf("retry reply = %q", got.Text)
	}
}

func TestCancel(t *testing.T) {
	env := newTestEnv(t, nil)

	if got := env.say(t, "/cancel"); got.Text != "Нечего отменять." {
		t.Errorf("/cancel without dialogue = %q", got.Text)
	}
	env.say(t, "/add")
	if got := env.say(t, "/cancel"); got.Text != "Добавление задачи отменено." {
		t.Errorf("/cancel = %q", got.Text)
	}
}

func TestListTasks_Empty(t *testing.T) {
	env := newTestEnv(t, nil)

	got := env.say(t, "/list")
	if got.Text != "У вас нет активных задач." {
		t.Errorf("text = %q", got.Text)
	}
	if got.ParseMode != "" {
		t.Errorf("empty list sent with parse_mode %q", got.ParseMode)
	}
	if len(env.sent.all()) != 1 {
		t.Errorf("expected exactly one message, got %d", len(env.sent.all()))
	}
}

func TestListTasks_Blocks(t *testing.T) {
	env := newTestEnv(t, nil)
	env.muc.tasks = []model.Task{
		{Title: "A", Description: "a", Deadline: "01.01.2025 10:00", Priority: 1},
		{Title: "B", Description: "b", Deadline: "02.01.2025 11:00", Priority: 5},
	}

	got := env.say(t, "/list")
	want := "📌 *A*\n📝 a\n⏰ Дедлайн: 01.01.2025 10:00\n🔥 Приоритет: 1" +
		"\n\n" +
		"📌 *B*\n📝 b\n⏰ Дедлайн: 02.01.2025 11:00\n🔥 Приоритет: 5"
	if got.Text != want {
		t.Errorf("text =\n%q\nwant\n%q", got.Text, want)
	}
	if got.ParseMode != "Markdown" {
		t.Errorf("parse_mode = %q, want Markdown", got.ParseMode)
	}
	if len(env.sent.all()) != 1 {
		t.Errorf("expected exactly one message, got %d", len(env.sent.all()))
	}
}

func TestListTasks_MarkupRejectedFallsBackToPlain(t *testing.T) {
	env := newTestEnv(t, nil)
	env.sent.setRejectMarkdown(true)
	env.muc.tasks = []model.Task{
		{Title: "fix_bug", Description: "a_b", Deadline: "01.01.2025 10:00", Priority: 2},
	}

	got := env.say(t, "/list")
	want := "📌 fix_bug\n📝 a_b\n⏰ Дедлайн: 01.01.2025 10:00\n🔥 Приоритет: 2"
	if got.Text != want {
		t.Errorf("text =\n%q\nwant\n%q", got.Text, want)
	}
	if got.ParseMode != "" {
		t.Errorf("parse_mode = %q, want plain", got.ParseMode)
	}
	if len(env.sent.all()) != 1 {
		t.Errorf("expected exactly one delivered message, got %d", len(env.sent.all()))
	}
}

func TestListTasks_StoreError(t *testing.T) {
	env := newTestEnv(t, nil)
	env.muc.listErr = errors.New("db down")

	if got := env.say(t, "/list"); got.Text != "Произошла ошибка. Попробуйте позже." {
		t.Errorf("text = %q", got.Text)
	}
}

func TestStats(t *testing.T) {
	env := newTestEnv(t, nil)
	env.muc.activity = task.ActivityOutput{TasksWeek: 5, TasksMonth: 20, TasksAllTime: 100, FocusMinutes: 300}

	got := env.say(t, "/stats")
	for _, want := range []string{"неделю: 5", "месяц: 20", "всё время: 100", "фокуса: 300"} {
		if !strings.Contains(got.Text, want) {
			t.Errorf("stats %q missing %q", got.Text, want)
		}
	}
	if got.ParseMode != "Markdown" {
		t.Errorf("parse_mode = %q", got.ParseMode)
	}
}

func TestFocus(t *testing.T) {
	env := newTestEnv(t, nil)

	if got := env.say(t, "/focus 25"); !strings.Contains(got.Text, "25") {
		t.Errorf("/focus 25 = %q", got.Text)
	}
	for _, in := range []string{"/focus", "/focus abc", "/focus 0", "/focus 601"} {
		if got := env.say(t, in); !strings.Contains(got.Text, "/focus 25") {
			t.Errorf("%q reply = %q, want usage", in, got.Text)
		}
	}
	if len(env.muc.focus) != 1 || env.muc.focus[0] != 25 {
		t.Errorf("logged focus = %v", env.muc.focus)
	}
}

func TestCommandWithBotSuffix(t *testing.T) {
	env := newTestEnv(t, nil)

	if got := env.say(t, "/list@task_bot"); got.Text != "У вас нет активных задач." {
		t.Errorf("text = %q", got.Text)
	}
	if got := env.say(t, "/unknown"); !strings.Contains(got.Text, "Неизвестная команда") {
		t.Errorf("unknown command reply = %q", got.Text)
	}
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, ratelimit.New(10)) // burst 1

	env.say(t, "/list")
	if got := env.say(t, "/list"); got.Text != "Слишком много сообщений. Подождите немного." {
		t.Errorf("second message reply = %q", got.Text)
	}
}

func TestHandleUpdate_Polling(t *testing.T) {
	env := newTestEnv(t, nil)

	env.handler.HandleUpdate(context.Background(), pkgTelegram.Update{
		UpdateID: 7,
		Message: &pkgTelegram.Message{
			Chat: &pkgTelegram.Chat{ID: 9},
			From: &pkgTelegram.User{ID: 9},
			Text: "/add",
		},
	})
	if got := env.sent.last(t); got.ChatID != 9 || got.Text != "Введите название задачи:" {
		t.Errorf("reply = %+v", got)
	}

	// Updates without sender or text are skipped
	env.handler.HandleUpdate(context.Background(), pkgTelegram.Update{Message: &pkgTelegram.Message{Chat: &pkgTelegram.Chat{ID: 9}, Text: "x"}})
	env.handler.HandleUpdate(context.Background(), pkgTelegram.Update{Message: &pkgTelegram.Message{Chat: &pkgTelegram.Chat{ID: 9}, From: &pkgTelegram.User{ID: 9}}})
	if n := len(env.sent.all()); n != 1 {
		t.Errorf("sent %d messages, want 1", n)
	}
}
