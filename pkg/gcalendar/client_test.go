package gcalendar_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"task-tracker-bot/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *gcalendar.Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	httpClient := ts.Client()
	httpClient.Transport = &rewriteTransport{
		Transport: httpClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gcalendar.NewClientFromHTTP(context.Background(), httpClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

const installedCreds = `{
	"installed": {
		"client_id": "test-client-id.apps.googleusercontent.com",
		"client_secret": "test-secret",
		"redirect_uris": ["http://localhost"]
	}
}`

func TestNewClientFromCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("Broken credentials", func(t *testing.T) {
		if _, err := gcalendar.NewClientFromCredentialsJSON(ctx, []byte(`{"broken":true}`), nil); err == nil {
			t.Errorf("expected decoding failure")
		}
	})

	t.Run("Installed app without token", func(t *testing.T) {
		if _, err := gcalendar.NewClientFromCredentialsJSON(ctx, []byte(installedCreds), nil); err == nil {
			t.Errorf("expected error without token")
		}
	})

	t.Run("Installed app with bad token", func(t *testing.T) {
		if _, err := gcalendar.NewClientFromCredentialsJSON(ctx, []byte(installedCreds), []byte(`{"broken": true`)); err == nil {
			t.Errorf("expected token parse failure")
		}
	})

	t.Run("Installed app with token files", func(t *testing.T) {
		dir := t.TempDir()
		credsPath := filepath.Join(dir, "creds.json")
		tokenPath := filepath.Join(dir, "token.json")
		os.WriteFile(credsPath, []byte(installedCreds), 0o600)
		os.WriteFile(tokenPath, []byte(`{"access_token": "dummy", "token_type": "Bearer", "expiry": "2030-01-01T00:00:00Z"}`), 0o600)

		if _, err := gcalendar.NewClientFromCredentialsFile(ctx, gcalendar.CredentialsOptions{CredentialsPath: credsPath, TokenPath: tokenPath}); err != nil {
			t.Fatalf("expected client, got error: %v", err)
		}
	})

	t.Run("Missing credentials file", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsFile(ctx, gcalendar.CredentialsOptions{CredentialsPath: filepath.Join(t.TempDir(), "missing.json")})
		if err == nil {
			t.Errorf("expected reading file error")
		}
	})
}

func TestCreateEvent(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodPost {
			json.NewDecoder(r.Body).Decode(&body)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id": "event-123", "summary": "Title", "htmlLink": "https://calendar.google.com/event-uri"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	start := time.Date(2024, 12, 15, 14, 0, 0, 0, time.UTC)
	event, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
		Summary:         "Title",
		Description:     "Desc",
		StartTime:       start,
		EndTime:         start.Add(15 * time.Minute),
		Timezone:        "UTC",
		ReminderMinutes: 30,
	})
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	if event.ID != "event-123" || event.HtmlLink != "https://calendar.google.com/event-uri" {
		t.Errorf("unexpected event: %+v", event)
	}

	reminders, ok := body["reminders"].(map[string]any)
	if !ok {
		t.Fatalf("expected reminders in request body, got %v", body)
	}
	if reminders["useDefault"] != false {
		t.Errorf("useDefault = %v, want false", reminders["useDefault"])
	}
}

func TestCreateEventError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{CalendarID: "primary"})
	if err == nil {
		t.Fatalf("expected create event error")
	}
}
