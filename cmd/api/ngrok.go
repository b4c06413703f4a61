package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	ngrokAttempts   = 10
	ngrokRetryDelay = 3 * time.Second
)

// ngrokTunnelsResponse matches the /api/tunnels response from the ngrok local API.
type ngrokTunnelsResponse struct {
	Tunnels []ngrokTunnel `json:"tunnels"`
}

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// detectNgrokURL returns the first HTTPS tunnel URL from the ngrok local API.
// ngrok may still be starting, so unreachable API calls are retried.
func detectNgrokURL(ctx context.Context, ngrokAPIBase string, retryDelay time.Duration) (string, error) {
	client := &http.Client{Timeout: 5 * time.Second}

	var lastErr error
	for attempt := 1; attempt <= ngrokAttempts; attempt++ {
		tunnels, err := fetchTunnels(ctx, client, ngrokAPIBase+"/api/tunnels")
		if err == nil {
			return pickTunnel(tunnels)
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return "", fmt.Errorf("ngrok API not reachable after %d attempts: %w", ngrokAttempts, lastErr)
}

func fetchTunnels(ctx context.Context, client *http.Client, url string) ([]ngrokTunnel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var tunnels ngrokTunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return nil, fmt.Errorf("failed to decode ngrok API response: %w", err)
	}
	return tunnels.Tunnels, nil
}

// pickTunnel prefers HTTPS; Telegram rejects plain HTTP webhooks.
func pickTunnel(tunnels []ngrokTunnel) (string, error) {
	for _, t := range tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(tunnels) > 0 {
		return tunnels[0].PublicURL, nil
	}
	return "", fmt.Errorf("no ngrok tunnels found")
}
