package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"task-tracker-bot/config"
	"task-tracker-bot/pkg/gcalendar"
)

func newCalendarCommand() *cobra.Command {
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Google Calendar mirror commands",
	}

	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Google Calendar access and save the OAuth token",
		Long: `Run this once for installed-app (desktop) credentials.
It prints a consent URL, reads the authorization code from stdin and writes
the token to google_calendar.token_path. Service account credentials need no token.`,
		RunE: runCalendarAuth,
	}
	authCmd.Flags().String("credentials", "", "credentials file (default: google_calendar.credentials_path)")
	authCmd.Flags().String("token", "", "token output file (default: google_calendar.token_path)")

	calendarCmd.AddCommand(authCmd)
	return calendarCmd
}

func runCalendarAuth(cmd *cobra.Command, args []string) error {
	credsPath, _ := cmd.Flags().GetString("credentials")
	tokenPath, _ := cmd.Flags().GetString("token")
	if credsPath == "" || tokenPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if credsPath == "" {
			credsPath = cfg.GoogleCalendar.CredentialsPath
		}
		if tokenPath == "" {
			tokenPath = cfg.GoogleCalendar.TokenPath
		}
	}
	if credsPath == "" || tokenPath == "" {
		return fmt.Errorf("both credentials and token paths are required")
	}

	data, err := os.ReadFile(credsPath)
	if err != nil {
		return fmt.Errorf("failed to read credentials file %q: %w", credsPath, err)
	}
	oauthCfg, err := gcalendar.OAuthConfig(data)
	if err != nil {
		return fmt.Errorf("%w (is %q an OAuth desktop app credentials file?)", err, credsPath)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "1. Open this URL in a browser and sign in with your Google account:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
	fmt.Fprintln(out)
	fmt.Fprint(out, "2. Paste the authorization code here and press Enter: ")

	code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && code == "" {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}

	tok, err := oauthCfg.Exchange(cmd.Context(), strings.TrimSpace(code))
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if err := gcalendar.SaveToken(tokenPath, tok); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nToken saved to %s. Restart the bot to enable the calendar mirror.\n", tokenPath)
	return nil
}
