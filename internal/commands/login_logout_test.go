package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gtasksync/internal/commands"
	"gtasksync/internal/config"
	"gtasksync/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

// credentialsDir writes the given credential files into a temp config dir.
func credentialsDir(t *testing.T, oauthClient, token string) string {
	t.Helper()
	dir := t.TempDir()
	if oauthClient != "" {
		if err := os.WriteFile(filepath.Join(dir, config.OAuthClientFile), []byte(oauthClient), 0600); err != nil {
			t.Fatalf("failed to write oauth_client.json: %v", err)
		}
	}
	if token != "" {
		if err := os.WriteFile(filepath.Join(dir, config.TokenFile), []byte(token), 0600); err != nil {
			t.Fatalf("failed to write token.json: %v", err)
		}
	}
	return dir
}

func runDirect(t *testing.T, cmd commands.Command, ctx context.Context, cfg *config.Config) (int, string, string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)
	return code, outBuf.String(), errBuf.String()
}

func TestLoginCommand_NoOAuthClient(t *testing.T) {
	dir := t.TempDir()
	code, out, errOut := runDirect(t, &commands.LoginCmd{}, context.Background(), &config.Config{Dir: dir})

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if out != "" {
		t.Errorf("expected no stdout, got %q", out)
	}
	if !strings.Contains(errOut, filepath.Join(dir, "oauth_client.json")) {
		t.Errorf("expected setup instructions naming the credentials path, got %q", errOut)
	}
	if !strings.Contains(errOut, "gtasksync login") {
		t.Errorf("expected instructions to mention gtasksync login, got %q", errOut)
	}
}

func TestLoginCommand_InvalidOAuthClient(t *testing.T) {
	dir := credentialsDir(t, `{"not":"a client"}`, "")
	code, _, errOut := runDirect(t, &commands.LoginCmd{}, context.Background(), &config.Config{Dir: dir})

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(errOut, "invalid oauth_client.json") {
		t.Errorf("expected invalid client error, got %q", errOut)
	}
}

// A stored token that cannot be used must not count as logged in.
func TestLoginCommand_UnusableToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"corrupt", `{not json`},
		{"no refresh token", `{"access_token":"test","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := credentialsDir(t, testOAuthClient, tt.token)

			// Cancelled up front so login gives up instead of waiting for the callback
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			code, out, _ := runDirect(t, &commands.LoginCmd{}, ctx, &config.Config{Dir: dir})
			if out == "already logged in\n" {
				t.Error("should not say 'already logged in' with an unusable token")
			}
			if code != exitcode.AuthError {
				t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
			}
		})
	}
}

func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	dir := credentialsDir(t, testOAuthClient, `{"access_token":"test","refresh_token":"test"}`)
	cfg := &config.Config{Dir: dir}

	code, out, errOut := runDirect(t, &commands.LogoutCmd{}, context.Background(), cfg)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errOut != "" {
		t.Errorf("expected no stderr, got %q", errOut)
	}
	if out != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", out)
	}
	if cfg.HasToken() {
		t.Error("token.json should have been deleted")
	}
	if !cfg.HasOAuthClient() {
		t.Error("oauth_client.json should NOT have been deleted")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	tests := []struct {
		quiet bool
		want  string
	}{
		{false, "not logged in\n"},
		{true, ""},
	}
	for _, tt := range tests {
		cfg := &config.Config{Dir: t.TempDir(), Quiet: tt.quiet}
		code, out, errOut := runDirect(t, &commands.LogoutCmd{}, context.Background(), cfg)

		if code != exitcode.Success {
			t.Errorf("quiet=%v: expected exit code %d, got %d", tt.quiet, exitcode.Success, code)
		}
		if errOut != "" {
			t.Errorf("quiet=%v: expected no stderr, got %q", tt.quiet, errOut)
		}
		if out != tt.want {
			t.Errorf("quiet=%v: expected %q, got %q", tt.quiet, tt.want, out)
		}
	}
}
