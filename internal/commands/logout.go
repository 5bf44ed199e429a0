package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"gtasksync/internal/config"
	"gtasksync/internal/exitcode"
	"gtasksync/internal/logging"
	"gtasksync/internal/service"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd deletes the stored OAuth token.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Remove stored credentials" }
func (c *LogoutCmd) Usage() string     { return "gtasksync logout [common flags]" }
func (c *LogoutCmd) NeedsAuth() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !cfg.HasToken() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	// oauth_client.json stays so the next login does not need setup again
	if err := cfg.RemoveToken(); err != nil {
		fmt.Fprintf(errOut, "error: failed to remove token: %v\n", err)
		return exitcode.AuthError
	}
	logging.OrDefault(cfg.Logger).Debug("removed token", slog.String("path", cfg.TokenPath()))

	return printOK(cfg, out)
}
