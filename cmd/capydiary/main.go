// Command capydiary is a terminal front end for the CapyDiary journaling
// backend. Results are printed to stdout as indented JSON; logs go to stderr.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/capydiary/capydiary/client"
	"github.com/capydiary/capydiary/internal/config"
	"github.com/capydiary/capydiary/internal/logger"
)

const requestTimeout = 30 * time.Second

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// app carries the flags and settings shared by every sub-command.
type app struct {
	apiURL string
	debug  bool
	cfg    *config.Config
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "capydiary",
		Short:         "CapyDiary journal from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if a.apiURL != "" {
				cfg.APIURL = a.apiURL
			}
			if a.debug {
				cfg.Debug = true
			}
			a.cfg = cfg
			l := logger.InitConsole(cmd.ErrOrStderr(), cfg.Level())
			cfg.LogSummary(l)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Backend URL (overrides CAPYDIARY_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Log every request and response")

	rootCmd.AddCommand(
		a.newRegisterCmd(),
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newMeCmd(),
		a.newNicknameCmd(),
		a.newCompanionsCmd(),
		a.newEntriesCmd(),
		a.newReplyCmd(),
		a.newCommentsCmd(),
		a.newInsightsCmd(),
		a.newTimeCapsuleCmd(),
		a.newStatsCmd(),
		a.newCalendarCmd(),
		a.newHealthCmd(),
		a.newLangCmd(),
		a.newPromptsCmd(),
	)
	return rootCmd
}

// run opens a client, calls fn with a bounded context and closes the client.
func (a *app) run(cmd *cobra.Command, fn func(ctx context.Context, c *client.Client) error) error {
	c, err := client.New(a.cfg.BaseURL(),
		client.WithHTTPTimeout(a.cfg.HTTPTimeout),
		client.WithTokenKey(a.cfg.TokenKey),
		client.WithDebugLogging(a.cfg.Debug),
		client.WithLogger(log.Logger),
	)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()
	return fn(ctx, c)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRaw re-indents a payload the client returns as raw JSON.
func printRaw(cmd *cobra.Command, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return printJSON(cmd, v)
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return id, nil
}
