package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"comicsdb/internal/logging"
	"comicsdb/internal/logs"
	"comicsdb/internal/services"
)

const logFollowWait = time.Second

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var lines int
	var filter logs.Filter

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show entries from the import log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := logging.LogPath(cfg)
			if path == "" {
				return services.Wrap(services.ErrConfiguration, "cli", "logs", "paths.log_dir is empty; file logging is disabled", nil)
			}
			if follow && ctx.jsonOutput() {
				return services.Wrap(services.ErrValidation, "cli", "logs", "--json cannot be combined with --follow", nil)
			}

			opts := logs.Options{Offset: -1, Limit: lines, Filter: filter}
			if lines <= 0 {
				opts.Offset = 0
				opts.Limit = 0
			}
			runCtx := cmd.Context()
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			printed := false

			for {
				opts.Follow = follow
				opts.Wait = logFollowWait
				result, err := logs.Read(runCtx, path, opts)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return fmt.Errorf("read logs: %w", err)
				}
				if ctx.jsonOutput() {
					entries := result.Entries
					if entries == nil {
						entries = []logs.Entry{}
					}
					return writeJSON(cmd, entries)
				}
				for _, entry := range result.Entries {
					printLogEntry(out, entry, colorize)
					printed = true
				}
				opts.Offset = result.Offset
				opts.Limit = 0
				if !follow {
					if !printed {
						fmt.Fprintln(out, "No log entries available")
					}
					return nil
				}
				select {
				case <-runCtx.Done():
					return nil
				default:
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing entries as they are written")
	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of entries to show (0 for all)")
	cmd.Flags().StringVar(&filter.MinLevel, "level", "", "Minimum level to show (debug, info, warn, error)")
	cmd.Flags().StringVar(&filter.Component, "component", "", "Only show entries from this component")
	cmd.Flags().StringVar(&filter.RunID, "run", "", "Only show entries from this import run")
	return cmd
}

func printLogEntry(out io.Writer, entry logs.Entry, colorize bool) {
	stamp := "-"
	if !entry.Time.IsZero() {
		stamp = entry.Time.Local().Format("2006-01-02 15:04:05")
	}
	level := strings.ToUpper(entry.Level)
	if level == "" {
		level = "INFO"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s ", stamp, level)
	if entry.Component != "" {
		fmt.Fprintf(&b, "%s: ", entry.Component)
	}
	b.WriteString(entry.Message)
	for _, key := range entry.FieldKeys() {
		fmt.Fprintf(&b, " %s=%s", key, entry.Fields[key])
	}
	line := b.String()
	if colorize {
		line = paint(logLevelColor(level), line)
	}
	fmt.Fprintln(out, line)
}

func logLevelColor(level string) color.Attribute {
	switch level {
	case "ERROR":
		return color.FgRed
	case "WARN":
		return color.FgYellow
	case "DEBUG":
		return color.FgHiBlack
	default:
		return color.Reset
	}
}
