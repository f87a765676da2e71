// FILE: lixenwraith/linelog/cmd/linelog/commands.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/linelog"
	"github.com/lixenwraith/linelog/follow"
)

func newWriteCmd() *cobra.Command {
	var (
		severity string
		truncate bool
		trace    bool
	)

	cmd := &cobra.Command{
		Use:   "write [message...]",
		Short: "Write one record to the target",
		Long: `Write joins its arguments with spaces and writes them as one record.
Without arguments each line read from stdin becomes a record.

Examples:
  linelog write -p app.log "service started"
  linelog write -p app.log --severity error --truncate "fresh start"
  journalctl -f | linelog write -p app.log -s top_insert=true`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sev, err := linelog.ParseSeverity(severity)
			if err != nil {
				return err
			}

			// Records from the command line have no meaningful caller unless asked for
			var extra []string
			if !trace {
				extra = append(extra, "caller_trace=false")
			}

			l, err := openLogger(extra...)
			if err != nil {
				return err
			}
			defer l.Close()

			if len(args) > 0 {
				return l.Log(strings.Join(args, " "), sev, !truncate)
			}
			return writeStream(cmd, l, sev, !truncate)
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "normal", "record severity: normal, debug, warning, error")
	cmd.Flags().BoolVar(&truncate, "truncate", false, "replace the file content with this session's first record")
	cmd.Flags().BoolVar(&trace, "trace", false, "append the caller location")
	return cmd
}

// writeStream logs stdin line by line; only the first record may truncate
func writeStream(cmd *cobra.Command, l *linelog.Logger, sev linelog.Severity, appendMode bool) error {
	scanner := newLineScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if err := l.Log(scanner.Text(), sev, appendMode); err != nil {
			return err
		}
		appendMode = true
	}
	return scanner.Err()
}

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of lines in the target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLogger()
			if err != nil {
				return err
			}
			defer l.Close()

			n, err := l.Lines()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newTrimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trim",
		Short: "Apply the line ceiling now and print the number of evicted lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLogger()
			if err != nil {
				return err
			}
			defer l.Close()

			n, err := l.Enforce()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newHeartbeatCmd() *cobra.Command {
	var detail int

	cmd := &cobra.Command{
		Use:   "heartbeat",
		Short: "Write a statistics record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLogger("caller_trace=false")
			if err != nil {
				return err
			}
			defer l.Close()

			return l.Heartbeat(detail)
		},
	}

	cmd.Flags().IntVar(&detail, "detail", 1, "0 session counters, 1 adds file figures, 2 adds runtime figures")
	return cmd
}

func newFollowCmd() *cobra.Command {
	var fromStart bool

	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Print lines as they are written to the target",
		Long: `Follow prints new lines as they arrive. When the file is replaced by eviction
or top insertion its full content is printed again after a separator.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			f, err := follow.New(cfg.Path, fromStart)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return f.Run(ctx, func(ev follow.Event) {
				if ev.Reset {
					fmt.Fprintln(out, "--- "+cfg.Path+" rewritten ---")
				}
				for _, line := range ev.Lines {
					fmt.Fprintln(out, line)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&fromStart, "from-start", false, "print the current content first")
	return cmd
}
