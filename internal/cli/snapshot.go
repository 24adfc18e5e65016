package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"pulse-server/internal/config"
	"pulse-server/internal/core"
	"pulse-server/internal/domain"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

var (
	snapshotOutput string
	streamOutput   string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print a single snapshot and exit",
	Long: `Take two samples one interval apart and print the second, so network
rates and process CPU are measured over a real interval.

Examples:
  pulse snapshot
  pulse snapshot -o yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(cmd.Context(), cmd.OutOrStdout(), snapshotOutput)
	},
}

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Print one snapshot per interval until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return streamCommand(cmd.Context(), cmd.OutOrStdout(), streamOutput)
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", outputJSON, "output format (json|yaml)")
	streamCmd.Flags().StringVarP(&streamOutput, "output", "o", outputJSON, "output format (json|yaml)")

	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(streamCmd)
}

func snapshotCommand(ctx context.Context, out io.Writer, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	p, err := newPipeline(config.ModeSnapshot)
	if err != nil {
		return err
	}
	defer p.log.Sync()

	// the first sample only primes the rate and process baselines
	p.sampler.Collect(ctx)

	select {
	case <-time.After(p.cfg.Interval):
	case <-ctx.Done():
		return ctx.Err()
	}

	m, ok := p.sampler.Collect(ctx)
	if !ok {
		return ctx.Err()
	}
	return writeSnapshot(out, format, m, true)
}

func streamCommand(ctx context.Context, out io.Writer, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	p, err := newPipeline(config.ModeStream)
	if err != nil {
		return err
	}
	defer p.log.Sync()

	var writeErr error
	stopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := core.NewScheduler(p.cfg.Interval, p.log, p.sampler.Collect, func(m domain.Snapshot) {
		if err := writeSnapshot(out, format, m, false); err != nil {
			writeErr = err
			cancel()
		}
	})

	if err := sched.Start(stopCtx); err != nil {
		return err
	}
	return writeErr
}

func checkFormat(format string) error {
	switch format {
	case outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

// writeSnapshot prints one snapshot. Streamed JSON stays on one line per
// snapshot so the output can be piped into line-oriented tools.
func writeSnapshot(out io.Writer, format string, m domain.Snapshot, indent bool) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if _, err := io.WriteString(out, "---\n"); err != nil {
			return err
		}
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
