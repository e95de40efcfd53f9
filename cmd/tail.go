package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/oclog/oclog/internal/classify"
	"github.com/oclog/oclog/internal/output"
	"github.com/oclog/oclog/internal/tail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var tailCmd = &cobra.Command{
	Use:   "tail [flags] <file>",
	Short: "Follow a growing log with severity coloring",
	Long: `Tail opens a log at its end and prints lines as they are
appended, colored by severity, until interrupted with Ctrl-C. A file that
is rewritten in place is picked up from the start.

Examples:
  oclog tail /var/log/boot.log
  oclog tail --filter error,warning serial.log`,
	Args: cobra.ExactArgs(1),
	RunE: runTail,
}

func init() {
	tailCmd.Flags().String("filter", "", "comma-separated categories to show (e.g. error,warning)")
	tailCmd.Flags().Duration("poll-interval", 0, "poll interval when no file events arrive (default from config)")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	filterSpec, _ := cmd.Flags().GetString("filter")
	pollInterval, _ := cmd.Flags().GetDuration("poll-interval")
	if pollInterval <= 0 {
		pollInterval = viper.GetDuration("tail.poll_interval")
	}
	if pollInterval <= 0 {
		pollInterval = tail.DefaultPollInterval
	}

	filter, err := parseFilter(filterSpec)
	if err != nil {
		return err
	}

	classifier := classify.Default()
	writer := output.New(cmd.OutOrStdout(), output.FormatText).WithColorMode(colorMode(cmd))

	follower := tail.New(tail.Options{
		FilePath:     args[0],
		PollInterval: pollInterval,
		OnLine: func(line string) error {
			cat := classifier.Classify(line)
			if filter != nil && !filter[cat] {
				return nil
			}
			return writer.WriteLine(cat, line)
		},
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- follower.Run(ctx)
	}()

	select {
	case <-sigChan:
		cancel()
		<-errChan
		verbosef("tail stopped")
		return nil
	case err := <-errChan:
		return err
	}
}
