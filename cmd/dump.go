package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/oclog/oclog/internal/classify"
	"github.com/oclog/oclog/internal/loader"
	"github.com/oclog/oclog/internal/output"
	"github.com/oclog/oclog/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <file>",
	Short: "Stream a whole log to stdout with severity coloring",
	Long: `Dump renders an entire log file, classifying and coloring every
line. The file is read in the background in chunks, so output starts
immediately even for logs of hundreds of megabytes, and Ctrl-C stops the
load cleanly.

Examples:
  oclog dump boot.log
  oclog dump --filter error boot.log
  oclog dump --chunk-size 1000 boot.log`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().String("filter", "", "comma-separated categories to show (e.g. error,warning)")
	dumpCmd.Flags().Int("chunk-size", 0, "lines per background batch (default from config)")

	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]
	filterSpec, _ := cmd.Flags().GetString("filter")
	chunkSize, _ := cmd.Flags().GetInt("chunk-size")
	if chunkSize <= 0 {
		chunkSize = viper.GetInt("loader.chunk_size")
	}
	pollInterval := viper.GetDuration("loader.poll_interval")
	if pollInterval <= 0 {
		pollInterval = 250 * time.Millisecond
	}

	filter, err := parseFilter(filterSpec)
	if err != nil {
		return err
	}

	src, err := source.Open(path)
	if err != nil {
		return err
	}
	verbosef("loading %s (%d bytes)", path, src.SizeBytes())

	// The loader owns the source from here and closes it when the
	// session ends.
	ld := loader.New()
	if err := ld.Start(src, chunkSize); err != nil {
		src.Close()
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	classifier := classify.Default()
	writer := output.New(cmd.OutOrStdout(), output.FormatText).WithColorMode(colorMode(cmd))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			ld.Cancel()
			verbosef("load cancelled")
			return nil
		case <-ticker.C:
			for _, msg := range ld.Poll() {
				switch msg.Kind {
				case loader.KindData:
					for _, line := range msg.Lines {
						cat := classifier.Classify(line)
						if filter != nil && !filter[cat] {
							continue
						}
						if err := writer.WriteLine(cat, line); err != nil {
							ld.Cancel()
							return err
						}
					}
				case loader.KindDone:
					verbosef("loaded %s: %d lines", filepath.Base(path), msg.Count)
					return nil
				case loader.KindError:
					return fmt.Errorf("load %s: %s", path, msg.Err)
				}
			}
		}
	}
}
