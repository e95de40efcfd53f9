package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/oclog/oclog/internal/classify"
	"github.com/oclog/oclog/internal/output"
	"github.com/oclog/oclog/internal/pager"
	"github.com/oclog/oclog/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var viewCmd = &cobra.Command{
	Use:   "view [flags] <file>",
	Short: "Page through a log with category filtering",
	Long: `View prints a log one page at a time, classifying each line and
coloring it by severity. With --filter only the listed categories are
shown, and only shown lines count toward page boundaries.

Examples:
  oclog view boot.log
  oclog view --filter error,warning boot.log
  oclog view --page-size 50 boot.log`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().String("filter", "", "comma-separated categories to show (e.g. error,warning)")
	viewCmd.Flags().Int("page-size", 0, "lines per page (default from config)")

	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	filterSpec, _ := cmd.Flags().GetString("filter")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	if pageSize <= 0 {
		pageSize = viper.GetInt("pager.page_size")
	}

	filter, err := parseFilter(filterSpec)
	if err != nil {
		return err
	}

	src, err := source.Open(args[0])
	if err != nil {
		return err
	}
	defer src.Close()

	writer := output.New(cmd.OutOrStdout(), output.FormatText).WithColorMode(colorMode(cmd))
	stdin := bufio.NewReader(cmd.InOrStdin())

	quit := false
	p := pager.New(classify.Default(), pageSize)
	p.Filter = filter
	p.Emit = writer.WriteLine
	p.Prompt = func(shown int) (bool, error) {
		fmt.Fprintf(cmd.OutOrStdout(), "-- More (%d) -- Press Enter to continue or 'q' to quit: ", shown)
		answer, err := stdin.ReadString('\n')
		if err != nil && answer == "" {
			// Stdin closed: stop paging cleanly.
			quit = true
			return true, nil
		}
		quit = strings.ToLower(strings.TrimSpace(answer)) == "q"
		return quit, nil
	}

	if err := p.Run(src); err != nil {
		return err
	}
	if !quit {
		fmt.Fprintln(cmd.OutOrStdout(), "End of file.")
	}
	return nil
}
