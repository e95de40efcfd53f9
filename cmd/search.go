package cmd

import (
	"fmt"
	"io"
	"regexp"

	"github.com/oclog/oclog/internal/classify"
	"github.com/oclog/oclog/internal/config"
	"github.com/oclog/oclog/internal/output"
	"github.com/oclog/oclog/internal/source"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <file>...",
	Short: "Search log lines by pattern and category",
	Long: `Search streams one or more log files and prints every line that
matches a regex pattern, colored by severity. Globs are expanded, and with
--filter only the listed categories are considered.

Examples:
  oclog search --pattern "OCB: .*Halting" boot.log
  oclog search --pattern "timeout" --filter error,warning *.log
  oclog search --pattern "SecureBoot" --count boot.log`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("pattern", "p", "", "regex pattern to search for (required)")
	searchCmd.Flags().String("filter", "", "comma-separated categories to consider (e.g. error,warning)")
	searchCmd.Flags().BoolP("count", "c", false, "only print the count of matching lines")

	_ = searchCmd.MarkFlagRequired("pattern")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	patternStr, _ := cmd.Flags().GetString("pattern")
	filterSpec, _ := cmd.Flags().GetString("filter")
	countOnly, _ := cmd.Flags().GetBool("count")

	pattern, err := regexp.Compile(patternStr)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	filter, err := parseFilter(filterSpec)
	if err != nil {
		return err
	}

	files, err := config.ExpandGlobs(args)
	if err != nil {
		return err
	}
	multiFile := len(files) > 1

	classifier := classify.Default()
	writer := output.New(cmd.OutOrStdout(), output.FormatText).WithColorMode(colorMode(cmd))

	for _, path := range files {
		count, err := searchFile(cmd, path, pattern, filter, classifier, writer, countOnly, multiFile)
		if err != nil {
			return err
		}
		if countOnly {
			if multiFile {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:%d\n", path, count)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", count)
		}
	}
	return nil
}

func searchFile(cmd *cobra.Command, path string, pattern *regexp.Regexp, filter map[classify.Category]bool, classifier *classify.Classifier, writer *output.Writer, countOnly, multiFile bool) (int, error) {
	src, err := source.Open(path)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	count := 0
	for {
		line, err := src.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		cat := classifier.Classify(line)
		if filter != nil && !filter[cat] {
			continue
		}
		if !pattern.MatchString(line) {
			continue
		}
		count++
		if countOnly {
			continue
		}
		if multiFile {
			line = path + ":" + line
		}
		if err := writer.WriteLine(cat, line); err != nil {
			return count, err
		}
	}
}
