package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/oclog/oclog/internal/cleaner"
	"github.com/oclog/oclog/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [flags] <file>",
	Short: "Write a copy of a log with junk lines removed",
	Long: `Clean streams a log file once and drops blank lines, NUL-padded
lines, and long runs of whitespace disguised as content. The result goes
to a "{name}_cleaned" sibling, or replaces the original with --in-place.

Examples:
  oclog clean boot.log
  oclog clean --in-place --force boot.log`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().Bool("in-place", false, "overwrite the original file")
	cleanCmd.Flags().Bool("force", false, "skip the in-place confirmation prompt")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	path := args[0]
	inPlace, _ := cmd.Flags().GetBool("in-place")
	force, _ := cmd.Flags().GetBool("force")

	if inPlace && !force {
		fmt.Fprintf(cmd.OutOrStdout(), "Overwrite %s with its cleaned content? [y/N]: ", path)
		answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && answer == "" {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	res, err := cleaner.Clean(path, inPlace, newDetector())
	if err != nil {
		return err
	}

	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(viper.GetString("format")))
	if writer.Format() == output.FormatJSON {
		return writer.WriteJSON(res)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d of %d lines. Output: %s\n", res.Removed, res.Total, res.OutputPath)
	return nil
}
