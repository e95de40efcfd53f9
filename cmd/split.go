package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oclog/oclog/internal/classify"
	"github.com/oclog/oclog/internal/cleaner"
	"github.com/oclog/oclog/internal/output"
	"github.com/oclog/oclog/internal/source"
	"github.com/oclog/oclog/internal/splitter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var splitCmd = &cobra.Command{
	Use:   "split [flags] <file>",
	Short: "Split a log into one file per severity category",
	Long: `Split classifies every line of a log file and writes it to a
per-category output file. One file is created for every category, even
when no line routes to it, and existing files are never overwritten.

Examples:
  oclog split boot.log
  oclog split --outdir ./sorted --prefix run1 boot.log
  oclog split --clean boot.log`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringP("outdir", "o", "", "output directory (default: the source file's directory)")
	splitCmd.Flags().StringP("prefix", "p", "", "sink filename prefix (default: the source file's stem)")
	splitCmd.Flags().Bool("clean", false, "remove junk lines into a cleaned copy first and split that")

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	path := args[0]
	outdir, _ := cmd.Flags().GetString("outdir")
	prefix, _ := cmd.Flags().GetString("prefix")
	preClean, _ := cmd.Flags().GetBool("clean")

	if preClean {
		res, err := cleaner.Clean(path, false, newDetector())
		if err != nil {
			return err
		}
		verbosef("cleaned %s: removed %d of %d lines", path, res.Removed, res.Total)
		path = res.OutputPath
	}

	if outdir == "" {
		outdir = filepath.Dir(path)
	}
	if prefix == "" {
		base := filepath.Base(path)
		prefix = strings.TrimSuffix(base, filepath.Ext(base))
	}

	src, err := source.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	paths, err := splitter.SplitStream(src, outdir, prefix, classify.Default())
	if err != nil {
		return err
	}
	verbosef("split logs written to %s", outdir)

	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(viper.GetString("format")))
	if writer.Format() == output.FormatJSON {
		byName := make(map[string]string, len(paths))
		for cat, p := range paths {
			byName[cat.String()] = p
		}
		return writer.WriteJSON(byName)
	}

	for _, cat := range classify.Categories {
		fmt.Fprintf(cmd.OutOrStdout(), "%-13s %s\n", cat.String()+":", paths[cat])
	}
	return nil
}
