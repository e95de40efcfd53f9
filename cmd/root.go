package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/oclog/oclog/internal/classify"
	"github.com/oclog/oclog/internal/loader"
	"github.com/oclog/oclog/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "oclog",
	Short: "Classify, split, and clean firmware boot logs",
	Long: `Oclog inspects large, possibly corrupted firmware and bootloader logs.

It classifies each line into a severity category and can split a log into
per-category files, strip NUL-padding junk, page through a filtered view,
or follow a growing log live.

Examples:
  oclog split --outdir ./out boot.log
  oclog clean --in-place boot.log
  oclog view --filter error,warning boot.log
  oclog dump boot.log
  oclog tail boot.log`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.oclog.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".oclog")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("OCLOG")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)
	viper.SetDefault("no_color", false)
	viper.SetDefault("junk.nul_ratio", classify.DefaultNulRatio)
	viper.SetDefault("junk.long_line", classify.DefaultLongLine)
	viper.SetDefault("junk.min_visible", classify.DefaultMinVisible)
	viper.SetDefault("loader.chunk_size", loader.DefaultChunkSize)
	viper.SetDefault("loader.poll_interval", "250ms")
	viper.SetDefault("tail.poll_interval", "500ms")
	viper.SetDefault("pager.page_size", 25)

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	if viper.GetBool("no_color") {
		color.NoColor = true
	}
}

// newDetector builds a junk detector from the configured thresholds.
func newDetector() *classify.Detector {
	return &classify.Detector{
		NulRatio:   viper.GetFloat64("junk.nul_ratio"),
		LongLine:   viper.GetInt("junk.long_line"),
		MinVisible: viper.GetInt("junk.min_visible"),
	}
}

// colorMode resolves the output color mode from the no-color flag.
func colorMode(cmd *cobra.Command) output.ColorMode {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		return output.ColorNever
	}
	return output.ColorAuto
}

// parseFilter turns a comma-separated category list into a filter set. An
// empty spec returns nil, which passes every category.
func parseFilter(spec string) (map[classify.Category]bool, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	filter := make(map[classify.Category]bool)
	for _, part := range strings.Split(spec, ",") {
		cat, ok := classify.ParseCategory(part)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", strings.TrimSpace(part))
		}
		filter[cat] = true
	}
	return filter, nil
}

// verbosef prints a diagnostic to stderr when verbose output is enabled.
func verbosef(format string, args ...any) {
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "[oclog] "+format+"\n", args...)
	}
}
