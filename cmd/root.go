package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arin/copygen/internal/logger"
)

var (
	verbose    bool
	endpoint   string
	model      string
	copyIndex  int
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "copygen [product description]",
	Short: "Generate marketing taglines from a product description",
	Long: `copygen asks an OpenAI-compatible LLM endpoint for 3-5 short marketing
taglines, each tagged with a style, and streams the text as it is written.

Examples:
  copygen 新款智能手表，续航7天，支持血氧监测
  copygen --copy 2 "cold brew coffee, no sugar, 12h steeped"
  echo "noise-cancelling earbuds, 30h battery" | copygen --json

Press Ctrl-C while text is streaming to cancel the generation.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.Init(level, "text", os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "", "Override the completion endpoint for this run")
	rootCmd.Flags().StringVar(&model, "model", "", "Override the model for this run")
	rootCmd.Flags().IntVar(&copyIndex, "copy", 0, "Copy tagline N (1-based) to the clipboard when done")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the parsed taglines as JSON on stdout")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the entry point called from main.
func Execute() error {
	return rootCmd.Execute()
}
