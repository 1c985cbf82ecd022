package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "errgo",
	Short: "Generate error sum types from inline construction sites",
	Long: `errgo expands functions annotated with //errgo:errors: it collects the
error shapes declared at errgo.New call sites, generates a sealed sum
type named after the function's error result, and rewrites every call
site into a direct construction of that type.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "config file path (default "+defaultConfigNote+")")
	rootCmd.PersistentFlags().Int("jobs", 0, "maximum number of files expanded concurrently (0 = no limit)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
