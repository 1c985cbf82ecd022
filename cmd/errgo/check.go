package main

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.go|directory>...",
	Short: "Run the expansion without writing anything",
	Long: `Expand every //errgo:errors function found in the given files or
directories and report diagnostics, leaving all files untouched. Exits
non-zero when any expansion fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := newProcessor(cmd)
	if err != nil {
		return err
	}
	p.mode = modeCheck
	return p.run(args)
}
