package main

import (
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] <file.go|directory>...",
	Short: "Expand annotated functions and write the rewritten files",
	Long: `Expand every //errgo:errors function found in the given files or
directories. Rewritten files are written back in place unless --stdout
is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Bool("stdout", false, "print rewritten files to stdout instead of writing in place")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	p, err := newProcessor(cmd)
	if err != nil {
		return err
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	p.mode = modeWrite
	if toStdout {
		p.mode = modeStdout
	}
	return p.run(args)
}
