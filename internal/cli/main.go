package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func Main() {
	root := &cobra.Command{
		Use:          "sqclip <input>...",
		Short:        "Cut square short-form clips from long videos",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("user", "", "Owner id used to namespace uploads and clips")
	_ = root.MarkFlagRequired("user")
	root.Flags().String("scratch", "", "Scratch directory for working files")
	root.Flags().String("env-file", "", "Path to .env file")
	root.Flags().String("log-level", "", "Log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
