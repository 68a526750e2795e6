package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/xooniverse/parsemodesetter/cmd/parsemodesetter/internal"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "parsemodesetter %s (%s)\n", internal.GetVersion(), runtime.Version())
		},
	}
}
