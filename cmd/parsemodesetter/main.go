package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/xooniverse/parsemodesetter/cmd/parsemodesetter/internal"
	"github.com/xooniverse/parsemodesetter/cmd/parsemodesetter/internal/apply"
	"github.com/xooniverse/parsemodesetter/cmd/parsemodesetter/internal/methods"
	"github.com/xooniverse/parsemodesetter/cmd/parsemodesetter/internal/version"
	"github.com/xooniverse/parsemodesetter/pkg/config"
)

func NewParseModeSetterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "parsemodesetter",
		Short:   "Inspect and apply Bot API parse-mode injection rules v" + internal.GetVersion(),
		Example: "parsemodesetter apply --method sendMessage payload.json",
	}

	cmd.AddCommand(
		apply.NewApplyCommand(),
		methods.NewMethodsCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	config.LoadEnvFile()

	cmd := NewParseModeSetterCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
