// Package apply implements the subcommand that runs a payload through the
// parse-mode router and prints the result. It exists to inspect what the
// middleware would do to a given call without sending anything.
package apply

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xooniverse/parsemodesetter/cmd/parsemodesetter/internal"
	"github.com/xooniverse/parsemodesetter/pkg/config"
	"github.com/xooniverse/parsemodesetter/pkg/parsemode"
)

func NewApplyCommand() *cobra.Command {
	var (
		method     string
		mode       string
		configPath string
		raw        bool
		noQuestion bool
		noExplain  bool
		allowList  []string
		denyList   []string
	)

	cmd := &cobra.Command{
		Use:     "apply [payload-file]",
		Short:   "Apply the parse-mode injection rules to a payload",
		Long:    "Reads a JSON payload from a file or stdin, applies the injection rule for the given method, and prints the transformed payload.",
		Example: "parsemodesetter apply --method sendPoll --parse-mode MarkdownV2 poll.json",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = internal.GetConfigPath()
			}
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			if mode != "" {
				cfg.ParseMode = mode
			}
			if noQuestion {
				cfg.SetPollQuestion = false
			}
			if noExplain {
				cfg.SetPollExplanation = false
			}
			if len(allowList) > 0 {
				cfg.AllowedMethods = allowList
			}
			if len(denyList) > 0 {
				cfg.DisallowedMethods = denyList
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			input, err := readPayload(args)
			if err != nil {
				return err
			}

			router := cfg.Router()
			out, err := transform(router, parsemode.Method(method), input, raw)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "", "Bot API method name (required)")
	cmd.Flags().StringVarP(&mode, "parse-mode", "p", "", "Parse mode: Markdown, MarkdownV2 or HTML")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path")
	cmd.Flags().BoolVar(&raw, "raw", false, "Rewrite the raw JSON in place instead of decode/re-encode")
	cmd.Flags().BoolVar(&noQuestion, "no-poll-question", false, "Skip question_parse_mode on sendPoll")
	cmd.Flags().BoolVar(&noExplain, "no-poll-explanation", false, "Skip explanation_parse_mode on sendPoll")
	cmd.Flags().StringSliceVar(&allowList, "allow", nil, "Override the allowed method list")
	cmd.Flags().StringSliceVar(&denyList, "disallow", nil, "Methods to exclude even when allowed")
	_ = cmd.MarkFlagRequired("method")

	return cmd
}

func readPayload(args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func transform(router *parsemode.Router, method parsemode.Method, input []byte, raw bool) ([]byte, error) {
	if raw {
		return router.RouteJSON(method, input), nil
	}

	var payload parsemode.Payload
	if err := json.Unmarshal(input, &payload); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}
	return json.MarshalIndent(router.Route(method, payload), "", "  ")
}
