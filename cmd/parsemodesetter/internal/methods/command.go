// Package methods implements the subcommand listing the default allowed
// methods and the injection rule each one hits.
package methods

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xooniverse/parsemodesetter/pkg/parsemode"
)

func ruleFor(m parsemode.Method) string {
	switch m {
	case parsemode.MethodSendPoll:
		return "question_parse_mode + explanation_parse_mode"
	case parsemode.MethodAnswerInlineQuery:
		return "per-result parse_mode + input_message_content.parse_mode"
	case parsemode.MethodEditMessageMedia:
		return "media.parse_mode (caption required)"
	case parsemode.MethodSendMediaGroup:
		return "per-item media parse_mode (caption required)"
	}
	return "top-level parse_mode"
}

func NewMethodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List default allowed methods and their injection rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tRULE")
			for _, m := range parsemode.DefaultAllowedMethods() {
				fmt.Fprintf(w, "%s\t%s\n", m, ruleFor(m))
			}
			return w.Flush()
		},
	}
}
