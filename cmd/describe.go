package cmd

import (
	"github.com/spf13/cobra"
)

// describeCmd represents the describe command.
var describeCmd = newDescribeCmd()

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <rule>",
		Short: "Describe a custom rule",
		Long: `Show the summary, options and code samples of a CsRules/* rule. Samples are
fixed with the configured whitespace settings and shown as diffs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRuleConfig(nil)
			if err != nil {
				return err
			}

			return workflow.Describe(cmd.Context(), args[0], cfg)
		},
	}
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
