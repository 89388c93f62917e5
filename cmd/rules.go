package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
	formatJSON  = "json"
)

var rulesFormatFlag string
var rulesRuleFlags []string

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the effective rule set",
		Long: `List the rule set after merging csrules.yaml and --rule overrides onto the
defaults. Only CsRules/* rules are run by csrules; the others are carried for
export to a full coding-standard runner.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadRuleConfig(rulesRuleFlags)
			if err != nil {
				return err
			}

			switch strings.ToLower(rulesFormatFlag) {
			case formatTable:
				return workflow.ListRules(cmd.Context(), cfg)
			case formatYAML:
				out, err := yaml.Marshal(cfg.Rules)
				if err != nil {
					return fmt.Errorf("encode rules: %w", err)
				}

				_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))

				return err
			case formatJSON:
				out, err := json.MarshalIndent(cfg.Rules, "", "    ")
				if err != nil {
					return fmt.Errorf("encode rules: %w", err)
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))

				return err
			default:
				return fmt.Errorf("unknown format %q: expected %s, %s or %s", rulesFormatFlag, formatTable, formatYAML, formatJSON)
			}
		},
	}

	cmd.Flags().StringVarP(&rulesFormatFlag, "format", "f", formatTable, "output format: table, yaml or json")
	cmd.Flags().StringArrayVarP(&rulesRuleFlags, "rule", "r", nil, "override a rule as name=value, value parsed as YAML (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
