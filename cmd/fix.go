package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"csrules.dev/pkg/csrules/internal/domain"
	m "csrules.dev/pkg/csrules/internal/model"
)

var fixParallelFlag int
var fixShardFlag string
var fixDryRunFlag bool
var fixDiffFlag bool
var fixAllowRiskyFlag bool
var fixRuleFlags []string

// fixCmd represents the fix command.
var fixCmd = newFixCmd()

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Fix PHP files",
		Long:  fixLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRuleConfig(fixRuleFlags)
			if err != nil {
				return err
			}

			shardIndex, totalShards := parseShardFlag(fixShardFlag)

			// Usage is only helpful for flag errors.
			cmd.SilenceUsage = true

			return workflow.Fix(cmd.Context(), domain.FixArgs{
				Paths:           parsePaths(args),
				Exclude:         viper.GetStringSlice(excludeConfigKey),
				Config:          cfg,
				Parallel:        viper.GetInt(runParallelConfigKey),
				DryRun:          fixDryRunFlag,
				ShowDiff:        fixDiffFlag,
				UseCache:        !viper.GetBool(noCacheFlagName),
				CacheFile:       m.Path(viper.GetString(cacheFileConfigKey)),
				ShardIndex:      shardIndex,
				TotalShardCount: totalShards,
				Version:         buildVersion(),
			})
		},
	}

	configureFixFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(fixCmd)
}

func configureFixFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&fixParallelFlag, runParallelFlagName, "p", defaultRunParallel, "number of files fixed in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().BoolVar(&fixAllowRiskyFlag, allowRiskyFlagName, defaultRiskyAllowed, "allow rules that may change behavior")
	bindFlagToConfig(cmd.Flags().Lookup(allowRiskyFlagName), riskyAllowedKey)

	cmd.Flags().StringVarP(&fixShardFlag, "shard", "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
	cmd.Flags().BoolVar(&fixDryRunFlag, "dry-run", false, fmt.Sprintf("only report files that would change (exit code %d when any would)", exitChangesDetected))
	cmd.Flags().BoolVar(&fixDiffFlag, "diff", false, "print a unified diff of every change")
	cmd.Flags().StringArrayVarP(&fixRuleFlags, "rule", "r", nil, "override a rule as name=value, value parsed as YAML (can be repeated)")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
