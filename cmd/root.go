// Package cmd provides the root command and CLI setup for csrules.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"csrules.dev/pkg/csrules/internal/adapter"
	"csrules.dev/pkg/csrules/internal/controller"
	"csrules.dev/pkg/csrules/internal/domain"
	m "csrules.dev/pkg/csrules/internal/model"
)

// exitChangesDetected is returned by a dry run that would modify files.
const exitChangesDetected = 8

var fsAdapter adapter.SourceFSAdapter
var tokenizer adapter.PHPTokenizerAdapter
var cacheStore adapter.CacheStore
var orchestrator domain.Orchestrator
var registry domain.Registry
var workflow domain.Workflow
var ui controller.UI

// configFileFlag points at an explicit configuration file.
var configFileFlag string

// noCacheFlag disables incremental caching when set.
var noCacheFlag bool

// verboseFlag switches the log file to debug level.
var verboseFlag bool

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	tokenizer = adapter.NewLocalPHPTokenizerAdapter()
	cacheStore = adapter.NewYAMLCacheStore()
	registry = domain.DefaultRegistry()
	orchestrator = domain.NewOrchestrator(fsAdapter, tokenizer)
	workflow = domain.NewWorkflow(
		fsAdapter,
		tokenizer,
		cacheStore,
		ui,
		orchestrator,
		registry,
	)
}

const pathPatternsHelp = `Supports recursive path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./src ./tests  scan multiple directories (top level only)
  - src/Foo.php    a single file`

const rootLongDescription = `csrules applies a set of custom PHP coding-standard rules to PHP sources:
moving throw expressions after ?? and ?: onto their own line, normalizing
variable name casing and simplifying PHPDoc array key types.

` + pathPatternsHelp

const fixLongDescription = `Fix the PHP files under the given paths (default: current directory).

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csrules",
		Short: "Custom PHP coding-standard rules",
		Long:  rootLongDescription,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if configFileFlag != "" {
				if err := readConfig(configFileFlag, true); err != nil {
					return err
				}
			}

			configureLogger(viper.GetString(logFilenameKey), verboseFlag)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configFileFlag, configFlagName, "", "path to the configuration file (default ./"+configFileName+")")

	cmd.PersistentFlags().BoolVar(&noCacheFlag, noCacheFlagName, defaultNoCache, "disable the fix cache (re-check every file)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noCacheFlagName), noCacheFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", nil, "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "write debug entries to the log file")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, domain.ErrChangesDetected) {
		return exitChangesDetected
	}

	return 1
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
