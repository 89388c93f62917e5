package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"csrules.dev/pkg/csrules/internal/domain"
	m "csrules.dev/pkg/csrules/internal/model"
)

// ErrConfigExists is returned by init when the target file is present.
var ErrConfigExists = errors.New("config file already exists")

// configDocument is the layout of csrules.yaml. Rules keep their order.
type configDocument struct {
	Version      int            `yaml:"version"`
	RiskyAllowed bool           `yaml:"risky_allowed"`
	Rules        domain.RuleSet `yaml:"rules"`
	Whitespace   struct {
		Indent     string `yaml:"indent"`
		LineEnding string `yaml:"line_ending"`
	} `yaml:"whitespace"`
	Run struct {
		Parallel int `yaml:"parallel"`
	} `yaml:"run"`
	Paths struct {
		Exclude []string `yaml:"exclude"`
	} `yaml:"paths"`
	Cache struct {
		File string `yaml:"file"`
	} `yaml:"cache"`
	Log struct {
		Filename   string `yaml:"filename"`
		Level      string `yaml:"level"`
		MaxSize    int    `yaml:"max_size"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"log"`
}

func currentConfigDocument() (configDocument, error) {
	cfg, err := loadRuleConfig(nil)
	if err != nil {
		return configDocument{}, err
	}

	doc := configDocument{
		Version:      currentConfigVersion,
		RiskyAllowed: cfg.RiskyAllowed,
		Rules:        cfg.Rules,
	}
	doc.Whitespace.Indent = cfg.Whitespaces.Indent
	doc.Whitespace.LineEnding = cfg.Whitespaces.LineEnding
	doc.Run.Parallel = viper.GetInt(runParallelConfigKey)
	doc.Paths.Exclude = viper.GetStringSlice(excludeConfigKey)
	doc.Cache.File = viper.GetString(cacheFileConfigKey)
	doc.Log.Filename = viper.GetString(logFilenameKey)
	doc.Log.Level = parseSlogLevel(viper.GetString(logLevelKey), 0).String()
	doc.Log.MaxSize = viper.GetInt(logMaxSizeKey)
	doc.Log.MaxBackups = viper.GetInt(logMaxBackupsKey)
	doc.Log.MaxAge = viper.GetInt(logMaxAgeKey)
	doc.Log.Compress = viper.GetBool(logCompressKey)

	if doc.Paths.Exclude == nil {
		doc.Paths.Exclude = []string{}
	}

	return doc, nil
}

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default csrules.yaml configuration file",
		Long: `Create a csrules.yaml in the current working directory populated with the
current defaults, including the full rule set, so it can be edited manually.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := m.Path(filepath.Join(configFolderPath, configFileName))

			_, err := fsAdapter.FileInfo(cmd.Context(), targetPath)
			if err == nil {
				return fmt.Errorf("%w: %s", ErrConfigExists, targetPath)
			}

			if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check config file: %w", err)
			}

			doc, err := currentConfigDocument()
			if err != nil {
				return err
			}

			content, err := yaml.Marshal(doc)
			if err != nil {
				return fmt.Errorf("failed to encode config file: %w", err)
			}

			if err := fsAdapter.WriteFile(cmd.Context(), targetPath, content); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s\n", targetPath)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
