package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"csrules.dev/pkg/csrules/internal/adapter"
	"csrules.dev/pkg/csrules/internal/domain"
	m "csrules.dev/pkg/csrules/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "csrules"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	configFlagName      = "config"
	noCacheFlagName     = "no-cache"
	excludeFlagName     = "exclude"
	verboseFlagName     = "verbose"
	runParallelFlagName = "parallel"
	allowRiskyFlagName  = "allow-risky"

	rulesConfigKey       = "rules"
	riskyAllowedKey      = "risky_allowed"
	indentConfigKey      = "whitespace.indent"
	lineEndingConfigKey  = "whitespace.line_ending"
	runParallelConfigKey = "run.parallel"
	excludeConfigKey     = "paths.exclude"
	cacheFileConfigKey   = "cache.file"

	defaultNoCache      = false
	defaultRunParallel  = 1
	defaultRiskyAllowed = true

	envPrefix = "CSRULES"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".csrules.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setConfigDefaults()

	_ = readConfig(filepath.Join(configFolderPath, configFileName), false)
}

func setConfigDefaults() {
	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(rulesConfigKey, map[string]any{})
	viper.SetDefault(riskyAllowedKey, defaultRiskyAllowed)
	viper.SetDefault(indentConfigKey, m.DefaultIndent)
	viper.SetDefault(lineEndingConfigKey, m.DefaultLineEnding)
	viper.SetDefault(noCacheFlagName, defaultNoCache)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(cacheFileConfigKey, adapter.DefaultCacheFile)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// readConfig loads the configuration file at path. A missing file is only an
// error when it was requested explicitly.
func readConfig(path string, required bool) error {
	viper.SetConfigFile(path)

	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !required && (errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
		return nil
	}

	return fmt.Errorf("read config %s: %w", path, err)
}

// loadRuleConfig builds the rule configuration from the config file, the
// environment and the repeatable --rule overrides.
func loadRuleConfig(ruleFlags []string) (domain.Config, error) {
	flagOverrides, err := parseRuleFlags(ruleFlags)
	if err != nil {
		return domain.Config{}, err
	}

	overrides := make(map[string]any)
	for name, value := range viper.GetStringMap(rulesConfigKey) {
		overrides[name] = value
	}

	// Config keys arrive lowercased; a flag must win over any spelling.
	for name, value := range flagOverrides {
		for key := range overrides {
			if strings.EqualFold(key, name) {
				delete(overrides, key)
			}
		}

		overrides[name] = value
	}

	cfg := domain.NewConfig(overrides)
	cfg.RiskyAllowed = viper.GetBool(riskyAllowedKey)

	cfg.Whitespaces, err = m.NewWhitespacesConfig(
		unescapeWhitespace(viper.GetString(indentConfigKey)),
		unescapeWhitespace(viper.GetString(lineEndingConfigKey)),
	)
	if err != nil {
		return domain.Config{}, err
	}

	return cfg, nil
}

// parseRuleFlags turns name=value pairs into rule overrides. The value is
// parsed as YAML so `true`, `false` and `{case: snake_case}` all work.
func parseRuleFlags(flags []string) (map[string]any, error) {
	overrides := make(map[string]any, len(flags))

	for _, flag := range flags {
		name, raw, ok := strings.Cut(flag, "=")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return nil, fmt.Errorf("invalid rule override %q: expected name=value", flag)
		}

		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("invalid rule override %q: %w", flag, err)
		}

		overrides[name] = value
	}

	return overrides, nil
}

// unescapeWhitespace accepts the escaped forms `\t`, `\n` and `\r\n` used in
// environment variables and single-quoted YAML.
func unescapeWhitespace(value string) string {
	return strings.NewReplacer(`\t`, "\t", `\r`, "\r", `\n`, "\n").Replace(value)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose || viper.GetBool(logVerboseKey) {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
