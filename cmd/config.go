package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"killmap.dev/pkg/killmap/internal/domain"
	"killmap.dev/pkg/killmap/pkg"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "killmap"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	dirFlagName             = "dir"
	binariesFlagName        = "binaries"
	envFileFlagName         = "env-file"
	buildParallelFlagName   = "build-parallel"
	outputLimitFlagName     = "output-limit"
	logFileFlagName         = "log-file"
	verboseFlagName         = "verbose"
	baselineTimeoutFlagName = "baseline-timeout"
	gracePeriodFlagName     = "grace-period"
	startupTimeoutFlagName  = "startup-timeout"
	metricsFileFlagName     = "metrics-file"
	formatFlagName          = "format"

	onlyTestFlagName        = "only-test-to-run"
	mutantsToRunFlagName    = "mutants-to-run"
	runUnchangedMutantsFlag = "run-mutants-unkilled-by-failing-tests"

	subjectDirKey      = "subject.dir"
	subjectBinariesKey = "subject.binaries"
	subjectEnvFileKey  = "subject.env_file"
	buildParallelKey   = "build.parallel"
	baselineTimeoutKey = "run.baseline_timeout"
	outputLimitKey     = "run.output_limit"
	metricsFileKey     = "run.metrics_file"
	gracePeriodKey     = "worker.grace_period"
	startupTimeoutKey  = "worker.startup_timeout"

	defaultSubjectDir      = "."
	defaultBinariesDir     = ".killmap/bin"
	defaultBuildParallel   = 4
	defaultOutputLimit     = pkg.DefaultTailBytes
	defaultBaselineTimeout = domain.DefaultBaselineTimeout
	defaultGracePeriod     = domain.DefaultGracePeriod
	defaultStartupTimeout  = domain.DefaultStartupTimeout

	envPrefix = "KILLMAP"

	logFilenameKey       = "log.filename"
	logWorkerFilenameKey = "log.worker_filename"
	logLevelKey          = "log.level"
	logVerboseKey        = "log.verbose"
	logMaxSizeKey        = "log.max_size"
	logMaxBackupsKey     = "log.max_backups"
	logMaxAgeKey         = "log.max_age"
	logCompressKey       = "log.compress"

	defaultLogFilename       = ".killmap.log"
	defaultLogWorkerFilename = ".killmap-worker.log"
	defaultLogLevel          = int(slog.LevelInfo)
	defaultLogVerbose        = false
	defaultLogMaxSize        = 10
	defaultLogMaxBackups     = 3
	defaultLogMaxAge         = 28
	defaultLogCompress       = true
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

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(subjectDirKey, defaultSubjectDir)
	viper.SetDefault(subjectBinariesKey, defaultBinariesDir)
	viper.SetDefault(subjectEnvFileKey, "")
	viper.SetDefault(buildParallelKey, defaultBuildParallel)
	viper.SetDefault(baselineTimeoutKey, defaultBaselineTimeout.String())
	viper.SetDefault(outputLimitKey, defaultOutputLimit)
	viper.SetDefault(metricsFileKey, "")
	viper.SetDefault(gracePeriodKey, defaultGracePeriod.String())
	viper.SetDefault(startupTimeoutKey, defaultStartupTimeout.String())

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logWorkerFilenameKey, defaultLogWorkerFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
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

// durationSetting reads a duration key, accepting plain integers as milliseconds.
func durationSetting(key string) time.Duration {
	raw := strings.TrimSpace(viper.GetString(key))
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil && raw != "" {
		return time.Duration(ms) * time.Millisecond
	}

	return viper.GetDuration(key)
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
	if verbose {
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
