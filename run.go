package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gqlgenconfig "github.com/99designs/gqlgen/codegen/config"
	"github.com/Yamashou/gqldto/config"
	"github.com/Yamashou/gqldto/generator"
	"github.com/jensneuse/abstractlogger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	exitConfig   = 2
	exitGenerate = 4
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

type options struct {
	configDir     string
	schema        []string
	query         []string
	namespace     string
	output        string
	targetVersion string
	logLevel      string
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}

	written, err := generator.Generate(ctx, cfg, logger)
	if err != nil {
		return &exitError{code: exitGenerate, err: fmt.Errorf("failed to generate: %w", err)}
	}

	for _, path := range written {
		logger.Debug("generated", abstractlogger.String("file", path))
	}

	return nil
}

// loadConfig reads the closest configuration file and applies the flags on
// top of it. Without a configuration file the flags alone must name the
// schema and query files.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.LoadConfigFromDefaultLocations(opts.configDir)
	switch {
	case errors.Is(err, os.ErrNotExist) && len(opts.schema) > 0 && len(opts.query) > 0:
		cfg = &config.Config{}
	case err != nil:
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if len(opts.schema) > 0 {
		cfg.SchemaFilename = gqlgenconfig.StringList(opts.schema)
	}
	if len(opts.query) > 0 {
		cfg.Query = gqlgenconfig.StringList(opts.query)
	}
	if opts.namespace != "" {
		cfg.Namespace = opts.namespace
	}
	if opts.output != "" {
		cfg.Output = filepath.Clean(opts.output)
	}
	if opts.targetVersion != "" {
		cfg.TargetVersion = opts.targetVersion
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Init(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func newLogger(level string) (abstractlogger.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return abstractlogger.NewZapLogger(logger, abstractLevel(zapLevel)), nil
}

func abstractLevel(level zapcore.Level) abstractlogger.Level {
	switch level {
	case zapcore.DebugLevel:
		return abstractlogger.DebugLevel
	case zapcore.InfoLevel:
		return abstractlogger.InfoLevel
	case zapcore.WarnLevel:
		return abstractlogger.WarnLevel
	case zapcore.ErrorLevel:
		return abstractlogger.ErrorLevel
	case zapcore.DPanicLevel, zapcore.PanicLevel:
		return abstractlogger.PanicLevel
	default:
		return abstractlogger.FatalLevel
	}
}
