package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pixdeck/internal/configloader"
	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/pkg/config"
	goldmarkparser "github.com/yaklabco/pixdeck/pkg/parser/goldmark"
)

// loadConfig resolves the layered configuration with overrides taken from
// the command's flags.
func loadConfig(cmd *cobra.Command, overrides *config.Config) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, result.LoadedFrom)
	}

	return result.Config, nil
}

func newParser(cfg *config.Config) *goldmarkparser.Parser {
	return goldmarkparser.New(goldmarkparser.Options{Linkify: cfg.Parser.Linkify})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
