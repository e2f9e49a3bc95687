package actions

import (
	"fmt"
	"io"

	"github.com/1pedrohfreitas/changelog/internal/configuration"
	"github.com/rs/zerolog/log"
)

type ValidateOptions struct {
	Config       *configuration.Config
	Mode         configuration.Mode
	OutputFormat string
}

// Validate checks the configuration for the given mode and writes the result to w
func Validate(w io.Writer, options *ValidateOptions) error {
	result := configuration.ValidateConfiguration(options.Config, options.Mode)

	if err := OutputValidationResult(w, result, options.OutputFormat); err != nil {
		log.Error().Err(err).Msg("Failed to output validation results")
		return fmt.Errorf("output error: %w", err)
	}

	if !result.Valid {
		return result.Err()
	}

	log.Info().Str("mode", string(options.Mode)).Msg("Configuration is valid")
	return nil
}

// RequireValid logs every validation error and fails when the configuration cannot serve mode
func RequireValid(config *configuration.Config, mode configuration.Mode) error {
	result := configuration.ValidateConfiguration(config, mode)
	if result.Valid {
		return nil
	}

	log.Error().Msg("Configuration validation failed")
	for _, validationErr := range result.Errors {
		log.Error().Str("field", validationErr.Field).Msg(validationErr.Message)
	}
	return result.Err()
}
