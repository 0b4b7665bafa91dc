package config

import (
	"errors"
	"fmt"
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %q)", e.Field, e.Message, fmt.Sprint(e.Value))
}

// Where each program expects the image to come from.
var (
	launchImageHint = fmt.Sprintf("must be set via %s (docketeer sets it for the target)", EnvImage)
	driverImageHint = fmt.Sprintf("must be set via %s or as the first argument", EnvImage)
)

// validateConfig checks the settings both programs need. imageHint is the
// message for a missing image.
// Returns nil if valid, or joined errors for all validation failures.
func validateConfig(cfg *Config, imageHint string) error {
	var errs []error

	// Image has no default
	if cfg.Image == "" {
		errs = append(errs, &ValidationError{
			Field:   "image",
			Value:   cfg.Image,
			Message: imageHint,
		})
	}

	if cfg.ExecPath == "" {
		errs = append(errs, &ValidationError{
			Field:   "exec_path",
			Value:   cfg.ExecPath,
			Message: "must not be empty",
		})
	}

	// StopTimeout must be >= 0 (0 = never escalate)
	if cfg.StopTimeout < 0 {
		errs = append(errs, &ValidationError{
			Field:   "stop_timeout",
			Value:   cfg.StopTimeout,
			Message: "must be non-negative (0 = never force-kill)",
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// validateDriver additionally requires a target program to run.
func validateDriver(cfg *Config, target []string) error {
	err := validateConfig(cfg, driverImageHint)
	if len(target) == 0 {
		err = errors.Join(err, &ValidationError{
			Field:   "target",
			Value:   "",
			Message: "missing target program to run",
		})
	}
	return err
}
