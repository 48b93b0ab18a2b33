package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BrunoTulio/logr"
)

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.validateTimezone(); err != nil {
		return fmt.Errorf("timezone config: %w", err)
	}

	if err := c.validateFile(); err != nil {
		return fmt.Errorf("file config: %w", err)
	}

	if err := c.validateLaunchd(); err != nil {
		return fmt.Errorf("launchd config: %w", err)
	}

	return nil
}

// validateTimezone checks if the timezone is valid
func (c *Config) validateTimezone() error {
	if c.Timezone == "" {
		return nil
	}

	_, err := c.GetLocation()
	if err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	return nil
}

// validateFile validate file backend settings
func (c *Config) validateFile() error {
	if strings.Contains(c.File.Path, "..") {
		return fmt.Errorf("path cannot contain '..'")
	}
	return nil
}

// validateLaunchd validate launch agent settings
func (c *Config) validateLaunchd() error {
	l := c.Launchd

	if l.RollbackRatio < 0 || l.RollbackRatio > 1 {
		return fmt.Errorf("rollback_ratio must be between 0 and 1, got %g", l.RollbackRatio)
	}
	if l.RollbackRatio > 0 && l.RollbackRatio < 0.5 {
		logr.Warnf("rollback_ratio=%g is aggressive; a single failed agent can undo a whole save", l.RollbackRatio)
	}

	if l.LabelPrefix != "" && !isValidLabelPrefix(l.LabelPrefix) {
		return fmt.Errorf("label_prefix has invalid format: %s", l.LabelPrefix)
	}

	if strings.Contains(l.AgentsDir, "..") {
		return fmt.Errorf("agents_dir cannot contain '..'")
	}
	if strings.Contains(l.LogDir, "..") {
		return fmt.Errorf("log_dir cannot contain '..'")
	}

	return nil
}

// Validation helper functions

// isValidLabelPrefix validates a reverse-DNS style label prefix
func isValidLabelPrefix(prefix string) bool {
	prefixRegex := regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-]*$`)
	return prefixRegex.MatchString(prefix)
}
