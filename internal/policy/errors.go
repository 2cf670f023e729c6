package policy

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid or missing configuration value. It is always
// fatal and always raised before any file or git mutation.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s", e.Key, e.Message)
	}
	return e.Message
}

// IsConfigError returns true if err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
