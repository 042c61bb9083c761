package credentials

import (
	"strings"

	pathutils "github.com/temirov/pypub/internal/utils/path"
)

const (
	defaultCredentialsFileNameConstant = ".pypirc"
	defaultIgnoreFileNameConstant      = ".gitignore"
)

// Configuration captures configuration values for credentials management.
type Configuration struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	IgnoreFile      string `mapstructure:"ignore_file"`
}

// DefaultConfiguration provides baseline configuration values for credentials management.
func DefaultConfiguration() Configuration {
	return Configuration{
		CredentialsFile: defaultCredentialsFileNameConstant,
		IgnoreFile:      defaultIgnoreFileNameConstant,
	}
}

// Sanitize trims configuration values and applies defaults for empty fields.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration

	sanitized.CredentialsFile = strings.TrimSpace(configuration.CredentialsFile)
	if len(sanitized.CredentialsFile) == 0 {
		sanitized.CredentialsFile = defaultCredentialsFileNameConstant
	}
	sanitized.CredentialsFile = pathutils.NewHomeExpander().Expand(sanitized.CredentialsFile)

	sanitized.IgnoreFile = strings.TrimSpace(configuration.IgnoreFile)
	if len(sanitized.IgnoreFile) == 0 {
		sanitized.IgnoreFile = defaultIgnoreFileNameConstant
	}

	return sanitized
}
