package publish

import (
	"strings"

	pathutils "github.com/temirov/pypub/internal/utils/path"
)

const (
	defaultPythonExecutableConstant     = "python3"
	defaultDistDirectoryConstant        = "dist"
	defaultPyprojectFileNameConstant    = "pyproject.toml"
	defaultReadmeFileNameConstant       = "README.md"
	defaultCredentialsFileNameConstant  = ".pypirc"
	defaultIgnoreFileNameConstant       = ".gitignore"
	pythonConfigurationKeySuffix        = ".python"
	distDirectoryConfigurationKeySuffix = ".dist_dir"
	pyprojectConfigurationKeySuffix     = ".pyproject"
	readmeConfigurationKeySuffix        = ".readme"
	credentialsConfigurationKeySuffix   = ".credentials_file"
	ignoreFileConfigurationKeySuffix    = ".ignore_file"
)

// CommandConfiguration captures configuration values for the publish workflow.
type CommandConfiguration struct {
	Python          string `mapstructure:"python"`
	DistDirectory   string `mapstructure:"dist_dir"`
	Pyproject       string `mapstructure:"pyproject"`
	Readme          string `mapstructure:"readme"`
	CredentialsFile string `mapstructure:"credentials_file"`
	IgnoreFile      string `mapstructure:"ignore_file"`
}

// DefaultCommandConfiguration provides baseline configuration values for publishing.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Python:          defaultPythonExecutableConstant,
		DistDirectory:   defaultDistDirectoryConstant,
		Pyproject:       defaultPyprojectFileNameConstant,
		Readme:          defaultReadmeFileNameConstant,
		CredentialsFile: defaultCredentialsFileNameConstant,
		IgnoreFile:      defaultIgnoreFileNameConstant,
	}
}

// DefaultConfigurationValues exposes configuration defaults keyed for the loader.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + pythonConfigurationKeySuffix:        defaultPythonExecutableConstant,
		configurationKeyPrefix + distDirectoryConfigurationKeySuffix: defaultDistDirectoryConstant,
		configurationKeyPrefix + pyprojectConfigurationKeySuffix:     defaultPyprojectFileNameConstant,
		configurationKeyPrefix + readmeConfigurationKeySuffix:        defaultReadmeFileNameConstant,
		configurationKeyPrefix + credentialsConfigurationKeySuffix:   defaultCredentialsFileNameConstant,
		configurationKeyPrefix + ignoreFileConfigurationKeySuffix:    defaultIgnoreFileNameConstant,
	}
}

// Sanitize trims configuration values and applies defaults for empty fields.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Python = valueOrDefault(configuration.Python, defaultPythonExecutableConstant)
	sanitized.DistDirectory = valueOrDefault(configuration.DistDirectory, defaultDistDirectoryConstant)
	sanitized.Pyproject = valueOrDefault(configuration.Pyproject, defaultPyprojectFileNameConstant)
	sanitized.Readme = valueOrDefault(configuration.Readme, defaultReadmeFileNameConstant)
	sanitized.CredentialsFile = pathutils.NewHomeExpander().Expand(valueOrDefault(configuration.CredentialsFile, defaultCredentialsFileNameConstant))
	sanitized.IgnoreFile = valueOrDefault(configuration.IgnoreFile, defaultIgnoreFileNameConstant)

	return sanitized
}

func valueOrDefault(rawValue string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}
