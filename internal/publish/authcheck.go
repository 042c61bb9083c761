package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pypub/internal/execshell"
	"github.com/temirov/pypub/internal/pyproject"
	"github.com/temirov/pypub/internal/ui"
)

const (
	authCheckCommandUseConstant               = "auth-check"
	authCheckCommandShortConstant             = "Probe whether package index credentials are usable"
	authCheckCommandLongConstant              = "auth-check runs a non-mutating twine validation command using the local credentials file when present and reports whether the credentials are plausibly valid."
	authCheckUsingCredentialsTemplateConstant = "Using credentials file: %s"
	authCheckSuccessMessageConstant           = "Credentials look usable."
)

// AuthCheckCommandBuilder assembles the auth-check command.
type AuthCheckCommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     PythonExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the auth-check command.
func (builder *AuthCheckCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   authCheckCommandUseConstant,
		Short: authCheckCommandShortConstant,
		Long:  authCheckCommandLongConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *AuthCheckCommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	printer := ui.NewConsolePrinter(command.OutOrStdout(), !builder.humanReadableLoggingEnabled())

	executor, executorError := builder.resolveExecutor(configuration)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(executor)
	if serviceError != nil {
		return serviceError
	}

	credentialsPath := resolveExistingCredentialsPath(configuration.CredentialsFile)
	if len(credentialsPath) > 0 {
		printer.Info(fmt.Sprintf(authCheckUsingCredentialsTemplateConstant, credentialsPath))
	}

	if service.ProbeAuthentication(command.Context(), configuration.Readme, credentialsPath) {
		printer.Success(authCheckSuccessMessageConstant)
		return nil
	}

	guide := NewGuide(printer, pyproject.NewMetadataReader(nil))
	guide.ShowAuthInstructions(RepositoryProduction, credentialsPath)
	return ErrAuthenticationFailed
}

func (builder *AuthCheckCommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *AuthCheckCommandBuilder) resolveExecutor(configuration CommandConfiguration) (PythonExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	logger := builder.resolveLogger()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), builder.humanReadableLoggingEnabled())
	if creationError != nil {
		return nil, creationError
	}
	shellExecutor.SetPythonExecutable(configuration.Python)
	if builder.humanReadableLoggingEnabled() {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return shellExecutor, nil
}

func (builder *AuthCheckCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *AuthCheckCommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func resolveExistingCredentialsPath(credentialsFile string) string {
	trimmedCredentialsFile := strings.TrimSpace(credentialsFile)
	if len(trimmedCredentialsFile) == 0 {
		return ""
	}
	fileInformation, statError := os.Stat(trimmedCredentialsFile)
	if statError != nil || fileInformation.IsDir() {
		return ""
	}
	absolutePath, absoluteError := filepath.Abs(trimmedCredentialsFile)
	if absoluteError != nil {
		return trimmedCredentialsFile
	}
	return absolutePath
}
