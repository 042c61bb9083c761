package credentials

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pypub/internal/execshell"
	"github.com/temirov/pypub/internal/prompt"
	"github.com/temirov/pypub/internal/ui"
)

const (
	commandUseConstant                    = "credentials-init"
	commandShortDescriptionConstant       = "Create a local .pypirc credentials template"
	commandLongDescriptionConstant        = "credentials-init writes a placeholder .pypirc file with PyPI and TestPyPI token entries, keeps it out of version control, and opens it for editing."
	templateExistsMessageTemplateConstant = "Found existing credentials file %s; leaving it untouched."
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the credentials-init command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     ToolExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() Configuration
}

// Build constructs the credentials-init command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	printer := ui.NewConsolePrinter(command.OutOrStdout(), !builder.humanReadableLoggingEnabled())

	executor, executorError := builder.resolveExecutor()
	if executorError != nil {
		return executorError
	}

	manager, managerError := NewManager(executor, printer, runtime.GOOS)
	if managerError != nil {
		return managerError
	}

	if manager.FileExists(configuration.CredentialsFile) {
		printer.Info(fmt.Sprintf(templateExistsMessageTemplateConstant, configuration.CredentialsFile))
		return nil
	}

	pausePrompter := prompt.NewIOPausePrompter(command.InOrStdin(), command.OutOrStdout())
	return manager.SetupTemplate(command.Context(), SetupOptions{
		CredentialsPath: configuration.CredentialsFile,
		IgnorePath:      configuration.IgnoreFile,
		PausePrompter:   pausePrompter,
	})
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveExecutor() (ToolExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	logger := builder.resolveLogger()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), builder.humanReadableLoggingEnabled())
	if creationError != nil {
		return nil, creationError
	}
	if builder.humanReadableLoggingEnabled() {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}
