package publish

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pypub/internal/bootstrap"
	"github.com/temirov/pypub/internal/credentials"
	"github.com/temirov/pypub/internal/execshell"
	"github.com/temirov/pypub/internal/prompt"
	"github.com/temirov/pypub/internal/pyproject"
	"github.com/temirov/pypub/internal/ui"
)

const (
	commandUseConstant                    = "publish"
	commandShortDescriptionConstant       = "Build the package and upload it to PyPI or TestPyPI"
	commandLongDescriptionConstant        = "publish cleans the dist directory, builds the package, and uploads the artifacts to the selected index, prompting interactively for credentials and the target repository."
	workflowHeaderConstant                = "PyPI Publishing"
	localCredentialsFoundMessageConstant  = "Found local .pypirc file in the project directory."
	useLocalCredentialsPromptConstant     = "Do you want to use this local .pypirc file? (y/n): "
	usingLocalCredentialsTemplateConstant = "Using local .pypirc file: %s"
	noLocalCredentialsMessageConstant     = "No local .pypirc file found. You can create one in the project directory."
	createCredentialsPromptConstant       = "Do you want to create a local .pypirc file now? (y/n): "
	notAuthenticatedWarningConstant       = "You are not authenticated with PyPI."
	uploadLikelyFailsMessageConstant      = "The upload will likely fail without proper authentication."
	proceedAnywayPromptConstant           = "Do you want to proceed anyway? (y/n): "
	repositoryQuestionMessageConstant     = "Where do you want to publish the package?"
	testRepositoryMenuLineConstant        = "1. TestPyPI (recommended for testing)"
	productionRepositoryMenuLineConstant  = "2. PyPI (public package index)"
	repositoryMenuPromptConstant          = "\nEnter your choice (1/2): "
	productionUploadWarningConstant       = "You are about to publish to the public PyPI repository."
	productionConfirmationPromptConstant  = "Are you sure you want to proceed? (y/n): "
	operationCancelledMessageConstant     = "Operation cancelled."
	cleaningDistMessageConstant           = "Cleaning dist directory..."
	buildHeaderConstant                   = "Building Package"
	buildSuccessMessageConstant           = "Package built successfully!"
	buildFailureMessageConstant           = "Failed to build package."
	uploadHeaderTemplateConstant          = "Uploading to %s"
	uploadSuccessMessageConstant          = "Package uploaded successfully!"
	authenticationRequiredMessageConstant = "authentication with the package index failed"
)

// ErrAuthenticationFailed indicates the pre-upload credentials probe failed.
var ErrAuthenticationFailed = errors.New(authenticationRequiredMessageConstant)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the publish command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     PythonExecutor
	CredentialsExecutor          credentials.ToolExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the publish command.
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

	executor, credentialsExecutor, executorError := builder.resolveExecutors(configuration)
	if executorError != nil {
		return executorError
	}

	workflow, workflowError := newWorkflow(workflowDependencies{
		configuration:       configuration,
		printer:             printer,
		executor:            executor,
		credentialsExecutor: credentialsExecutor,
		confirmationPrompt:  prompt.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout()),
		menuPrompt:          prompt.NewIOMenuPrompter(command.InOrStdin(), command.OutOrStdout()),
		pausePrompt:         prompt.NewIOPausePrompter(command.InOrStdin(), command.OutOrStdout()),
		operatingSystem:     runtime.GOOS,
	})
	if workflowError != nil {
		return workflowError
	}

	return workflow.Run(command.Context())
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveExecutors(configuration CommandConfiguration) (PythonExecutor, credentials.ToolExecutor, error) {
	if builder.Executor != nil && builder.CredentialsExecutor != nil {
		return builder.Executor, builder.CredentialsExecutor, nil
	}

	logger := builder.resolveLogger()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), builder.humanReadableLoggingEnabled())
	if creationError != nil {
		return nil, nil, creationError
	}
	shellExecutor.SetPythonExecutable(configuration.Python)
	if builder.humanReadableLoggingEnabled() {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}

	pythonExecutor := builder.Executor
	if pythonExecutor == nil {
		pythonExecutor = shellExecutor
	}
	credentialsExecutor := builder.CredentialsExecutor
	if credentialsExecutor == nil {
		credentialsExecutor = shellExecutor
	}
	return pythonExecutor, credentialsExecutor, nil
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

type workflowDependencies struct {
	configuration       CommandConfiguration
	printer             ui.Printer
	executor            PythonExecutor
	credentialsExecutor credentials.ToolExecutor
	confirmationPrompt  prompt.ConfirmationPrompter
	menuPrompt          prompt.MenuPrompter
	pausePrompt         prompt.PausePrompter
	operatingSystem     string
}

type workflow struct {
	configuration      CommandConfiguration
	printer            ui.Printer
	service            *Service
	bootstrapService   *bootstrap.Service
	credentialsManager *credentials.Manager
	guide              *Guide
	confirmationPrompt prompt.ConfirmationPrompter
	menuPrompt         prompt.MenuPrompter
	pausePrompt        prompt.PausePrompter
}

func newWorkflow(dependencies workflowDependencies) (*workflow, error) {
	service, serviceError := NewService(dependencies.executor)
	if serviceError != nil {
		return nil, serviceError
	}

	bootstrapService, bootstrapError := bootstrap.NewService(dependencies.executor, dependencies.printer)
	if bootstrapError != nil {
		return nil, bootstrapError
	}

	credentialsManager, managerError := credentials.NewManager(dependencies.credentialsExecutor, dependencies.printer, dependencies.operatingSystem)
	if managerError != nil {
		return nil, managerError
	}

	return &workflow{
		configuration:      dependencies.configuration,
		printer:            dependencies.printer,
		service:            service,
		bootstrapService:   bootstrapService,
		credentialsManager: credentialsManager,
		guide:              NewGuide(dependencies.printer, pyproject.NewMetadataReader(nil)),
		confirmationPrompt: dependencies.confirmationPrompt,
		menuPrompt:         dependencies.menuPrompt,
		pausePrompt:        dependencies.pausePrompt,
	}, nil
}

// Run executes the publish workflow from dependency checks through upload.
func (flow *workflow) Run(executionContext context.Context) error {
	flow.printer.Header(workflowHeaderConstant)

	if bootstrapError := flow.bootstrapService.EnsureDependencies(executionContext); bootstrapError != nil {
		return bootstrapError
	}

	credentialsPath, credentialsError := flow.resolveCredentialsFile(executionContext)
	if credentialsError != nil {
		return credentialsError
	}

	if len(credentialsPath) == 0 {
		authenticated := flow.service.ProbeAuthentication(executionContext, flow.configuration.Readme, "")
		if !authenticated {
			flow.printer.Warning(notAuthenticatedWarningConstant)
			flow.printer.Info(uploadLikelyFailsMessageConstant)

			proceedAnyway, promptError := flow.confirmationPrompt.Confirm(proceedAnywayPromptConstant)
			if promptError != nil {
				return promptError
			}
			if !proceedAnyway {
				flow.guide.ShowAuthInstructions(RepositoryProduction, "")
				return nil
			}
		}
	}

	repository, selectionCancelled, selectionError := flow.selectRepository()
	if selectionError != nil {
		return selectionError
	}
	if selectionCancelled {
		flow.printer.Info(operationCancelledMessageConstant)
		return nil
	}

	flow.printer.Info(cleaningDistMessageConstant)
	if cleanError := flow.service.CleanArtifacts(flow.configuration.DistDirectory); cleanError != nil {
		return cleanError
	}

	flow.printer.Header(buildHeaderConstant)
	if buildError := flow.service.Build(executionContext); buildError != nil {
		flow.printer.Error(buildFailureMessageConstant)
		return buildError
	}
	flow.printer.Success(buildSuccessMessageConstant)

	return flow.upload(executionContext, repository, credentialsPath)
}

func (flow *workflow) resolveCredentialsFile(executionContext context.Context) (string, error) {
	credentialsFile := flow.configuration.CredentialsFile

	if flow.credentialsManager.FileExists(credentialsFile) {
		flow.printer.Info(localCredentialsFoundMessageConstant)
		useLocalFile, promptError := flow.confirmationPrompt.Confirm(useLocalCredentialsPromptConstant)
		if promptError != nil {
			return "", promptError
		}
		if !useLocalFile {
			return "", nil
		}

		absoluteCredentialsPath, absoluteError := filepath.Abs(credentialsFile)
		if absoluteError != nil {
			absoluteCredentialsPath = credentialsFile
		}
		flow.printer.Success(fmt.Sprintf(usingLocalCredentialsTemplateConstant, absoluteCredentialsPath))
		return absoluteCredentialsPath, nil
	}

	flow.printer.Info(noLocalCredentialsMessageConstant)
	createFile, promptError := flow.confirmationPrompt.Confirm(createCredentialsPromptConstant)
	if promptError != nil {
		return "", promptError
	}
	if !createFile {
		return "", nil
	}

	setupError := flow.credentialsManager.SetupTemplate(executionContext, credentials.SetupOptions{
		CredentialsPath: credentialsFile,
		IgnorePath:      flow.configuration.IgnoreFile,
		PausePrompter:   flow.pausePrompt,
	})
	if setupError != nil {
		return "", setupError
	}

	absoluteCredentialsPath, absoluteError := filepath.Abs(credentialsFile)
	if absoluteError != nil {
		absoluteCredentialsPath = credentialsFile
	}
	return absoluteCredentialsPath, nil
}

func (flow *workflow) selectRepository() (Repository, bool, error) {
	flow.printer.Info(repositoryQuestionMessageConstant)
	flow.printer.Line(testRepositoryMenuLineConstant)
	flow.printer.Line(productionRepositoryMenuLineConstant)

	menuSelection, selectionError := flow.menuPrompt.Select(repositoryMenuPromptConstant)
	if selectionError != nil {
		return RepositoryProduction, false, selectionError
	}

	repository := ResolveRepositoryFromMenuSelection(menuSelection)
	if repository == RepositoryTest {
		return repository, false, nil
	}

	flow.printer.Warning(productionUploadWarningConstant)
	confirmed, confirmationError := flow.confirmationPrompt.Confirm(productionConfirmationPromptConstant)
	if confirmationError != nil {
		return repository, false, confirmationError
	}
	return repository, !confirmed, nil
}

func (flow *workflow) upload(executionContext context.Context, repository Repository, credentialsPath string) error {
	flow.printer.Header(fmt.Sprintf(uploadHeaderTemplateConstant, repository.DisplayName()))

	if len(credentialsPath) > 0 {
		authenticated := flow.service.ProbeAuthentication(executionContext, flow.configuration.Readme, credentialsPath)
		if !authenticated {
			flow.guide.ShowAuthInstructions(repository, credentialsPath)
			return ErrAuthenticationFailed
		}
	}

	uploadError := flow.service.Upload(executionContext, UploadOptions{
		Repository:      repository,
		CredentialsFile: credentialsPath,
		DistDirectory:   flow.configuration.DistDirectory,
	})
	if uploadError != nil {
		uploadFailure := &UploadFailureError{}
		if errors.As(uploadError, &uploadFailure) {
			flow.guide.ShowUploadFailure(uploadFailure, flow.configuration.Pyproject)
		}
		return uploadError
	}

	flow.printer.Success(uploadSuccessMessageConstant)
	flow.guide.ShowInstallInstructions(repository, flow.configuration.Pyproject)
	return nil
}
