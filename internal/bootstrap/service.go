package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/pypub/internal/execshell"
	"github.com/temirov/pypub/internal/ui"
)

const (
	pythonModuleFlagConstant                 = "-m"
	pythonVersionFlagConstant                = "--version"
	buildModuleNameConstant                  = "build"
	twineModuleNameConstant                  = "twine"
	pipModuleNameConstant                    = "pip"
	pipInstallSubcommandConstant             = "install"
	executorRequiredMessageConstant          = "python executor must be provided"
	installFailedMessageConstant             = "failed to install packaging dependencies"
	missingDependencyMessageTemplateConstant = "Missing required dependency: %s"
	installingDependenciesMessageConstant    = "Installing required dependencies..."
	installFailureGuidanceMessageConstant    = "Failed to install dependencies. Please install them manually:"
	manualInstallCommandConstant             = "pip install build twine"
)

// ErrPythonExecutorRequired indicates the service was constructed without an executor.
var ErrPythonExecutorRequired = errors.New(executorRequiredMessageConstant)

// ErrDependencyInstallFailed indicates the automatic pip install did not succeed.
var ErrDependencyInstallFailed = errors.New(installFailedMessageConstant)

// PythonExecutor runs the Python interpreter with the supplied details.
type PythonExecutor interface {
	ExecutePython(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Service checks for the build and twine modules and installs them when missing.
type Service struct {
	executor PythonExecutor
	printer  ui.Printer
}

// NewService constructs a bootstrap service from the provided collaborators.
func NewService(executor PythonExecutor, printer ui.Printer) (*Service, error) {
	if executor == nil {
		return nil, ErrPythonExecutorRequired
	}
	resolvedPrinter := printer
	if resolvedPrinter == nil {
		resolvedPrinter = ui.NewConsolePrinter(nil, true)
	}
	return &Service{executor: executor, printer: resolvedPrinter}, nil
}

// EnsureDependencies verifies the packaging tools respond and installs them when they do not.
func (service *Service) EnsureDependencies(executionContext context.Context) error {
	missingModules := service.detectMissingModules(executionContext)
	if len(missingModules) == 0 {
		return nil
	}

	for _, missingModule := range missingModules {
		service.printer.Error(fmt.Sprintf(missingDependencyMessageTemplateConstant, missingModule))
	}
	service.printer.Info(installingDependenciesMessageConstant)

	installDetails := execshell.CommandDetails{
		Arguments: []string{pythonModuleFlagConstant, pipModuleNameConstant, pipInstallSubcommandConstant, buildModuleNameConstant, twineModuleNameConstant},
	}
	if _, installError := service.executor.ExecutePython(executionContext, installDetails); installError != nil {
		service.printer.Error(installFailureGuidanceMessageConstant)
		service.printer.Line(manualInstallCommandConstant)
		return ErrDependencyInstallFailed
	}

	return nil
}

func (service *Service) detectMissingModules(executionContext context.Context) []string {
	requiredModules := []string{buildModuleNameConstant, twineModuleNameConstant}
	missingModules := make([]string, 0, len(requiredModules))

	for _, requiredModule := range requiredModules {
		probeDetails := execshell.CommandDetails{
			Arguments: []string{pythonModuleFlagConstant, requiredModule, pythonVersionFlagConstant},
		}
		if _, probeError := service.executor.ExecutePython(executionContext, probeDetails); probeError != nil {
			missingModules = append(missingModules, requiredModule)
		}
	}

	return missingModules
}
