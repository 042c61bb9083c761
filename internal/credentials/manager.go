package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/pypub/internal/execshell"
	"github.com/temirov/pypub/internal/prompt"
	"github.com/temirov/pypub/internal/ui"
)

const (
	darwinOperatingSystemNameConstant      = "darwin"
	windowsOperatingSystemNameConstant     = "windows"
	darwinFileOpenerToolNameConstant       = "open"
	windowsFileOpenerToolNameConstant      = "cmd"
	windowsFileOpenerCommandFlagConstant   = "/c"
	windowsFileOpenerStartVerbConstant     = "start"
	linuxFileOpenerToolNameConstant        = "xdg-open"
	executorRequiredMessageConstant        = "tool executor must be provided"
	credentialsPathRequiredMessageConstant = "credentials file path must be provided"
	ignorePathRequiredMessageConstant      = "ignore file path must be provided"
	credentialsFileModeConstant            = os.FileMode(0o600)
	ignoreFileModeConstant                 = os.FileMode(0o644)
	newlineConstant                        = "\n"
	templateWriteErrorTemplateConstant     = "unable to write credentials template %s: %w"
	ignoreReadErrorTemplateConstant        = "unable to read ignore file %s: %w"
	ignoreWriteErrorTemplateConstant       = "unable to update ignore file %s: %w"
	templateCreatedMessageTemplateConstant = "Created %s template in the project directory."
	templateEditMessageConstant            = "Please edit the file and add your API tokens for PyPI and TestPyPI."
	tokenGenerationMessageConstant         = "You can generate tokens at https://pypi.org/manage/account/ and https://test.pypi.org/manage/account/"
	ignoreAppendedMessageTemplateConstant  = "Added %s to %s"
	ignoreCreatedMessageTemplateConstant   = "Created %s with %s entry"
	manualEditMessageTemplateConstant      = "Please edit %s manually to add your tokens."
	manualEditPausePromptConstant          = "Press Enter when you've edited the file..."
	createTemplateHeaderConstant           = "Creating Local .pypirc File"
)

const credentialsTemplateContentConstant = `[distutils]
index-servers =
    pypi
    testpypi

[pypi]
username = __token__
password =

[testpypi]
repository = https://test.pypi.org/legacy/
username = __token__
password =
`

// ErrToolExecutorRequired indicates the manager was constructed without an executor.
var ErrToolExecutorRequired = errors.New(executorRequiredMessageConstant)

// ErrCredentialsPathRequired indicates a credentials file path option was empty.
var ErrCredentialsPathRequired = errors.New(credentialsPathRequiredMessageConstant)

// ErrIgnorePathRequired indicates an ignore file path option was empty.
var ErrIgnorePathRequired = errors.New(ignorePathRequiredMessageConstant)

// ToolExecutor runs arbitrary external tools such as platform file openers.
type ToolExecutor interface {
	ExecuteTool(executionContext context.Context, toolName execshell.ToolName, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Manager coordinates credentials template creation, ignore entries, and editor handoff.
type Manager struct {
	executor        ToolExecutor
	printer         ui.Printer
	operatingSystem string
}

// NewManager constructs a credentials manager for the provided operating system identifier.
func NewManager(executor ToolExecutor, printer ui.Printer, operatingSystem string) (*Manager, error) {
	if executor == nil {
		return nil, ErrToolExecutorRequired
	}
	resolvedPrinter := printer
	if resolvedPrinter == nil {
		resolvedPrinter = ui.NewConsolePrinter(nil, true)
	}
	return &Manager{executor: executor, printer: resolvedPrinter, operatingSystem: operatingSystem}, nil
}

// TemplateContent returns the placeholder credentials file content.
func (manager *Manager) TemplateContent() string {
	return credentialsTemplateContentConstant
}

// FileExists reports whether the credentials file is present.
func (manager *Manager) FileExists(credentialsPath string) bool {
	trimmedPath := strings.TrimSpace(credentialsPath)
	if len(trimmedPath) == 0 {
		return false
	}
	fileInformation, statError := os.Stat(trimmedPath)
	return statError == nil && !fileInformation.IsDir()
}

// CreateTemplate writes the placeholder credentials file to the provided path.
func (manager *Manager) CreateTemplate(credentialsPath string) error {
	trimmedPath := strings.TrimSpace(credentialsPath)
	if len(trimmedPath) == 0 {
		return ErrCredentialsPathRequired
	}
	if writeError := os.WriteFile(trimmedPath, []byte(credentialsTemplateContentConstant), credentialsFileModeConstant); writeError != nil {
		return fmt.Errorf(templateWriteErrorTemplateConstant, trimmedPath, writeError)
	}
	return nil
}

// EnsureIgnoreEntry guarantees the ignore file excludes the credentials entry.
// It reports whether the ignore file was modified.
func (manager *Manager) EnsureIgnoreEntry(ignorePath string, ignoreEntry string) (bool, error) {
	trimmedIgnorePath := strings.TrimSpace(ignorePath)
	if len(trimmedIgnorePath) == 0 {
		return false, ErrIgnorePathRequired
	}
	trimmedIgnoreEntry := strings.TrimSpace(ignoreEntry)
	if len(trimmedIgnoreEntry) == 0 {
		return false, ErrCredentialsPathRequired
	}

	existingContent, readError := os.ReadFile(trimmedIgnorePath)
	if readError != nil {
		if !errors.Is(readError, os.ErrNotExist) {
			return false, fmt.Errorf(ignoreReadErrorTemplateConstant, trimmedIgnorePath, readError)
		}
		if writeError := os.WriteFile(trimmedIgnorePath, []byte(trimmedIgnoreEntry+newlineConstant), ignoreFileModeConstant); writeError != nil {
			return false, fmt.Errorf(ignoreWriteErrorTemplateConstant, trimmedIgnorePath, writeError)
		}
		manager.printer.Info(fmt.Sprintf(ignoreCreatedMessageTemplateConstant, trimmedIgnorePath, trimmedIgnoreEntry))
		return true, nil
	}

	if containsIgnoreEntry(string(existingContent), trimmedIgnoreEntry) {
		return false, nil
	}

	updatedContent := string(existingContent)
	if len(updatedContent) > 0 && !strings.HasSuffix(updatedContent, newlineConstant) {
		updatedContent += newlineConstant
	}
	updatedContent += trimmedIgnoreEntry + newlineConstant

	if writeError := os.WriteFile(trimmedIgnorePath, []byte(updatedContent), ignoreFileModeConstant); writeError != nil {
		return false, fmt.Errorf(ignoreWriteErrorTemplateConstant, trimmedIgnorePath, writeError)
	}
	manager.printer.Info(fmt.Sprintf(ignoreAppendedMessageTemplateConstant, trimmedIgnoreEntry, trimmedIgnorePath))
	return true, nil
}

// OpenInEditor opens the credentials file with the platform file opener.
func (manager *Manager) OpenInEditor(executionContext context.Context, credentialsPath string) error {
	trimmedPath := strings.TrimSpace(credentialsPath)
	if len(trimmedPath) == 0 {
		return ErrCredentialsPathRequired
	}

	openerCommand := manager.fileOpenerCommand(trimmedPath)
	_, openError := manager.executor.ExecuteTool(executionContext, openerCommand.Name, openerCommand.Details)
	return openError
}

// SetupOptions configures a full credentials template setup.
type SetupOptions struct {
	CredentialsPath string
	IgnorePath      string
	PausePrompter   prompt.PausePrompter
}

// SetupTemplate creates the template, maintains the ignore entry, and hands the
// file to the operator for editing.
func (manager *Manager) SetupTemplate(executionContext context.Context, options SetupOptions) error {
	manager.printer.Header(createTemplateHeaderConstant)

	if creationError := manager.CreateTemplate(options.CredentialsPath); creationError != nil {
		return creationError
	}

	manager.printer.Info(fmt.Sprintf(templateCreatedMessageTemplateConstant, options.CredentialsPath))
	manager.printer.Info(templateEditMessageConstant)
	manager.printer.Info(tokenGenerationMessageConstant)

	if _, ignoreError := manager.EnsureIgnoreEntry(options.IgnorePath, options.CredentialsPath); ignoreError != nil {
		return ignoreError
	}

	if openError := manager.OpenInEditor(executionContext, options.CredentialsPath); openError != nil {
		manager.printer.Info(fmt.Sprintf(manualEditMessageTemplateConstant, options.CredentialsPath))
		if options.PausePrompter != nil {
			if pauseError := options.PausePrompter.Pause(manualEditPausePromptConstant); pauseError != nil {
				return pauseError
			}
		}
	}

	return nil
}

type fileOpenerCommand struct {
	Name    execshell.ToolName
	Details execshell.CommandDetails
}

func (manager *Manager) fileOpenerCommand(targetPath string) fileOpenerCommand {
	switch manager.operatingSystem {
	case darwinOperatingSystemNameConstant:
		return fileOpenerCommand{
			Name:    darwinFileOpenerToolNameConstant,
			Details: execshell.CommandDetails{Arguments: []string{targetPath}},
		}
	case windowsOperatingSystemNameConstant:
		return fileOpenerCommand{
			Name:    windowsFileOpenerToolNameConstant,
			Details: execshell.CommandDetails{Arguments: []string{windowsFileOpenerCommandFlagConstant, windowsFileOpenerStartVerbConstant, targetPath}},
		}
	default:
		return fileOpenerCommand{
			Name:    linuxFileOpenerToolNameConstant,
			Details: execshell.CommandDetails{Arguments: []string{targetPath}},
		}
	}
}

func containsIgnoreEntry(ignoreContent string, ignoreEntry string) bool {
	for _, ignoreLine := range strings.Split(ignoreContent, newlineConstant) {
		if strings.TrimSpace(ignoreLine) == ignoreEntry {
			return true
		}
	}
	return false
}
