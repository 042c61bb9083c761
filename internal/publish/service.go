package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/pypub/internal/execshell"
)

const (
	pythonModuleFlagConstant               = "-m"
	buildModuleNameConstant                = "build"
	twineModuleNameConstant                = "twine"
	twineCheckSubcommandConstant           = "check"
	twineStrictFlagConstant                = "--strict"
	twineUploadSubcommandConstant          = "upload"
	twineRepositoryFlagConstant            = "--repository"
	twineConfigFileFlagConstant            = "--config-file"
	twineConfigFileEnvironmentNameConstant = "TWINE_CONFIG_FILE"
	executorRequiredMessageConstant        = "python executor must be provided"
	distDirectoryRequiredMessageConstant   = "dist directory must be provided"
	noArtifactsMessageConstant             = "no artifacts found in dist directory"
	buildFailedMessageConstant             = "package build failed"
	buildFailureWrapTemplateConstant       = "%w: %w"
	distCleanErrorTemplateConstant         = "unable to clean dist directory %s: %w"
	distCreateErrorTemplateConstant        = "unable to create dist directory %s: %w"
	distListErrorTemplateConstant          = "unable to list dist directory %s: %w"
)

// ErrPythonExecutorRequired indicates the service was constructed without an executor.
var ErrPythonExecutorRequired = errors.New(executorRequiredMessageConstant)

// ErrDistDirectoryRequired indicates a dist directory option was empty.
var ErrDistDirectoryRequired = errors.New(distDirectoryRequiredMessageConstant)

// ErrNoArtifacts indicates the dist directory held no files to upload.
var ErrNoArtifacts = errors.New(noArtifactsMessageConstant)

// ErrBuildFailed indicates the build tool returned a non-zero exit code.
var ErrBuildFailed = errors.New(buildFailedMessageConstant)

// PythonExecutor runs the Python interpreter with the supplied details.
type PythonExecutor interface {
	ExecutePython(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// UploadOptions configures a single upload invocation.
type UploadOptions struct {
	Repository      Repository
	CredentialsFile string
	DistDirectory   string
}

// Service drives the clean, build, probe, and upload steps of the publish workflow.
type Service struct {
	executor PythonExecutor
}

// NewService constructs a publish service from the provided executor.
func NewService(executor PythonExecutor) (*Service, error) {
	if executor == nil {
		return nil, ErrPythonExecutorRequired
	}
	return &Service{executor: executor}, nil
}

// CleanArtifacts removes and recreates the dist directory so builds start empty.
func (service *Service) CleanArtifacts(distDirectory string) error {
	trimmedDistDirectory := strings.TrimSpace(distDirectory)
	if len(trimmedDistDirectory) == 0 {
		return ErrDistDirectoryRequired
	}

	if removeError := os.RemoveAll(trimmedDistDirectory); removeError != nil {
		return fmt.Errorf(distCleanErrorTemplateConstant, trimmedDistDirectory, removeError)
	}
	if createError := os.MkdirAll(trimmedDistDirectory, 0o755); createError != nil {
		return fmt.Errorf(distCreateErrorTemplateConstant, trimmedDistDirectory, createError)
	}
	return nil
}

// Build invokes the build tool; any non-zero exit is fatal for the run.
func (service *Service) Build(executionContext context.Context) error {
	buildDetails := execshell.CommandDetails{
		Arguments: []string{pythonModuleFlagConstant, buildModuleNameConstant},
	}
	if _, buildError := service.executor.ExecutePython(executionContext, buildDetails); buildError != nil {
		return fmt.Errorf(buildFailureWrapTemplateConstant, ErrBuildFailed, buildError)
	}
	return nil
}

// ProbeAuthentication runs a non-mutating twine validation command and reports
// whether it succeeded. Failure does not distinguish bad credentials from tool
// or network errors.
func (service *Service) ProbeAuthentication(executionContext context.Context, readmePath string, credentialsFile string) bool {
	probeDetails := execshell.CommandDetails{
		Arguments: []string{pythonModuleFlagConstant, twineModuleNameConstant, twineCheckSubcommandConstant, twineStrictFlagConstant, readmePath},
	}
	trimmedCredentialsFile := strings.TrimSpace(credentialsFile)
	if len(trimmedCredentialsFile) > 0 {
		probeDetails.EnvironmentVariables = map[string]string{
			twineConfigFileEnvironmentNameConstant: trimmedCredentialsFile,
		}
	}

	_, probeError := service.executor.ExecutePython(executionContext, probeDetails)
	return probeError == nil
}

// ListArtifacts enumerates the files produced into the dist directory.
func (service *Service) ListArtifacts(distDirectory string) ([]string, error) {
	trimmedDistDirectory := strings.TrimSpace(distDirectory)
	if len(trimmedDistDirectory) == 0 {
		return nil, ErrDistDirectoryRequired
	}

	directoryEntries, listError := os.ReadDir(trimmedDistDirectory)
	if listError != nil {
		return nil, fmt.Errorf(distListErrorTemplateConstant, trimmedDistDirectory, listError)
	}

	artifactPaths := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			continue
		}
		artifactPaths = append(artifactPaths, filepath.Join(trimmedDistDirectory, directoryEntry.Name()))
	}
	sort.Strings(artifactPaths)

	if len(artifactPaths) == 0 {
		return nil, ErrNoArtifacts
	}
	return artifactPaths, nil
}

// Upload sends the built artifacts to the requested index. Non-zero tool exits
// are classified by captured output and returned as *UploadFailureError.
func (service *Service) Upload(executionContext context.Context, options UploadOptions) error {
	artifactPaths, artifactsError := service.ListArtifacts(options.DistDirectory)
	if artifactsError != nil {
		return artifactsError
	}

	uploadArguments := []string{pythonModuleFlagConstant, twineModuleNameConstant, twineUploadSubcommandConstant}
	if options.Repository == RepositoryTest {
		uploadArguments = append(uploadArguments, twineRepositoryFlagConstant, testRepositoryIdentifierConstant)
	}
	trimmedCredentialsFile := strings.TrimSpace(options.CredentialsFile)
	if len(trimmedCredentialsFile) > 0 {
		uploadArguments = append(uploadArguments, twineConfigFileFlagConstant, trimmedCredentialsFile)
	}
	uploadArguments = append(uploadArguments, artifactPaths...)

	_, uploadError := service.executor.ExecutePython(executionContext, execshell.CommandDetails{Arguments: uploadArguments})
	if uploadError == nil {
		return nil
	}

	commandFailure := &execshell.CommandFailedError{}
	if errors.As(uploadError, &commandFailure) {
		return &UploadFailureError{
			Classification: ClassifyUploadFailure(commandFailure.CombinedOutput()),
			CapturedOutput: commandFailure.CombinedOutput(),
		}
	}
	return uploadError
}
