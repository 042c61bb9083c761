package publish_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pypub/internal/execshell"
	"github.com/temirov/pypub/internal/publish"
)

type recordedInvocation struct {
	Arguments   []string
	Environment map[string]string
}

type scriptedPythonExecutor struct {
	uploadResult        execshell.ExecutionResult
	uploadFails         bool
	checkFails          bool
	recordedInvocations []recordedInvocation
}

func (executor *scriptedPythonExecutor) ExecutePython(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	invocation := recordedInvocation{
		Arguments:   append([]string{}, details.Arguments...),
		Environment: details.EnvironmentVariables,
	}
	executor.recordedInvocations = append(executor.recordedInvocations, invocation)

	isUpload := len(details.Arguments) >= 3 && details.Arguments[1] == "twine" && details.Arguments[2] == "upload"
	isCheck := len(details.Arguments) >= 3 && details.Arguments[1] == "twine" && details.Arguments[2] == "check"

	if isUpload && executor.uploadFails {
		return executor.uploadResult, &execshell.CommandFailedError{Result: executor.uploadResult}
	}
	if isCheck && executor.checkFails {
		result := execshell.ExecutionResult{ExitCode: 1}
		return result, &execshell.CommandFailedError{Result: result}
	}
	return execshell.ExecutionResult{}, nil
}

func (executor *scriptedPythonExecutor) lastInvocation() recordedInvocation {
	return executor.recordedInvocations[len(executor.recordedInvocations)-1]
}

func seedArtifact(t *testing.T, distDirectory string, artifactName string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(distDirectory, 0o755))
	artifactPath := filepath.Join(distDirectory, artifactName)
	require.NoError(t, os.WriteFile(artifactPath, []byte(artifactName), 0o644))
	return artifactPath
}

func TestNewServiceRequiresExecutor(t *testing.T) {
	service, creationError := publish.NewService(nil)
	require.ErrorIs(t, creationError, publish.ErrPythonExecutorRequired)
	require.Nil(t, service)
}

func TestCleanArtifactsEmptiesDirectory(t *testing.T) {
	service, creationError := publish.NewService(&scriptedPythonExecutor{})
	require.NoError(t, creationError)

	distDirectory := filepath.Join(t.TempDir(), "dist")
	seedArtifact(t, distDirectory, "stale-0.0.1.tar.gz")

	require.NoError(t, service.CleanArtifacts(distDirectory))

	directoryEntries, listError := os.ReadDir(distDirectory)
	require.NoError(t, listError)
	require.Empty(t, directoryEntries)
}

func TestCleanArtifactsCreatesMissingDirectory(t *testing.T) {
	service, creationError := publish.NewService(&scriptedPythonExecutor{})
	require.NoError(t, creationError)

	distDirectory := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, service.CleanArtifacts(distDirectory))

	fileInformation, statError := os.Stat(distDirectory)
	require.NoError(t, statError)
	require.True(t, fileInformation.IsDir())
}

func TestCleanArtifactsValidatesDirectory(t *testing.T) {
	service, creationError := publish.NewService(&scriptedPythonExecutor{})
	require.NoError(t, creationError)

	require.ErrorIs(t, service.CleanArtifacts("  "), publish.ErrDistDirectoryRequired)
}

func TestBuildInvokesBuildModule(t *testing.T) {
	executor := &scriptedPythonExecutor{}
	service, creationError := publish.NewService(executor)
	require.NoError(t, creationError)

	require.NoError(t, service.Build(context.Background()))
	require.Equal(t, []string{"-m", "build"}, executor.lastInvocation().Arguments)
}

func TestProbeAuthenticationPassesCredentialsEnvironment(t *testing.T) {
	executor := &scriptedPythonExecutor{}
	service, creationError := publish.NewService(executor)
	require.NoError(t, creationError)

	require.True(t, service.ProbeAuthentication(context.Background(), "README.md", "/home/operator/.pypirc"))

	probeInvocation := executor.lastInvocation()
	require.Equal(t, []string{"-m", "twine", "check", "--strict", "README.md"}, probeInvocation.Arguments)
	require.Equal(t, "/home/operator/.pypirc", probeInvocation.Environment["TWINE_CONFIG_FILE"])
}

func TestProbeAuthenticationOmitsEnvironmentWithoutCredentials(t *testing.T) {
	executor := &scriptedPythonExecutor{}
	service, creationError := publish.NewService(executor)
	require.NoError(t, creationError)

	require.True(t, service.ProbeAuthentication(context.Background(), "README.md", ""))
	require.Empty(t, executor.lastInvocation().Environment)
}

func TestProbeAuthenticationReportsFailure(t *testing.T) {
	executor := &scriptedPythonExecutor{checkFails: true}
	service, creationError := publish.NewService(executor)
	require.NoError(t, creationError)

	require.False(t, service.ProbeAuthentication(context.Background(), "README.md", ""))
}

func TestListArtifactsSkipsDirectoriesAndRequiresFiles(t *testing.T) {
	service, creationError := publish.NewService(&scriptedPythonExecutor{})
	require.NoError(t, creationError)

	distDirectory := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.MkdirAll(filepath.Join(distDirectory, "nested"), 0o755))

	_, artifactsError := service.ListArtifacts(distDirectory)
	require.ErrorIs(t, artifactsError, publish.ErrNoArtifacts)

	wheelPath := seedArtifact(t, distDirectory, "sample-1.0.0-py3-none-any.whl")
	archivePath := seedArtifact(t, distDirectory, "sample-1.0.0.tar.gz")

	artifactPaths, listError := service.ListArtifacts(distDirectory)
	require.NoError(t, listError)
	require.Equal(t, []string{wheelPath, archivePath}, artifactPaths)
}

func TestUploadBuildsExpectedArguments(t *testing.T) {
	testCases := []struct {
		name            string
		repository      publish.Repository
		credentialsFile string
		expectedPrefix  []string
	}{
		{
			name:           "ProductionWithoutCredentials",
			repository:     publish.RepositoryProduction,
			expectedPrefix: []string{"-m", "twine", "upload"},
		},
		{
			name:           "TestRepository",
			repository:     publish.RepositoryTest,
			expectedPrefix: []string{"-m", "twine", "upload", "--repository", "testpypi"},
		},
		{
			name:            "ProductionWithCredentials",
			repository:      publish.RepositoryProduction,
			credentialsFile: "/home/operator/.pypirc",
			expectedPrefix:  []string{"-m", "twine", "upload", "--config-file", "/home/operator/.pypirc"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			executor := &scriptedPythonExecutor{}
			service, creationError := publish.NewService(executor)
			require.NoError(t, creationError)

			distDirectory := filepath.Join(t.TempDir(), "dist")
			artifactPath := seedArtifact(t, distDirectory, "sample-1.0.0.tar.gz")

			uploadError := service.Upload(context.Background(), publish.UploadOptions{
				Repository:      testCase.repository,
				CredentialsFile: testCase.credentialsFile,
				DistDirectory:   distDirectory,
			})
			require.NoError(t, uploadError)

			expectedArguments := append(append([]string{}, testCase.expectedPrefix...), artifactPath)
			require.Equal(t, expectedArguments, executor.lastInvocation().Arguments)
		})
	}
}

func TestUploadClassifiesToolFailures(t *testing.T) {
	executor := &scriptedPythonExecutor{
		uploadFails:  true,
		uploadResult: execshell.ExecutionResult{StandardError: "HTTPError: 400 File already exists", ExitCode: 1},
	}
	service, creationError := publish.NewService(executor)
	require.NoError(t, creationError)

	distDirectory := filepath.Join(t.TempDir(), "dist")
	seedArtifact(t, distDirectory, "sample-1.0.0.tar.gz")

	uploadError := service.Upload(context.Background(), publish.UploadOptions{
		Repository:    publish.RepositoryProduction,
		DistDirectory: distDirectory,
	})

	uploadFailure := &publish.UploadFailureError{}
	require.ErrorAs(t, uploadError, &uploadFailure)
	require.Equal(t, publish.FailureVersionConflict, uploadFailure.Classification)
	require.True(t, strings.Contains(uploadFailure.CapturedOutput, "File already exists"))
}

func TestUploadRequiresArtifacts(t *testing.T) {
	service, creationError := publish.NewService(&scriptedPythonExecutor{})
	require.NoError(t, creationError)

	distDirectory := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.MkdirAll(distDirectory, 0o755))

	uploadError := service.Upload(context.Background(), publish.UploadOptions{
		Repository:    publish.RepositoryProduction,
		DistDirectory: distDirectory,
	})
	require.ErrorIs(t, uploadError, publish.ErrNoArtifacts)
}
