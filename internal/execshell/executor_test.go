package execshell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/pypub/internal/execshell"
)

const (
	testToolNameConstant             = "python3"
	testCommandArgumentConstant      = "--version"
	testWorkingDirectoryConstant     = "/tmp/project"
	testStandardErrorContentConstant = "boom"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionFailure error
	recordedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	if runner.executionFailure != nil {
		return execshell.ExecutionResult{}, runner.executionFailure
	}
	return runner.executionResult, nil
}

func TestShellExecutorInitializationValidation(t *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		expectedError error
	}{
		{
			name:          "MissingLogger",
			logger:        nil,
			runner:        &recordingCommandRunner{},
			expectedError: execshell.ErrLoggerRequired,
		},
		{
			name:          "MissingRunner",
			logger:        zap.NewNop(),
			runner:        nil,
			expectedError: execshell.ErrCommandRunnerRequired,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner)
			require.ErrorIs(t, creationError, testCase.expectedError)
			require.Nil(t, executor)
		})
	}
}

func TestShellExecutorExecuteBehavior(t *testing.T) {
	testCases := []struct {
		name             string
		runnerResult     execshell.ExecutionResult
		runnerFailure    error
		expectFailedErr  bool
		expectWrappedErr bool
	}{
		{
			name:         "SuccessfulCommand",
			runnerResult: execshell.ExecutionResult{StandardOutput: "Python 3.12.0", ExitCode: 0},
		},
		{
			name:            "NonZeroExitCode",
			runnerResult:    execshell.ExecutionResult{StandardError: testStandardErrorContentConstant, ExitCode: 1},
			expectFailedErr: true,
		},
		{
			name:             "RunnerFailure",
			runnerFailure:    errors.New("executable not found"),
			expectWrappedErr: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			recordingRunner := &recordingCommandRunner{executionResult: testCase.runnerResult, executionFailure: testCase.runnerFailure}
			executor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner)
			require.NoError(t, creationError)

			commandDetails := execshell.CommandDetails{Arguments: []string{testCommandArgumentConstant}, WorkingDirectory: testWorkingDirectoryConstant}
			executionResult, executionError := executor.Execute(context.Background(), execshell.ShellCommand{Name: testToolNameConstant, Details: commandDetails})

			require.Len(t, recordingRunner.recordedCommands, 1)
			require.Equal(t, execshell.ToolName(testToolNameConstant), recordingRunner.recordedCommands[0].Name)
			require.Equal(t, testWorkingDirectoryConstant, recordingRunner.recordedCommands[0].Details.WorkingDirectory)

			switch {
			case testCase.expectFailedErr:
				commandFailure := &execshell.CommandFailedError{}
				require.ErrorAs(t, executionError, &commandFailure)
				require.Equal(t, testCase.runnerResult.ExitCode, commandFailure.Result.ExitCode)
				require.Contains(t, commandFailure.Error(), testStandardErrorContentConstant)
			case testCase.expectWrappedErr:
				require.Error(t, executionError)
				require.ErrorContains(t, executionError, "unable to execute")
			default:
				require.NoError(t, executionError)
				require.Equal(t, testCase.runnerResult, executionResult)
			}
		})
	}
}

func TestShellExecutorRejectsEmptyCommandName(t *testing.T) {
	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), &recordingCommandRunner{})
	require.NoError(t, creationError)

	_, executionError := executor.Execute(context.Background(), execshell.ShellCommand{})
	require.ErrorIs(t, executionError, execshell.ErrCommandNameRequired)
}

func TestShellExecutorPythonWrapperUsesConfiguredInterpreter(t *testing.T) {
	recordingRunner := &recordingCommandRunner{}
	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner)
	require.NoError(t, creationError)

	_, executionError := executor.ExecutePython(context.Background(), execshell.CommandDetails{Arguments: []string{testCommandArgumentConstant}})
	require.NoError(t, executionError)
	require.Equal(t, execshell.ToolName("python3"), recordingRunner.recordedCommands[0].Name)

	executor.SetPythonExecutable("python3.12")
	_, executionError = executor.ExecutePython(context.Background(), execshell.CommandDetails{})
	require.NoError(t, executionError)
	require.Equal(t, execshell.ToolName("python3.12"), recordingRunner.recordedCommands[1].Name)
}

func TestCommandFailedErrorCombinedOutput(t *testing.T) {
	testCases := []struct {
		name           string
		result         execshell.ExecutionResult
		expectedOutput string
	}{
		{
			name:           "StandardErrorOnly",
			result:         execshell.ExecutionResult{StandardError: "stderr text", ExitCode: 1},
			expectedOutput: "stderr text",
		},
		{
			name:           "StandardOutputOnly",
			result:         execshell.ExecutionResult{StandardOutput: "stdout text", ExitCode: 1},
			expectedOutput: "stdout text",
		},
		{
			name:           "BothStreams",
			result:         execshell.ExecutionResult{StandardOutput: "stdout text", StandardError: "stderr text", ExitCode: 1},
			expectedOutput: "stderr text\nstdout text",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			failure := &execshell.CommandFailedError{Result: testCase.result}
			require.Equal(t, testCase.expectedOutput, failure.CombinedOutput())
		})
	}
}
