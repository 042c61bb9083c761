package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultPythonToolNameConstant         = "python3"
	loggerRequiredMessageConstant         = "logger must be provided"
	commandRunnerRequiredMessageConstant  = "command runner must be provided"
	commandNameRequiredMessageConstant    = "command name must be provided"
	commandStartedLogMessageConstant      = "external command started"
	commandCompletedLogMessageConstant    = "external command completed"
	commandFailedLogMessageConstant       = "external command failed"
	commandExecutionFailedMessageConstant = "external command execution failed"
	logFieldCommandNameConstant           = "command_name"
	logFieldCommandArgumentsConstant      = "command_arguments"
	logFieldWorkingDirectoryConstant      = "working_directory"
	logFieldExitCodeConstant              = "exit_code"
	commandFailureTemplateConstant        = "%s exited with code %d"
	commandFailureStderrTemplateConstant  = "%s exited with code %d: %s"
	commandArgumentsJoinSeparatorConstant = " "
	executionFailureWrapTemplateConstant  = "unable to execute %s: %w"
)

// ToolName identifies an external executable invoked by the CLI.
type ToolName string

// CommandDetails describes a single tool invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand combines a ToolName with invocation details.
type ShellCommand struct {
	Name    ToolName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner represents the ability to run shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that finished with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error renders the failed command with its exit code and trimmed standard error.
func (failure *CommandFailedError) Error() string {
	commandLabel := failure.commandLabel()
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailureTemplateConstant, commandLabel, failure.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailureStderrTemplateConstant, commandLabel, failure.Result.ExitCode, trimmedStandardError)
}

// CombinedOutput joins standard error and standard output for failure classification.
func (failure *CommandFailedError) CombinedOutput() string {
	outputSections := make([]string, 0, 2)
	if len(strings.TrimSpace(failure.Result.StandardError)) > 0 {
		outputSections = append(outputSections, failure.Result.StandardError)
	}
	if len(strings.TrimSpace(failure.Result.StandardOutput)) > 0 {
		outputSections = append(outputSections, failure.Result.StandardOutput)
	}
	return strings.Join(outputSections, "\n")
}

func (failure *CommandFailedError) commandLabel() string {
	labelParts := []string{string(failure.Command.Name)}
	if len(failure.Command.Details.Arguments) > 0 {
		labelParts = append(labelParts, strings.Join(failure.Command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return strings.Join(labelParts, commandArgumentsJoinSeparatorConstant)
}

// ErrLoggerRequired indicates the executor was constructed without a logger.
var ErrLoggerRequired = errors.New(loggerRequiredMessageConstant)

// ErrCommandRunnerRequired indicates the executor was constructed without a runner.
var ErrCommandRunnerRequired = errors.New(commandRunnerRequiredMessageConstant)

// ErrCommandNameRequired indicates an execution request without a tool name.
var ErrCommandNameRequired = errors.New(commandNameRequiredMessageConstant)

// ShellExecutor coordinates command execution, structured logging, and lifecycle events.
type ShellExecutor struct {
	logger           *zap.Logger
	commandRunner    CommandRunner
	eventObserver    CommandEventObserver
	pythonExecutable ToolName
}

// NewShellExecutor constructs a ShellExecutor around the provided logger and runner.
// When humanReadableLogging is enabled, structured command logs are suppressed in
// favor of the configured event observer.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner, humanReadableLogging ...bool) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerRequired
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerRequired
	}

	executorLogger := logger
	if len(humanReadableLogging) > 0 && humanReadableLogging[0] {
		executorLogger = zap.NewNop()
	}

	return &ShellExecutor{
		logger:           executorLogger,
		commandRunner:    commandRunner,
		eventObserver:    noopCommandEventObserver{},
		pythonExecutable: defaultPythonToolNameConstant,
	}, nil
}

// SetCommandEventObserver registers an observer receiving command lifecycle events.
func (executor *ShellExecutor) SetCommandEventObserver(observer CommandEventObserver) {
	if executor == nil {
		return
	}
	if observer == nil {
		executor.eventObserver = noopCommandEventObserver{}
		return
	}
	executor.eventObserver = observer
}

// SetPythonExecutable overrides the interpreter used by ExecutePython.
func (executor *ShellExecutor) SetPythonExecutable(executableName string) {
	if executor == nil {
		return
	}
	trimmedExecutableName := strings.TrimSpace(executableName)
	if len(trimmedExecutableName) == 0 {
		return
	}
	executor.pythonExecutable = ToolName(trimmedExecutableName)
}

// ExecutePython runs the configured Python interpreter with the provided details.
func (executor *ShellExecutor) ExecutePython(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: executor.pythonExecutable, Details: details})
}

// ExecuteTool runs an arbitrary executable with the provided details.
func (executor *ShellExecutor) ExecuteTool(executionContext context.Context, toolName ToolName, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: toolName, Details: details})
}

// Execute runs the supplied command, logging lifecycle information and notifying observers.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if len(strings.TrimSpace(string(command.Name))) == 0 {
		return ExecutionResult{}, ErrCommandNameRequired
	}

	executor.logger.Debug(
		commandStartedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)
	executor.eventObserver.CommandStarted(command)

	executionResult, runError := executor.commandRunner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Error(
			commandExecutionFailedMessageConstant,
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Error(runError),
		)
		executor.eventObserver.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, fmt.Errorf(executionFailureWrapTemplateConstant, string(command.Name), runError)
	}

	executor.eventObserver.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(
			commandFailedLogMessageConstant,
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
		)
		return executionResult, &CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(
		commandCompletedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
	)

	return executionResult, nil
}
