package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pypub/internal/execshell"
	"github.com/temirov/pypub/internal/ui"
)

func TestCommandEventFormatterMessages(t *testing.T) {
	formatter := ui.CommandEventFormatter{}
	command := execshell.ShellCommand{
		Name: "python3",
		Details: execshell.CommandDetails{
			Arguments:        []string{"-m", "build"},
			WorkingDirectory: "/srv/project",
		},
	}

	testCases := []struct {
		name            string
		buildMessage    func() string
		expectedMessage string
	}{
		{
			name:            "StartedMessage",
			buildMessage:    func() string { return formatter.BuildStartedMessage(command) },
			expectedMessage: "Running python3 -m build (in /srv/project)",
		},
		{
			name:            "SuccessMessage",
			buildMessage:    func() string { return formatter.BuildSuccessMessage(command) },
			expectedMessage: "Completed python3 -m build (in /srv/project)",
		},
		{
			name: "FailureMessageWithStandardError",
			buildMessage: func() string {
				return formatter.BuildFailureMessage(command, execshell.ExecutionResult{ExitCode: 2, StandardError: "invalid metadata"})
			},
			expectedMessage: "python3 -m build (in /srv/project) failed with exit code 2: invalid metadata",
		},
		{
			name: "FailureMessageWithoutStandardError",
			buildMessage: func() string {
				return formatter.BuildFailureMessage(command, execshell.ExecutionResult{ExitCode: 1})
			},
			expectedMessage: "python3 -m build (in /srv/project) failed with exit code 1",
		},
		{
			name: "ExecutionFailureMessage",
			buildMessage: func() string {
				return formatter.BuildExecutionFailureMessage(command, errors.New("executable not found"))
			},
			expectedMessage: "python3 -m build (in /srv/project) failed: executable not found",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedMessage, testCase.buildMessage())
		})
	}
}
