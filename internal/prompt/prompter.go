package prompt

import (
	"bufio"
	"io"
	"strings"
)

const (
	lineDelimiterByteConstant        = '\n'
	affirmativeShortResponseConstant = "y"
	affirmativeLongResponseConstant  = "yes"
)

// ConfirmationPrompter answers y/n questions posed to the operator.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// MenuPrompter collects a free-form selection for a numbered menu.
type MenuPrompter interface {
	Select(prompt string) (string, error)
}

// PausePrompter blocks until the operator presses Enter.
type PausePrompter interface {
	Pause(prompt string) error
}

// IOConfirmationPrompter reads confirmation responses from an io.Reader.
type IOConfirmationPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOConfirmationPrompter constructs a prompter from the provided reader and writer.
func NewIOConfirmationPrompter(input io.Reader, output io.Writer) *IOConfirmationPrompter {
	return &IOConfirmationPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and interprets affirmative responses (y/yes).
func (prompter *IOConfirmationPrompter) Confirm(prompt string) (bool, error) {
	response, promptError := readPromptedLine(prompter.reader, prompter.writer, prompt)
	if promptError != nil {
		return false, promptError
	}

	normalizedResponse := strings.TrimSpace(strings.ToLower(response))
	switch normalizedResponse {
	case affirmativeShortResponseConstant, affirmativeLongResponseConstant:
		return true, nil
	default:
		return false, nil
	}
}

// IOMenuPrompter reads menu selections from an io.Reader.
type IOMenuPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOMenuPrompter constructs a menu prompter from the provided reader and writer.
func NewIOMenuPrompter(input io.Reader, output io.Writer) *IOMenuPrompter {
	return &IOMenuPrompter{reader: bufio.NewReader(input), writer: output}
}

// Select writes the prompt and returns the trimmed selection text.
func (prompter *IOMenuPrompter) Select(prompt string) (string, error) {
	response, promptError := readPromptedLine(prompter.reader, prompter.writer, prompt)
	if promptError != nil {
		return "", promptError
	}
	return strings.TrimSpace(response), nil
}

// IOPausePrompter waits for the operator to acknowledge a prompt with Enter.
type IOPausePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOPausePrompter constructs a pause prompter from the provided reader and writer.
func NewIOPausePrompter(input io.Reader, output io.Writer) *IOPausePrompter {
	return &IOPausePrompter{reader: bufio.NewReader(input), writer: output}
}

// Pause writes the prompt and blocks until a line is read.
func (prompter *IOPausePrompter) Pause(prompt string) error {
	_, promptError := readPromptedLine(prompter.reader, prompter.writer, prompt)
	return promptError
}

func readPromptedLine(reader *bufio.Reader, writer io.Writer, prompt string) (string, error) {
	if writer != nil {
		if _, writeError := io.WriteString(writer, prompt); writeError != nil {
			return "", writeError
		}
	}

	response, readError := reader.ReadString(lineDelimiterByteConstant)
	if readError != nil && readError != io.EOF {
		return "", readError
	}

	return response, nil
}
