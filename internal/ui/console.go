package ui

import (
	"fmt"
	"io"
	"strings"
)

const (
	ansiColorTemplateConstant   = "\033[%sm%s\033[0m"
	ansiGreenColorCodeConstant  = "92"
	ansiRedColorCodeConstant    = "91"
	ansiBlueColorCodeConstant   = "94"
	ansiYellowColorCodeConstant = "93"
	ansiCyanColorCodeConstant   = "96"
	successGlyphPrefixConstant  = "✅ "
	errorGlyphPrefixConstant    = "❌ "
	infoGlyphPrefixConstant     = "ℹ️ "
	warningGlyphPrefixConstant  = "⚠️ "
	headerRuleCharacterConstant = "="
	headerRuleWidthConstant     = 60
	headerIndentConstant        = "  "
	lineTerminatorConstant      = "\n"
	blankLinePrefixConstant     = "\n"
)

// Printer renders styled workflow feedback messages.
type Printer interface {
	Success(message string)
	Error(message string)
	Info(message string)
	Warning(message string)
	Header(message string)
	Line(message string)
}

// ConsolePrinter renders workflow feedback messages to a writer.
//
// Colored variants mirror the success, error, info, warning, and header styles
// used throughout the publish workflow; PlainMode disables ANSI escapes for
// non-terminal destinations.
type ConsolePrinter struct {
	writer    io.Writer
	plainMode bool
}

// NewConsolePrinter constructs a printer targeting the provided writer.
func NewConsolePrinter(writer io.Writer, plainMode bool) *ConsolePrinter {
	return &ConsolePrinter{writer: writer, plainMode: plainMode}
}

// Success prints an affirmative message.
func (printer *ConsolePrinter) Success(message string) {
	printer.printColored(successGlyphPrefixConstant+message, ansiGreenColorCodeConstant)
}

// Error prints a failure message.
func (printer *ConsolePrinter) Error(message string) {
	printer.printColored(errorGlyphPrefixConstant+message, ansiRedColorCodeConstant)
}

// Info prints an informational message.
func (printer *ConsolePrinter) Info(message string) {
	printer.printColored(infoGlyphPrefixConstant+message, ansiBlueColorCodeConstant)
}

// Warning prints a cautionary message.
func (printer *ConsolePrinter) Warning(message string) {
	printer.printColored(warningGlyphPrefixConstant+message, ansiYellowColorCodeConstant)
}

// Header prints a ruled section header.
func (printer *ConsolePrinter) Header(message string) {
	headerRule := strings.Repeat(headerRuleCharacterConstant, headerRuleWidthConstant)
	printer.printLine(blankLinePrefixConstant + headerRule)
	printer.printColored(headerIndentConstant+message, ansiCyanColorCodeConstant)
	printer.printLine(headerRule)
}

// Line prints an uncolored message line.
func (printer *ConsolePrinter) Line(message string) {
	printer.printLine(message)
}

func (printer *ConsolePrinter) printColored(message string, colorCode string) {
	if printer.plainMode {
		printer.printLine(message)
		return
	}
	printer.printLine(fmt.Sprintf(ansiColorTemplateConstant, colorCode, message))
}

func (printer *ConsolePrinter) printLine(message string) {
	if printer == nil || printer.writer == nil {
		return
	}
	_, _ = io.WriteString(printer.writer, message+lineTerminatorConstant)
}
