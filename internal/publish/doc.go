// Package publish implements the interactive workflow that builds a Python
// package and uploads it to PyPI or TestPyPI.
//
// It exposes CommandBuilder for wiring the publish Cobra command,
// AuthCheckCommandBuilder for the standalone authentication probe, Service for
// driving the clean/build/upload steps programmatically, and the upload
// failure classification consumed by remediation guidance.
package publish
