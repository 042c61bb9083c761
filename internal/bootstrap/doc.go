// Package bootstrap verifies that the Python packaging tools required by the
// publish workflow are installed and installs them via pip when missing.
package bootstrap
