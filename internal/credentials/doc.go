// Package credentials manages the local .pypirc credentials file used by the
// publish workflow.
//
// It creates the template with placeholder token entries for PyPI and
// TestPyPI, keeps the file out of version control by maintaining the
// .gitignore entry, and opens the file with the platform file opener so the
// operator can fill in API tokens.
package credentials
