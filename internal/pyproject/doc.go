// Package pyproject reads Python project metadata from pyproject.toml files.
//
// It exposes MetadataReader for resolving the package name and declared
// version consumed by upload guidance and install instructions.
package pyproject
