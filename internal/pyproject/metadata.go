package pyproject

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	metadataPathRequiredMessageConstant = "pyproject path must be provided"
	metadataReadErrorTemplateConstant   = "unable to read %s: %w"
	metadataParseErrorTemplateConstant  = "unable to parse %s: %w"
)

// ErrMetadataPathRequired indicates the metadata file path option was empty.
var ErrMetadataPathRequired = errors.New(metadataPathRequiredMessageConstant)

// ProjectMetadata captures the [project] table fields used by the CLI.
type ProjectMetadata struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
}

type pyprojectDocument struct {
	Project ProjectMetadata `toml:"project"`
}

// FileReader reads the contents of a file path.
type FileReader func(path string) ([]byte, error)

// MetadataReader resolves project metadata from pyproject.toml documents.
type MetadataReader struct {
	fileReader FileReader
}

// NewMetadataReader creates a metadata reader with an optional file reader override.
func NewMetadataReader(fileReader FileReader) *MetadataReader {
	resolvedFileReader := fileReader
	if resolvedFileReader == nil {
		resolvedFileReader = os.ReadFile
	}
	return &MetadataReader{fileReader: resolvedFileReader}
}

// ReadMetadata loads and parses the [project] table from the provided path.
func (reader *MetadataReader) ReadMetadata(metadataPath string) (ProjectMetadata, error) {
	trimmedMetadataPath := strings.TrimSpace(metadataPath)
	if len(trimmedMetadataPath) == 0 {
		return ProjectMetadata{}, ErrMetadataPathRequired
	}

	documentContent, readError := reader.fileReader(trimmedMetadataPath)
	if readError != nil {
		return ProjectMetadata{}, fmt.Errorf(metadataReadErrorTemplateConstant, trimmedMetadataPath, readError)
	}

	var document pyprojectDocument
	if unmarshalError := toml.Unmarshal(documentContent, &document); unmarshalError != nil {
		return ProjectMetadata{}, fmt.Errorf(metadataParseErrorTemplateConstant, trimmedMetadataPath, unmarshalError)
	}

	return document.Project, nil
}

// PackageNameOrFallback returns the declared package name or the fallback when unavailable.
func (reader *MetadataReader) PackageNameOrFallback(metadataPath string, fallbackName string) string {
	metadata, metadataError := reader.ReadMetadata(metadataPath)
	if metadataError != nil {
		return fallbackName
	}
	trimmedName := strings.TrimSpace(metadata.Name)
	if len(trimmedName) == 0 {
		return fallbackName
	}
	return trimmedName
}
