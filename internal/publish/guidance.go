package publish

import (
	"fmt"
	"strings"

	"github.com/temirov/pypub/internal/pyproject"
	"github.com/temirov/pypub/internal/ui"
)

const (
	fallbackPackageNameConstant              = "your-package"
	versionConflictHeaderConstant            = "Version Conflict Error"
	versionConflictMessageConstant           = "The package version already exists on the index."
	versionConflictResolutionIntroConstant   = "To resolve this issue:"
	versionConflictBumpStepConstant          = "\n1. Update the version number in pyproject.toml"
	versionConflictCurrentTemplateConstant   = "   Current version: %s → increment to a new version"
	versionConflictRebuildStepConstant       = "\n2. Rebuild the package:"
	versionConflictRebuildCommandConstant    = "   python -m build"
	versionConflictRetryStepConstant         = "\n3. Run the publish command again"
	semverIntroMessageConstant               = "Version numbering follows Semantic Versioning (SemVer):"
	semverFormatLineConstant                 = "MAJOR.MINOR.PATCH (e.g. 1.2.3)"
	semverMajorLineConstant                  = "- MAJOR: incompatible API changes"
	semverMinorLineConstant                  = "- MINOR: add functionality (backwards compatible)"
	semverPatchLineConstant                  = "- PATCH: bug fixes (backwards compatible)"
	invalidClassifierHeaderConstant          = "Invalid Classifier Error"
	invalidClassifierMessageConstant         = "The package declares invalid classifiers in pyproject.toml."
	invalidClassifierReferenceIntroConstant  = "Please check your classifiers against the list at:"
	invalidClassifierReferenceURLConstant    = "https://pypi.org/classifiers/"
	missingMetadataHeaderConstant            = "Missing Metadata Error"
	missingMetadataMessageConstant           = "The package is missing required metadata."
	missingMetadataFieldsIntroConstant       = "Check your pyproject.toml for required fields:"
	missingMetadataFieldListConstant         = "- name\n- version\n- description\n- author\n- author_email"
	unknownFailureHeaderConstant             = "Upload Error"
	unknownFailureMessageConstant            = "Failed to upload package."
	unknownFailureDetailsIntroConstant       = "Error details:"
	authHeaderConstant                       = "Authentication Required"
	authFailureMessageTemplateConstant       = "You are not authenticated with %s."
	authInstructionsIntroConstant            = "To authenticate, you need to:"
	authTokenStepConstant                    = "\n1. Create an API token:"
	authTokenNavigateTemplateConstant        = "   - Go to %s/manage/account/"
	authTokenCreateLineConstant              = "   - Navigate to 'API tokens' and create a new token"
	authTokenScopeLineConstant               = "   - Select 'Entire account (all projects)' scope"
	authLocalFileStepTemplateConstant        = "\n2. Add your credentials to %s:"
	authSectionHeaderTemplateConstant        = "     [%s]"
	authUsernameLineConstant                 = "     username = __token__"
	authPasswordLineConstant                 = "     password = pypi-YOUR-TOKEN-HERE"
	authEnvironmentStepConstant              = "\n2. Set up your credentials:"
	authEnvironmentFileLineConstant          = "   - Create a ~/.pypirc file with the index section, OR set environment variables:"
	authEnvironmentUsernameLineConstant      = "     export TWINE_USERNAME=__token__"
	authEnvironmentPasswordLineConstant      = "     export TWINE_PASSWORD=pypi-YOUR-TOKEN-HERE"
	authTokenReplaceLineConstant             = "\nReplace 'pypi-YOUR-TOKEN-HERE' with your actual token."
	authDocumentationLineConstant            = "For more information, visit: https://twine.readthedocs.io/en/latest/#configuration"
	installInstructionsTemplateConstant      = "To install from %s, run:"
	installProductionCommandTemplateConstant = "pip install %s"
	installTestCommandTemplateConstant       = "pip install --index-url %s %s"
)

// Guide prints remediation guidance for workflow failures.
type Guide struct {
	printer        ui.Printer
	metadataReader *pyproject.MetadataReader
}

// NewGuide constructs a guidance printer backed by the provided collaborators.
func NewGuide(printer ui.Printer, metadataReader *pyproject.MetadataReader) *Guide {
	resolvedPrinter := printer
	if resolvedPrinter == nil {
		resolvedPrinter = ui.NewConsolePrinter(nil, true)
	}
	resolvedMetadataReader := metadataReader
	if resolvedMetadataReader == nil {
		resolvedMetadataReader = pyproject.NewMetadataReader(nil)
	}
	return &Guide{printer: resolvedPrinter, metadataReader: resolvedMetadataReader}
}

// ShowUploadFailure routes a classified upload failure to its remediation text.
func (guide *Guide) ShowUploadFailure(failure *UploadFailureError, pyprojectPath string) {
	switch failure.Classification {
	case FailureVersionConflict:
		guide.ShowVersionConflictHelp(pyprojectPath)
	case FailureInvalidClassifier:
		guide.ShowInvalidClassifierHelp()
	case FailureMissingMetadata:
		guide.ShowMissingMetadataHelp()
	default:
		guide.ShowUnknownFailure(failure.CapturedOutput)
	}
}

// ShowVersionConflictHelp explains how to resolve an already-published version.
func (guide *Guide) ShowVersionConflictHelp(pyprojectPath string) {
	guide.printer.Header(versionConflictHeaderConstant)
	guide.printer.Error(versionConflictMessageConstant)
	guide.printer.Info(versionConflictResolutionIntroConstant)
	guide.printer.Line(versionConflictBumpStepConstant)

	if declaredVersion := guide.declaredVersion(pyprojectPath); len(declaredVersion) > 0 {
		guide.printer.Line(fmt.Sprintf(versionConflictCurrentTemplateConstant, declaredVersion))
	}

	guide.printer.Line(versionConflictRebuildStepConstant)
	guide.printer.Line(versionConflictRebuildCommandConstant)
	guide.printer.Line(versionConflictRetryStepConstant)

	guide.printer.Info(semverIntroMessageConstant)
	guide.printer.Line(semverFormatLineConstant)
	guide.printer.Line(semverMajorLineConstant)
	guide.printer.Line(semverMinorLineConstant)
	guide.printer.Line(semverPatchLineConstant)
}

// ShowInvalidClassifierHelp points at the canonical classifier list.
func (guide *Guide) ShowInvalidClassifierHelp() {
	guide.printer.Header(invalidClassifierHeaderConstant)
	guide.printer.Error(invalidClassifierMessageConstant)
	guide.printer.Info(invalidClassifierReferenceIntroConstant)
	guide.printer.Line(invalidClassifierReferenceURLConstant)
}

// ShowMissingMetadataHelp lists the required metadata fields.
func (guide *Guide) ShowMissingMetadataHelp() {
	guide.printer.Header(missingMetadataHeaderConstant)
	guide.printer.Error(missingMetadataMessageConstant)
	guide.printer.Info(missingMetadataFieldsIntroConstant)
	guide.printer.Line(missingMetadataFieldListConstant)
}

// ShowUnknownFailure prints the raw captured output of an unclassified failure.
func (guide *Guide) ShowUnknownFailure(capturedOutput string) {
	guide.printer.Header(unknownFailureHeaderConstant)
	guide.printer.Error(unknownFailureMessageConstant)
	guide.printer.Info(unknownFailureDetailsIntroConstant)
	guide.printer.Line(capturedOutput)
}

// ShowAuthInstructions explains how to configure index credentials.
func (guide *Guide) ShowAuthInstructions(repository Repository, credentialsFile string) {
	guide.printer.Header(authHeaderConstant)
	guide.printer.Error(fmt.Sprintf(authFailureMessageTemplateConstant, repository.DisplayName()))
	guide.printer.Info(authInstructionsIntroConstant)
	guide.printer.Line(authTokenStepConstant)
	guide.printer.Line(fmt.Sprintf(authTokenNavigateTemplateConstant, repository.WebsiteURL()))
	guide.printer.Line(authTokenCreateLineConstant)
	guide.printer.Line(authTokenScopeLineConstant)

	trimmedCredentialsFile := strings.TrimSpace(credentialsFile)
	if len(trimmedCredentialsFile) > 0 {
		guide.printer.Line(fmt.Sprintf(authLocalFileStepTemplateConstant, trimmedCredentialsFile))
		guide.printer.Line(fmt.Sprintf(authSectionHeaderTemplateConstant, string(repository)))
		guide.printer.Line(authUsernameLineConstant)
		guide.printer.Line(authPasswordLineConstant)
	} else {
		guide.printer.Line(authEnvironmentStepConstant)
		guide.printer.Line(authEnvironmentFileLineConstant)
		guide.printer.Line(authEnvironmentUsernameLineConstant)
		guide.printer.Line(authEnvironmentPasswordLineConstant)
	}

	guide.printer.Line(authTokenReplaceLineConstant)
	guide.printer.Info(authDocumentationLineConstant)
}

// ShowInstallInstructions prints the pip command matching the upload target.
func (guide *Guide) ShowInstallInstructions(repository Repository, pyprojectPath string) {
	packageName := guide.metadataReader.PackageNameOrFallback(pyprojectPath, fallbackPackageNameConstant)
	guide.printer.Info(fmt.Sprintf(installInstructionsTemplateConstant, repository.DisplayName()))
	if repository == RepositoryTest {
		guide.printer.Line(fmt.Sprintf(installTestCommandTemplateConstant, testRepositorySimpleIndexURLConstant, packageName))
		return
	}
	guide.printer.Line(fmt.Sprintf(installProductionCommandTemplateConstant, packageName))
}

func (guide *Guide) declaredVersion(pyprojectPath string) string {
	metadata, metadataError := guide.metadataReader.ReadMetadata(pyprojectPath)
	if metadataError != nil {
		return ""
	}
	return strings.TrimSpace(metadata.Version)
}
