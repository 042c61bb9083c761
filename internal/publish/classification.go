package publish

import (
	"fmt"
	"strings"
)

const (
	versionConflictMatchTextConstant   = "File already exists"
	invalidClassifierMatchTextConstant = "invalid classifier"
	missingMetadataMatchTextConstant   = "required metadata"
	uploadFailureErrorTemplateConstant = "upload failed (%s)"
)

// FailureClassification categorizes upload failures for remediation guidance.
type FailureClassification string

// Upload failure classification enumerations.
const (
	FailureVersionConflict   FailureClassification = "version-conflict"
	FailureInvalidClassifier FailureClassification = "invalid-metadata-field"
	FailureMissingMetadata   FailureClassification = "missing-required-metadata"
	FailureUnknown           FailureClassification = "unknown"
)

// ClassifyUploadFailure inspects captured tool output and derives a classification.
// Matches are evaluated in order; the version conflict marker always wins.
func ClassifyUploadFailure(capturedOutput string) FailureClassification {
	switch {
	case strings.Contains(capturedOutput, versionConflictMatchTextConstant):
		return FailureVersionConflict
	case strings.Contains(strings.ToLower(capturedOutput), invalidClassifierMatchTextConstant):
		return FailureInvalidClassifier
	case strings.Contains(strings.ToLower(capturedOutput), missingMetadataMatchTextConstant):
		return FailureMissingMetadata
	default:
		return FailureUnknown
	}
}

// UploadFailureError reports a classified upload failure with the captured output.
type UploadFailureError struct {
	Classification FailureClassification
	CapturedOutput string
}

// Error renders the classification of the failed upload.
func (failure *UploadFailureError) Error() string {
	return fmt.Sprintf(uploadFailureErrorTemplateConstant, failure.Classification)
}
