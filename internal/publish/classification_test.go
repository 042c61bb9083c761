package publish_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pypub/internal/publish"
)

func TestClassifyUploadFailure(t *testing.T) {
	testCases := []struct {
		name                   string
		capturedOutput         string
		expectedClassification publish.FailureClassification
	}{
		{
			name:                   "VersionConflict",
			capturedOutput:         "HTTPError: 400 Bad Request. File already exists.",
			expectedClassification: publish.FailureVersionConflict,
		},
		{
			name:                   "VersionConflictWinsOverOtherMarkers",
			capturedOutput:         "invalid classifier detected\nFile already exists\nrequired metadata missing",
			expectedClassification: publish.FailureVersionConflict,
		},
		{
			name:                   "InvalidClassifierCaseInsensitive",
			capturedOutput:         "error: Invalid Classifier 'Programming Language :: Rust'",
			expectedClassification: publish.FailureInvalidClassifier,
		},
		{
			name:                   "MissingMetadataCaseInsensitive",
			capturedOutput:         "error: Required Metadata field missing",
			expectedClassification: publish.FailureMissingMetadata,
		},
		{
			name:                   "UnknownFailure",
			capturedOutput:         "ConnectionError: connection reset by peer",
			expectedClassification: publish.FailureUnknown,
		},
		{
			name:                   "EmptyOutput",
			capturedOutput:         "",
			expectedClassification: publish.FailureUnknown,
		},
		{
			name:                   "VersionConflictMatchIsCaseSensitive",
			capturedOutput:         "file already exists",
			expectedClassification: publish.FailureUnknown,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedClassification, publish.ClassifyUploadFailure(testCase.capturedOutput))
		})
	}
}

func TestUploadFailureErrorMessage(t *testing.T) {
	failure := &publish.UploadFailureError{Classification: publish.FailureVersionConflict, CapturedOutput: "File already exists"}
	require.Equal(t, "upload failed (version-conflict)", failure.Error())
}
