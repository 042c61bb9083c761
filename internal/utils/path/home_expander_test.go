package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/pypub/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/operator"

func TestHomeExpanderExpand(t *testing.T) {
	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{
			name:          "BareTilde",
			candidatePath: "~",
			expectedPath:  testHomeDirectoryConstant,
		},
		{
			name:          "TildePrefixedPath",
			candidatePath: "~/.pypirc",
			expectedPath:  filepath.Join(testHomeDirectoryConstant, ".pypirc"),
		},
		{
			name:          "AbsolutePathUnchanged",
			candidatePath: "/etc/pypirc",
			expectedPath:  "/etc/pypirc",
		},
		{
			name:          "RelativePathUnchanged",
			candidatePath: ".pypirc",
			expectedPath:  ".pypirc",
		},
		{
			name:          "EmptyPathUnchanged",
			candidatePath: "",
			expectedPath:  "",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
				return testHomeDirectoryConstant, nil
			})
			require.Equal(t, testCase.expectedPath, expander.Expand(testCase.candidatePath))
		})
	}
}

func TestHomeExpanderKeepsPathWhenHomeUnavailable(t *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("home directory unavailable")
	})
	require.Equal(t, "~/.pypirc", expander.Expand("~/.pypirc"))
}
