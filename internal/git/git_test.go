package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceFromGitPath(t *testing.T) {
	cases := map[string]string{
		"/rust/timesheet-gen/.git/":            "timesheet-gen",
		"/home/jim/projects/billing_api/.git/": "billing_api",
		"/home/jim/my.project/.git/":           "my.project",
	}

	for gitPath, want := range cases {
		got, err := NamespaceFromGitPath(gitPath)
		require.NoError(t, err, gitPath)
		assert.Equal(t, want, got)
	}
}

func TestNamespaceFromGitPathNoMatch(t *testing.T) {
	_, err := NamespaceFromGitPath("not a git path")
	assert.ErrorIs(t, err, ErrNoNamespace)

	_, err = NamespaceFromGitPath("/.git/")
	assert.ErrorIs(t, err, ErrNoNamespace)
}
