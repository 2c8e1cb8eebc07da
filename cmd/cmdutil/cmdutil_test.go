package cmdutil_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/sweep/cmd/cmdutil"
	"github.com/LegacyCodeHQ/sweep/depgraph"
)

func TestRebaseEntrypoints(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	rebased := cmdutil.RebaseEntrypoints([]string{"./src/index.js", "lodash"}, cwd)

	assert.Equal(t, []string{"./src/index.js", "lodash"}, rebased)
}

func TestRebaseEntrypointsAgainstOtherDirectory(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	rebased := cmdutil.RebaseEntrypoints([]string{"./index.js"}, filepath.Dir(cwd))

	assert.Equal(t, []string{"./" + filepath.Base(cwd) + "/index.js"}, rebased)
}

func TestPrintDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	cmdutil.PrintDiagnostics(&buf, []depgraph.Diagnostic{
		{File: "/proj/a.js", Message: "something non-fatal"},
	})

	assert.Contains(t, buf.String(), "/proj/a.js")
	assert.Contains(t, buf.String(), "something non-fatal")
}
