package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/sweep/fsys"
	"github.com/LegacyCodeHQ/sweep/resolve"
)

func exportsFixture(t *testing.T, packageJSON string) *resolve.Resolver {
	t.Helper()

	fs := fsys.NewMemFS()
	fs.WriteString("/folder/node_modules/tool/package.json", packageJSON)
	fs.WriteString("/folder/node_modules/tool/a.js", "")
	fs.WriteString("/folder/node_modules/tool/b.js", "")
	fs.WriteString("/folder/node_modules/tool/sub.js", "")
	fs.WriteString("/folder/node_modules/tool/main.js", "")
	return resolve.New(fs)
}

func TestExportsStringTarget(t *testing.T) {
	r := exportsFixture(t, `{"exports": "./main.js"}`)

	files, err := r.Resolve("tool", "/folder/file.js")
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, resolve.File{Path: "/folder/node_modules/tool/main.js", IsFile: true}, files[1])
}

func TestExportsImportBeforeDefault(t *testing.T) {
	r := exportsFixture(t, `{"exports": {".": {"import": "./a.js", "default": "./b.js"}}}`)

	files, err := r.Resolve("tool", "/folder/file.js")
	require.NoError(t, err)

	assert.Equal(t, "/folder/node_modules/tool/a.js", files[len(files)-1].Path)
}

func TestExportsDefaultBeforeImport(t *testing.T) {
	// Declared order decides, not a fixed condition priority.
	r := exportsFixture(t, `{"exports": {".": {"default": "./a.js", "import": "./b.js"}}}`)

	files, err := r.Resolve("tool", "/folder/file.js")
	require.NoError(t, err)

	assert.Equal(t, "/folder/node_modules/tool/a.js", files[len(files)-1].Path)
}

func TestExportsUnrecognizedConditionsSkipped(t *testing.T) {
	r := exportsFixture(t, `{"exports": {".": {"require": "./b.js", "types": "./b.js", "default": "./a.js"}}}`)

	files, err := r.Resolve("tool", "/folder/file.js")
	require.NoError(t, err)

	assert.Equal(t, "/folder/node_modules/tool/a.js", files[len(files)-1].Path)
}

func TestExportsSubpathSelection(t *testing.T) {
	r := exportsFixture(t, `{"exports": {".": "./main.js", "./sub": "./sub.js"}}`)

	files, err := r.Resolve("tool/sub", "/folder/file.js")
	require.NoError(t, err)

	assert.Equal(t, "/folder/node_modules/tool/sub.js", files[len(files)-1].Path)
}

func TestExportsNestedCondition(t *testing.T) {
	r := exportsFixture(t, `{"exports": {".": {"import": {"default": "./a.js"}}}}`)

	files, err := r.Resolve("tool", "/folder/file.js")
	require.NoError(t, err)

	assert.Equal(t, "/folder/node_modules/tool/a.js", files[len(files)-1].Path)
}

func TestExportsIsAuthoritative(t *testing.T) {
	// A present exports field never falls back to main, even when main would
	// have resolved.
	r := exportsFixture(t, `{"main": "main.js", "exports": {".": {"require": "./a.js"}}}`)

	_, err := r.Resolve("tool", "/folder/file.js")
	require.Error(t, err)
}

func TestExportsMissingTargetFileFails(t *testing.T) {
	r := exportsFixture(t, `{"exports": {".": {"import": "./missing.js"}}}`)

	_, err := r.Resolve("tool", "/folder/file.js")
	require.Error(t, err)
}
