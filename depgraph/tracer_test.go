package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/sweep/depgraph"
	"github.com/LegacyCodeHQ/sweep/fsys"
	"github.com/LegacyCodeHQ/sweep/resolve"
)

func TestTraceSingleRelativeEntrypoint(t *testing.T) {
	fs := fsys.NewMemFS()
	fs.WriteString("/folder/module.js", "")

	tracer := depgraph.NewTracer(fs)
	result, err := tracer.Trace([]string{"./module.js"}, "/folder/package.json")
	require.NoError(t, err)

	assert.Equal(t, []resolve.File{{Path: "/folder/module.js", IsFile: true}}, result.Files)
}

func TestTracePackageEntrypoint(t *testing.T) {
	fs := fsys.NewMemFS()
	fs.WriteString("/folder/package.json", `{"dependencies": {"tool": "^1.0.0"}}`)
	fs.WriteString("/folder/node_modules/tool/package.json", `{"main": "dist/index.js"}`)
	fs.WriteString("/folder/node_modules/tool/dist/index.js", "")

	tracer := depgraph.NewTracer(fs)
	result, err := tracer.Trace([]string{"tool"}, "/folder/package.json")
	require.NoError(t, err)

	assert.Equal(t, []resolve.File{
		{Path: "/folder/node_modules/tool/package.json", IsFile: false},
		{Path: "/folder/node_modules/tool/dist/index.js", IsFile: true},
	}, result.Files)
}

func TestTraceFollowsTransitiveImports(t *testing.T) {
	fs := fsys.NewMemFS()
	fs.WriteString("/proj/a.js", `import b from './b';`)
	fs.WriteString("/proj/b.js", `import c from './c';`)
	fs.WriteString("/proj/c.js", "")

	tracer := depgraph.NewTracer(fs)
	result, err := tracer.Trace([]string{"./a.js"}, "/proj/package.json")
	require.NoError(t, err)

	paths := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"/proj/a.js", "/proj/b.js", "/proj/c.js"}, paths)

	assert.Equal(t, depgraph.DependencyGraph{
		"/proj/a.js": {"/proj/b.js"},
		"/proj/b.js": {"/proj/c.js"},
	}, result.Graph)
}

func TestTraceDiamondScansSharedFileOnce(t *testing.T) {
	fs := fsys.NewMemFS()
	fs.WriteString("/proj/a.js", `
import b from './b';
import c from './c';
`)
	fs.WriteString("/proj/b.js", `import d from './d';`)
	fs.WriteString("/proj/c.js", `import d from './d';`)
	fs.WriteString("/proj/d.js", "")

	tracer := depgraph.NewTracer(fs)
	result, err := tracer.Trace([]string{"./a.js"}, "/proj/package.json")
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, f := range result.Files {
		seen[f.Path]++
	}
	assert.Equal(t, 1, seen["/proj/d.js"])
	assert.Len(t, result.Files, 4)
}

func TestTraceCyclicImportsTerminate(t *testing.T) {
	fs := fsys.NewMemFS()
	fs.WriteString("/proj/a.js", `import b from './b';`)
	fs.WriteString("/proj/b.js", `import a from './a';`)

	tracer := depgraph.NewTracer(fs)
	result, err := tracer.Trace([]string{"./a.js"}, "/proj/package.json")
	require.NoError(t, err)

	assert.Len(t, result.Files, 2)
}

func TestTraceRecordsSymlinkCanonicalPathOnce(t *testing.T) {
	fs := fsys.NewMemFS()
	fs.WriteString("/proj/node_modules/tool@123/index.js", "")
	fs.Symlink("tool@123", "/proj/node_modules/tool")
	fs.WriteString("/proj/a.js", `
import tool from 'tool';
import direct from './node_modules/tool@123/index.js';
`)

	tracer := depgraph.NewTracer(fs)
	result, err := tracer.Trace([]string{"./a.js"}, "/proj/package.json")
	require.NoError(t, err)

	count := 0
	for _, f := range result.Files {
		if f.Path == "/proj/node_modules/tool@123/index.js" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestTraceMergesDiagnostics(t *testing.T) {
	fs := fsys.NewMemFS()
	fs.WriteString("/proj/a.js", `
import b from './b';
const lazy = import('./missing');
`)
	fs.WriteString("/proj/b.js", `const m = require(dynamicName);`)

	tracer := depgraph.NewTracer(fs)
	result, err := tracer.Trace([]string{"./a.js"}, "/proj/package.json")
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 2)
	assert.Equal(t, "/proj/a.js", result.Diagnostics[0].File)
	assert.Equal(t, "/proj/b.js", result.Diagnostics[1].File)
}

func TestTraceHardFailureAborts(t *testing.T) {
	fs := fsys.NewMemFS()
	fs.WriteString("/proj/a.js", `import b from './missing';`)

	tracer := depgraph.NewTracer(fs)
	_, err := tracer.Trace([]string{"./a.js"}, "/proj/package.json")
	require.EqualError(t, err, "Cannot find package './missing' from '/proj/a.js'")
}

func TestTraceUnparseableExtensionsAreRecordedNotScanned(t *testing.T) {
	fs := fsys.NewMemFS()
	fs.WriteString("/proj/a.js", `import data from './data.json';`)
	fs.WriteString("/proj/data.json", `{"not": "javascript"}`)

	tracer := depgraph.NewTracer(fs)
	result, err := tracer.Trace([]string{"./a.js"}, "/proj/package.json")
	require.NoError(t, err)

	assert.Equal(t, []resolve.File{
		{Path: "/proj/a.js", IsFile: true},
		{Path: "/proj/data.json", IsFile: true},
	}, result.Files)
}

func TestTraceReachableIncludesMarkers(t *testing.T) {
	fs := fsys.NewMemFS()
	fs.WriteString("/proj/package.json", `{"dependencies": {"tool": "^1.0.0"}}`)
	fs.WriteString("/proj/node_modules/tool/package.json", `{"main": "index.js"}`)
	fs.WriteString("/proj/node_modules/tool/index.js", "")

	tracer := depgraph.NewTracer(fs)
	result, err := tracer.Trace([]string{"tool"}, "/proj/package.json")
	require.NoError(t, err)

	reachable := result.Reachable()
	assert.True(t, reachable["/proj/node_modules/tool/package.json"])
	assert.True(t, reachable["/proj/node_modules/tool/index.js"])
}
