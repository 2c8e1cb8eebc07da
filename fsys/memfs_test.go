package fsys_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/sweep/fsys"
)

func TestMemFSStatAndRead(t *testing.T) {
	m := fsys.NewMemFS()
	m.WriteString("/proj/a.js", "content")

	info, err := m.Stat("/proj/a.js")
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, int64(7), info.Size())

	content, err := m.ReadFile("/proj/a.js")
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))

	dirInfo, err := m.Stat("/proj")
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir())
}

func TestMemFSLstatReportsSymlink(t *testing.T) {
	m := fsys.NewMemFS()
	m.WriteString("/store/tool/index.js", "")
	m.Symlink("/store/tool", "/proj/node_modules/tool")

	info, err := m.Lstat("/proj/node_modules/tool")
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink)

	followed, err := m.Stat("/proj/node_modules/tool")
	require.NoError(t, err)
	assert.True(t, followed.IsDir())
}

func TestMemFSRealPathResolvesLinkChain(t *testing.T) {
	m := fsys.NewMemFS()
	m.WriteString("/store/tool/index.js", "")
	m.Symlink("/store/tool", "/proj/node_modules/tool")

	real, err := m.RealPath("/proj/node_modules/tool")
	require.NoError(t, err)
	assert.Equal(t, "/store/tool", real)

	// Paths under a symlinked directory canonicalize too.
	real, err = m.RealPath("/proj/node_modules/tool/index.js")
	require.NoError(t, err)
	assert.Equal(t, "/store/tool/index.js", real)
}

func TestMemFSRelativeSymlinkTarget(t *testing.T) {
	m := fsys.NewMemFS()
	m.WriteString("/proj/node_modules/tool@123/index.js", "")
	m.Symlink("tool@123", "/proj/node_modules/tool")

	real, err := m.RealPath("/proj/node_modules/tool")
	require.NoError(t, err)
	assert.Equal(t, "/proj/node_modules/tool@123", real)
}

func TestMemFSDanglingSymlink(t *testing.T) {
	m := fsys.NewMemFS()
	m.Symlink("/nowhere", "/proj/link")

	_, err := m.RealPath("/proj/link")
	require.Error(t, err)

	_, err = m.Lstat("/proj/link")
	require.NoError(t, err)
}

func TestMemFSMissingPath(t *testing.T) {
	m := fsys.NewMemFS()

	_, err := m.Stat("/missing")
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = m.ReadFile("/missing")
	require.ErrorIs(t, err, fs.ErrNotExist)
}
