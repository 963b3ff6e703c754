package memfs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfscore/vfscore/upath"
	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vlock"
	"github.com/vfscore/vfscore/vtree"
)

func newBackend(t *testing.T) *Backend {
	t.Helper()
	return New(Options{}, nil)
}

func p(t *testing.T, s string) upath.UPath {
	t.Helper()
	path, err := upath.New(s)
	require.NoError(t, err)
	return path
}

func writeFile(t *testing.T, b *Backend, path upath.UPath, content string) {
	t.Helper()
	h, err := b.OpenFile(path, Create, AccessWrite, vlock.ShareNone)
	require.NoError(t, err)
	_, err = h.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, h.Close())
}

func readFile(t *testing.T, b *Backend, path upath.UPath) string {
	t.Helper()
	h, err := b.OpenFile(path, Open, AccessRead, vlock.ShareRead)
	require.NoError(t, err)
	buf := make([]byte, 4096)
	n, _ := h.Read(buf)
	require.NoError(t, h.Close())
	return string(buf[:n])
}

// create_directory builds every missing intermediate directory.
func TestCreateDirectoryBuildsIntermediates(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.CreateDirectory(p(t, "/a/b/c")))

	assert.True(t, b.DirectoryExists(p(t, "/a")))
	assert.True(t, b.DirectoryExists(p(t, "/a/b")))
	assert.True(t, b.DirectoryExists(p(t, "/a/b/c")))
	assert.False(t, b.FileExists(p(t, "/a/b/c")))
}

func TestCreateDirectoryNoOpIfExists(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.CreateDirectory(p(t, "/a")))
	require.NoError(t, b.CreateDirectory(p(t, "/a")))
}

func TestCreateDirectoryFailsOnFileSegment(t *testing.T) {
	b := newBackend(t)
	writeFile(t, b, p(t, "/a"), "x")
	err := b.CreateDirectory(p(t, "/a"))
	require.Error(t, err)
	assert.True(t, vfserr.Is(err, vfserr.IO))
}

// An intermediate segment that names an existing file fails IO the same
// way a terminal segment does, since both are "a file stands where a
// directory belongs" along the path being created.
func TestCreateDirectoryFailsOnIntermediateFileSegment(t *testing.T) {
	b := newBackend(t)
	writeFile(t, b, p(t, "/a"), "x")
	err := b.CreateDirectory(p(t, "/a/b/c"))
	require.Error(t, err)
	assert.True(t, vfserr.Is(err, vfserr.IO))
}

func TestCreateDirectoryRootIsUnauthorised(t *testing.T) {
	b := newBackend(t)
	err := b.CreateDirectory(p(t, "/"))
	require.Error(t, err)
}

// An exclusive writer blocks a concurrent shared reader until close.
func TestOpenFileExclusiveWriterBlocksReader(t *testing.T) {
	b := newBackend(t)
	writeFile(t, b, p(t, "/f"), "")

	wh, err := b.OpenFile(p(t, "/f"), Open, AccessWrite, vlock.ShareNone)
	require.NoError(t, err)
	_, err = wh.Write([]byte("hello world"))
	require.NoError(t, err)

	done := make(chan string)
	go func() {
		rh, err := b.OpenFile(p(t, "/f"), Open, AccessRead, vlock.ShareRead)
		require.NoError(t, err)
		buf := make([]byte, 64)
		n, _ := rh.Read(buf)
		require.NoError(t, rh.Close())
		done <- string(buf[:n])
	}()

	select {
	case <-done:
		t.Fatal("reader should have blocked while the writer holds the file exclusively")
	case <-time.After(30 * time.Millisecond):
	}

	require.NoError(t, wh.Close())
	assert.Equal(t, "hello world", <-done)
}

// Recursive delete rolls back entirely if any descendant is read-only.
func TestDeleteDirectoryRecursiveRollsBackOnReadOnly(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.CreateDirectory(p(t, "/x/y1")))
	require.NoError(t, b.CreateDirectory(p(t, "/x/y2")))
	writeFile(t, b, p(t, "/x/y1/z"), "z")
	writeFile(t, b, p(t, "/x/f1"), "f1")
	require.NoError(t, b.SetAttributes(p(t, "/x/y2"), vtree.ReadOnly))

	err := b.DeleteDirectory(p(t, "/x"), true)
	require.Error(t, err)

	assert.True(t, b.DirectoryExists(p(t, "/x")))
	assert.True(t, b.DirectoryExists(p(t, "/x/y1")))
	assert.True(t, b.DirectoryExists(p(t, "/x/y2")))
	assert.True(t, b.FileExists(p(t, "/x/y1/z")))
	assert.True(t, b.FileExists(p(t, "/x/f1")))
}

func TestDeleteDirectoryNonRecursiveNonEmpty(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.CreateDirectory(p(t, "/x")))
	writeFile(t, b, p(t, "/x/f"), "f")
	err := b.DeleteDirectory(p(t, "/x"), false)
	require.Error(t, err)
}

func TestDeleteDirectoryRootUnauthorised(t *testing.T) {
	b := newBackend(t)
	err := b.DeleteDirectory(p(t, "/"), true)
	require.Error(t, err)
}

// Cross-directory rename.
func TestMoveFileCrossDirectory(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.CreateDirectory(p(t, "/a")))
	require.NoError(t, b.CreateDirectory(p(t, "/b")))
	writeFile(t, b, p(t, "/a/f"), "hello")

	require.NoError(t, b.MoveFile(p(t, "/a/f"), p(t, "/b/g")))

	assert.False(t, b.FileExists(p(t, "/a/f")))
	assert.True(t, b.FileExists(p(t, "/b/g")))
	n, err := b.GetFileLength(p(t, "/b/g"))
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}

func TestMoveFileFailsIfDestExists(t *testing.T) {
	b := newBackend(t)
	writeFile(t, b, p(t, "/a"), "a")
	writeFile(t, b, p(t, "/b"), "b")
	err := b.MoveFile(p(t, "/a"), p(t, "/b"))
	require.Error(t, err)
}

func TestMoveDirectoryIntoOwnSubtreeFails(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.CreateDirectory(p(t, "/a/b")))
	err := b.MoveDirectory(p(t, "/a"), p(t, "/a/b/c"))
	require.Error(t, err)
}

func TestMoveFileConcurrentWithSharedHolderOnSource(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.CreateDirectory(p(t, "/a")))
	require.NoError(t, b.CreateDirectory(p(t, "/b")))
	writeFile(t, b, p(t, "/a/f"), "x")

	rh, err := b.OpenFile(p(t, "/a/f"), Open, AccessRead, vlock.ShareRead)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	moveDone := make(chan error, 1)
	go func() {
		defer wg.Done()
		moveDone <- b.MoveFile(p(t, "/a/f"), p(t, "/b/g"))
	}()

	select {
	case <-moveDone:
		t.Fatal("move should block while a reader holds /a/f")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, rh.Close())
	wg.Wait()
	require.NoError(t, <-moveDone)
}

// Copy
func TestCopyFileOverwriteSemantics(t *testing.T) {
	b := newBackend(t)
	writeFile(t, b, p(t, "/src"), "hello")

	require.NoError(t, b.CopyFile(p(t, "/src"), p(t, "/dest"), false))
	assert.Equal(t, "hello", readFile(t, b, p(t, "/dest")))
	assert.Equal(t, "hello", readFile(t, b, p(t, "/src")))

	err := b.CopyFile(p(t, "/src"), p(t, "/dest"), false)
	require.Error(t, err)

	writeFile(t, b, p(t, "/src"), "world")
	require.NoError(t, b.CopyFile(p(t, "/src"), p(t, "/dest"), true))
	assert.Equal(t, "world", readFile(t, b, p(t, "/dest")))
}

func TestCopyFileRejectsReadOnlyDest(t *testing.T) {
	b := newBackend(t)
	writeFile(t, b, p(t, "/src"), "x")
	writeFile(t, b, p(t, "/dest"), "y")
	require.NoError(t, b.SetAttributes(p(t, "/dest"), vtree.ReadOnly))

	err := b.CopyFile(p(t, "/src"), p(t, "/dest"), true)
	require.Error(t, err)
}

// Replace with backup.
func TestReplaceFileWithBackup(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.CreateDirectory(p(t, "/d1")))
	require.NoError(t, b.CreateDirectory(p(t, "/d2")))
	require.NoError(t, b.CreateDirectory(p(t, "/d3")))
	writeFile(t, b, p(t, "/d1/src"), "hello")
	writeFile(t, b, p(t, "/d2/dest"), "world")

	require.NoError(t, b.ReplaceFile(p(t, "/d1/src"), p(t, "/d2/dest"), p(t, "/d3/bak"), false))

	assert.False(t, b.FileExists(p(t, "/d1/src")))
	assert.Equal(t, "hello", readFile(t, b, p(t, "/d2/dest")))
	assert.Equal(t, "world", readFile(t, b, p(t, "/d3/bak")))
}

func TestReplaceFileWithoutBackup(t *testing.T) {
	b := newBackend(t)
	writeFile(t, b, p(t, "/src"), "hello")
	writeFile(t, b, p(t, "/dest"), "world")

	require.NoError(t, b.ReplaceFile(p(t, "/src"), p(t, "/dest"), upath.Null, false))
	assert.False(t, b.FileExists(p(t, "/src")))
	assert.Equal(t, "hello", readFile(t, b, p(t, "/dest")))
}

// Open-mode effective table.
func TestOpenFileAppendWithReadIsInvalidArgument(t *testing.T) {
	b := newBackend(t)
	_, err := b.OpenFile(p(t, "/f"), Append, AccessReadWrite, vlock.ShareRead)
	require.Error(t, err)
}

func TestOpenFileCreateNewFailsIfExists(t *testing.T) {
	b := newBackend(t)
	writeFile(t, b, p(t, "/f"), "x")
	_, err := b.OpenFile(p(t, "/f"), CreateNew, AccessWrite, vlock.ShareNone)
	require.Error(t, err)
}

func TestOpenFileOpenMissingIsFileNotFound(t *testing.T) {
	b := newBackend(t)
	_, err := b.OpenFile(p(t, "/nope"), Open, AccessRead, vlock.ShareRead)
	require.Error(t, err)
}

func TestOpenThenDeleteThenOpenFails(t *testing.T) {
	b := newBackend(t)
	writeFile(t, b, p(t, "/f"), "x")
	require.NoError(t, b.DeleteFile(p(t, "/f")))
	_, err := b.OpenFile(p(t, "/f"), Open, AccessRead, vlock.ShareRead)
	require.Error(t, err)
}

// Enumeration tolerates concurrent deletion.
func TestEnumeratePathsLivenessUnderConcurrentDelete(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.CreateDirectory(p(t, "/a")))
	require.NoError(t, b.CreateDirectory(p(t, "/a/sub")))
	writeFile(t, b, p(t, "/a/sub/f"), "x")
	require.NoError(t, b.CreateDirectory(p(t, "/b")))
	writeFile(t, b, p(t, "/b/g"), "y")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ch, err := b.EnumeratePaths(ctx, p(t, "/"), "*", AllDirectories, Both)
	require.NoError(t, err)

	go func() { _ = b.DeleteDirectory(p(t, "/a"), true) }()

	var results []string
	for path := range ch {
		results = append(results, path.String())
	}
	assert.Contains(t, results, "/b")
	assert.Contains(t, results, "/b/g")
}

func TestEnumeratePathsNonRecursive(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.CreateDirectory(p(t, "/a")))
	writeFile(t, b, p(t, "/f1"), "1")
	writeFile(t, b, p(t, "/f2"), "2")

	ch, err := b.EnumeratePaths(context.Background(), p(t, "/"), "*", TopDirectoryOnly, Files)
	require.NoError(t, err)
	var results []string
	for path := range ch {
		results = append(results, path.String())
	}
	assert.ElementsMatch(t, []string{"/f1", "/f2"}, results)
}

func TestCanWatchIsFalse(t *testing.T) {
	b := newBackend(t)
	assert.False(t, b.CanWatch())
}
