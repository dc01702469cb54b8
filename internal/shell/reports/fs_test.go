package reports

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupArchive(t *testing.T) *Archive {
	t.Helper()
	archive, err := NewArchive(t.TempDir())
	require.NoError(t, err)
	return archive
}

func TestArchive_WriteAndOpen(t *testing.T) {
	archive := setupArchive(t)

	path, err := archive.Write("March Summary", func(w io.Writer) error {
		_, err := io.WriteString(w, "product,revenue\n")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "march-summary.csv", filepath.Base(path))

	r, err := archive.Open(path)
	require.NoError(t, err)
	defer r.Close()

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "product,revenue\n", string(content))
}

func TestArchive_RefusesTraversalNames(t *testing.T) {
	archive := setupArchive(t)

	// Separators and dots are stripped, so the file lands inside the root.
	path, err := archive.Write("../escape", func(w io.Writer) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, "escape.csv", filepath.Base(path))
	assert.False(t, strings.Contains(path, ".."))

	// A name with no usable characters at all is rejected.
	_, err = archive.Write("...", func(w io.Writer) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestArchive_RenderErrorLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewArchive(dir)
	require.NoError(t, err)

	_, err = archive.Write("broken", func(w io.Writer) error {
		return io.ErrClosedPipe
	})
	assert.ErrorIs(t, err, ErrWriteFailed)

	_, statErr := os.Stat(filepath.Join(dir, "broken.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestArchive_OverwriteReplacesContent(t *testing.T) {
	archive := setupArchive(t)

	write := func(content string) string {
		path, err := archive.Write("monthly", func(w io.Writer) error {
			_, err := io.WriteString(w, content)
			return err
		})
		require.NoError(t, err)
		return path
	}

	first := write("old\n")
	second := write("new\n")
	assert.Equal(t, first, second)

	r, err := archive.Open(second)
	require.NoError(t, err)
	defer r.Close()
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(content))
}
