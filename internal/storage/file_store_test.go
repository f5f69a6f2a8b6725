package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj << /Type /Catalog >> endobj\ntrailer << /Root 1 0 R >>\n%%EOF\n")

func newStore(t *testing.T, maxBytes int64) (FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewDiskStore(dir, maxBytes)
	require.NoError(t, err)
	return s, dir
}

func TestSaveOpenRemove(t *testing.T) {
	s, dir := newStore(t, 1<<20)

	key, size, err := s.Save(context.Background(), bytes.NewReader(samplePDF))
	require.NoError(t, err)
	assert.Equal(t, int64(len(samplePDF)), size)
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	f, err := s.Open(key)
	require.NoError(t, err)
	got, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, samplePDF, got)

	require.NoError(t, s.Remove(key))
	_, err = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(err))

	_, err = s.Open(key)
	assert.ErrorIs(t, err, ErrBlobNotFound)
	assert.NoError(t, s.Remove(key), "removing twice is not an error")
}

func TestSaveRejectsNonPDF(t *testing.T) {
	s, dir := newStore(t, 1<<20)

	_, _, err := s.Save(context.Background(), strings.NewReader("<html><body>not a pdf</body></html>"))
	assert.ErrorIs(t, err, ErrNotPDF)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveEnforcesLimit(t *testing.T) {
	s, dir := newStore(t, 32)

	_, _, err := s.Save(context.Background(), bytes.NewReader(samplePDF))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial upload removed")
}

func TestKeysCannotEscapeDir(t *testing.T) {
	s, _ := newStore(t, 0)

	for _, key := range []string{"../etc/passwd", "../../x.pdf", "notauuid.pdf", "", "/abs.pdf"} {
		_, err := s.Open(key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
		assert.ErrorIs(t, s.Remove(key), ErrInvalidKey, key)
	}
}
