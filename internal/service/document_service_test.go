package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj << /Type /Catalog >> endobj\ntrailer << /Root 1 0 R >>\n%%EOF\n")

func newDocumentFixture(t *testing.T) (DocumentService, *fakeDocumentRepo, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewDiskStore(dir, 1<<20)
	require.NoError(t, err)
	repo := newFakeDocumentRepo()
	return NewDocumentService(repo, store), repo, dir
}

func storedFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func boolPtr(v bool) *bool { return &v }

func TestDocumentUploadAndVisibility(t *testing.T) {
	svc, _, dir := newDocumentFixture(t)
	ctx := context.Background()

	form := dto.DocumentFormDTO{Title: "Indian Contract Act", ActNumber: "9", Year: 1872, IsPublished: boolPtr(false)}

	_, err := svc.Upload(ctx, learner, model.KindBareAct, form, "ica.pdf", bytes.NewReader(samplePDF))
	assert.Equal(t, apperror.CodeForbidden, codeOf(t, err))

	doc, err := svc.Upload(ctx, admin, model.KindBareAct, form, "../../ica.pdf", bytes.NewReader(samplePDF))
	require.NoError(t, err)
	assert.Equal(t, "ica.pdf", doc.FileName)
	assert.Equal(t, "9", doc.ActNumber)
	assert.Equal(t, int64(len(samplePDF)), doc.FileSize)
	assert.Equal(t, 1, storedFiles(t, dir))

	t.Run("unpublished is hidden from learners", func(t *testing.T) {
		list, err := svc.List(ctx, learner, model.KindBareAct, "")
		require.NoError(t, err)
		assert.Empty(t, list)

		_, err = svc.Get(ctx, learner, model.KindBareAct, doc.ID)
		assert.Equal(t, apperror.CodeNotFound, codeOf(t, err))

		_, _, err = svc.OpenFile(ctx, learner, model.KindBareAct, doc.ID)
		assert.Equal(t, apperror.CodeNotFound, codeOf(t, err))
	})

	t.Run("staff see unpublished", func(t *testing.T) {
		list, err := svc.List(ctx, admin, model.KindBareAct, "contract")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("kinds do not mix", func(t *testing.T) {
		_, err := svc.Get(ctx, admin, model.KindNote, doc.ID)
		assert.Equal(t, apperror.CodeNotFound, codeOf(t, err))
	})

	t.Run("learners cannot edit or delete", func(t *testing.T) {
		_, err := svc.Update(ctx, learner, model.KindBareAct, doc.ID, dto.DocumentUpdateDTO{IsPublished: boolPtr(true)})
		assert.Equal(t, apperror.CodeForbidden, codeOf(t, err))
		err = svc.Delete(ctx, learner, model.KindBareAct, doc.ID)
		assert.Equal(t, apperror.CodeForbidden, codeOf(t, err))
		assert.Equal(t, 1, storedFiles(t, dir))
	})

	t.Run("published file streams", func(t *testing.T) {
		_, err := svc.Update(ctx, admin, model.KindBareAct, doc.ID, dto.DocumentUpdateDTO{IsPublished: boolPtr(true)})
		require.NoError(t, err)

		meta, f, err := svc.OpenFile(ctx, learner, model.KindBareAct, doc.ID)
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "ica.pdf", meta.FileName)
		got, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, samplePDF, got)
	})

	t.Run("delete removes the file", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, admin, model.KindBareAct, doc.ID))
		assert.Equal(t, 0, storedFiles(t, dir))
		_, err := svc.Get(ctx, admin, model.KindBareAct, doc.ID)
		assert.Equal(t, apperror.CodeNotFound, codeOf(t, err))
	})
}

func TestDocumentUploadRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("non pdf", func(t *testing.T) {
		svc, _, dir := newDocumentFixture(t)
		_, err := svc.Upload(ctx, admin, model.KindNote, dto.DocumentFormDTO{Title: "Notes"}, "notes.pdf", strings.NewReader("plain text, not a pdf"))
		require.Equal(t, apperror.CodeValidation, codeOf(t, err))
		fields := apperror.As(err).Details.([]apperror.FieldError)
		assert.Equal(t, "file", fields[0].Field)
		assert.Equal(t, 0, storedFiles(t, dir))
	})

	t.Run("row insert failure removes the blob", func(t *testing.T) {
		svc, repo, dir := newDocumentFixture(t)
		repo.createErr = errors.New("connection reset")
		_, err := svc.Upload(ctx, admin, model.KindNote, dto.DocumentFormDTO{Title: "Notes"}, "notes.pdf", bytes.NewReader(samplePDF))
		assert.Equal(t, apperror.CodeInternal, codeOf(t, err))
		assert.Equal(t, 0, storedFiles(t, dir))
	})

	t.Run("published by default", func(t *testing.T) {
		svc, _, _ := newDocumentFixture(t)
		doc, err := svc.Upload(ctx, owner, model.KindNote, dto.DocumentFormDTO{Title: "Torts summary", ActNumber: "ignored"}, "torts.pdf", bytes.NewReader(samplePDF))
		require.NoError(t, err)
		assert.True(t, doc.IsPublished)
		assert.Empty(t, doc.ActNumber, "act metadata only applies to bare acts")
	})
}
