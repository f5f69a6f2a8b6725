package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/repository"
	"github.com/lshigami/lawdesk/internal/storage"
	"github.com/rs/zerolog/log"
)

// DocumentService manages notes and bare acts along with their stored PDFs.
type DocumentService interface {
	List(ctx context.Context, p *auth.Principal, kind model.DocumentKind, query string) ([]dto.DocumentDTO, error)
	Get(ctx context.Context, p *auth.Principal, kind model.DocumentKind, id uint) (*dto.DocumentDTO, error)
	OpenFile(ctx context.Context, p *auth.Principal, kind model.DocumentKind, id uint) (*model.Document, *os.File, error)
	Upload(ctx context.Context, p *auth.Principal, kind model.DocumentKind, form dto.DocumentFormDTO, fileName string, r io.Reader) (*dto.DocumentDTO, error)
	Update(ctx context.Context, p *auth.Principal, kind model.DocumentKind, id uint, req dto.DocumentUpdateDTO) (*dto.DocumentDTO, error)
	Delete(ctx context.Context, p *auth.Principal, kind model.DocumentKind, id uint) error
}

type documentService struct {
	docRepo repository.DocumentRepository
	store   storage.FileStore
}

func NewDocumentService(docRepo repository.DocumentRepository, store storage.FileStore) DocumentService {
	return &documentService{docRepo: docRepo, store: store}
}

func entityName(kind model.DocumentKind) string {
	if kind == model.KindBareAct {
		return "BareAct"
	}
	return "Note"
}

func (s *documentService) List(ctx context.Context, p *auth.Principal, kind model.DocumentKind, query string) ([]dto.DocumentDTO, error) {
	if err := auth.RequireRole(p, auth.AnyUser); err != nil {
		return nil, err
	}
	docs, err := s.docRepo.List(ctx, kind, repository.DocumentFilter{Query: query, IncludeUnpublished: p.IsStaff()})
	if err != nil {
		return nil, apperror.FromStore(err, entityName(kind))
	}
	resp := make([]dto.DocumentDTO, len(docs))
	for i := range docs {
		resp[i] = toDocumentDTO(&docs[i])
	}
	return resp, nil
}

// visible loads a document the caller may see. Unpublished documents are
// hidden from non-staff as missing.
func (s *documentService) visible(ctx context.Context, p *auth.Principal, kind model.DocumentKind, id uint) (*model.Document, error) {
	if err := auth.RequireRole(p, auth.AnyUser); err != nil {
		return nil, err
	}
	doc, err := s.docRepo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, apperror.FromStore(err, entityName(kind))
	}
	if !doc.IsPublished && !p.IsStaff() {
		return nil, apperror.NotFound(entityName(kind))
	}
	return doc, nil
}

func (s *documentService) Get(ctx context.Context, p *auth.Principal, kind model.DocumentKind, id uint) (*dto.DocumentDTO, error) {
	doc, err := s.visible(ctx, p, kind, id)
	if err != nil {
		return nil, err
	}
	resp := toDocumentDTO(doc)
	return &resp, nil
}

func (s *documentService) OpenFile(ctx context.Context, p *auth.Principal, kind model.DocumentKind, id uint) (*model.Document, *os.File, error) {
	doc, err := s.visible(ctx, p, kind, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := s.store.Open(doc.StorageKey)
	if errors.Is(err, storage.ErrBlobNotFound) {
		log.Error().Uint("documentID", id).Str("key", doc.StorageKey).Msg("Stored file missing for document")
		return nil, nil, apperror.NotFound("File")
	}
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}
	return doc, f, nil
}

func (s *documentService) Upload(ctx context.Context, p *auth.Principal, kind model.DocumentKind, form dto.DocumentFormDTO, fileName string, r io.Reader) (*dto.DocumentDTO, error) {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return nil, err
	}

	key, size, err := s.store.Save(ctx, r)
	switch {
	case errors.Is(err, storage.ErrNotPDF):
		return nil, apperror.Validation(apperror.FieldError{Field: "file", Error: "file must be a PDF document"})
	case errors.Is(err, storage.ErrTooLarge):
		return nil, apperror.Validation(apperror.FieldError{Field: "file", Error: "file exceeds the upload size limit"})
	case err != nil:
		log.Error().Err(err).Msg("Upload: failed to store file")
		return nil, apperror.Internal(err)
	}

	uploader := p.UserID
	doc := &model.Document{
		Kind:         kind,
		Title:        form.Title,
		Description:  form.Description,
		Category:     form.Category,
		FileName:     filepath.Base(fileName),
		StorageKey:   key,
		FileSize:     size,
		IsPublished:  form.IsPublished == nil || *form.IsPublished,
		UploadedByID: &uploader,
	}
	if kind == model.KindBareAct {
		doc.ActNumber = form.ActNumber
		doc.Year = form.Year
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		if rmErr := s.store.Remove(key); rmErr != nil {
			log.Warn().Err(rmErr).Str("key", key).Msg("Upload: failed to remove orphaned file")
		}
		return nil, apperror.FromStore(err, entityName(kind))
	}
	log.Info().Uint("documentID", doc.ID).Str("kind", string(kind)).Int64("size", size).Msg("Document uploaded")
	resp := toDocumentDTO(doc)
	return &resp, nil
}

func (s *documentService) Update(ctx context.Context, p *auth.Principal, kind model.DocumentKind, id uint, req dto.DocumentUpdateDTO) (*dto.DocumentDTO, error) {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return nil, err
	}
	doc, err := s.docRepo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, apperror.FromStore(err, entityName(kind))
	}
	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Description != nil {
		doc.Description = *req.Description
	}
	if req.Category != nil {
		doc.Category = *req.Category
	}
	if req.IsPublished != nil {
		doc.IsPublished = *req.IsPublished
	}
	if kind == model.KindBareAct {
		if req.ActNumber != nil {
			doc.ActNumber = *req.ActNumber
		}
		if req.Year != nil {
			doc.Year = *req.Year
		}
	}
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, apperror.FromStore(err, entityName(kind))
	}
	resp := toDocumentDTO(doc)
	return &resp, nil
}

// Delete removes the row first; a file left behind is only logged.
func (s *documentService) Delete(ctx context.Context, p *auth.Principal, kind model.DocumentKind, id uint) error {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return err
	}
	doc, err := s.docRepo.FindByID(ctx, kind, id)
	if err != nil {
		return apperror.FromStore(err, entityName(kind))
	}
	if err := s.docRepo.Delete(ctx, kind, id); err != nil {
		return apperror.FromStore(err, entityName(kind))
	}
	if err := s.store.Remove(doc.StorageKey); err != nil {
		log.Warn().Err(err).Uint("documentID", id).Str("key", doc.StorageKey).Msg("Delete: failed to remove stored file")
	}
	log.Info().Uint("documentID", id).Str("kind", string(kind)).Msg("Document deleted")
	return nil
}
