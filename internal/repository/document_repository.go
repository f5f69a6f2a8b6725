package repository

import (
	"context"
	"strings"

	"github.com/lshigami/lawdesk/internal/model"
	"gorm.io/gorm"
)

type DocumentFilter struct {
	Query              string
	IncludeUnpublished bool
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	FindByID(ctx context.Context, kind model.DocumentKind, id uint) (*model.Document, error)
	List(ctx context.Context, kind model.DocumentKind, filter DocumentFilter) ([]model.Document, error)
	Update(ctx context.Context, doc *model.Document) error
	Delete(ctx context.Context, kind model.DocumentKind, id uint) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) FindByID(ctx context.Context, kind model.DocumentKind, id uint) (*model.Document, error) {
	var doc model.Document
	if err := r.db.WithContext(ctx).Where("kind = ?", kind).First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context, kind model.DocumentKind, filter DocumentFilter) ([]model.Document, error) {
	var docs []model.Document
	q := r.db.WithContext(ctx).Where("kind = ?", kind)
	if !filter.IncludeUnpublished {
		q = q.Where("is_published = ?", true)
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if kind == model.KindBareAct {
		q = q.Order("year DESC").Order("title ASC")
	} else {
		q = q.Order("created_at DESC")
	}
	if err := q.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) Update(ctx context.Context, doc *model.Document) error {
	res := r.db.WithContext(ctx).Model(doc).Where("kind = ?", doc.Kind).
		Select("title", "description", "category", "act_number", "year", "is_published").
		Updates(doc)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, kind model.DocumentKind, id uint) error {
	res := r.db.WithContext(ctx).Where("kind = ?", kind).Delete(&model.Document{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
