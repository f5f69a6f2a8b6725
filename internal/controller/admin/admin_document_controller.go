package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/controller"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminDocumentController struct {
	documents service.DocumentService
}

func NewAdminDocumentController(documents service.DocumentService) *AdminDocumentController {
	return &AdminDocumentController{documents: documents}
}

// Upload returns the handler for POST /admin/notes and /admin/bare-acts.
//
// @Summary (Admin) Upload a note
// @Description Multipart upload of a PDF plus metadata. POST /admin/bare-acts takes the same form with actNumber and year.
// @Tags Admin - Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF file"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param actNumber formData string false "Act number (bare acts)"
// @Param year formData int false "Year (bare acts)"
// @Param isPublished formData bool false "Published, defaults to true"
// @Success 201 {object} dto.DocumentDTO
// @Failure 400 {object} dto.ErrorResponse "Missing file, not a PDF or too large"
// @Router /admin/notes [post]
func (c *AdminDocumentController) Upload(kind model.DocumentKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var form dto.DocumentFormDTO
		if !controller.BindForm(ctx, &form) {
			return
		}
		header, err := ctx.FormFile("file")
		if err != nil {
			controller.Fail(ctx, apperror.Validation(apperror.FieldError{Field: "file", Error: "file is required"}))
			return
		}
		file, err := header.Open()
		if err != nil {
			log.Error().Err(err).Msg("Admin Upload: failed to open multipart file")
			controller.Fail(ctx, apperror.Internal(err))
			return
		}
		defer file.Close()

		doc, err := c.documents.Upload(ctx.Request.Context(), auth.FromContext(ctx), kind, form, header.Filename, file)
		if err != nil {
			controller.Fail(ctx, err)
			return
		}
		controller.Created(ctx, doc)
	}
}

// Update godoc
// @Summary (Admin) Update document metadata
// @Tags Admin - Documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param document body dto.DocumentUpdateDTO true "Fields to change"
// @Success 200 {object} dto.DocumentDTO
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /admin/notes/{id} [put]
func (c *AdminDocumentController) Update(kind model.DocumentKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := controller.ParseID(ctx, "id")
		if !ok {
			return
		}
		var req dto.DocumentUpdateDTO
		if !controller.BindJSON(ctx, &req) {
			return
		}
		doc, err := c.documents.Update(ctx.Request.Context(), auth.FromContext(ctx), kind, id, req)
		if err != nil {
			controller.Fail(ctx, err)
			return
		}
		controller.OK(ctx, doc)
	}
}

// Delete godoc
// @Summary (Admin) Delete a document and its file
// @Tags Admin - Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} dto.MessageDTO
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /admin/notes/{id} [delete]
func (c *AdminDocumentController) Delete(kind model.DocumentKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := controller.ParseID(ctx, "id")
		if !ok {
			return
		}
		if err := c.documents.Delete(ctx.Request.Context(), auth.FromContext(ctx), kind, id); err != nil {
			controller.Fail(ctx, err)
			return
		}
		controller.OK(ctx, dto.MessageDTO{Message: "Document deleted"})
	}
}
