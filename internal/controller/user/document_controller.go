package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/controller"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/service"
	"github.com/rs/zerolog/log"
)

// DocumentController serves one document kind; the router mounts one for
// notes and one for bare acts.
type DocumentController struct {
	kind      model.DocumentKind
	documents service.DocumentService
}

type NoteController struct{ DocumentController }

type BareActController struct{ DocumentController }

func NewNoteController(documents service.DocumentService) *NoteController {
	return &NoteController{DocumentController{kind: model.KindNote, documents: documents}}
}

func NewBareActController(documents service.DocumentService) *BareActController {
	return &BareActController{DocumentController{kind: model.KindBareAct, documents: documents}}
}

// List godoc
// @Summary List notes or bare acts
// @Description Published documents; staff also see unpublished ones. Same contract for /bare-acts.
// @Tags Documents
// @Produce json
// @Param q query string false "Title filter"
// @Success 200 {array} dto.DocumentDTO
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Router /notes [get]
func (c *DocumentController) List(ctx *gin.Context) {
	docs, err := c.documents.List(ctx.Request.Context(), auth.FromContext(ctx), c.kind, ctx.Query("q"))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, docs)
}

// Get godoc
// @Summary Document metadata
// @Tags Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} dto.DocumentDTO
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /notes/{id} [get]
func (c *DocumentController) Get(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	doc, err := c.documents.Get(ctx.Request.Context(), auth.FromContext(ctx), c.kind, id)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, doc)
}

// Download godoc
// @Summary Download the PDF
// @Tags Documents
// @Produce application/pdf
// @Param id path int true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /notes/{id}/file [get]
func (c *DocumentController) Download(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	doc, f, err := c.documents.OpenFile(ctx.Request.Context(), auth.FromContext(ctx), c.kind, id)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	defer f.Close()

	log.Debug().Uint("documentID", id).Msg("Streaming document")
	ctx.DataFromReader(http.StatusOK, doc.FileSize, "application/pdf", f, map[string]string{
		"Content-Disposition": `inline; filename=` + strconv.Quote(doc.FileName),
	})
}
