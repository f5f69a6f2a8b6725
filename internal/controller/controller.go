package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/rs/zerolog/log"
)

func OK(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, dto.Envelope{Success: true, Data: data})
}

func Created(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusCreated, dto.Envelope{Success: true, Data: data})
}

// Fail writes the error envelope and aborts the chain. Causes of internal
// errors are logged here and never sent to the client.
func Fail(ctx *gin.Context, err error) {
	appErr := apperror.As(err)
	if appErr.Kind == apperror.KindInternal {
		log.Error().Err(appErr.Err).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Msg("Internal error while handling request")
	}
	ctx.AbortWithStatusJSON(appErr.Status(), dto.Envelope{
		Success: false,
		Error: &dto.ErrorDetail{
			Error:     appErr.Message,
			Code:      appErr.Code,
			Details:   appErr.Details,
			Timestamp: time.Now().UTC(),
		},
	})
}

// BindJSON binds the request body into obj and reports every invalid field.
// It returns false when a response has already been written.
func BindJSON(ctx *gin.Context, obj any) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		log.Warn().Err(err).Str("path", ctx.Request.URL.Path).Msg("Failed to bind JSON")
		Fail(ctx, apperror.FromBinding(err))
		return false
	}
	return true
}

// BindForm is BindJSON for multipart and urlencoded bodies.
func BindForm(ctx *gin.Context, obj any) bool {
	if err := ctx.ShouldBind(obj); err != nil {
		log.Warn().Err(err).Str("path", ctx.Request.URL.Path).Msg("Failed to bind form")
		Fail(ctx, apperror.FromBinding(err))
		return false
	}
	return true
}

// ParseID reads a positive numeric path parameter.
func ParseID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		Fail(ctx, apperror.Validation(apperror.FieldError{Field: name, Error: name + " must be a positive integer"}))
		return 0, false
	}
	return uint(id), true
}
