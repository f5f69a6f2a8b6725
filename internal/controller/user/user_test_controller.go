package user

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/controller"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/practice"
	"github.com/lshigami/lawdesk/internal/service"
	"github.com/rs/zerolog/log"
)

// TestResolver turns the raw :id path segment into a test reference.
type TestResolver interface {
	Resolve(raw string) (practice.TestRef, error)
}

type UserTestController struct {
	resolver     TestResolver
	delivery     service.TestDeliveryService
	submission   service.TestSubmissionService
	results      service.ResultService
	certificates service.CertificateService
}

func NewUserTestController(
	catalog *practice.Catalog,
	delivery service.TestDeliveryService,
	submission service.TestSubmissionService,
	results service.ResultService,
	certificates service.CertificateService,
) *UserTestController {
	return &UserTestController{
		resolver:     catalog,
		delivery:     delivery,
		submission:   submission,
		results:      results,
		certificates: certificates,
	}
}

func (c *UserTestController) resolve(ctx *gin.Context) (practice.TestRef, bool) {
	ref, err := c.resolver.Resolve(ctx.Param("id"))
	if err != nil {
		controller.Fail(ctx, err)
		return nil, false
	}
	return ref, true
}

// ListTests godoc
// @Summary List tests
// @Description Published tests with the caller's attempt status, followed by the practice tests.
// @Tags Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Router /tests [get]
func (c *UserTestController) ListTests(ctx *gin.Context) {
	tests, err := c.delivery.ListTests(ctx.Request.Context(), auth.FromContext(ctx))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, tests)
}

// GetTest godoc
// @Summary Get a test for taking
// @Description Questions without answer keys, ordered by question number. Ids prefixed with "mock-" address practice tests.
// @Tags Tests
// @Produce json
// @Param id path string true "Test ID or mock-<slug>"
// @Success 200 {object} dto.TestForTakingDTO
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Failure 404 {object} dto.ErrorResponse "Test not found or not published"
// @Router /tests/{id} [get]
func (c *UserTestController) GetTest(ctx *gin.Context) {
	ref, ok := c.resolve(ctx)
	if !ok {
		return
	}
	test, err := c.delivery.GetTestForTaking(ctx.Request.Context(), ref, auth.FromContext(ctx))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, test)
}

// TestAction godoc
// @Summary Start or resume an attempt
// @Description The only supported action is "start". Starting twice returns the same attempt.
// @Tags Tests
// @Accept json
// @Produce json
// @Param id path string true "Test ID or mock-<slug>"
// @Param action body dto.TestActionDTO true "Action"
// @Success 200 {object} dto.StartAttemptResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Unknown action"
// @Failure 404 {object} dto.ErrorResponse "Test not found or not published"
// @Router /tests/{id} [post]
func (c *UserTestController) TestAction(ctx *gin.Context) {
	ref, ok := c.resolve(ctx)
	if !ok {
		return
	}
	var req dto.TestActionDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	if req.Action != dto.ActionStart {
		controller.Fail(ctx, apperror.InvalidAction(req.Action))
		return
	}

	resp, err := c.delivery.StartAttempt(ctx.Request.Context(), ref, auth.FromContext(ctx))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, resp)
}

// SubmitAttempt godoc
// @Summary Submit answers
// @Description Grades the answer sheet and stores it as the caller's single attempt for the test. Resubmitting overwrites it.
// @Tags Tests
// @Accept json
// @Produce json
// @Param id path string true "Test ID or mock-<slug>"
// @Param submission body dto.SubmitAttemptDTO true "Answers keyed by question id"
// @Success 200 {object} dto.ScoreResultDTO
// @Failure 400 {object} dto.ErrorResponse "Validation or constraint error"
// @Failure 403 {object} dto.ErrorResponse "Test not published"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{id}/submit [post]
func (c *UserTestController) SubmitAttempt(ctx *gin.Context) {
	ref, ok := c.resolve(ctx)
	if !ok {
		return
	}
	var req dto.SubmitAttemptDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}

	result, err := c.submission.SubmitAttempt(ctx.Request.Context(), ref, auth.FromContext(ctx), req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, result)
}

// GetResults godoc
// @Summary Get the caller's result
// @Tags Tests
// @Produce json
// @Param id path string true "Test ID or mock-<slug>"
// @Success 200 {object} dto.ResultViewDTO
// @Failure 404 {object} dto.ErrorResponse "No completed attempt"
// @Router /tests/{id}/results [get]
func (c *UserTestController) GetResults(ctx *gin.Context) {
	ref, ok := c.resolve(ctx)
	if !ok {
		return
	}
	view, err := c.results.GetResult(ctx.Request.Context(), ref, auth.FromContext(ctx))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, view)
}

// GetCertificate godoc
// @Summary Download a certificate
// @Description PDF certificate for a passed attempt.
// @Tags Tests
// @Produce application/pdf
// @Param id path string true "Test ID"
// @Success 200 {file} file
// @Failure 403 {object} dto.ErrorResponse "Attempt did not pass"
// @Failure 404 {object} dto.ErrorResponse "No completed attempt"
// @Router /tests/{id}/results/certificate [get]
func (c *UserTestController) GetCertificate(ctx *gin.Context) {
	ref, ok := c.resolve(ctx)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := c.certificates.Render(ctx.Request.Context(), ref, auth.FromContext(ctx), &buf); err != nil {
		controller.Fail(ctx, err)
		return
	}
	log.Debug().Str("test", ctx.Param("id")).Int("bytes", buf.Len()).Msg("Certificate rendered")
	ctx.Header("Content-Disposition", `attachment; filename="`+c.certificates.FileName(ref)+`"`)
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
