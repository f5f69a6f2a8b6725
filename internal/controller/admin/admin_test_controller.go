package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/controller"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
	questionService  service.QuestionService
}

func NewAdminTestController(adminTestService service.AdminTestService, questionService service.QuestionService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService, questionService: questionService}
}

// ListTests godoc
// @Summary (Admin) List all tests
// @Description Published and unpublished tests with their question counts.
// @Tags Admin - Tests
// @Produce json
// @Success 200 {array} dto.AdminTestDTO
// @Failure 403 {object} dto.ErrorResponse "Staff only"
// @Router /admin/tests [get]
func (c *AdminTestController) ListTests(ctx *gin.Context) {
	tests, err := c.adminTestService.ListTests(ctx.Request.Context())
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, tests)
}

// GetTest godoc
// @Summary (Admin) Get a test with answer keys
// @Tags Admin - Tests
// @Produce json
// @Param id path int true "Test ID"
// @Success 200 {object} dto.AdminTestDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{id} [get]
func (c *AdminTestController) GetTest(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	test, err := c.adminTestService.GetTest(ctx.Request.Context(), id)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, test)
}

// CreateTest godoc
// @Summary (Admin) Create a test
// @Description Creates a test, optionally with its questions. Question numbers must be unique within the test.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test_data body dto.TestCreateDTO true "Test and questions"
// @Success 201 {object} dto.AdminTestDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	test, err := c.adminTestService.CreateTest(ctx.Request.Context(), auth.FromContext(ctx), req)
	if err != nil {
		log.Warn().Err(err).Str("title", req.Title).Msg("Admin CreateTest: Service error")
		controller.Fail(ctx, err)
		return
	}
	controller.Created(ctx, test)
}

// UpdateTest godoc
// @Summary (Admin) Update test metadata
// @Description Only fields present in the body change.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param test_data body dto.TestUpdateDTO true "Fields to change"
// @Success 200 {object} dto.AdminTestDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{id} [put]
func (c *AdminTestController) UpdateTest(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.TestUpdateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	test, err := c.adminTestService.UpdateTest(ctx.Request.Context(), auth.FromContext(ctx), id, req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, test)
}

// SetPublished godoc
// @Summary (Admin) Publish or unpublish a test
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param publish body dto.PublishDTO true "Published flag"
// @Success 200 {object} dto.AdminTestDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{id}/publish [patch]
func (c *AdminTestController) SetPublished(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.PublishDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	test, err := c.adminTestService.SetPublished(ctx.Request.Context(), auth.FromContext(ctx), id, *req.IsPublished)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, test)
}

// DeleteTest godoc
// @Summary (Admin) Delete a test
// @Description Questions and attempts are removed with it.
// @Tags Admin - Tests
// @Produce json
// @Param id path int true "Test ID"
// @Success 200 {object} dto.MessageDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{id} [delete]
func (c *AdminTestController) DeleteTest(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.adminTestService.DeleteTest(ctx.Request.Context(), auth.FromContext(ctx), id); err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, dto.MessageDTO{Message: "Test deleted"})
}

// AddQuestion godoc
// @Summary (Admin) Add a question
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param question body dto.QuestionCreateDTO true "Question"
// @Success 201 {object} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate question number"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{id}/questions [post]
func (c *AdminTestController) AddQuestion(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	q, err := c.adminTestService.AddQuestion(ctx.Request.Context(), auth.FromContext(ctx), testID, req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param question body dto.QuestionUpdateDTO true "Fields to change"
// @Success 200 {object} dto.AdminQuestionDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [put]
func (c *AdminTestController) UpdateQuestion(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.QuestionUpdateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	q, err := c.adminTestService.UpdateQuestion(ctx.Request.Context(), auth.FromContext(ctx), id, req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, q)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.MessageDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [delete]
func (c *AdminTestController) DeleteQuestion(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.adminTestService.DeleteQuestion(ctx.Request.Context(), auth.FromContext(ctx), id); err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, dto.MessageDTO{Message: "Question deleted"})
}

// DraftExplanation godoc
// @Summary (Admin) Draft an explanation with Gemini
// @Tags Admin - Questions
// @Produce json
// @Param id path int true "Question ID"
// @Param save query bool false "Store the draft on the question"
// @Success 200 {object} dto.ExplanationDraftDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 503 {object} dto.ErrorResponse "Drafting unavailable"
// @Router /admin/questions/{id}/explanation [post]
func (c *AdminTestController) DraftExplanation(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	save := false
	if raw := ctx.Query("save"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			controller.Fail(ctx, apperror.Validation(apperror.FieldError{Field: "save", Error: "save must be a boolean"}))
			return
		}
		save = v
	}
	draft, err := c.questionService.DraftExplanation(ctx.Request.Context(), auth.FromContext(ctx), id, save)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, draft)
}
