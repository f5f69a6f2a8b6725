package user

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/controller"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/middleware"
	"github.com/lshigami/lawdesk/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) startSession(ctx *gin.Context, user *dto.UserDTO) bool {
	if err := middleware.StartSession(ctx, user.ID); err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Failed to save session")
		controller.Fail(ctx, apperror.Internal(err))
		return false
	}
	return true
}

// Register godoc
// @Summary Register
// @Description Creates a USER account and signs it in.
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body dto.RegisterDTO true "Account"
// @Success 201 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse "Validation error or email taken"
// @Failure 429 {object} dto.ErrorResponse "Too many attempts"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	user, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	if !c.startSession(ctx, user) {
		return
	}
	controller.Created(ctx, user)
}

// Login godoc
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "Credentials"
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 429 {object} dto.ErrorResponse "Too many attempts"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	user, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	if !c.startSession(ctx, user) {
		return
	}
	controller.OK(ctx, user)
}

// Logout godoc
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MessageDTO
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	middleware.ClearSession(ctx)
	controller.OK(ctx, dto.MessageDTO{Message: "Signed out"})
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.authService.Me(ctx.Request.Context(), auth.FromContext(ctx))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, user)
}
