package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/controller"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/service"
)

type AdminUserController struct {
	users service.UserService
}

func NewAdminUserController(users service.UserService) *AdminUserController {
	return &AdminUserController{users: users}
}

// ListUsers godoc
// @Summary (Admin) List users
// @Tags Admin - Users
// @Produce json
// @Param q query string false "Email or name filter"
// @Success 200 {array} dto.UserDTO
// @Failure 403 {object} dto.ErrorResponse "Staff only"
// @Router /admin/users [get]
func (c *AdminUserController) ListUsers(ctx *gin.Context) {
	users, err := c.users.List(ctx.Request.Context(), auth.FromContext(ctx), ctx.Query("q"))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, users)
}

// ChangeRole godoc
// @Summary (Owner) Change a user's role
// @Description Owners cannot change their own role.
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param role body dto.UpdateRoleDTO true "New role"
// @Success 200 {object} dto.UserDTO
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/role [patch]
func (c *AdminUserController) ChangeRole(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateRoleDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	user, err := c.users.ChangeRole(ctx.Request.Context(), auth.FromContext(ctx), id, model.Role(req.Role))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, user)
}

// DeleteUser godoc
// @Summary (Owner) Delete a user
// @Tags Admin - Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.MessageDTO
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *AdminUserController) DeleteUser(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.users.Delete(ctx.Request.Context(), auth.FromContext(ctx), id); err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, dto.MessageDTO{Message: "User deleted"})
}
