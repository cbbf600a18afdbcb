package controllers

import (
	"net/http"

	"room-booking/middleware"
	"room-booking/services"
	"room-booking/utils"

	"github.com/gin-gonic/gin"
)

type updateRolePayload struct {
	Role string `json:"role"`
}

// AdminController serves the user management part of /api/admin. Room,
// booking and settings administration live on their own controllers.
type AdminController struct {
	UserSvc *services.UserService
}

func NewAdminController(svc *services.UserService) *AdminController {
	return &AdminController{UserSvc: svc}
}

func (ctrl *AdminController) GetUsers(c *gin.Context) {
	users, err := ctrl.UserSvc.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctrl *AdminController) CreateUser(c *gin.Context) {
	var payload services.CreateUserInput
	if err := bindJSON(c, &payload); err != nil {
		utils.RespondError(c, err)
		return
	}

	user, err := ctrl.UserSvc.Create(c.Request.Context(), payload)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (ctrl *AdminController) UpdateUserRole(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		utils.RespondError(c, services.ErrUnauthenticated)
		return
	}
	id, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var payload updateRolePayload
	if err := bindJSON(c, &payload); err != nil {
		utils.RespondError(c, err)
		return
	}

	user, err := ctrl.UserSvc.UpdateRole(c.Request.Context(), claims.UserID, id, payload.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *AdminController) DeleteUser(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		utils.RespondError(c, services.ErrUnauthenticated)
		return
	}
	id, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := ctrl.UserSvc.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
