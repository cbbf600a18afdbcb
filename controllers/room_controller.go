package controllers

import (
	"net/http"

	"room-booking/services"
	"room-booking/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc     *services.RoomService
	CalendarSvc *services.CalendarService
}

func NewRoomController(rooms *services.RoomService, calendar *services.CalendarService) *RoomController {
	return &RoomController{RoomSvc: rooms, CalendarSvc: calendar}
}

// ----------------------------------------------------
// GET /api/rooms
// ----------------------------------------------------

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// ----------------------------------------------------
// GET /api/rooms/:id
// ----------------------------------------------------

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	room, err := ctrl.RoomSvc.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// ----------------------------------------------------
// GET /api/rooms/:id/availability?date=YYYY-MM-DD
// ----------------------------------------------------

func (ctrl *RoomController) GetRoomAvailability(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	date, err := utils.RequiredDateQuery(c, "date")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	bookings, err := ctrl.CalendarSvc.RoomAvailability(c.Request.Context(), id, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ----------------------------------------------------
// POST /api/admin/rooms
// ----------------------------------------------------

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var payload services.CreateRoomInput
	if err := bindJSON(c, &payload); err != nil {
		utils.RespondError(c, err)
		return
	}

	room, err := ctrl.RoomSvc.Create(c.Request.Context(), payload)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// ----------------------------------------------------
// DELETE /api/admin/rooms/:id
// ----------------------------------------------------

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := ctrl.RoomSvc.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
