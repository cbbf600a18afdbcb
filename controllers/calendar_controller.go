package controllers

import (
	"net/http"

	"room-booking/services"
	"room-booking/utils"

	"github.com/gin-gonic/gin"
)

type CalendarController struct {
	CalendarSvc *services.CalendarService
}

func NewCalendarController(svc *services.CalendarService) *CalendarController {
	return &CalendarController{CalendarSvc: svc}
}

// GetCalendarBookings (GET /api/calendar/bookings?start_date&end_date&room_id)
func (ctrl *CalendarController) GetCalendarBookings(c *gin.Context) {
	var f services.CalendarFilter
	var err error
	if f.StartDate, err = utils.OptionalDateQuery(c, "start_date"); err != nil {
		utils.RespondError(c, err)
		return
	}
	if f.EndDate, err = utils.OptionalDateQuery(c, "end_date"); err != nil {
		utils.RespondError(c, err)
		return
	}
	if f.RoomID, err = utils.OptionalIDQuery(c, "room_id"); err != nil {
		utils.RespondError(c, err)
		return
	}

	bookings, err := ctrl.CalendarSvc.Bookings(c.Request.Context(), f)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetCalendarAvailability (GET /api/calendar/availability?date=YYYY-MM-DD)
func (ctrl *CalendarController) GetCalendarAvailability(c *gin.Context) {
	date, err := utils.RequiredDateQuery(c, "date")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	rooms, err := ctrl.CalendarSvc.Availability(c.Request.Context(), date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}
