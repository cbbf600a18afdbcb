package controllers

import (
	"net/http"
	"strings"

	"room-booking/middleware"
	"room-booking/services"
	"room-booking/utils"

	"github.com/gin-gonic/gin"
)

type CreateBookingRequest struct {
	RoomID    *uint  `json:"room_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// toInput checks presence before parsing so a missing field is always
// MissingFields rather than a parse error.
func (req CreateBookingRequest) toInput(userID uint) (services.BookingInput, error) {
	if req.RoomID == nil || *req.RoomID == 0 ||
		strings.TrimSpace(req.StartTime) == "" || strings.TrimSpace(req.EndTime) == "" {
		return services.BookingInput{}, services.MissingFields("room_id, start_time and end_time are required")
	}
	start, err := utils.ParseInstant(req.StartTime)
	if err != nil {
		return services.BookingInput{}, err
	}
	end, err := utils.ParseInstant(req.EndTime)
	if err != nil {
		return services.BookingInput{}, err
	}
	return services.BookingInput{RoomID: *req.RoomID, UserID: userID, Start: start, End: end}, nil
}

// CreateBooking (POST /api/bookings)
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		utils.RespondError(c, services.ErrUnauthenticated)
		return
	}

	var req CreateBookingRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	in, err := req.toInput(claims.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	booking, err := ctrl.BookingSvc.Create(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetMyBookings (GET /api/bookings)
func (ctrl *BookingController) GetMyBookings(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		utils.RespondError(c, services.ErrUnauthenticated)
		return
	}

	bookings, err := ctrl.BookingSvc.ListForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// DeleteMyBooking (DELETE /api/bookings/:id)
func (ctrl *BookingController) DeleteMyBooking(c *gin.Context) {
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

	if err := ctrl.BookingSvc.DeleteOwn(c.Request.Context(), claims.UserID, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// GetAllBookings (GET /api/admin/bookings)
func (ctrl *BookingController) GetAllBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// DeleteAnyBooking (DELETE /api/admin/bookings/:id)
func (ctrl *BookingController) DeleteAnyBooking(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := ctrl.BookingSvc.DeleteAny(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
