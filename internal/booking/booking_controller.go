package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Waruntorn-K/shuttleq/internal/court"
	"github.com/Waruntorn-K/shuttleq/internal/middleware"
	"github.com/Waruntorn-K/shuttleq/pkg/utils"
	"github.com/Waruntorn-K/shuttleq/pkg/validator"
	"github.com/gin-gonic/gin"
)

// BookingController handles booking HTTP requests.
type BookingController struct {
	service *BookingService
}

func NewBookingController(service *BookingService) *BookingController {
	return &BookingController{service: service}
}

// GetAvailableSlots godoc
// @Summary List a court's hourly slots for a date
// @Tags bookings
// @Produce json
// @Param court_id path int true "Court ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} Slot
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courts/{court_id}/slots [get]
func (c *BookingController) GetAvailableSlots(ctx *gin.Context) {
	courtID, err := strconv.ParseUint(ctx.Param("court_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid court_id")
		return
	}
	date := ctx.Query("date")
	if date == "" {
		utils.BadRequestJSON(ctx, "date query parameter is required")
		return
	}

	slots, err := c.service.GetAvailableSlots(uint(courtID), date)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, slots)
}

// CreateBooking godoc
// @Summary Book a court slot
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body BookingInput true "Booking request"
// @Success 201 {object} CourtBooking
// @Failure 400 {object} utils.ValidationErrorResponse
// @Failure 409 {object} utils.ErrorResponse "Closed or slot taken"
// @Router /bookings [post]
// @Security Bearer
func (c *BookingController) CreateBooking(ctx *gin.Context) {
	var in BookingInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid booking input", validator.ParseError(err))
		return
	}

	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	created, err := c.service.CreateBooking(in.CourtID, in.Date, in.StartTime, in.EndTime, &userID)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Tags bookings
// @Produce json
// @Param booking_id path int true "Booking ID"
// @Success 200 {object} CourtBooking
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /bookings/{booking_id} [delete]
// @Security Bearer
func (c *BookingController) CancelBooking(ctx *gin.Context) {
	bookingID, err := strconv.ParseUint(ctx.Param("booking_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid booking_id")
		return
	}
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	cancelled, err := c.service.CancelBooking(uint(bookingID), userID)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cancelled)
}

// ListMyBookings godoc
// @Summary List the caller's bookings
// @Tags bookings
// @Produce json
// @Success 200 {array} CourtBooking
// @Router /bookings [get]
// @Security Bearer
func (c *BookingController) ListMyBookings(ctx *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	bookings, err := c.service.ListUserBookings(userID)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, bookings)
}

func (c *BookingController) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		utils.NotFoundJSON(ctx, "booking")
	case errors.Is(err, court.ErrCourtNotFound):
		utils.NotFoundJSON(ctx, "court")
	case errors.Is(err, ErrForbidden):
		utils.ForbiddenJSON(ctx)
	case errors.Is(err, ErrClosed), errors.Is(err, ErrSlotTaken):
		utils.ConflictJSON(ctx, err)
	default:
		utils.BadRequestJSON(ctx, err.Error())
	}
}
