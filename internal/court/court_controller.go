package court

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Waruntorn-K/shuttleq/internal/middleware"
	"github.com/Waruntorn-K/shuttleq/pkg/utils"
	"github.com/Waruntorn-K/shuttleq/pkg/validator"
	"github.com/gin-gonic/gin"
)

// CourtController handles court and availability HTTP requests.
type CourtController struct {
	service *CourtService
}

func NewCourtController(service *CourtService) *CourtController {
	return &CourtController{service: service}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// CreateCourt godoc
// @Summary Create a court
// @Tags courts
// @Accept json
// @Produce json
// @Param body body CourtInput true "Court details"
// @Success 201 {object} Court
// @Failure 400 {object} utils.ValidationErrorResponse
// @Router /courts [post]
// @Security Bearer
func (c *CourtController) CreateCourt(ctx *gin.Context) {
	var in CourtInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid court input", validator.ParseError(err))
		return
	}

	ownerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	created, err := c.service.CreateCourt(ownerID, in)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// ListCourts godoc
// @Summary List the caller's courts
// @Tags courts
// @Produce json
// @Success 200 {array} Court
// @Router /courts [get]
// @Security Bearer
func (c *CourtController) ListCourts(ctx *gin.Context) {
	ownerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	courts, err := c.service.ListOwnerCourts(ownerID)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courts)
}

// SetActive godoc
// @Summary Activate or deactivate a court
// @Tags courts
// @Accept json
// @Produce json
// @Param court_id path int true "Court ID"
// @Param body body SetActiveInput true "Active flag"
// @Success 200 {object} Court
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courts/{court_id}/active [patch]
// @Security Bearer
func (c *CourtController) SetActive(ctx *gin.Context) {
	courtID, ok := parseIDParam(ctx, "court_id")
	if !ok {
		return
	}
	var in SetActiveInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid input", validator.ParseError(err))
		return
	}
	ownerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	updated, err := c.service.SetActive(ownerID, courtID, *in.Active)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// CreateAvailability godoc
// @Summary Add a weekly availability window
// @Tags courts
// @Accept json
// @Produce json
// @Param court_id path int true "Court ID"
// @Param body body AvailabilityInput true "Window"
// @Success 201 {object} CourtAvailability
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse "Day already has a window"
// @Router /courts/{court_id}/availability [post]
// @Security Bearer
func (c *CourtController) CreateAvailability(ctx *gin.Context) {
	courtID, ok := parseIDParam(ctx, "court_id")
	if !ok {
		return
	}
	var in AvailabilityInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid availability input", validator.ParseError(err))
		return
	}

	created, err := c.service.CreateAvailability(courtID, in)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// ListAvailability godoc
// @Summary List a court's weekly availability windows
// @Tags courts
// @Produce json
// @Param court_id path int true "Court ID"
// @Success 200 {array} CourtAvailability
// @Failure 404 {object} utils.ErrorResponse
// @Router /courts/{court_id}/availability [get]
func (c *CourtController) ListAvailability(ctx *gin.Context) {
	courtID, ok := parseIDParam(ctx, "court_id")
	if !ok {
		return
	}
	rows, err := c.service.ListAvailability(courtID)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rows)
}

// UpdateAvailability godoc
// @Summary Update an availability window
// @Tags courts
// @Accept json
// @Produce json
// @Param court_id path int true "Court ID"
// @Param availability_id path int true "Availability ID"
// @Param body body AvailabilityInput true "Window"
// @Success 200 {object} CourtAvailability
// @Failure 409 {object} utils.ErrorResponse
// @Router /courts/{court_id}/availability/{availability_id} [put]
// @Security Bearer
func (c *CourtController) UpdateAvailability(ctx *gin.Context) {
	courtID, ok := parseIDParam(ctx, "court_id")
	if !ok {
		return
	}
	availabilityID, ok := parseIDParam(ctx, "availability_id")
	if !ok {
		return
	}
	var in AvailabilityInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid availability input", validator.ParseError(err))
		return
	}

	updated, err := c.service.UpdateAvailability(availabilityID, courtID, in)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteAvailability godoc
// @Summary Delete an availability window
// @Tags courts
// @Param court_id path int true "Court ID"
// @Param availability_id path int true "Availability ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /courts/{court_id}/availability/{availability_id} [delete]
// @Security Bearer
func (c *CourtController) DeleteAvailability(ctx *gin.Context) {
	courtID, ok := parseIDParam(ctx, "court_id")
	if !ok {
		return
	}
	availabilityID, ok := parseIDParam(ctx, "availability_id")
	if !ok {
		return
	}

	if err := c.service.DeleteAvailability(availabilityID, courtID); err != nil {
		c.writeError(ctx, err)
		return
	}
	utils.SuccessJSON(ctx, http.StatusOK, "availability deleted", nil)
}

func (c *CourtController) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCourtNotFound):
		utils.NotFoundJSON(ctx, "court")
	case errors.Is(err, ErrAvailabilityNotFound):
		utils.NotFoundJSON(ctx, "availability")
	case errors.Is(err, ErrForbidden):
		utils.ForbiddenJSON(ctx)
	case errors.Is(err, ErrDuplicateDay), errors.Is(err, ErrMismatch):
		utils.ConflictJSON(ctx, err)
	case errors.Is(err, ErrInvalidWindow):
		utils.BadRequestJSON(ctx, err.Error())
	default:
		utils.BadRequestJSON(ctx, err.Error())
	}
}
