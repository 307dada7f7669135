package queue

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Waruntorn-K/shuttleq/internal/middleware"
	"github.com/Waruntorn-K/shuttleq/pkg/utils"
	"github.com/Waruntorn-K/shuttleq/pkg/validator"
	"github.com/gin-gonic/gin"
)

// QueueController handles session and entry HTTP requests.
type QueueController struct {
	service *QueueService
}

func NewQueueController(service *QueueService) *QueueController {
	return &QueueController{service: service}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// CreateSession godoc
// @Summary Create a queue session
// @Tags queue
// @Accept json
// @Produce json
// @Param body body SessionInput true "Session details"
// @Success 201 {object} QueueSession
// @Failure 400 {object} utils.ValidationErrorResponse
// @Router /sessions [post]
// @Security Bearer
func (c *QueueController) CreateSession(ctx *gin.Context) {
	var in SessionInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid session input", validator.ParseError(err))
		return
	}
	ownerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	session, err := c.service.CreateSession(ownerID, in)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, session)
}

// ListSessions godoc
// @Summary List the caller's sessions
// @Tags queue
// @Produce json
// @Success 200 {array} QueueSession
// @Router /sessions [get]
// @Security Bearer
func (c *QueueController) ListSessions(ctx *gin.Context) {
	ownerID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}
	sessions, err := c.service.ListOwnerSessions(ownerID)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}

// GetSessionDetail godoc
// @Summary Session with entries and matches
// @Tags queue
// @Produce json
// @Param session_id path int true "Session ID"
// @Success 200 {object} SessionDetail
// @Failure 404 {object} utils.ErrorResponse
// @Router /sessions/{session_id} [get]
// @Security Bearer
func (c *QueueController) GetSessionDetail(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "session_id")
	if !ok {
		return
	}
	detail, err := c.service.GetSessionDetail(sessionID)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// StartSession godoc
// @Summary Start a session (upcoming -> active)
// @Tags queue
// @Produce json
// @Param session_id path int true "Session ID"
// @Success 200 {object} QueueSession
// @Failure 409 {object} utils.ErrorResponse
// @Router /sessions/{session_id}/start [post]
// @Security Bearer
func (c *QueueController) StartSession(ctx *gin.Context) {
	c.transition(ctx, c.service.StartSession)
}

// EndSession godoc
// @Summary End a session (active -> ended)
// @Tags queue
// @Produce json
// @Param session_id path int true "Session ID"
// @Success 200 {object} QueueSession
// @Failure 409 {object} utils.ErrorResponse
// @Router /sessions/{session_id}/end [post]
// @Security Bearer
func (c *QueueController) EndSession(ctx *gin.Context) {
	c.transition(ctx, c.service.EndSession)
}

func (c *QueueController) transition(ctx *gin.Context, fn func(uint, uint) (*QueueSession, error)) {
	sessionID, ok := parseIDParam(ctx, "session_id")
	if !ok {
		return
	}
	operatorID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}
	session, err := fn(sessionID, operatorID)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// AddEntry godoc
// @Summary Add a participant to the queue
// @Tags queue
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param body body EntryInput true "Participant (user_id or guest_name, plus level)"
// @Success 201 {object} QueueEntry
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /sessions/{session_id}/entries [post]
// @Security Bearer
func (c *QueueController) AddEntry(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "session_id")
	if !ok {
		return
	}
	var in EntryInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid entry input", validator.ParseError(err))
		return
	}

	p := Participant{UserID: in.UserID, GuestName: in.GuestName, Level: *in.Level}
	entry, err := c.service.AddEntry(sessionID, p, in.Phone, in.Notes)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, entry)
}

// UpdateEntry godoc
// @Summary Operator update of a queue entry
// @Tags queue
// @Accept json
// @Produce json
// @Param entry_id path int true "Entry ID"
// @Param body body EntryPatch true "Fields to change"
// @Success 200 {object} QueueEntry
// @Failure 404 {object} utils.ErrorResponse
// @Router /entries/{entry_id} [patch]
// @Security Bearer
func (c *QueueController) UpdateEntry(ctx *gin.Context) {
	entryID, ok := parseIDParam(ctx, "entry_id")
	if !ok {
		return
	}
	var patch EntryPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid entry patch", validator.ParseError(err))
		return
	}

	entry, err := c.service.UpdateEntry(entryID, patch)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, entry)
}

// RemoveEntry godoc
// @Summary Remove a queue entry
// @Tags queue
// @Param entry_id path int true "Entry ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /entries/{entry_id} [delete]
// @Security Bearer
func (c *QueueController) RemoveEntry(ctx *gin.Context) {
	entryID, ok := parseIDParam(ctx, "entry_id")
	if !ok {
		return
	}
	if err := c.service.RemoveEntry(entryID); err != nil {
		c.writeError(ctx, err)
		return
	}
	utils.SuccessJSON(ctx, http.StatusOK, "entry removed", nil)
}

func (c *QueueController) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		utils.NotFoundJSON(ctx, "session")
	case errors.Is(err, ErrEntryNotFound):
		utils.NotFoundJSON(ctx, "entry")
	case errors.Is(err, ErrSessionNotOwned):
		utils.ForbiddenJSON(ctx)
	case errors.Is(err, ErrSessionTransition):
		utils.ConflictJSON(ctx, err)
	default:
		utils.BadRequestJSON(ctx, err.Error())
	}
}
