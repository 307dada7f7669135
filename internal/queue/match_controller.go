package queue

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Waruntorn-K/shuttleq/pkg/utils"
	"github.com/Waruntorn-K/shuttleq/pkg/validator"
	"github.com/gin-gonic/gin"
)

// MatchController handles match suggestion and lifecycle HTTP requests.
type MatchController struct {
	service *MatchService
}

func NewMatchController(service *MatchService) *MatchController {
	return &MatchController{service: service}
}

// SuggestMatch godoc
// @Summary Suggest four waiting players for a court
// @Tags queue
// @Produce json
// @Param session_id path int true "Session ID"
// @Param court_id query int true "Court ID"
// @Success 200 {object} MatchSuggestion
// @Failure 409 {object} utils.ErrorResponse "Court has an active match"
// @Router /sessions/{session_id}/suggest [get]
// @Security Bearer
func (c *MatchController) SuggestMatch(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "session_id")
	if !ok {
		return
	}
	courtID, err := strconv.ParseUint(ctx.Query("court_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid court_id")
		return
	}

	suggestion, err := c.service.SuggestMatch(sessionID, uint(courtID))
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, suggestion)
}

// CreateMatch godoc
// @Summary Assign four entries to a court as a doubles match
// @Description Accepts either explicit team_a/team_b pairs or a flat ordered
// @Description entry_ids list of four (first two become Team A).
// @Tags queue
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param body body MatchInput true "Teams or ordered entry list"
// @Success 201 {object} MatchDetail
// @Failure 409 {object} utils.ErrorResponse
// @Router /sessions/{session_id}/matches [post]
// @Security Bearer
func (c *MatchController) CreateMatch(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "session_id")
	if !ok {
		return
	}
	var in MatchInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid match input", validator.ParseError(err))
		return
	}

	var detail *MatchDetail
	var err error
	if len(in.EntryIDs) > 0 {
		detail, err = c.service.CreateMatchOrdered(sessionID, in.CourtID, in.EntryIDs)
	} else {
		detail, err = c.service.CreateMatch(sessionID, in.CourtID, in.TeamA, in.TeamB)
	}
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, detail)
}

// CompleteMatch godoc
// @Summary Complete an active match
// @Tags queue
// @Accept json
// @Produce json
// @Param match_id path int true "Match ID"
// @Param body body CompleteMatchInput false "Shuttlecock usage"
// @Success 200 {object} QueueMatch
// @Failure 409 {object} utils.ErrorResponse "Match is not active"
// @Router /matches/{match_id}/complete [post]
// @Security Bearer
func (c *MatchController) CompleteMatch(ctx *gin.Context) {
	matchID, ok := parseIDParam(ctx, "match_id")
	if !ok {
		return
	}
	var in CompleteMatchInput
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&in); err != nil {
			utils.ValidationErrorJSON(ctx, "invalid input", validator.ParseError(err))
			return
		}
	}

	match, err := c.service.CompleteMatch(matchID, in.ShuttlecocksUsed)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, match)
}

// GetMatch godoc
// @Summary Match with its players
// @Tags queue
// @Produce json
// @Param match_id path int true "Match ID"
// @Success 200 {object} MatchDetail
// @Failure 404 {object} utils.ErrorResponse
// @Router /matches/{match_id} [get]
// @Security Bearer
func (c *MatchController) GetMatch(ctx *gin.Context) {
	matchID, ok := parseIDParam(ctx, "match_id")
	if !ok {
		return
	}
	detail, err := c.service.GetMatchDetail(matchID)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

func (c *MatchController) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		utils.NotFoundJSON(ctx, "session")
	case errors.Is(err, ErrMatchNotFound):
		utils.NotFoundJSON(ctx, "match")
	case errors.Is(err, ErrCourtUnavailable),
		errors.Is(err, ErrInvalidTeam),
		errors.Is(err, ErrEntriesNotWaiting),
		errors.Is(err, ErrMatchNotActive):
		utils.ConflictJSON(ctx, err)
	default:
		utils.BadRequestJSON(ctx, err.Error())
	}
}
