package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/Waruntorn-K/shuttleq/config"
	"github.com/Waruntorn-K/shuttleq/internal/middleware"
	"github.com/Waruntorn-K/shuttleq/internal/user"
	"github.com/Waruntorn-K/shuttleq/pkg/token"
	"github.com/Waruntorn-K/shuttleq/pkg/utils"
	"github.com/Waruntorn-K/shuttleq/pkg/validator"
	hashutils "github.com/Waruntorn-K/shuttleq/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	repo      AuthRepository
	appConfig *config.Config
}

func NewAuthController(repo AuthRepository, appConfig *config.Config) *AuthController {
	return &AuthController{repo: repo, appConfig: appConfig}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration details"
// @Success 201 {object} user.User
// @Failure 400 {object} utils.ValidationErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid registration input", validator.ParseError(err))
		return
	}

	if _, err := c.repo.GetUserByEmail(req.Email); err == nil {
		utils.ConflictJSON(ctx, errors.New("email is already registered"))
		return
	}

	hash, err := hashutils.HashPassword(req.Password)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	role := req.Role
	if role == "" {
		role = user.RolePlayer
	}

	u := &user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         role,
	}
	if err := c.repo.CreateUser(u); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, u)
}

// Login godoc
// @Summary Authenticate and obtain tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid login input", validator.ParseError(err))
		return
	}

	u, err := c.repo.GetUserByEmail(req.Email)
	if err != nil || !hashutils.CheckPassword(u.PasswordHash, req.Password) {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "invalid email or password"})
		return
	}

	c.issueTokens(ctx, u)
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/refresh-token [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid input", validator.ParseError(err))
		return
	}

	stored, err := c.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "invalid or expired refresh token"})
		return
	}

	u, err := c.repo.GetUserByID(stored.UserID)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "user no longer exists"})
		return
	}

	if err := c.repo.RevokeRefreshToken(req.RefreshToken); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	c.issueTokens(ctx, u)
}

// GetProfile godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} user.User
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/me [get]
// @Security Bearer
func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	u, err := c.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundJSON(ctx, "user")
			return
		}
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (c *AuthController) issueTokens(ctx *gin.Context, u *user.User) {
	access, err := token.GenerateJWT(u.ID, u.Role, c.appConfig.JWT.AccessTokenSecret, c.appConfig.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	refresh := utils.GenerateRandomToken(48)
	if refresh == "" {
		utils.InternalErrorJSON(ctx, errors.New("could not generate refresh token"))
		return
	}
	rt := &user.RefreshToken{
		UserID:    u.ID,
		Token:     refresh,
		ExpiresAt: time.Now().AddDate(0, 0, c.appConfig.JWT.RefreshTokenExpiryDays),
	}
	if err := c.repo.SaveRefreshToken(rt); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{AccessToken: access, RefreshToken: refresh})
}
