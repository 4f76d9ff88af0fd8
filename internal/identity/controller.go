package identity

import (
	"errors"
	"net/http"

	"smartslot/internal/shared/middleware"
	"smartslot/internal/shared/utils/response"
	"smartslot/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
	logger    *logger.Logger
}

func NewController(service Service, log *logger.Logger) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
		logger:    log,
	}
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Email and password are required.")
		return
	}

	result, err := c.service.SignInWithPassword(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.respondSignInError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, result.SessionToken)
	response.OK(ctx, http.StatusOK, "Signed in successfully", SessionResponse{
		SessionToken: result.SessionToken,
		User:         result.User,
	})
}

func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "All fields are required.")
		return
	}

	result, err := c.service.RegisterWithPassword(ctx.Request.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		c.respondSignInError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, result.SessionToken)
	response.OK(ctx, http.StatusCreated, "Account created successfully", SessionResponse{
		SessionToken: result.SessionToken,
		User:         result.User,
	})
}

func (c *Controller) ProviderSignIn(ctx *gin.Context) {
	var req ProviderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := c.service.SignInWithProvider(ctx.Request.Context(), req.IDToken)
	if err != nil {
		c.respondSignInError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, result.SessionToken)
	response.OK(ctx, http.StatusOK, "Signed in successfully", SessionResponse{
		SessionToken: result.SessionToken,
		User:         result.User,
	})
}

// PasswordStrength scores a candidate password so the registration form can
// render live feedback without shipping the scoring rules twice.
func (c *Controller) PasswordStrength(ctx *gin.Context) {
	var req StrengthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	response.OK(ctx, http.StatusOK, "Password strength evaluated", CheckPasswordStrength(req.Password))
}

func (c *Controller) Logout(ctx *gin.Context) {
	sessionID, _ := ctx.Get("session_id")
	if sid, ok := sessionID.(string); ok && sid != "" {
		if err := c.service.Logout(ctx.Request.Context(), sid); err != nil {
			c.logger.WithError(err).Warn("failed to clear session record")
		}
	}

	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	response.OK(ctx, http.StatusOK, "Signed out successfully", nil)
}

// respondSignInError maps a classified identity failure onto an HTTP status.
// Cancelled popups return 200 with a neutral message: abandoning the popup is
// not an error worth alarming the user about.
func (c *Controller) respondSignInError(ctx *gin.Context, err error) {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		c.logger.WithError(err).Error("sign-in failed")
		response.Fail(ctx, http.StatusInternalServerError, "An error occurred. Please try again.")
		return
	}

	c.logger.LogAuthFailure(ctx.Request.Context(), string(pe.Kind), ctx.ClientIP())

	switch pe.Kind {
	case FailureValidation:
		response.Fail(ctx, http.StatusBadRequest, pe.Message)
	case FailureCancelled:
		response.OK(ctx, http.StatusOK, pe.Message, nil)
	case FailureNetwork:
		response.Fail(ctx, http.StatusBadGateway, pe.Message)
	default:
		response.Fail(ctx, http.StatusUnauthorized, pe.Message)
	}
}

func (c *Controller) setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)
}
