package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
	"github.com/SscSPs/orbit_finance/internal/dto"
	"github.com/SscSPs/orbit_finance/internal/middleware"
	"github.com/SscSPs/orbit_finance/internal/platform/config"
	"github.com/SscSPs/orbit_finance/internal/utils"
	"github.com/gin-gonic/gin"
)

// authRateLimit bounds login and registration attempts per client IP.
const authRateLimit = "10-M"

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService portssvc.UserAuthSvc
	jwtSecret   string
	jwtDuration time.Duration
	jwtIssuer   string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserAuthSvc, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: us,
		jwtSecret:   cfg.JWTSecret,
		jwtDuration: cfg.JWTExpiryDuration,
		jwtIssuer:   cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, userService portssvc.UserAuthSvc) {
	h := NewAuthHandler(userService, cfg)

	auth := rg.Group("/auth")
	if lim, err := middleware.NewMemoryLimiter(authRateLimit); err == nil {
		auth.Use(middleware.RateLimit(lim))
	}
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
	}
}

// Login godoc
// @Summary Log in by email
// @Description Resolves the user by email and returns it with a session token.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Login email"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 404 {object} dto.ErrorResponse "Unknown email"
// @Failure 500 {object} dto.ErrorResponse "Failed to generate token"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req, "Login") {
		return
	}
	user, err := h.userService.Login(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}
	h.respondWithToken(c, http.StatusOK, dto.ToUserResponse(user))
}

// Register godoc
// @Summary Register a new user
// @Description Creates the user and their default workspace and returns a session token.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   user body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Failed to register user"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req, "Register") {
		return
	}
	user, err := h.userService.Register(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	h.respondWithToken(c, http.StatusCreated, dto.ToUserResponse(user))
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user dto.UserResponse) {
	token, err := utils.GenerateSessionToken(user.ID, user.Email, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to generate token"})
		return
	}
	c.JSON(status, dto.AuthResponse{User: user, Token: token})
}
