package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/logger"
	"github.com/neuroeducatimo/landing/pkg/ratelimit"
)

const loginScope = "login"

// LoginRequest is the login form
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	OTP      string `json:"otp" form:"otp"`
}

// Handler serves the login flow and the admin landing page
type Handler struct {
	auth    *Authenticator
	limiter *ratelimit.Limiter
	now     func() time.Time
}

// NewHandler creates a new admin handler. limiter may be nil.
func NewHandler(auth *Authenticator, limiter *ratelimit.Limiter) *Handler {
	return &Handler{auth: auth, limiter: limiter, now: time.Now}
}

// RegisterRoutes registers /login, /logout and /admin
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/login", h.LoginState)
	if h.limiter != nil {
		r.POST("/login", ratelimit.Middleware(h.limiter, loginScope), h.Login)
	} else {
		r.POST("/login", h.Login)
	}
	r.GET("/logout", h.Logout)
	r.GET("/admin", RequireAdmin(), h.Dashboard)
}

// LoginState reports whether the visitor is logged in
func (h *Handler) LoginState(c *gin.Context) {
	user, ok := CurrentUser(c)
	common.SuccessResponse(c, gin.H{
		"authenticated": ok,
		"username":      user,
		"otp_required":  h.auth.OTPRequired(),
		"enabled":       h.auth.Enabled(),
	})
}

// Login checks credentials and starts a session. Form posts are redirected
// to /admin, JSON clients get a JSON body.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid login request")
		return
	}

	log := logger.WithContext(c.Request.Context()).With(zap.String("client_ip", c.ClientIP()))

	if err := h.auth.Verify(req.Username, req.Password, req.OTP); err != nil {
		switch {
		case errors.Is(err, ErrLoginDisabled):
			common.AppErrorResponse(c, common.NewServiceUnavailableError("admin login is not configured"))
		case errors.Is(err, ErrOTPRequired):
			common.AppErrorResponse(c, common.NewUnauthorizedError("one-time code required"))
		default:
			log.Warn("Admin login failed")
			common.AppErrorResponse(c, common.NewUnauthorizedError("invalid credentials"))
		}
		return
	}

	if err := startSession(c, req.Username, h.now()); err != nil {
		log.Error("Failed to save admin session", zap.Error(err))
		common.AppErrorResponse(c, common.NewInternalServerError("failed to start session"))
		return
	}
	if err := h.limiter.Reset(c.Request.Context(), loginScope, c.ClientIP()); err != nil {
		log.Warn("Failed to reset login throttle", zap.Error(err))
	}
	log.Info("Admin logged in")

	if c.ContentType() != binding.MIMEJSON {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	common.SuccessResponseWithStatus(c, http.StatusOK, gin.H{"username": req.Username}, "Logged in successfully")
}

// Logout ends the session and returns to the login page
func (h *Handler) Logout(c *gin.Context) {
	if err := endSession(c); err != nil {
		logger.WithContext(c.Request.Context()).Warn("Failed to clear admin session", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/login")
}

// Dashboard returns the logged-in admin's session details
func (h *Handler) Dashboard(c *gin.Context) {
	user := c.GetString(contextUserKey)
	data := gin.H{
		"username": user,
		"links": gin.H{
			"articles": "/api/articles",
			"leads":    "/api/leads",
			"upload":   "/api/upload",
			"logout":   "/logout",
		},
	}
	if at := loginTime(c); !at.IsZero() {
		data["logged_in_at"] = at
	}
	common.SuccessResponse(c, data)
}
