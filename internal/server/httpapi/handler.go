// Package httpapi exposes the auth operations over HTTP. Handlers are thin:
// they decode JSON, capture request metadata as plain values, call the
// service, and translate the outcome envelope to a status code.
package httpapi

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/logging"
	"github.com/dmitrijs2005/blogauth/internal/server/auth"
	"github.com/dmitrijs2005/blogauth/internal/server/services"
)

type Handler struct {
	svc    *services.AuthService
	issuer *auth.TokenIssuer
	logger logging.Logger
}

func NewHandler(svc *services.AuthService, issuer *auth.TokenIssuer, logger logging.Logger) *Handler {
	return &Handler{svc: svc, issuer: issuer, logger: logger}
}

// Mount registers the auth routes on the given echo instance.
func (h *Handler) Mount(e *echo.Echo) {
	g := e.Group("/api/auth")
	g.POST("/login", h.login)
	g.POST("/register", h.register)
	g.POST("/forgot-password", h.forgotPassword)
	g.POST("/reset-password", h.resetPassword)
	g.GET("/verify-reset-token", h.verifyResetToken)
	g.GET("/me", h.me, BearerAuth(h.issuer))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email           string `json:"email"`
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Token   string             `json:"token,omitempty"`
	User    *services.UserInfo `json:"user,omitempty"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

func (h *Handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Success: false, Message: services.MsgEmailPasswordRequired})
	}

	in := &services.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		Client: services.ClientInfo{
			IP:        clientIP(c.Request()),
			UserAgent: c.Request().UserAgent(),
		},
	}

	resp, err := h.svc.Login(c.Request().Context(), in)
	if err != nil {
		return h.internal(c, "login", err)
	}
	if !resp.Success {
		status := http.StatusUnauthorized
		if resp.Message == services.MsgEmailPasswordRequired {
			status = http.StatusBadRequest
		}
		return c.JSON(status, loginResponse{Success: false, Message: resp.Message})
	}
	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: resp.Message,
		Token:   resp.Token,
		User:    resp.User,
	})
}

func (h *Handler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Success: false, Message: services.MsgEmailPasswordRequired})
	}

	resp, err := h.svc.Register(c.Request().Context(), &services.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return h.internal(c, "register", err)
	}
	if !resp.Success {
		status := http.StatusBadRequest
		if resp.Message == services.MsgDuplicateAccount {
			status = http.StatusConflict
		}
		return c.JSON(status, messageResponse{Success: false, Message: resp.Message})
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: resp.Message})
}

func (h *Handler) forgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Success: false, Message: services.MsgEmailRequired})
	}

	resp, err := h.svc.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return h.internal(c, "forgot_password", err)
	}
	if !resp.Success {
		return c.JSON(http.StatusBadRequest, messageResponse{Success: false, Message: resp.Message})
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: resp.Message})
}

func (h *Handler) resetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Success: false, Message: services.MsgResetFieldsRequired})
	}

	resp, err := h.svc.ResetPassword(c.Request().Context(), &services.ResetPasswordRequest{
		Email:           req.Email,
		Token:           req.Token,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return h.internal(c, "reset_password", err)
	}
	if !resp.Success {
		return c.JSON(http.StatusBadRequest, messageResponse{Success: false, Message: resp.Message})
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: resp.Message})
}

func (h *Handler) verifyResetToken(c echo.Context) error {
	valid, err := h.svc.VerifyResetToken(c.Request().Context(), c.QueryParam("email"), c.QueryParam("token"))
	if err != nil {
		return h.internal(c, "verify_reset_token", err)
	}
	return c.JSON(http.StatusOK, verifyResponse{Valid: valid})
}

// me returns the profile of the authenticated user. The account can vanish
// or be deactivated while its token is still unexpired, so a failed lookup
// is a 401 rather than a 404.
func (h *Handler) me(c echo.Context) error {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	info, err := h.svc.Profile(c.Request().Context(), claims.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}
		return h.internal(c, "me", err)
	}
	return c.JSON(http.StatusOK, info)
}

// internal logs the error with its cause and returns an opaque 500. Storage
// and infrastructure failures never leak details to clients.
func (h *Handler) internal(c echo.Context, op string, err error) error {
	h.logger.Error(c.Request().Context(), "request failed", "op", op, "error", err.Error())
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}

// clientIP resolves the caller address: the first X-Forwarded-For entry,
// then X-Real-IP, then the socket peer address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return strings.TrimSpace(rip)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
