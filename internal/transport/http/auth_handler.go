package http

import (
	"crypto/sha256"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/dto"
	customErrors "github.com/hojin-dev/go-htmx-boilerplate/internal/domain/errors"
)

func (h *Handler) registerJSON(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.handleError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	h.log.Info("register",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email)))),
	)

	user, err := h.auth.Register(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *Handler) loginJSON(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.handleError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	h.log.Info("login",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email)))),
	)

	pair, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.setTokenCookies(c, pair)
	c.JSON(http.StatusOK, dto.NewTokenResponse(pair))
}

// refreshJSON accepts the refresh token from the body or, failing
// that, from the cookie the browser already holds.
func (h *Handler) refreshJSON(c *gin.Context) {
	var body dto.RefreshDTO
	_ = c.ShouldBindJSON(&body)
	raw := body.RefreshToken
	if raw == "" {
		raw, _ = c.Cookie(refreshCookie)
	}
	if raw == "" {
		h.handleError(c, customErrors.ErrInvalidToken)
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), raw)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.setTokenCookies(c, pair)
	c.JSON(http.StatusOK, dto.NewTokenResponse(pair))
}

func (h *Handler) logoutJSON(c *gin.Context) {
	access, _ := c.Cookie(accessCookie)
	refresh, _ := c.Cookie(refreshCookie)
	if err := h.auth.Logout(c.Request.Context(), access, refresh); err != nil {
		h.handleError(c, err)
		return
	}
	h.clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) me(c *gin.Context) {
	user, _ := CurrentUser(c)
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
