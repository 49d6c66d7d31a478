package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	customErrors "github.com/hojin-dev/go-htmx-boilerplate/internal/domain/errors"
)

func statusFor(err error) (int, string) {
	switch {
	case customErrors.IsInvalidCredentials(err):
		return http.StatusUnauthorized, "invalid credentials"
	case customErrors.IsInvalidToken(err):
		return http.StatusUnauthorized, "authentication required"
	case customErrors.IsForbidden(err):
		return http.StatusForbidden, "insufficient permissions"
	case customErrors.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	case customErrors.IsAlreadyExists(err):
		return http.StatusConflict, err.Error()
	case customErrors.IsInvalidArgument(err):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// handleError translates a domain error once, at the boundary. HTMX
// requests get a toast fragment retargeted at the toast container,
// everything else gets JSON.
func (h *Handler) handleError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("handler error", zap.Error(err), zap.String("path", c.Request.URL.Path))
	}

	if isHTMX(c) {
		body, rerr := h.render.Render("toast", gin.H{"Type": "error", "Message": msg})
		if rerr != nil {
			c.String(status, msg)
			return
		}
		c.Header("HX-Retarget", "#toast-container")
		c.Header("HX-Reswap", "beforeend")
		c.Data(status, "text/html; charset=utf-8", body)
		return
	}

	c.JSON(status, gin.H{"error": true, "message": msg})
}

func (h *Handler) abortError(c *gin.Context, err error) {
	h.handleError(c, err)
	c.Abort()
}

// notFound serves the HTML error page to browsers; API and HTMX
// callers keep getting JSON.
func (h *Handler) notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || isHTMX(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": true, "message": "not found"})
		return
	}
	h.renderHTML(c, http.StatusNotFound, "pages/error", gin.H{
		"Title":   "Not Found",
		"Status":  http.StatusNotFound,
		"Message": "The page you are looking for does not exist.",
	})
}
