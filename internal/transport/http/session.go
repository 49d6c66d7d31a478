package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customErrors "github.com/hojin-dev/go-htmx-boilerplate/internal/domain/errors"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/model"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"

	ctxUserKey = "currentUser"
)

// CurrentUser returns the authenticated user placed in the context by
// one of the session middlewares.
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return model.User{}, false
	}
	u, ok := v.(model.User)
	return u, ok
}

func (h *Handler) resolveUser(c *gin.Context) (model.User, error) {
	raw, err := c.Cookie(accessCookie)
	if err != nil || raw == "" {
		return model.User{}, customErrors.ErrInvalidToken
	}
	return h.auth.UserFromAccessToken(c.Request.Context(), raw)
}

// RequireUser rejects the request with 401 unless the access-token
// cookie resolves to an active user. Missing cookie, bad token and
// deactivated account are indistinguishable from the outside.
func (h *Handler) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.resolveUser(c)
		if err != nil {
			h.abortError(c, customErrors.ErrInvalidToken)
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// OptionalUser resolves the user when possible and stays silent when
// not; handlers see an anonymous request either way.
func (h *Handler) OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := h.resolveUser(c); err == nil {
			c.Set(ctxUserKey, user)
		}
		c.Next()
	}
}

// RequireSuperuser runs on top of RequireUser and turns a
// non-superuser into 403, distinct from the 401 of a failed session.
func (h *Handler) RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			h.abortError(c, customErrors.ErrInvalidToken)
			return
		}
		if !user.IsSuperuser {
			h.abortError(c, customErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireUserPage is the page variant: anonymous browsers get a
// redirect to /login instead of a 401 body.
func (h *Handler) RequireUserPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.resolveUser(c)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}
