package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/model"
)

// setTokenCookies writes both tokens as http-only SameSite=Lax cookies
// with max-age equal to each token's remaining lifetime.
func (h *Handler) setTokenCookies(c *gin.Context, pair model.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		accessCookie,
		pair.AccessToken,
		int(pair.AccessTTL.Seconds()),
		"/",
		h.cfg.CookieDomain,
		h.cfg.CookieSecure,
		true,
	)
	c.SetCookie(
		refreshCookie,
		pair.RefreshToken,
		int(pair.RefreshTTL.Seconds()),
		"/",
		h.cfg.CookieDomain,
		h.cfg.CookieSecure,
		true,
	)
}

func (h *Handler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookie, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	c.SetCookie(refreshCookie, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
}
