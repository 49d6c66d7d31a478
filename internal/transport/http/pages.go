package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/repo"
)

func (h *Handler) renderHTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["CurrentUser"]; !ok {
		if user, found := CurrentUser(c); found {
			data["CurrentUser"] = user
		} else {
			data["CurrentUser"] = nil
		}
	}
	h.renderFragment(c, status, name, data)
}

// renderFragment renders without the page chrome context; partials get
// exactly the data the caller hands over.
func (h *Handler) renderFragment(c *gin.Context, status int, name string, data any) {
	body, err := h.render.Render(name, data)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", body)
}

func (h *Handler) homePage(c *gin.Context) {
	h.renderHTML(c, http.StatusOK, "pages/home", gin.H{"Title": "Home"})
}

// loginPage and registerPage bounce signed-in users to the dashboard.
func (h *Handler) loginPage(c *gin.Context) {
	if _, ok := CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	h.renderHTML(c, http.StatusOK, "pages/login", gin.H{"Title": "Login"})
}

func (h *Handler) registerPage(c *gin.Context) {
	if _, ok := CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	h.renderHTML(c, http.StatusOK, "pages/register", gin.H{"Title": "Register"})
}

func (h *Handler) dashboardPage(c *gin.Context) {
	current, _ := CurrentUser(c)
	ctx := c.Request.Context()

	recent, err := h.items.List(ctx, repo.ItemFilter{OwnerID: current.ID, Limit: 5})
	if err != nil {
		h.handleError(c, err)
		return
	}
	total, err := h.items.Count(ctx, repo.ItemFilter{OwnerID: current.ID})
	if err != nil {
		h.handleError(c, err)
		return
	}
	active := true
	activeCount, err := h.items.Count(ctx, repo.ItemFilter{OwnerID: current.ID, IsActive: &active})
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.renderHTML(c, http.StatusOK, "pages/dashboard", gin.H{
		"Title":       "Dashboard",
		"RecentItems": recent,
		"Stats": gin.H{
			"TotalItems":  total,
			"ActiveItems": activeCount,
		},
	})
}

func (h *Handler) itemsPage(c *gin.Context) {
	current, _ := CurrentUser(c)

	items, err := h.items.List(c.Request.Context(), repo.ItemFilter{OwnerID: current.ID, Limit: 10})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.renderHTML(c, http.StatusOK, "pages/items", gin.H{
		"Title": "Items",
		"Items": items,
	})
}
