package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/dto"
	customErrors "github.com/hojin-dev/go-htmx-boilerplate/internal/domain/errors"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/repo"
)

// toastTrigger sets the HX-Trigger header so the front end can pop a
// toast after the swap.
func toastTrigger(c *gin.Context, kind, message string, closeModal bool) {
	payload := map[string]any{
		"showToast": map[string]string{"type": kind, "message": message},
	}
	if closeModal {
		payload["closeModal"] = true
	}
	if b, err := json.Marshal(payload); err == nil {
		c.Header("HX-Trigger", string(b))
	}
}

func (h *Handler) loginPartial(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBind(&body); err != nil {
		h.handleError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	pair, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.setTokenCookies(c, pair)
	c.Header("HX-Redirect", "/dashboard")
	c.Status(http.StatusOK)
}

func (h *Handler) registerPartial(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBind(&body); err != nil {
		h.handleError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	if _, err := h.auth.Register(c.Request.Context(), body); err != nil {
		h.handleError(c, err)
		return
	}

	// log the fresh account straight in
	pair, err := h.auth.Login(c.Request.Context(), dto.LoginDTO{Email: body.Email, Password: body.Password})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.setTokenCookies(c, pair)
	c.Header("HX-Redirect", "/dashboard")
	c.Status(http.StatusOK)
}

func (h *Handler) itemsListPartial(c *gin.Context) {
	current, _ := CurrentUser(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	const pageSize = 10

	items, err := h.items.List(c.Request.Context(), repo.ItemFilter{
		OwnerID: current.ID,
		Search:  c.Query("search"),
		Skip:    (page - 1) * pageSize,
		Limit:   pageSize,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.renderFragment(c, http.StatusOK, "items/list", gin.H{"Items": items, "Search": c.Query("search")})
}

func (h *Handler) itemFormPartial(c *gin.Context) {
	h.renderFragment(c, http.StatusOK, "items/form", gin.H{"Item": nil})
}

func (h *Handler) itemPartial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.handleError(c, customErrors.NewInvalidArgument("invalid item id"))
		return
	}
	current, _ := CurrentUser(c)

	item, err := h.items.Get(c.Request.Context(), id, current.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.renderFragment(c, http.StatusOK, "items/item", item)
}

func (h *Handler) itemEditFormPartial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.handleError(c, customErrors.NewInvalidArgument("invalid item id"))
		return
	}
	current, _ := CurrentUser(c)

	item, err := h.items.Get(c.Request.Context(), id, current.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.renderFragment(c, http.StatusOK, "items/form", gin.H{"Item": item})
}

func (h *Handler) createItemPartial(c *gin.Context) {
	var body dto.ItemCreateDTO
	if err := c.ShouldBind(&body); err != nil {
		h.handleError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	current, _ := CurrentUser(c)

	item, err := h.items.Create(c.Request.Context(), body, current)
	if err != nil {
		h.handleError(c, err)
		return
	}
	toastTrigger(c, "success", "Item created.", true)
	h.renderFragment(c, http.StatusOK, "items/item", item)
}

func (h *Handler) updateItemPartial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.handleError(c, customErrors.NewInvalidArgument("invalid item id"))
		return
	}
	var body dto.ItemUpdateDTO
	if err := c.ShouldBind(&body); err != nil {
		h.handleError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	current, _ := CurrentUser(c)

	item, err := h.items.Update(c.Request.Context(), id, current.ID, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	toastTrigger(c, "success", "Item updated.", true)
	h.renderFragment(c, http.StatusOK, "items/item", item)
}

func (h *Handler) deleteItemPartial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.handleError(c, customErrors.NewInvalidArgument("invalid item id"))
		return
	}
	current, _ := CurrentUser(c)

	if err := h.items.Delete(c.Request.Context(), id, current.ID); err != nil {
		h.handleError(c, err)
		return
	}
	toastTrigger(c, "success", "Item deleted.", false)
	// empty body removes the element from the swap target
	c.Data(http.StatusOK, "text/html; charset=utf-8", nil)
}

func (h *Handler) toggleItemPartial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.handleError(c, customErrors.NewInvalidArgument("invalid item id"))
		return
	}
	current, _ := CurrentUser(c)

	item, err := h.items.ToggleActive(c.Request.Context(), id, current.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.renderFragment(c, http.StatusOK, "items/item", item)
}
