package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/dto"
	customErrors "github.com/hojin-dev/go-htmx-boilerplate/internal/domain/errors"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/repo"
)

func itemFilterFromQuery(c *gin.Context, ownerID int64) repo.ItemFilter {
	f := repo.ItemFilter{
		OwnerID: ownerID,
		Search:  c.Query("search"),
	}
	if raw, ok := c.GetQuery("is_active"); ok {
		if active, err := strconv.ParseBool(raw); err == nil {
			f.IsActive = &active
		}
	}
	return f
}

func (h *Handler) listItems(c *gin.Context) {
	current, _ := CurrentUser(c)
	f := itemFilterFromQuery(c, current.ID)
	f.Skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Skip < 0 {
		f.Skip = 0
	}

	items, err := h.items.List(c.Request.Context(), f)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemResponses(items))
}

func (h *Handler) listItemsPaginated(c *gin.Context) {
	current, _ := CurrentUser(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	if size > 100 {
		size = 100
	}

	result, err := h.items.Paginate(c.Request.Context(), itemFilterFromQuery(c, current.ID), page, size)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(result.Items, result.Total, result.Page, result.Size))
}

func (h *Handler) getItem(c *gin.Context) {
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
	c.JSON(http.StatusOK, dto.NewItemResponse(item))
}

func (h *Handler) createItem(c *gin.Context) {
	var body dto.ItemCreateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.handleError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	current, _ := CurrentUser(c)

	item, err := h.items.Create(c.Request.Context(), body, current)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewItemResponse(item))
}

func (h *Handler) updateItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.handleError(c, customErrors.NewInvalidArgument("invalid item id"))
		return
	}
	var body dto.ItemUpdateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.handleError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	current, _ := CurrentUser(c)

	item, err := h.items.Update(c.Request.Context(), id, current.ID, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemResponse(item))
}

func (h *Handler) deleteItem(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

func (h *Handler) toggleItem(c *gin.Context) {
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
	c.JSON(http.StatusOK, dto.NewItemResponse(item))
}
