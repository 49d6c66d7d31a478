package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/dto"
	customErrors "github.com/hojin-dev/go-htmx-boilerplate/internal/domain/errors"
)

func (h *Handler) listUsers(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	users, err := h.users.List(c.Request.Context(), skip, limit, nil)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponses(users))
}

// getUser allows a user to fetch themselves; anyone else requires the
// superuser flag.
func (h *Handler) getUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.handleError(c, customErrors.NewInvalidArgument("invalid user id"))
		return
	}
	current, _ := CurrentUser(c)
	if id != current.ID && !current.IsSuperuser {
		h.handleError(c, customErrors.ErrForbidden)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *Handler) updateMe(c *gin.Context) {
	var body dto.UserUpdateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.handleError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	current, _ := CurrentUser(c)

	user, err := h.users.Update(c.Request.Context(), current, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *Handler) changePassword(c *gin.Context) {
	var body dto.ChangePasswordDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.handleError(c, customErrors.NewInvalidArgument(err.Error()))
		return
	}
	current, _ := CurrentUser(c)

	if _, err := h.auth.ChangePassword(c.Request.Context(), current, body); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.handleError(c, customErrors.NewInvalidArgument("invalid user id"))
		return
	}
	current, _ := CurrentUser(c)
	if id == current.ID {
		h.handleError(c, customErrors.NewInvalidArgument("cannot delete yourself"))
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *Handler) activateUser(c *gin.Context)   { h.setUserFlag(c, "activate") }
func (h *Handler) deactivateUser(c *gin.Context) { h.setUserFlag(c, "deactivate") }
func (h *Handler) verifyUser(c *gin.Context)     { h.setUserFlag(c, "verify") }

func (h *Handler) setUserFlag(c *gin.Context, action string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.handleError(c, customErrors.NewInvalidArgument("invalid user id"))
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	switch action {
	case "activate":
		user, err = h.users.Activate(c.Request.Context(), user)
	case "deactivate":
		user, err = h.users.Deactivate(c.Request.Context(), user)
	case "verify":
		user, err = h.users.Verify(c.Request.Context(), user)
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
