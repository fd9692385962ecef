package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/api/internal/middleware"
	"storefront/api/internal/models"
)

func (h HandlerSet) AdminListUsers(c *gin.Context) {
	limit := 50
	offset := 0

	if perPage := c.Query("perPage"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if page := c.Query("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 1 {
			offset = (v - 1) * limit
		}
	}

	users, err := h.authService.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(users))
	for _, user := range users {
		items = append(items, map[string]interface{}{
			"id":        user.ID,
			"email":     user.Email,
			"name":      user.Name(),
			"role":      user.Role,
			"active":    user.Active,
			"createdAt": user.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

type changeRoleRequest struct {
	Role models.Role `json:"role"`
}

func (h HandlerSet) AdminChangeRole(c *gin.Context) {
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.authService.ChangeRole(c.Request.Context(), c.Param("id"), req.Role, c.ClientIP())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "role updated"})
}

type setActiveRequest struct {
	Active *bool `json:"active"`
}

func (h HandlerSet) AdminSetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active flag required"})
		return
	}

	err := h.authService.SetActive(c.Request.Context(), c.Param("id"), *req.Active, c.ClientIP())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "user updated"})
}

func (h HandlerSet) AdminDeleteUser(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	err := h.authService.DeleteUser(c.Request.Context(), caller.Role, c.Param("id"), c.ClientIP())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
