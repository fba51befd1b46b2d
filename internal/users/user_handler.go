package users

import (
	"errors"
	"net/http"

	"shortboard/pkg/models"
	"shortboard/pkg/roles"
	"shortboard/pkg/security"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct {
	Repository Repository
}

func NewHandler(r Repository) *UsersHandler {
	return &UsersHandler{Repository: r}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", security.Authorize(roles.Admin), h.GetUserList)
	router.POST("/users", security.Authorize(roles.Admin), h.AddUser)
	router.DELETE("/users/:username", security.Authorize(roles.Admin), h.DeleteUser)
}

func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.Repository.GetUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UsersHandler) AddUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	user, err := h.Repository.AddUser(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrDuplicateUsername):
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken", "code": "DUPLICATE_USERNAME"})
		return
	case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrInvalidUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UsersHandler) DeleteUser(c *gin.Context) {
	err := h.Repository.DeleteUser(c.Request.Context(), c.Param("username"))
	switch {
	case errors.Is(err, ErrProtectedUser):
		c.JSON(http.StatusForbidden, gin.H{"error": "The built-in admin account cannot be deleted"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
