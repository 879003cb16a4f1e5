package controllers

import (
	"errors"
	"net/http"

	"citysense-be/store"

	"github.com/gin-gonic/gin"
)

// respondError maps store errors to HTTP statuses. Anything unexpected is
// a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, store.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Admin access required"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Issue not found"})
	case errors.Is(err, store.ErrDuplicateUser):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "User already exists"})
	case errors.Is(err, store.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong"})
	}
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
}
