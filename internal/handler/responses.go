package handler

import "github.com/gin-gonic/gin"

// failMessage writes the registration-side failure shape.
func failMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// failError writes the order-side failure shape, which uses an "error" key.
func failError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
