package handlers

import (
	"github.com/gin-gonic/gin"
)

// Response envelope shared by every JSON endpoint.

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
