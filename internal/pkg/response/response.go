package response

import "github.com/gin-gonic/gin"

// Success writes the payload as-is; callers pick the status so creation
// endpoints can answer 201.
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error keeps the {"error": message} failure envelope of the original API and
// adds a stable machine-readable code.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": message, "code": code})
}
