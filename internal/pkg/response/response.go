package response

import (
	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Error string `json:"error"`
}

func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, errorBody{Error: message})
}

// Abort writes the error body and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{Error: message})
}
