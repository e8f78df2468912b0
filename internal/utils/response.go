package utils

import "github.com/gin-gonic/gin"

// APIResponse is the uniform success envelope every handler returns.
type APIResponse struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
}

// APIError is the uniform failure envelope.
type APIError struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

func RespondOK(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, APIResponse{Status: status, Data: data, Message: message, Success: true})
}

func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, APIError{Status: status, Error: message, Success: false})
}

func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, APIError{Status: status, Error: message, Success: false})
}
