package server

import "github.com/gin-gonic/gin"

// Response is the envelope every endpoint answers with, success and
// failure alike.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Code    int    `json:"code"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{
		Success: status < 400,
		Message: message,
		Data:    data,
		Code:    status,
	})
}
