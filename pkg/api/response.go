// Package api defines the JSON envelope shared by every endpoint:
// {success: bool, data?, error?, message?}.
package api

import "github.com/gin-gonic/gin"

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func OK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

func OKWithMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Response{Success: true, Data: data, Message: message})
}

func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Error: message})
}
