package response

import "github.com/gin-gonic/gin"

// Envelope: success responses carry {message, data}; errors carry {error}.
type SuccessBody struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorBody struct {
	Error string `json:"error"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(200, SuccessBody{Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(201, SuccessBody{Message: message, Data: data})
}

func Error(c *gin.Context, httpStatus int, message string) {
	if httpStatus == 0 {
		httpStatus = 400
	}
	c.JSON(httpStatus, ErrorBody{Error: message})
}
