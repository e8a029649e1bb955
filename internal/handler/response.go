package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/shark062/EridesSouzaStudio/pkg/errors"
)

// Response is the uniform JSON envelope. The success flag mirrors the
// status string for clients that predate the status field.
type Response struct {
	Success bool        `json:"success"`
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Success: true,
		Status:  "success",
		Data:    data,
	}
}

func NewMessageResponse(message string) *Response {
	return &Response{
		Success: true,
		Status:  "success",
		Message: message,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Success: false,
		Status:  "error",
		Message: message,
	}
}

// Error writes err with the HTTP status its code maps to, keeping the
// message field intact for the envelope-checking clients.
func Error(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	c.JSON(appErr.HTTPStatus(), NewErrorResponse(appErr.Message))
}
