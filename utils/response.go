package utils

import "github.com/gin-gonic/gin"

// JSONResponse defines the uniform structure for error and status responses.
// Entity endpoints return the entity itself; only failures use this envelope.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success returns a standard success envelope, used by status endpoints.
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(200, JSONResponse{Code: 0, Message: "success", Data: data})
}

// Error returns a standard error envelope with the given HTTP status.
func Error(ctx *gin.Context, status int, code int, message string) {
	ctx.JSON(status, JSONResponse{Code: code, Message: message})
}
