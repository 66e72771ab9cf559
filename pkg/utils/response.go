package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *AppError   `json:"error,omitempty"`
}

func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func SendError(c *gin.Context, statusCode int, err *AppError) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   err,
	})
}

func SendValidationError(c *gin.Context, message string, details string) {
	SendError(c, http.StatusBadRequest, NewAppError(ErrCodeValidation, message, details))
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, NewAppError(ErrCodeNotFound, message))
}

func SendInternalError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, NewAppError(ErrCodeInternal, message))
}

// SendAmbiguous signals that a name matched more than one identity.
// Callers resubmit with a suffix (Jr., Sr., III) or an explicit ID.
func SendAmbiguous(c *gin.Context, message string, suggestions interface{}) {
	c.JSON(http.StatusMultipleChoices, Response{
		Success: false,
		Data:    gin.H{"suggestions": suggestions},
		Error:   NewAppError(ErrCodeAmbiguousName, message),
	})
}

// SendRoleChoice signals a two-way player; callers resubmit with
// type=pitcher or type=hitter.
func SendRoleChoice(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, Response{
		Success: false,
		Data:    gin.H{"options": []string{"pitcher", "hitter"}},
		Error:   NewAppError(ErrCodeRoleChoice, message),
	})
}
