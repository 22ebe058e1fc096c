package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope of every API reply. Reason carries the stable
// code of a rejected booking so clients need not parse Message.
type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Reason  string      `json:"reason,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}

// RespondRejection answers a booking refused by a business rule.
func RespondRejection(c *gin.Context, code int, reason string) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: "reservation rejected: " + reason,
		Reason:  reason,
	})
}
