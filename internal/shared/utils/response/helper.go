package response

import "github.com/gin-gonic/gin"

// OK writes a success envelope
func OK(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail writes a failure envelope
func Fail(c *gin.Context, code int, errMsg string) {
	c.JSON(code, Envelope{
		Success: false,
		Error:   errMsg,
	})
}

// Conflict writes a failure envelope carrying the upstream conflict class so
// callers can render the conflict-specific notice.
func Conflict(c *gin.Context, code int, errMsg, conflictType string, data interface{}) {
	c.JSON(code, Envelope{
		Success:      false,
		Error:        errMsg,
		ConflictType: conflictType,
		Data:         data,
	})
}
