// Package response writes the JSON envelope every API route answers with:
// {"success":true,"data":...} or {"success":false,"message":"..."}.
package response

import (
	"errors"

	"github.com/MohamedX1935/SkillBoard/internal/apperr"
	"github.com/MohamedX1935/SkillBoard/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Envelope is the response body shape.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Success writes data with the given status.
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Fail aborts the request with a failure envelope.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: msg})
}

// Error maps err onto its HTTP status. Internal errors are logged and their
// detail never leaves the process.
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logger.WithFields(logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
		}).Errorf("request failed: %v", err)
		Fail(c, kind.Status(), apperr.Internal(nil).Message)
		return
	}
	msg := err.Error()
	var e *apperr.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	Fail(c, kind.Status(), msg)
}
