package response

import (
	"net/http"

	"clabs.com/website/pkg/apperror"
	"clabs.com/website/pkg/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error writes the standard failure envelope. Internal errors are logged and
// replaced with a generic message.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	c.JSON(code, gin.H{"success": false, "message": apperror.Message(err)})
}

// BindError reports a request that failed gin binding or validation.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validator.FormatValidationError(err)})
}

func OK(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// ErrorPage renders the HTML error page with a link back to a safe location.
func ErrorPage(c *gin.Context, err error, backURL, backLabel string) {
	code := apperror.MapErrorToStatus(err)
	if code >= http.StatusInternalServerError {
		zap.L().Error("page failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	c.HTML(code, "error.html", gin.H{
		"Title":     http.StatusText(code),
		"Status":    code,
		"Message":   apperror.Message(err),
		"BackURL":   backURL,
		"BackLabel": backLabel,
	})
}
