package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"video-share/pkg/apperror"
)

// writeError renders err. Validation failures echo extra (the submitted form)
// so the caller can correct it; other kinds send the client back to RootPath.
func writeError(c *gin.Context, err error, extra gin.H) {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.Internal {
		_ = c.Error(appErr)
	}

	body := gin.H{}
	switch appErr.Kind {
	case apperror.Validation:
		body["error"] = appErr.Messages
		for k, v := range extra {
			body[k] = v
		}
	case apperror.Unauthenticated:
		body["alert"] = appErr.Messages[0]
		body["location"] = RootPath
	case apperror.InvalidCredentials, apperror.NotPermitted:
		body["error"] = appErr.Messages[0]
		body["location"] = RootPath
	default:
		body["error"] = apperror.MsgInternal
	}
	c.JSON(appErr.StatusCode(), body)
}

func writeBadRequest(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}

func writeNotice(c *gin.Context, status int, notice string, extra gin.H) {
	body := gin.H{"notice": notice, "location": RootPath}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}
