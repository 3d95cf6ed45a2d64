package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"video-share/pkg/apperror"
	"video-share/pkg/auth"
)

type credentials struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Authenticate logs the user in, registering the username on first use.
func (h *Handler) Authenticate(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBind(&creds); err != nil {
		writeBadRequest(c, err)
		return
	}

	res, err := h.auth.Authenticate(c.Request.Context(), creds.Username, creds.Password)
	if err != nil {
		writeError(c, err, nil)
		return
	}

	if err := h.sessions.Establish(c, res.Identity); err != nil {
		h.log.WithError(err).Error("Handler.Authenticate: establishing session failed")
		writeError(c, apperror.NewInternal(err), nil)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeNotice(c, status, res.Message(), gin.H{"user": res.Identity})
}

// Logout clears the session; it succeeds even without one.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	writeNotice(c, http.StatusOK, auth.MsgLoggedOut, nil)
}
